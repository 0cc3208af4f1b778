package command

import (
	"context"
	"fmt"
	"time"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// PatchProductCommand partially updates an existing record. Only price,
// description, image and the active flag may change; every other field
// keeps its stored value.
type PatchProductCommand struct {
	ID    string
	Patch domain.ProductPatch
}

// PatchProductHandler handles the partial update command.
type PatchProductHandler struct {
	repo domain.ProductRepository
}

func NewPatchProductHandler(repo domain.ProductRepository) *PatchProductHandler {
	return &PatchProductHandler{repo: repo}
}

// Handle applies the patch, returning ErrNotFound when the id does not
// exist so the delivery layer can answer 404 distinctly.
func (h *PatchProductHandler) Handle(ctx context.Context, cmd PatchProductCommand) (*domain.Product, error) {
	current, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	updated := cmd.Patch.Apply(*current, time.Now())
	if err := h.repo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to patch product: %w", err)
	}
	return &updated, nil
}
