package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// DeleteProductCommand soft-deletes a record: active is set to false
// and every other field is preserved, so the record stays visible in
// the admin listing while disappearing from the public one.
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles the soft delete command.
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle marks the record inactive. Deleting an unknown id is a no-op,
// not an error.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	product.Active = false
	product.UpdatedAt = time.Now()
	if err := h.repo.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
