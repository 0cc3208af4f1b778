package command

import (
	"context"
	"fmt"
	"time"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// UpsertProductCommand carries one incoming product record. An existing
// record with the same id is fully replaced by the normalized input;
// otherwise the record is appended.
type UpsertProductCommand struct {
	Input domain.ProductInput
}

// UpsertProductHandler handles the single-record upsert command.
type UpsertProductHandler struct {
	repo domain.ProductRepository
}

func NewUpsertProductHandler(repo domain.ProductRepository) *UpsertProductHandler {
	return &UpsertProductHandler{repo: repo}
}

// Handle validates, normalizes and stores the record, returning the
// normalized result as written.
func (h *UpsertProductHandler) Handle(ctx context.Context, cmd UpsertProductCommand) (*domain.Product, error) {
	if cmd.Input.ID == "" || cmd.Input.Name == "" || cmd.Input.Brand == "" {
		return nil, &domain.ValidationError{Message: "Missing fields (id,name,brand)"}
	}

	product := domain.Normalize(cmd.Input, time.Now())
	if err := h.repo.Save(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}
	return &product, nil
}
