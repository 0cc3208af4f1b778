package command

import (
	"context"
	"fmt"
	"time"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// SeedCatalogCommand bulk-imports a product list. Each record is
// normalized and replaces any stored record with the same id wholesale;
// the result is the union by id of existing and incoming records.
type SeedCatalogCommand struct {
	Inputs []domain.ProductInput
}

// SeedCatalogHandler handles the bulk import command.
type SeedCatalogHandler struct {
	repo domain.ProductRepository
}

func NewSeedCatalogHandler(repo domain.ProductRepository) *SeedCatalogHandler {
	return &SeedCatalogHandler{repo: repo}
}

// Handle stores every incoming record, returning how many were merged.
func (h *SeedCatalogHandler) Handle(ctx context.Context, cmd SeedCatalogCommand) (int, error) {
	now := time.Now()
	products := make([]domain.Product, 0, len(cmd.Inputs))
	for _, in := range cmd.Inputs {
		products = append(products, domain.Normalize(in, now))
	}
	if err := h.repo.SaveAll(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return len(products), nil
}
