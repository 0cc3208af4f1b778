package query

import (
	"context"
	"fmt"

	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/filter"
)

// ListPublicQuery returns the storefront view of the catalog: active
// products only, sorted by (rubrique, brand, name).
type ListPublicQuery struct{}

// ListPublicHandler handles the public listing query.
type ListPublicHandler struct {
	repo domain.ProductRepository
}

func NewListPublicHandler(repo domain.ProductRepository) *ListPublicHandler {
	return &ListPublicHandler{repo: repo}
}

func (h *ListPublicHandler) Handle(ctx context.Context, _ ListPublicQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	active := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			active = append(active, p)
		}
	}
	filter.Sort(active)
	return active, nil
}
