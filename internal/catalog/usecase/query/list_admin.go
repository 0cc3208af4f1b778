package query

import (
	"context"
	"fmt"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// ListAdminQuery returns every stored record, inactive ones included,
// unsorted and unfiltered.
type ListAdminQuery struct{}

// ListAdminHandler handles the admin listing query.
type ListAdminHandler struct {
	repo domain.ProductRepository
}

func NewListAdminHandler(repo domain.ProductRepository) *ListAdminHandler {
	return &ListAdminHandler{repo: repo}
}

func (h *ListAdminHandler) Handle(ctx context.Context, _ ListAdminQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
