package domain

import "context"

// ProductRepository defines the contract for product data access.
// Save replaces the stored record with the same id or appends a new
// one; SaveAll does the same for a batch.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, product *Product) error
	SaveAll(ctx context.Context, products []Product) error
	Count(ctx context.Context) (int64, error)
}
