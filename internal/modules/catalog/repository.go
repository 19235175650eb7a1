package catalog

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when a lookup misses.
var ErrProductNotFound = errors.New("product not found")

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
