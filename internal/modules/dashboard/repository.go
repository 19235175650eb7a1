package dashboard

import "context"

// lowStockThreshold marks active products the admin should restock.
const lowStockThreshold = 5

// Repository computes dashboard aggregates from storage.
type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
}
