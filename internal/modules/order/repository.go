package order

import (
	"context"
	"errors"
)

// ErrOrderNotFound is returned when a lookup misses.
var ErrOrderNotFound = errors.New("order not found")

// Repository defines the interface for order data storage.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, status string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
}
