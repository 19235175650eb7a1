package review

import (
	"context"
	"errors"
)

// ErrReviewNotFound is returned when a lookup misses.
var ErrReviewNotFound = errors.New("review not found")

// Repository defines the interface for review data storage.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, status string) ([]*Review, error)
	UpdateStatus(ctx context.Context, id string, status ReviewStatus) error
	Delete(ctx context.Context, id string) error
}
