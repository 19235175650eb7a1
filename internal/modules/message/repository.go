package message

import (
	"context"
	"errors"
)

// ErrMessageNotFound is returned when a lookup misses.
var ErrMessageNotFound = errors.New("message not found")

// Repository defines the interface for message data storage.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, status string) ([]*Message, error)
	UpdateStatus(ctx context.Context, id string, status MessageStatus) error
	SetReply(ctx context.Context, id string, reply string) error
	Delete(ctx context.Context, id string) error
}
