package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is an admin-console account. Storefront shoppers are anonymous
// sessions and never appear here.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ErrUserNotFound is returned when a lookup misses.
var ErrUserNotFound = errors.New("user not found")

// Repository defines the interface for admin account storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}
