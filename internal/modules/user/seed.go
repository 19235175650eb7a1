package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the admin account on first boot. An account that
// already exists is left untouched, password included.
func EnsureAdmin(ctx context.Context, repo Repository, email, password, name string) error {
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	_, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repo.CreateUser(ctx, &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	})
}
