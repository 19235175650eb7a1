package auth

import (
	"context"
	"errors"

	"github.com/naturevita/naturevita-backend/internal/modules/user"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so login responses never reveal which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for missing, malformed, or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Service defines the interface for admin authentication.
type Service interface {
	// Login verifies the credentials and issues a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *user.User, error)

	// VerifyToken checks a bearer token and returns the admin user id.
	VerifyToken(token string) (string, error)
}
