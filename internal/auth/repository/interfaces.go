package repository

import (
	"context"
	"errors"
	"time"

	"github.com/altel/telebill/internal/auth/domain"
)

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrTokenNotFound = errors.New("token not found or expired")
)

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// TokenStore holds access_token -> admin id pairs with expiration.
type TokenStore interface {
	Save(ctx context.Context, token string, adminID int64, ttl time.Duration) error
	// Resolve returns the admin id the token maps to, or ErrTokenNotFound.
	Resolve(ctx context.Context, token string) (int64, error)
	// Touch resets the token's TTL to the full duration (sliding expiration).
	Touch(ctx context.Context, token string, ttl time.Duration) error
}
