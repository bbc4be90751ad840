package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/altel/telebill/internal/auth/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid or missing authorization token")
)

type AuthConfig struct {
	// SecretKey salts password digests.
	SecretKey string
	// AccessTokenTTL is both the initial token lifetime and the value each
	// authorized request resets the TTL to.
	AccessTokenTTL time.Duration
}

type AuthService struct {
	adminRepo repository.AdminRepository
	tokens    repository.TokenStore
	config    AuthConfig
	logger    *slog.Logger
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	tokens repository.TokenStore,
	config AuthConfig,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		tokens:    tokens,
		config:    config,
		logger:    logger,
	}
}

// HashPassword returns the sha256 hex digest of the secret key concatenated
// with the plaintext password.
func HashPassword(secretKey, password string) string {
	sum := sha256.Sum256([]byte(secretKey + password))
	return hex.EncodeToString(sum[:])
}

// Login exchanges admin credentials for an opaque access token stored with
// the configured TTL.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "Failed to fetch admin by username", "error", err, "username", username)
		return "", err
	}

	if admin.Password != HashPassword(s.config.SecretKey, password) {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.tokens.Save(ctx, token, admin.ID, s.config.AccessTokenTTL); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store access token", "error", err, "adminID", admin.ID)
		return "", err
	}

	return token, nil
}

// Authenticate validates a token extracted from the Authorization header and
// resets its TTL to the full configured duration, so every authorized
// request extends the session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrTokenInvalid
	}

	adminID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return 0, ErrTokenInvalid
		}
		s.logger.ErrorContext(ctx, "Token store lookup failed", "error", err)
		return 0, err
	}

	if err := s.tokens.Touch(ctx, token, s.config.AccessTokenTTL); err != nil {
		s.logger.ErrorContext(ctx, "Failed to reset token TTL", "error", err)
		return 0, err
	}

	return adminID, nil
}
