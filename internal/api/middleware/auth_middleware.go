package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	authapp "github.com/altel/telebill/internal/auth/app"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const AdminIDContextKey = ContextKey("adminID")

// AdminIDFromContext returns the authenticated admin's id, if present.
func AdminIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AdminIDContextKey).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// AuthMiddleware gates requests on a valid access token in the Authorization
// header. The token is accepted either bare or with a "Bearer " prefix.
// Validation slides the token's TTL forward.
func AuthMiddleware(authService *authapp.AuthService, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Authorization header missing")
				unauthorized(w, "Authorization header required")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			adminID, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				logger.WarnContext(r.Context(), "Token validation failed", "error", err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDContextKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
