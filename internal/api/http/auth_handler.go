package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	authapp "github.com/altel/telebill/internal/auth/app"
)

// AuthHandler exposes the admin login endpoint.
type AuthHandler struct {
	authService *authapp.AuthService
	logger      *slog.Logger
	validate    *validator.Validate
}

func NewAuthHandler(authService *authapp.AuthService, logger *slog.Logger, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		validate:    validate,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	token, err := h.authService.Login(ctx, reqDTO.Username, reqDTO.Password)
	if err != nil {
		if !errors.Is(err, authapp.ErrInvalidCredentials) {
			h.logger.ErrorContext(ctx, "Login failed", "error", err, "username", reqDTO.Username)
		}
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponseDTO{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
