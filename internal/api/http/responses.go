package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	authapp "github.com/altel/telebill/internal/auth/app"
	"github.com/altel/telebill/internal/billing/domain"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("Failed to write JSON response", "error", err)
		}
	}
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// mapDomainErrorToHTTPStatus converts service-layer errors to HTTP status codes.
// Call precondition failures (self-call, busy line, missing phone number)
// deliberately map to 404, matching the wire contract clients rely on.
func mapDomainErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCountryNotFound),
		errors.Is(err, domain.ErrCityNotFound),
		errors.Is(err, domain.ErrRateNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrPhoneNumberNotFound),
		errors.Is(err, domain.ErrCallNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrSelfCall),
		errors.Is(err, domain.ErrCustomerBusy),
		errors.Is(err, domain.ErrMissingPhoneNumber):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicatePassport),
		errors.Is(err, domain.ErrDuplicatePhoneNumber):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPhoneNumberLimit):
		return http.StatusForbidden
	case errors.Is(err, authapp.ErrInvalidCredentials),
		errors.Is(err, authapp.ErrTokenInvalid):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondWithDomainError is the common tail of most handlers.
func respondWithDomainError(w http.ResponseWriter, err error) {
	respondWithError(w, mapDomainErrorToHTTPStatus(err), err.Error())
}
