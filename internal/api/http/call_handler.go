package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/altel/telebill/internal/billing/app"
	"github.com/altel/telebill/internal/billing/domain"
)

// CallHandler drives the call lifecycle endpoints. These are exercised by the
// switch-side integration, so they sit outside the admin token gate.
type CallHandler struct {
	calls    *app.CallService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewCallHandler(calls *app.CallService, logger *slog.Logger, validate *validator.Validate) *CallHandler {
	return &CallHandler{calls: calls, logger: logger, validate: validate}
}

func (h *CallHandler) RegisterRoutes(r chi.Router) {
	r.Post("/calls/start", h.Start)
	r.Post("/calls/finish/{id}", h.Finish)
	r.Get("/calls/{id}", h.Get)
}

func (h *CallHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO StartCallRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	call, err := h.calls.Start(ctx, reqDTO.FromCustomerID, reqDTO.ToCustomerID)
	if err != nil {
		if !errors.Is(err, domain.ErrSelfCall) &&
			!errors.Is(err, domain.ErrCustomerBusy) &&
			!errors.Is(err, domain.ErrMissingPhoneNumber) {
			h.logger.ErrorContext(ctx, "Failed to start call", "error", err,
				"from_customer_id", reqDTO.FromCustomerID, "to_customer_id", reqDTO.ToCustomerID)
		}
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, callToResponseDTO(call))
}

func (h *CallHandler) Finish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid call ID format")
		return
	}

	call, err := h.calls.Finish(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrCallNotFound) {
			h.logger.ErrorContext(ctx, "Failed to finish call", "error", err, "call_id", id)
		}
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, callToResponseDTO(call))
}

func (h *CallHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid call ID format")
		return
	}

	call, err := h.calls.Get(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, callToResponseDTO(call))
}
