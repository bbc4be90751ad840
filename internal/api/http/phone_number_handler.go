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

// PhoneNumberHandler handles HTTP requests for phone numbers.
type PhoneNumberHandler struct {
	customers *app.CustomerService
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewPhoneNumberHandler(customers *app.CustomerService, logger *slog.Logger, validate *validator.Validate) *PhoneNumberHandler {
	return &PhoneNumberHandler{customers: customers, logger: logger, validate: validate}
}

func (h *PhoneNumberHandler) RegisterRoutes(r chi.Router) {
	r.Post("/phone_numbers", h.Create)
	r.Get("/phone_numbers", h.List)
	r.Get("/phone_numbers/{id}", h.Get)
	r.Delete("/phone_numbers/{id}", h.Delete)
}

func (h *PhoneNumberHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreatePhoneNumberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	phone, err := h.customers.CreatePhoneNumber(ctx, &domain.PhoneNumber{
		Number:     reqDTO.Number,
		CustomerID: reqDTO.CustomerID,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrCustomerNotFound) &&
			!errors.Is(err, domain.ErrPhoneNumberLimit) &&
			!errors.Is(err, domain.ErrDuplicatePhoneNumber) {
			h.logger.ErrorContext(ctx, "Failed to create phone number", "error", err, "customer_id", reqDTO.CustomerID)
		}
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, phoneNumberToResponseDTO(phone))
}

func (h *PhoneNumberHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	phones, err := h.customers.ListPhoneNumbers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list phone numbers", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]PhoneNumberResponseDTO, len(phones))
	for i := range phones {
		responseDTOs[i] = phoneNumberToResponseDTO(&phones[i])
	}
	respondWithJSON(w, http.StatusOK, ListPhoneNumbersResponseDTO{
		PhoneNumbers: responseDTOs,
		TotalCount:   len(responseDTOs),
	})
}

func (h *PhoneNumberHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phone number ID format")
		return
	}

	phone, err := h.customers.GetPhoneNumber(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, phoneNumberToResponseDTO(phone))
}

func (h *PhoneNumberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phone number ID format")
		return
	}

	if err := h.customers.DeletePhoneNumber(ctx, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
