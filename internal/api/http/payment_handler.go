package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altel/telebill/internal/billing/app"
)

// PaymentHandler exposes read access to payments. Payments are written by the
// billing pipeline, not through this API.
type PaymentHandler struct {
	customers *app.CustomerService
	logger    *slog.Logger
}

func NewPaymentHandler(customers *app.CustomerService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{customers: customers, logger: logger}
}

func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/payments", h.List)
	r.Get("/payments/{id}", h.Get)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payments, err := h.customers.ListPayments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list payments", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]PaymentResponseDTO, len(payments))
	for i := range payments {
		responseDTOs[i] = paymentToResponseDTO(&payments[i])
	}
	respondWithJSON(w, http.StatusOK, ListPaymentsResponseDTO{
		Payments:   responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	payment, err := h.customers.GetPayment(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, paymentToResponseDTO(payment))
}
