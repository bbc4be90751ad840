package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/altel/telebill/internal/billing/app"
	"github.com/altel/telebill/internal/billing/domain"
)

// RateHandler handles HTTP requests for rates.
type RateHandler struct {
	catalog  *app.CatalogService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewRateHandler(catalog *app.CatalogService, logger *slog.Logger, validate *validator.Validate) *RateHandler {
	return &RateHandler{catalog: catalog, logger: logger, validate: validate}
}

func (h *RateHandler) RegisterRoutes(r chi.Router) {
	r.Post("/rates", h.Create)
	r.Get("/rates", h.List)
	r.Get("/rates/{id}", h.Get)
	r.Patch("/rates/{id}", h.Update)
	r.Delete("/rates/{id}", h.Delete)
}

func (h *RateHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreateRateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	rate, err := h.catalog.CreateRate(ctx, &domain.Rate{Cost: reqDTO.Cost})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create rate", "error", err)
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, rateToResponseDTO(rate))
}

func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rates, err := h.catalog.ListRates(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list rates", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]RateResponseDTO, len(rates))
	for i := range rates {
		responseDTOs[i] = rateToResponseDTO(&rates[i])
	}
	respondWithJSON(w, http.StatusOK, ListRatesResponseDTO{
		Rates:      responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	rate, err := h.catalog.GetRate(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rateToResponseDTO(rate))
}

func (h *RateHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	var reqDTO UpdateRateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	rate, err := h.catalog.UpdateRate(ctx, id, app.RateUpdate{Cost: reqDTO.Cost})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rateToResponseDTO(rate))
}

func (h *RateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	if err := h.catalog.DeleteRate(ctx, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
