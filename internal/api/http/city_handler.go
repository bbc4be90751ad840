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

// CityHandler handles HTTP requests for cities, including the most-called-city
// report.
type CityHandler struct {
	catalog   *app.CatalogService
	analytics *app.AnalyticsService
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewCityHandler(catalog *app.CatalogService, analytics *app.AnalyticsService, logger *slog.Logger, validate *validator.Validate) *CityHandler {
	return &CityHandler{catalog: catalog, analytics: analytics, logger: logger, validate: validate}
}

func (h *CityHandler) RegisterRoutes(r chi.Router) {
	r.Post("/cities", h.Create)
	r.Get("/cities", h.List)
	// Static segment, registered alongside {id}: chi matches it first.
	r.Get("/cities/top", h.Top)
	r.Get("/cities/{id}", h.Get)
	r.Patch("/cities/{id}", h.Update)
	r.Delete("/cities/{id}", h.Delete)
}

func (h *CityHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreateCityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	city, err := h.catalog.CreateCity(ctx, &domain.City{
		Name:      reqDTO.Name,
		ZipCode:   reqDTO.ZipCode,
		CountryID: reqDTO.CountryID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create city", "error", err)
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, cityToResponseDTO(city))
}

func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cities, err := h.catalog.ListCities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list cities", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]CityResponseDTO, len(cities))
	for i := range cities {
		responseDTOs[i] = cityToResponseDTO(&cities[i])
	}
	respondWithJSON(w, http.StatusOK, ListCitiesResponseDTO{
		Cities:     responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

// Top reports the city whose residents place the most calls. With no calls on
// record the body is JSON null.
func (h *CityHandler) Top(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	top, err := h.analytics.TopCity(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute top city", "error", err)
		respondWithDomainError(w, err)
		return
	}
	if top == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null\n"))
		return
	}
	respondWithJSON(w, http.StatusOK, TopCityResponseDTO{
		City:          cityToResponseDTO(&top.City),
		InternalCalls: top.InternalCalls,
	})
}

func (h *CityHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid city ID format")
		return
	}

	city, err := h.catalog.GetCity(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cityToResponseDTO(city))
}

func (h *CityHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid city ID format")
		return
	}

	var reqDTO UpdateCityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	city, err := h.catalog.UpdateCity(ctx, id, app.CityUpdate{
		Name:    reqDTO.Name,
		ZipCode: reqDTO.ZipCode,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cityToResponseDTO(city))
}

func (h *CityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid city ID format")
		return
	}

	if err := h.catalog.DeleteCity(ctx, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
