package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/altel/telebill/internal/billing/app"
	"github.com/altel/telebill/internal/billing/domain"
)

// idFromURL parses the {id} route parameter.
func idFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// CountryHandler handles HTTP requests for countries.
type CountryHandler struct {
	catalog  *app.CatalogService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewCountryHandler(catalog *app.CatalogService, logger *slog.Logger, validate *validator.Validate) *CountryHandler {
	return &CountryHandler{catalog: catalog, logger: logger, validate: validate}
}

func (h *CountryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/countries", h.Create)
	r.Get("/countries", h.List)
	r.Get("/countries/{id}", h.Get)
	r.Patch("/countries/{id}", h.Update)
	r.Delete("/countries/{id}", h.Delete)
}

func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreateCountryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	country, err := h.catalog.CreateCountry(ctx, &domain.Country{
		Name:       reqDTO.Name,
		MinuteCost: reqDTO.MinuteCost,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create country", "error", err)
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, countryToResponseDTO(country))
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	countries, err := h.catalog.ListCountries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list countries", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]CountryResponseDTO, len(countries))
	for i := range countries {
		responseDTOs[i] = countryToResponseDTO(&countries[i])
	}
	respondWithJSON(w, http.StatusOK, ListCountriesResponseDTO{
		Countries:  responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid country ID format")
		return
	}

	country, err := h.catalog.GetCountry(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, countryToResponseDTO(country))
}

func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid country ID format")
		return
	}

	var reqDTO UpdateCountryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	country, err := h.catalog.UpdateCountry(ctx, id, app.CountryUpdate{
		Name:       reqDTO.Name,
		MinuteCost: reqDTO.MinuteCost,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, countryToResponseDTO(country))
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid country ID format")
		return
	}

	if err := h.catalog.DeleteCountry(ctx, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
