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

// CategoryHandler handles HTTP requests for customer categories.
type CategoryHandler struct {
	catalog  *app.CatalogService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewCategoryHandler(catalog *app.CatalogService, logger *slog.Logger, validate *validator.Validate) *CategoryHandler {
	return &CategoryHandler{catalog: catalog, logger: logger, validate: validate}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/categories", h.Create)
	r.Get("/categories", h.List)
	r.Get("/categories/{id}", h.Get)
	r.Patch("/categories/{id}", h.Update)
	r.Delete("/categories/{id}", h.Delete)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreateCategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	category, err := h.catalog.CreateCategory(ctx, &domain.Category{
		Name:        reqDTO.Name,
		DiscountMtp: reqDTO.DiscountMtp,
		RateID:      reqDTO.RateID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create category", "error", err)
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, categoryToResponseDTO(category))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list categories", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]CategoryResponseDTO, len(categories))
	for i := range categories {
		responseDTOs[i] = categoryToResponseDTO(&categories[i])
	}
	respondWithJSON(w, http.StatusOK, ListCategoriesResponseDTO{
		Categories: responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	category, err := h.catalog.GetCategory(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categoryToResponseDTO(category))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var reqDTO UpdateCategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	category, err := h.catalog.UpdateCategory(ctx, id, app.CategoryUpdate{
		Name:        reqDTO.Name,
		DiscountMtp: reqDTO.DiscountMtp,
		RateID:      reqDTO.RateID,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categoryToResponseDTO(category))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.catalog.DeleteCategory(ctx, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
