package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/altel/telebill/internal/billing/app"
	"github.com/altel/telebill/internal/billing/domain"
)

// CustomerHandler handles HTTP requests for customers plus the customer-scoped
// analytical reports.
type CustomerHandler struct {
	customers *app.CustomerService
	analytics *app.AnalyticsService
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewCustomerHandler(customers *app.CustomerService, analytics *app.AnalyticsService, logger *slog.Logger, validate *validator.Validate) *CustomerHandler {
	return &CustomerHandler{customers: customers, analytics: analytics, logger: logger, validate: validate}
}

func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/customers", h.Create)
	r.Get("/customers", h.List)

	// Report routes use static segments so they never collide with {id}.
	r.Get("/customers/top_city", h.FavoriteCities)
	r.Get("/customers/calls_with_all_cities", h.CallsWithAllCities)
	r.Get("/customers/monthly_call_sum/{id}", h.MonthlyCallSum)
	r.Get("/customers/avg_call_charge_per_year", h.AvgCallChargePerYear)
	r.Get("/customers/in_debt", h.InDebt)

	// No DELETE: customers are removed only by their city's cascade.
	r.Get("/customers/{id}", h.Get)
	r.Patch("/customers/{id}", h.Update)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreateCustomerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	customer, err := h.customers.CreateCustomer(ctx, &domain.Customer{
		FullName:   reqDTO.FullName,
		Passport:   reqDTO.Passport,
		CityID:     reqDTO.CityID,
		CategoryID: reqDTO.CategoryID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create customer", "error", err)
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, customerToResponseDTO(customer))
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, err := h.customers.ListCustomers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list customers", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]CustomerResponseDTO, len(customers))
	for i := range customers {
		responseDTOs[i] = customerToResponseDTO(&customers[i])
	}
	respondWithJSON(w, http.StatusOK, ListCustomersResponseDTO{
		Customers:  responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	customer, err := h.customers.GetCustomer(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, customerToResponseDTO(customer))
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var reqDTO UpdateCustomerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	customer, err := h.customers.UpdateCustomer(ctx, id, app.CustomerUpdate{
		FullName:   reqDTO.FullName,
		Passport:   reqDTO.Passport,
		CityID:     reqDTO.CityID,
		CategoryID: reqDTO.CategoryID,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, customerToResponseDTO(customer))
}

// --- Reports ---

// FavoriteCities reports, per customer, the city they reach most often
// through their calls. Customers tied across cities appear once per tied
// city.
func (h *CustomerHandler) FavoriteCities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pairs, err := h.analytics.FavoriteCities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute favorite cities", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]FavoriteCityResponseDTO, len(pairs))
	for i, pair := range pairs {
		responseDTOs[i] = FavoriteCityResponseDTO{
			Customer:   customerToResponseDTO(&pair.Customer),
			City:       cityToResponseDTO(&pair.City),
			TotalCalls: pair.TotalCalls,
		}
	}
	respondWithJSON(w, http.StatusOK, responseDTOs)
}

// CallsWithAllCities lists customers who have talked to residents of every
// city on record.
func (h *CustomerHandler) CallsWithAllCities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, err := h.analytics.CustomersCallingAllCities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute customers calling all cities", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]CustomerResponseDTO, len(customers))
	for i := range customers {
		responseDTOs[i] = customerToResponseDTO(&customers[i])
	}
	respondWithJSON(w, http.StatusOK, ListCustomersResponseDTO{
		Customers:  responseDTOs,
		TotalCount: len(responseDTOs),
	})
}

// MonthlyCallSum reports the customer's per-month outgoing charge totals for
// the current year. Month numbers render as English month names.
func (h *CustomerHandler) MonthlyCallSum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	sums, err := h.analytics.MonthlyCallSums(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]MonthlyCallSumResponseDTO, len(sums))
	for i, sum := range sums {
		responseDTOs[i] = MonthlyCallSumResponseDTO{
			Month:       time.Month(sum.Month).String(),
			TotalCharge: sum.TotalCharge,
		}
	}
	respondWithJSON(w, http.StatusOK, responseDTOs)
}

func (h *CustomerHandler) AvgCallChargePerYear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.analytics.AvgChargePerYear(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute average charge per year", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]AvgChargePerYearResponseDTO, len(rows))
	for i, row := range rows {
		responseDTOs[i] = AvgChargePerYearResponseDTO{
			Customer:  customerToResponseDTO(&row.Customer),
			Year:      row.Year,
			AvgCharge: row.AvgCharge,
		}
	}
	respondWithJSON(w, http.StatusOK, responseDTOs)
}

// InDebt lists customers whose unpaid balance is at least 70% of the largest
// unpaid balance.
func (h *CustomerHandler) InDebt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.analytics.CustomersInDebt(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute customers in debt", "error", err)
		respondWithDomainError(w, err)
		return
	}

	responseDTOs := make([]InDebtCustomerResponseDTO, len(rows))
	for i, row := range rows {
		responseDTOs[i] = InDebtCustomerResponseDTO{
			Customer: customerToResponseDTO(&row.Customer),
			Debt:     row.Debt,
		}
	}
	respondWithJSON(w, http.StatusOK, responseDTOs)
}
