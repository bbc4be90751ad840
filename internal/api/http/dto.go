package http

import (
	"time"

	"github.com/altel/telebill/internal/billing/domain"
)

// --- Auth ---

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=32"`
}

type LoginResponseDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Countries ---

type CreateCountryRequestDTO struct {
	Name       string  `json:"name" validate:"required"`
	MinuteCost float64 `json:"minute_cost" validate:"required,gt=0"`
}

type UpdateCountryRequestDTO struct {
	Name       *string  `json:"name,omitempty"`
	MinuteCost *float64 `json:"minute_cost,omitempty" validate:"omitempty,gt=0"`
}

type CountryResponseDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	MinuteCost float64 `json:"minute_cost"`
}

type ListCountriesResponseDTO struct {
	Countries  []CountryResponseDTO `json:"countries"`
	TotalCount int                  `json:"total_count"`
}

// --- Cities ---

type CreateCityRequestDTO struct {
	Name      string `json:"name" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	CountryID int64  `json:"country_id" validate:"required,gt=0"`
}

type UpdateCityRequestDTO struct {
	Name    *string `json:"name,omitempty"`
	ZipCode *string `json:"zip_code,omitempty"`
}

type CityResponseDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ZipCode   string `json:"zip_code"`
	CountryID int64  `json:"country_id"`
}

type ListCitiesResponseDTO struct {
	Cities     []CityResponseDTO `json:"cities"`
	TotalCount int               `json:"total_count"`
}

// --- Rates ---

type CreateRateRequestDTO struct {
	Cost float64 `json:"cost" validate:"required,gt=0"`
}

type UpdateRateRequestDTO struct {
	Cost *float64 `json:"cost,omitempty" validate:"omitempty,gt=0"`
}

type RateResponseDTO struct {
	ID   int64   `json:"id"`
	Cost float64 `json:"cost"`
}

type ListRatesResponseDTO struct {
	Rates      []RateResponseDTO `json:"rates"`
	TotalCount int               `json:"total_count"`
}

// --- Categories ---

type CreateCategoryRequestDTO struct {
	Name        string  `json:"name" validate:"required"`
	DiscountMtp float64 `json:"discount_mtp" validate:"required,gt=0"`
	RateID      int64   `json:"rate_id" validate:"required,gt=0"`
}

type UpdateCategoryRequestDTO struct {
	Name        *string  `json:"name,omitempty"`
	DiscountMtp *float64 `json:"discount_mtp,omitempty" validate:"omitempty,gt=0"`
	RateID      *int64   `json:"rate_id,omitempty" validate:"omitempty,gt=0"`
}

type CategoryResponseDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DiscountMtp float64 `json:"discount_mtp"`
	RateID      int64   `json:"rate_id"`
}

type ListCategoriesResponseDTO struct {
	Categories []CategoryResponseDTO `json:"categories"`
	TotalCount int                   `json:"total_count"`
}

// --- Customers ---

type CreateCustomerRequestDTO struct {
	FullName   string `json:"fullname" validate:"required"`
	Passport   string `json:"passport" validate:"required,max=11"`
	CityID     int64  `json:"city_id" validate:"required,gt=0"`
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
}

type UpdateCustomerRequestDTO struct {
	FullName   *string `json:"fullname,omitempty"`
	Passport   *string `json:"passport,omitempty" validate:"omitempty,max=11"`
	CityID     *int64  `json:"city_id,omitempty" validate:"omitempty,gt=0"`
	CategoryID *int64  `json:"category_id,omitempty" validate:"omitempty,gt=0"`
}

type CustomerResponseDTO struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullname"`
	Passport   string `json:"passport"`
	CityID     int64  `json:"city_id"`
	CategoryID int64  `json:"category_id"`
}

type ListCustomersResponseDTO struct {
	Customers  []CustomerResponseDTO `json:"customers"`
	TotalCount int                   `json:"total_count"`
}

// --- Phone numbers ---

type CreatePhoneNumberRequestDTO struct {
	Number     string `json:"number" validate:"required,max=15"`
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
}

type PhoneNumberResponseDTO struct {
	ID         int64  `json:"id"`
	Number     string `json:"number"`
	CustomerID int64  `json:"customer_id"`
}

type ListPhoneNumbersResponseDTO struct {
	PhoneNumbers []PhoneNumberResponseDTO `json:"phone_numbers"`
	TotalCount   int                      `json:"total_count"`
}

// --- Calls ---

type StartCallRequestDTO struct {
	FromCustomerID int64 `json:"from_customer_id" validate:"required,gt=0"`
	ToCustomerID   int64 `json:"to_customer_id" validate:"required,gt=0"`
}

type CallResponseDTO struct {
	ID             int64      `json:"id"`
	FromCustomerID int64      `json:"from_customer_id"`
	ToCustomerID   int64      `json:"to_customer_id"`
	Duration       int64      `json:"duration"`
	Charge         float64    `json:"charge"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
	Status         string     `json:"status"`
}

// --- Payments ---

type PaymentResponseDTO struct {
	ID         int64      `json:"id"`
	Amount     float64    `json:"amount"`
	CustomerID int64      `json:"customer_id"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ListPaymentsResponseDTO struct {
	Payments   []PaymentResponseDTO `json:"payments"`
	TotalCount int                  `json:"total_count"`
}

// --- Analytics ---

type TopCityResponseDTO struct {
	City          CityResponseDTO `json:"city"`
	InternalCalls int64           `json:"internal_calls"`
}

type FavoriteCityResponseDTO struct {
	Customer   CustomerResponseDTO `json:"customer"`
	City       CityResponseDTO     `json:"city"`
	TotalCalls int64               `json:"total_calls"`
}

type MonthlyCallSumResponseDTO struct {
	Month       string  `json:"month"`
	TotalCharge float64 `json:"total_charge"`
}

type AvgChargePerYearResponseDTO struct {
	Customer  CustomerResponseDTO `json:"customer"`
	Year      int                 `json:"year"`
	AvgCharge float64             `json:"avg_charge"`
}

type InDebtCustomerResponseDTO struct {
	Customer CustomerResponseDTO `json:"customer"`
	Debt     float64             `json:"debt"`
}

// --- Domain -> DTO helpers ---

func countryToResponseDTO(c *domain.Country) CountryResponseDTO {
	return CountryResponseDTO{ID: c.ID, Name: c.Name, MinuteCost: c.MinuteCost}
}

func cityToResponseDTO(c *domain.City) CityResponseDTO {
	return CityResponseDTO{ID: c.ID, Name: c.Name, ZipCode: c.ZipCode, CountryID: c.CountryID}
}

func rateToResponseDTO(r *domain.Rate) RateResponseDTO {
	return RateResponseDTO{ID: r.ID, Cost: r.Cost}
}

func categoryToResponseDTO(c *domain.Category) CategoryResponseDTO {
	return CategoryResponseDTO{ID: c.ID, Name: c.Name, DiscountMtp: c.DiscountMtp, RateID: c.RateID}
}

func customerToResponseDTO(c *domain.Customer) CustomerResponseDTO {
	return CustomerResponseDTO{
		ID:         c.ID,
		FullName:   c.FullName,
		Passport:   c.Passport,
		CityID:     c.CityID,
		CategoryID: c.CategoryID,
	}
}

func phoneNumberToResponseDTO(p *domain.PhoneNumber) PhoneNumberResponseDTO {
	return PhoneNumberResponseDTO{ID: p.ID, Number: p.Number, CustomerID: p.CustomerID}
}

func callToResponseDTO(c *domain.Call) CallResponseDTO {
	return CallResponseDTO{
		ID:             c.ID,
		FromCustomerID: c.FromCustomerID,
		ToCustomerID:   c.ToCustomerID,
		Duration:       c.Duration,
		Charge:         c.Charge,
		StartedAt:      c.StartedAt,
		FinishedAt:     c.FinishedAt,
		Status:         string(c.Status),
	}
}

func paymentToResponseDTO(p *domain.Payment) PaymentResponseDTO {
	return PaymentResponseDTO{
		ID:         p.ID,
		Amount:     p.Amount,
		CustomerID: p.CustomerID,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
