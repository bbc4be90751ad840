package app

import (
	"context"
	"log/slog"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

// CatalogService covers the pricing/geography reference entities: countries,
// cities, rates and categories. Referenced foreign entities are verified
// before any write; the store's constraints remain the safety net behind
// that pre-check.
type CatalogService struct {
	countries  repository.CountryRepository
	cities     repository.CityRepository
	rates      repository.RateRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

func NewCatalogService(
	countries repository.CountryRepository,
	cities repository.CityRepository,
	rates repository.RateRepository,
	categories repository.CategoryRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		countries:  countries,
		cities:     cities,
		rates:      rates,
		categories: categories,
		logger:     logger,
	}
}

// Partial-update payloads: nil fields are left untouched.

type CountryUpdate struct {
	Name       *string
	MinuteCost *float64
}

type CityUpdate struct {
	Name    *string
	ZipCode *string
}

type RateUpdate struct {
	Cost *float64
}

type CategoryUpdate struct {
	Name        *string
	DiscountMtp *float64
	RateID      *int64
}

// --- Countries ---

func (s *CatalogService) CreateCountry(ctx context.Context, country *domain.Country) (*domain.Country, error) {
	return s.countries.Create(ctx, country)
}

func (s *CatalogService) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	return s.countries.GetByID(ctx, id)
}

func (s *CatalogService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.countries.List(ctx)
}

func (s *CatalogService) UpdateCountry(ctx context.Context, id int64, upd CountryUpdate) (*domain.Country, error) {
	country, err := s.countries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		country.Name = *upd.Name
	}
	if upd.MinuteCost != nil {
		country.MinuteCost = *upd.MinuteCost
	}
	// Update reports not-found if the row vanished between lookup and write.
	if err := s.countries.Update(ctx, country); err != nil {
		return nil, err
	}
	return country, nil
}

func (s *CatalogService) DeleteCountry(ctx context.Context, id int64) error {
	return s.countries.Delete(ctx, id)
}

// --- Cities ---

func (s *CatalogService) CreateCity(ctx context.Context, city *domain.City) (*domain.City, error) {
	if _, err := s.countries.GetByID(ctx, city.CountryID); err != nil {
		return nil, err
	}
	return s.cities.Create(ctx, city)
}

func (s *CatalogService) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	return s.cities.GetByID(ctx, id)
}

func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.cities.List(ctx)
}

func (s *CatalogService) UpdateCity(ctx context.Context, id int64, upd CityUpdate) (*domain.City, error) {
	city, err := s.cities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		city.Name = *upd.Name
	}
	if upd.ZipCode != nil {
		city.ZipCode = *upd.ZipCode
	}
	if err := s.cities.Update(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *CatalogService) DeleteCity(ctx context.Context, id int64) error {
	return s.cities.Delete(ctx, id)
}

// --- Rates ---

func (s *CatalogService) CreateRate(ctx context.Context, rate *domain.Rate) (*domain.Rate, error) {
	return s.rates.Create(ctx, rate)
}

func (s *CatalogService) GetRate(ctx context.Context, id int64) (*domain.Rate, error) {
	return s.rates.GetByID(ctx, id)
}

func (s *CatalogService) ListRates(ctx context.Context) ([]domain.Rate, error) {
	return s.rates.List(ctx)
}

func (s *CatalogService) UpdateRate(ctx context.Context, id int64, upd RateUpdate) (*domain.Rate, error) {
	rate, err := s.rates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Cost != nil {
		rate.Cost = *upd.Cost
	}
	if err := s.rates.Update(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *CatalogService) DeleteRate(ctx context.Context, id int64) error {
	return s.rates.Delete(ctx, id)
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if _, err := s.rates.GetByID(ctx, category.RateID); err != nil {
		return nil, err
	}
	return s.categories.Create(ctx, category)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, upd CategoryUpdate) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.RateID != nil {
		if _, err := s.rates.GetByID(ctx, *upd.RateID); err != nil {
			return nil, err
		}
		category.RateID = *upd.RateID
	}
	if upd.Name != nil {
		category.Name = *upd.Name
	}
	if upd.DiscountMtp != nil {
		category.DiscountMtp = *upd.DiscountMtp
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}
