package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/altel/telebill/internal/billing/domain"
)

func setupCatalogServiceTest() (*CatalogService, *MockCountryRepository, *MockCityRepository, *MockRateRepository, *MockCategoryRepository) {
	countries := new(MockCountryRepository)
	cities := new(MockCityRepository)
	rates := new(MockRateRepository)
	categories := new(MockCategoryRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalogService(countries, cities, rates, categories, logger), countries, cities, rates, categories
}

func TestCatalogService_CreateCity(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownCountry", func(t *testing.T) {
		svc, countries, cities, _, _ := setupCatalogServiceTest()

		countries.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrCountryNotFound)

		city, err := svc.CreateCity(ctx, &domain.City{Name: "Almaty", ZipCode: "050000", CountryID: 9})
		assert.ErrorIs(t, err, domain.ErrCountryNotFound)
		assert.Nil(t, city)
		cities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		svc, countries, cities, _, _ := setupCatalogServiceTest()

		countries.On("GetByID", ctx, int64(1)).Return(&domain.Country{ID: 1}, nil)
		cities.On("Create", ctx, mock.Anything).Return(&domain.City{ID: 3, Name: "Almaty", ZipCode: "050000", CountryID: 1}, nil)

		city, err := svc.CreateCity(ctx, &domain.City{Name: "Almaty", ZipCode: "050000", CountryID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), city.ID)
	})
}

func TestCatalogService_UpdateCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		svc, countries, _, _, _ := setupCatalogServiceTest()

		countries.On("GetByID", ctx, int64(1)).Return(&domain.Country{ID: 1, Name: "Kazakhstan", MinuteCost: 1.5}, nil)

		newCost := 2.25
		countries.On("Update", ctx, mock.MatchedBy(func(c *domain.Country) bool {
			return c.Name == "Kazakhstan" && c.MinuteCost == newCost
		})).Return(nil)

		country, err := svc.UpdateCountry(ctx, 1, CountryUpdate{MinuteCost: &newCost})
		require.NoError(t, err)
		assert.Equal(t, newCost, country.MinuteCost)
		countries.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, countries, _, _, _ := setupCatalogServiceTest()

		countries.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrCountryNotFound)

		country, err := svc.UpdateCountry(ctx, 99, CountryUpdate{})
		assert.ErrorIs(t, err, domain.ErrCountryNotFound)
		assert.Nil(t, country)
	})
}

func TestCatalogService_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownRate", func(t *testing.T) {
		svc, _, _, rates, categories := setupCatalogServiceTest()

		categories.On("GetByID", ctx, int64(2)).Return(&domain.Category{ID: 2, Name: "standard", DiscountMtp: 1, RateID: 1}, nil)
		rates.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrRateNotFound)

		newRate := int64(9)
		category, err := svc.UpdateCategory(ctx, 2, CategoryUpdate{RateID: &newRate})
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
		assert.Nil(t, category)
		categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
