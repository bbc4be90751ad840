package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

// AnalyticsService fronts the aggregation queries.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	customers repository.CustomerRepository
	logger    *slog.Logger
}

func NewAnalyticsService(
	analytics repository.AnalyticsRepository,
	customers repository.CustomerRepository,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		customers: customers,
		logger:    logger,
	}
}

// TopCity returns the city whose residents placed the most calls, or nil when
// no calls have been made yet.
func (s *AnalyticsService) TopCity(ctx context.Context) (*domain.TopCity, error) {
	return s.analytics.TopCity(ctx)
}

func (s *AnalyticsService) FavoriteCities(ctx context.Context) ([]domain.CustomerCityPair, error) {
	return s.analytics.FavoriteCities(ctx)
}

func (s *AnalyticsService) CustomersCallingAllCities(ctx context.Context) ([]domain.Customer, error) {
	return s.analytics.CustomersCallingAllCities(ctx)
}

// MonthlyCallSums reports the customer's per-month outgoing charge totals for
// the current year.
func (s *AnalyticsService) MonthlyCallSums(ctx context.Context, customerID int64) ([]domain.MonthlyCallSum, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.analytics.MonthlyCallSums(ctx, customerID, time.Now().Year())
}

func (s *AnalyticsService) AvgChargePerYear(ctx context.Context) ([]domain.AvgChargePerYear, error) {
	return s.analytics.AvgChargePerYear(ctx)
}

func (s *AnalyticsService) CustomersInDebt(ctx context.Context) ([]domain.InDebtCustomer, error) {
	return s.analytics.CustomersInDebt(ctx)
}
