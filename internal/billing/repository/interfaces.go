package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/altel/telebill/internal/billing/domain"
)

// DB is the subset of *pgxpool.Pool the repositories need. pgxmock's pool
// interface satisfies it as well.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Querier is satisfied by both DB and pgx.Tx; repository methods that must
// participate in a caller-managed transaction take one explicitly.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CountryRepository interface {
	Create(ctx context.Context, country *domain.Country) (*domain.Country, error)
	GetByID(ctx context.Context, id int64) (*domain.Country, error)
	List(ctx context.Context) ([]domain.Country, error)
	Update(ctx context.Context, country *domain.Country) error
	Delete(ctx context.Context, id int64) error
}

type CityRepository interface {
	Create(ctx context.Context, city *domain.City) (*domain.City, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	List(ctx context.Context) ([]domain.City, error)
	Update(ctx context.Context, city *domain.City) error
	Delete(ctx context.Context, id int64) error
}

type RateRepository interface {
	Create(ctx context.Context, rate *domain.Rate) (*domain.Rate, error)
	GetByID(ctx context.Context, id int64) (*domain.Rate, error)
	List(ctx context.Context) ([]domain.Rate, error)
	Update(ctx context.Context, rate *domain.Rate) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	// GetByIDForUpdate locks the customer row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

type PhoneNumberRepository interface {
	Create(ctx context.Context, q Querier, phone *domain.PhoneNumber) (*domain.PhoneNumber, error)
	GetByID(ctx context.Context, id int64) (*domain.PhoneNumber, error)
	List(ctx context.Context) ([]domain.PhoneNumber, error)
	CountByCustomer(ctx context.Context, q Querier, customerID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type CallRepository interface {
	Create(ctx context.Context, call *domain.Call) (*domain.Call, error)
	GetByID(ctx context.Context, id int64) (*domain.Call, error)
	// CountActive counts IN_PROGRESS calls where either given customer
	// appears on either side.
	CountActive(ctx context.Context, fromID, toID int64) (int64, error)
	// Finish flips IN_PROGRESS -> FINISHED, stamps finished_at and computes
	// duration and charge in a single guarded UPDATE. Returns
	// domain.ErrCallNotFound when the call is absent or already finished.
	Finish(ctx context.Context, id int64) (*domain.Call, error)
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}

// AnalyticsRepository holds the read-only aggregation queries.
type AnalyticsRepository interface {
	// TopCity returns nil when no calls exist.
	TopCity(ctx context.Context) (*domain.TopCity, error)
	FavoriteCities(ctx context.Context) ([]domain.CustomerCityPair, error)
	CustomersCallingAllCities(ctx context.Context) ([]domain.Customer, error)
	MonthlyCallSums(ctx context.Context, customerID int64, year int) ([]domain.MonthlyCallSum, error)
	AvgChargePerYear(ctx context.Context) ([]domain.AvgChargePerYear, error)
	CustomersInDebt(ctx context.Context) ([]domain.InDebtCustomer, error)
}
