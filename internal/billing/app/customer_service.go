package app

import (
	"context"
	"log/slog"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type CustomerUpdate struct {
	FullName   *string
	Passport   *string
	CityID     *int64
	CategoryID *int64
}

// CustomerService manages customers and their phone numbers, and exposes
// read access to payments.
type CustomerService struct {
	db         repository.DB
	customers  repository.CustomerRepository
	phones     repository.PhoneNumberRepository
	payments   repository.PaymentRepository
	cities     repository.CityRepository
	categories repository.CategoryRepository
	maxPhones  int64
	logger     *slog.Logger
}

func NewCustomerService(
	db repository.DB,
	customers repository.CustomerRepository,
	phones repository.PhoneNumberRepository,
	payments repository.PaymentRepository,
	cities repository.CityRepository,
	categories repository.CategoryRepository,
	maxPhones int64,
	logger *slog.Logger,
) *CustomerService {
	return &CustomerService{
		db:         db,
		customers:  customers,
		phones:     phones,
		payments:   payments,
		cities:     cities,
		categories: categories,
		maxPhones:  maxPhones,
		logger:     logger,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if _, err := s.cities.GetByID(ctx, customer.CityID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, customer.CategoryID); err != nil {
		return nil, err
	}
	return s.customers.Create(ctx, customer)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, upd CustomerUpdate) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.CityID != nil {
		if _, err := s.cities.GetByID(ctx, *upd.CityID); err != nil {
			return nil, err
		}
		customer.CityID = *upd.CityID
	}
	if upd.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *upd.CategoryID); err != nil {
			return nil, err
		}
		customer.CategoryID = *upd.CategoryID
	}
	if upd.FullName != nil {
		customer.FullName = *upd.FullName
	}
	if upd.Passport != nil {
		customer.Passport = *upd.Passport
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CreatePhoneNumber attaches a number to a customer, enforcing the per-customer
// limit. The count and insert run inside one transaction with the customer row
// locked, so two concurrent requests cannot both slip under the limit.
func (s *CustomerService) CreatePhoneNumber(ctx context.Context, phone *domain.PhoneNumber) (*domain.PhoneNumber, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := s.customers.GetByIDForUpdate(ctx, tx, phone.CustomerID); err != nil {
		return nil, err
	}

	count, err := s.phones.CountByCustomer(ctx, tx, phone.CustomerID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxPhones {
		return nil, domain.ErrPhoneNumberLimit
	}

	created, err := s.phones.Create(ctx, tx, phone)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit phone number creation", "error", err)
		return nil, err
	}
	return created, nil
}

func (s *CustomerService) GetPhoneNumber(ctx context.Context, id int64) (*domain.PhoneNumber, error) {
	return s.phones.GetByID(ctx, id)
}

func (s *CustomerService) ListPhoneNumbers(ctx context.Context) ([]domain.PhoneNumber, error) {
	return s.phones.List(ctx)
}

func (s *CustomerService) DeletePhoneNumber(ctx context.Context, id int64) error {
	return s.phones.Delete(ctx, id)
}

func (s *CustomerService) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *CustomerService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}
