package app

import (
	"context"
	"log/slog"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

// CallService drives the call lifecycle: start, finish, lookup.
type CallService struct {
	db     repository.DB
	calls  repository.CallRepository
	phones repository.PhoneNumberRepository
	logger *slog.Logger
}

func NewCallService(
	db repository.DB,
	calls repository.CallRepository,
	phones repository.PhoneNumberRepository,
	logger *slog.Logger,
) *CallService {
	return &CallService{
		db:     db,
		calls:  calls,
		phones: phones,
		logger: logger,
	}
}

// Start opens a call between two customers. It refuses self-calls, calls
// involving a customer who is already on an active call, and calls where
// either side owns no phone number.
func (s *CallService) Start(ctx context.Context, fromID, toID int64) (*domain.Call, error) {
	if fromID == toID {
		return nil, domain.ErrSelfCall
	}

	active, err := s.calls.CountActive(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, domain.ErrCustomerBusy
	}

	for _, customerID := range []int64{fromID, toID} {
		count, err := s.phones.CountByCustomer(ctx, s.db, customerID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, domain.ErrMissingPhoneNumber
		}
	}

	call := &domain.Call{
		FromCustomerID: fromID,
		ToCustomerID:   toID,
		Status:         domain.CallStatusInProgress,
	}
	return s.calls.Create(ctx, call)
}

// Finish closes an in-progress call, computing its duration and charge.
func (s *CallService) Finish(ctx context.Context, id int64) (*domain.Call, error) {
	return s.calls.Finish(ctx, id)
}

func (s *CallService) Get(ctx context.Context, id int64) (*domain.Call, error) {
	return s.calls.GetByID(ctx, id)
}
