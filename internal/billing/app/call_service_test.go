package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/altel/telebill/internal/billing/domain"
)

func setupCallServiceTest(t *testing.T) (*CallService, *MockCallRepository, *MockPhoneNumberRepository, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	calls := new(MockCallRepository)
	phones := new(MockPhoneNumberRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCallService(mockPool, calls, phones, logger), calls, phones, mockPool
}

func TestCallService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("SelfCall", func(t *testing.T) {
		svc, calls, _, mockPool := setupCallServiceTest(t)
		defer mockPool.Close()

		call, err := svc.Start(ctx, 7, 7)
		assert.ErrorIs(t, err, domain.ErrSelfCall)
		assert.Nil(t, call)
		calls.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EitherSideBusy", func(t *testing.T) {
		svc, calls, _, mockPool := setupCallServiceTest(t)
		defer mockPool.Close()

		calls.On("CountActive", ctx, int64(1), int64(2)).Return(int64(1), nil)

		call, err := svc.Start(ctx, 1, 2)
		assert.ErrorIs(t, err, domain.ErrCustomerBusy)
		assert.Nil(t, call)
		calls.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CalleeWithoutPhoneNumber", func(t *testing.T) {
		svc, calls, phones, mockPool := setupCallServiceTest(t)
		defer mockPool.Close()

		calls.On("CountActive", ctx, int64(1), int64(2)).Return(int64(0), nil)
		phones.On("CountByCustomer", ctx, mock.Anything, int64(1)).Return(int64(2), nil)
		phones.On("CountByCustomer", ctx, mock.Anything, int64(2)).Return(int64(0), nil)

		call, err := svc.Start(ctx, 1, 2)
		assert.ErrorIs(t, err, domain.ErrMissingPhoneNumber)
		assert.Nil(t, call)
		calls.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		svc, calls, phones, mockPool := setupCallServiceTest(t)
		defer mockPool.Close()

		calls.On("CountActive", ctx, int64(1), int64(2)).Return(int64(0), nil)
		phones.On("CountByCustomer", ctx, mock.Anything, int64(1)).Return(int64(1), nil)
		phones.On("CountByCustomer", ctx, mock.Anything, int64(2)).Return(int64(3), nil)

		created := &domain.Call{
			ID:             42,
			FromCustomerID: 1,
			ToCustomerID:   2,
			StartedAt:      time.Now(),
			Status:         domain.CallStatusInProgress,
		}
		calls.On("Create", ctx, mock.MatchedBy(func(c *domain.Call) bool {
			return c.FromCustomerID == 1 && c.ToCustomerID == 2 && c.Status == domain.CallStatusInProgress
		})).Return(created, nil)

		call, err := svc.Start(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(42), call.ID)
		calls.AssertExpectations(t)
		phones.AssertExpectations(t)
	})
}

func TestCallService_Finish(t *testing.T) {
	ctx := context.Background()

	t.Run("AlreadyFinished", func(t *testing.T) {
		svc, calls, _, mockPool := setupCallServiceTest(t)
		defer mockPool.Close()

		calls.On("Finish", ctx, int64(42)).Return(nil, domain.ErrCallNotFound)

		call, err := svc.Finish(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrCallNotFound)
		assert.Nil(t, call)
	})

	t.Run("Success", func(t *testing.T) {
		svc, calls, _, mockPool := setupCallServiceTest(t)
		defer mockPool.Close()

		finishedAt := time.Now()
		finished := &domain.Call{
			ID:             42,
			FromCustomerID: 1,
			ToCustomerID:   2,
			Duration:       180,
			Charge:         4.5,
			FinishedAt:     &finishedAt,
			Status:         domain.CallStatusFinished,
		}
		calls.On("Finish", ctx, int64(42)).Return(finished, nil)

		call, err := svc.Finish(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.CallStatusFinished, call.Status)
		assert.Equal(t, int64(180), call.Duration)
	})
}
