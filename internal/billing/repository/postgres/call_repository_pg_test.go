package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

func setupCallTest(t *testing.T) (repository.CallRepository, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPgCallRepository(mockPool), mockPool
}

func TestPgCallRepository_Create(t *testing.T) {
	repo, mockPool := setupCallTest(t)
	defer mockPool.Close()

	startedAt := time.Now()
	rows := mockPool.NewRows([]string{"id", "duration", "charge", "started_at", "status"}).
		AddRow(int64(42), int64(0), float64(0), startedAt, domain.CallStatusInProgress)
	mockPool.ExpectQuery(`INSERT INTO calls \(from_customer_id, to_customer_id, duration, charge, started_at, status\)`).
		WithArgs(int64(1), int64(2), domain.CallStatusInProgress).
		WillReturnRows(rows)

	call, err := repo.Create(context.Background(), &domain.Call{FromCustomerID: 1, ToCustomerID: 2, Status: domain.CallStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, int64(42), call.ID)
	assert.Equal(t, domain.CallStatusInProgress, call.Status)
	assert.Equal(t, startedAt, call.StartedAt)
	assert.Nil(t, call.FinishedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgCallRepository_CountActive(t *testing.T) {
	repo, mockPool := setupCallTest(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM calls`).
		WithArgs(int64(1), int64(2), domain.CallStatusInProgress).
		WillReturnRows(mockPool.NewRows([]string{"count"}).AddRow(int64(1)))

	count, err := repo.CountActive(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPgCallRepository_Finish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockPool := setupCallTest(t)
		defer mockPool.Close()

		startedAt := time.Now().Add(-3 * time.Minute)
		finishedAt := time.Now()
		rows := mockPool.NewRows([]string{"id", "from_customer_id", "to_customer_id", "duration", "charge", "started_at", "finished_at", "status"}).
			AddRow(int64(42), int64(1), int64(2), int64(180), 4.5, startedAt, &finishedAt, domain.CallStatusFinished)
		mockPool.ExpectQuery(`UPDATE calls AS c`).
			WithArgs(int64(42), domain.CallStatusFinished, domain.CallStatusInProgress).
			WillReturnRows(rows)

		call, err := repo.Finish(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.CallStatusFinished, call.Status)
		assert.Equal(t, int64(180), call.Duration)
		assert.Equal(t, 4.5, call.Charge)
		require.NotNil(t, call.FinishedAt)
	})

	t.Run("AlreadyFinishedOrMissing", func(t *testing.T) {
		repo, mockPool := setupCallTest(t)
		defer mockPool.Close()

		// The guard condition matches no row either way.
		mockPool.ExpectQuery(`UPDATE calls AS c`).
			WithArgs(int64(42), domain.CallStatusFinished, domain.CallStatusInProgress).
			WillReturnError(pgx.ErrNoRows)

		call, err := repo.Finish(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrCallNotFound)
		assert.Nil(t, call)
	})
}

func TestPgCallRepository_GetByID(t *testing.T) {
	repo, mockPool := setupCallTest(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(`SELECT id, from_customer_id, to_customer_id, duration, charge, started_at, finished_at, status`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	call, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrCallNotFound)
	assert.Nil(t, call)
}
