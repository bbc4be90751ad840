package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

func setupCustomerTest(t *testing.T) (repository.CustomerRepository, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPgCustomerRepository(mockPool), mockPool
}

func TestPgCustomerRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(`INSERT INTO customers \(fullname, passport, city_id, category_id\)`).
			WithArgs("Aigerim S.", "N1234567", int64(1), int64(2)).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(5)))

		customer, err := repo.Create(ctx, &domain.Customer{FullName: "Aigerim S.", Passport: "N1234567", CityID: 1, CategoryID: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), customer.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("DuplicatePassport", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(`INSERT INTO customers`).
			WithArgs("Aigerim S.", "N1234567", int64(1), int64(2)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_passport_key"})

		customer, err := repo.Create(ctx, &domain.Customer{FullName: "Aigerim S.", Passport: "N1234567", CityID: 1, CategoryID: 2})
		assert.ErrorIs(t, err, domain.ErrDuplicatePassport)
		assert.Nil(t, customer)
	})

	t.Run("UnknownConstraintPropagates", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "customers_city_id_fkey"}
		mockPool.ExpectQuery(`INSERT INTO customers`).
			WithArgs("Aigerim S.", "N1234567", int64(99), int64(2)).
			WillReturnError(pgErr)

		_, err := repo.Create(ctx, &domain.Customer{FullName: "Aigerim S.", Passport: "N1234567", CityID: 99, CategoryID: 2})
		var got *pgconn.PgError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, "23503", got.Code)
	})
}

func TestPgCustomerRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		rows := mockPool.NewRows([]string{"id", "fullname", "passport", "city_id", "category_id"}).
			AddRow(int64(5), "Aigerim S.", "N1234567", int64(1), int64(2))
		mockPool.ExpectQuery(`SELECT id, fullname, passport, city_id, category_id FROM customers WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(rows)

		customer, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Aigerim S.", customer.FullName)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT id, fullname, passport, city_id, category_id FROM customers WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		customer, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
		assert.Nil(t, customer)
	})
}

func TestPgCustomerRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		mockPool.ExpectExec(`UPDATE customers SET`).
			WithArgs(int64(99), "Aigerim S.", "N1234567", int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, &domain.Customer{ID: 99, FullName: "Aigerim S.", Passport: "N1234567", CityID: 1, CategoryID: 2})
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	})

	t.Run("DuplicatePassport", func(t *testing.T) {
		repo, mockPool := setupCustomerTest(t)
		defer mockPool.Close()

		mockPool.ExpectExec(`UPDATE customers SET`).
			WithArgs(int64(5), "Aigerim S.", "N7654321", int64(1), int64(2)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_passport_key"})

		err := repo.Update(ctx, &domain.Customer{ID: 5, FullName: "Aigerim S.", Passport: "N7654321", CityID: 1, CategoryID: 2})
		assert.ErrorIs(t, err, domain.ErrDuplicatePassport)
	})
}
