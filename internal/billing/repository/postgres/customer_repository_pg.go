package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

const uniqueViolationCode = "23505"

type pgCustomerRepository struct {
	db repository.DB
}

func NewPgCustomerRepository(db repository.DB) repository.CustomerRepository {
	return &pgCustomerRepository{db: db}
}

func (r *pgCustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
		INSERT INTO customers (fullname, passport, city_id, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		customer.FullName, customer.Passport, customer.CityID, customer.CategoryID,
	).Scan(&customer.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == "customers_passport_key" {
			return nil, domain.ErrDuplicatePassport
		}
		return nil, err
	}
	return customer, nil
}

func (r *pgCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.get(ctx, r.db, id, `SELECT id, fullname, passport, city_id, category_id FROM customers WHERE id = $1`)
}

func (r *pgCustomerRepository) GetByIDForUpdate(ctx context.Context, q repository.Querier, id int64) (*domain.Customer, error) {
	return r.get(ctx, q, id, `SELECT id, fullname, passport, city_id, category_id FROM customers WHERE id = $1 FOR UPDATE`)
}

func (r *pgCustomerRepository) get(ctx context.Context, q repository.Querier, id int64, query string) (*domain.Customer, error) {
	customer := &domain.Customer{}
	err := q.QueryRow(ctx, query, id).Scan(
		&customer.ID, &customer.FullName, &customer.Passport, &customer.CityID, &customer.CategoryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (r *pgCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT id, fullname, passport, city_id, category_id FROM customers ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Passport, &c.CityID, &c.CategoryID); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *pgCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers SET fullname = $2, passport = $3, city_id = $4, category_id = $5
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		customer.ID, customer.FullName, customer.Passport, customer.CityID, customer.CategoryID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == "customers_passport_key" {
			return domain.ErrDuplicatePassport
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
