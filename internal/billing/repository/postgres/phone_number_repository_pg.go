package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgPhoneNumberRepository struct {
	db repository.DB
}

func NewPgPhoneNumberRepository(db repository.DB) repository.PhoneNumberRepository {
	return &pgPhoneNumberRepository{db: db}
}

func (r *pgPhoneNumberRepository) Create(ctx context.Context, q repository.Querier, phone *domain.PhoneNumber) (*domain.PhoneNumber, error) {
	query := `INSERT INTO phone_numbers (number, customer_id) VALUES ($1, $2) RETURNING id`
	if err := q.QueryRow(ctx, query, phone.Number, phone.CustomerID).Scan(&phone.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == "phone_numbers_number_key" {
			return nil, domain.ErrDuplicatePhoneNumber
		}
		return nil, err
	}
	return phone, nil
}

func (r *pgPhoneNumberRepository) GetByID(ctx context.Context, id int64) (*domain.PhoneNumber, error) {
	phone := &domain.PhoneNumber{}
	query := `SELECT id, number, customer_id FROM phone_numbers WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&phone.ID, &phone.Number, &phone.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhoneNumberNotFound
		}
		return nil, err
	}
	return phone, nil
}

func (r *pgPhoneNumberRepository) List(ctx context.Context) ([]domain.PhoneNumber, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, customer_id FROM phone_numbers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := []domain.PhoneNumber{}
	for rows.Next() {
		var p domain.PhoneNumber
		if err := rows.Scan(&p.ID, &p.Number, &p.CustomerID); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

func (r *pgPhoneNumberRepository) CountByCustomer(ctx context.Context, q repository.Querier, customerID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM phone_numbers WHERE customer_id = $1`
	if err := q.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *pgPhoneNumberRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM phone_numbers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPhoneNumberNotFound
	}
	return nil
}
