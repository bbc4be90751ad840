package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgPaymentRepository struct {
	db repository.DB
}

func NewPgPaymentRepository(db repository.DB) repository.PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	payment := &domain.Payment{}
	query := `
		SELECT id, amount, customer_id, status, created_at, updated_at
		FROM payments WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID, &payment.Amount, &payment.CustomerID, &payment.Status,
		&payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (r *pgPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT id, amount, customer_id, status, created_at, updated_at FROM payments ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.CustomerID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
