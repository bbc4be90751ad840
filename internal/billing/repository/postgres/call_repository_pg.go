package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgCallRepository struct {
	db repository.DB
}

func NewPgCallRepository(db repository.DB) repository.CallRepository {
	return &pgCallRepository{db: db}
}

func (r *pgCallRepository) Create(ctx context.Context, call *domain.Call) (*domain.Call, error) {
	query := `
		INSERT INTO calls (from_customer_id, to_customer_id, duration, charge, started_at, status)
		VALUES ($1, $2, 0, 0, now(), $3)
		RETURNING id, duration, charge, started_at, status
	`
	err := r.db.QueryRow(ctx, query, call.FromCustomerID, call.ToCustomerID, domain.CallStatusInProgress).Scan(
		&call.ID, &call.Duration, &call.Charge, &call.StartedAt, &call.Status,
	)
	if err != nil {
		return nil, err
	}
	return call, nil
}

func (r *pgCallRepository) GetByID(ctx context.Context, id int64) (*domain.Call, error) {
	call := &domain.Call{}
	query := `
		SELECT id, from_customer_id, to_customer_id, duration, charge, started_at, finished_at, status
		FROM calls WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&call.ID, &call.FromCustomerID, &call.ToCustomerID, &call.Duration,
		&call.Charge, &call.StartedAt, &call.FinishedAt, &call.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCallNotFound
		}
		return nil, err
	}
	return call, nil
}

func (r *pgCallRepository) CountActive(ctx context.Context, fromID, toID int64) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM calls
		WHERE (from_customer_id IN ($1, $2) OR to_customer_id IN ($1, $2))
		  AND status = $3
	`
	if err := r.db.QueryRow(ctx, query, fromID, toID, domain.CallStatusInProgress).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Finish is a single guarded UPDATE: the "status = IN_PROGRESS" condition
// is what prevents finishing an already-finished or nonexistent call without
// a separate existence check. Duration (seconds) and charge (minutes times
// the callee country's minute cost times the caller category's discount
// multiplier) are computed in the same statement so the transition stays
// atomic.
func (r *pgCallRepository) Finish(ctx context.Context, id int64) (*domain.Call, error) {
	query := `
		UPDATE calls AS c
		SET status      = $2,
		    finished_at = now(),
		    duration    = EXTRACT(EPOCH FROM now() - c.started_at)::bigint,
		    charge      = EXTRACT(EPOCH FROM now() - c.started_at) / 60.0 * co.minute_cost * cat.discount_mtp
		FROM customers AS callee
		JOIN cities AS ci ON ci.id = callee.city_id
		JOIN countries AS co ON co.id = ci.country_id,
		     customers AS caller
		JOIN categories AS cat ON cat.id = caller.category_id
		WHERE c.id = $1
		  AND c.status = $3
		  AND callee.id = c.to_customer_id
		  AND caller.id = c.from_customer_id
		RETURNING c.id, c.from_customer_id, c.to_customer_id, c.duration, c.charge, c.started_at, c.finished_at, c.status
	`
	call := &domain.Call{}
	err := r.db.QueryRow(ctx, query, id, domain.CallStatusFinished, domain.CallStatusInProgress).Scan(
		&call.ID, &call.FromCustomerID, &call.ToCustomerID, &call.Duration,
		&call.Charge, &call.StartedAt, &call.FinishedAt, &call.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCallNotFound
		}
		return nil, err
	}
	return call, nil
}
