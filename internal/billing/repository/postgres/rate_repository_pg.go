package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgRateRepository struct {
	db repository.DB
}

func NewPgRateRepository(db repository.DB) repository.RateRepository {
	return &pgRateRepository{db: db}
}

func (r *pgRateRepository) Create(ctx context.Context, rate *domain.Rate) (*domain.Rate, error) {
	query := `INSERT INTO rates (cost) VALUES ($1) RETURNING id`
	if err := r.db.QueryRow(ctx, query, rate.Cost).Scan(&rate.ID); err != nil {
		return nil, err
	}
	return rate, nil
}

func (r *pgRateRepository) GetByID(ctx context.Context, id int64) (*domain.Rate, error) {
	rate := &domain.Rate{}
	err := r.db.QueryRow(ctx, `SELECT id, cost FROM rates WHERE id = $1`, id).Scan(&rate.ID, &rate.Cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateNotFound
		}
		return nil, err
	}
	return rate, nil
}

func (r *pgRateRepository) List(ctx context.Context) ([]domain.Rate, error) {
	rows, err := r.db.Query(ctx, `SELECT id, cost FROM rates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := []domain.Rate{}
	for rows.Next() {
		var rt domain.Rate
		if err := rows.Scan(&rt.ID, &rt.Cost); err != nil {
			return nil, err
		}
		rates = append(rates, rt)
	}
	return rates, rows.Err()
}

func (r *pgRateRepository) Update(ctx context.Context, rate *domain.Rate) error {
	tag, err := r.db.Exec(ctx, `UPDATE rates SET cost = $2 WHERE id = $1`, rate.ID, rate.Cost)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRateNotFound
	}
	return nil
}

func (r *pgRateRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRateNotFound
	}
	return nil
}
