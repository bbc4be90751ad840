package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgCountryRepository struct {
	db repository.DB
}

func NewPgCountryRepository(db repository.DB) repository.CountryRepository {
	return &pgCountryRepository{db: db}
}

func (r *pgCountryRepository) Create(ctx context.Context, country *domain.Country) (*domain.Country, error) {
	query := `INSERT INTO countries (name, minute_cost) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, query, country.Name, country.MinuteCost).Scan(&country.ID); err != nil {
		return nil, err
	}
	return country, nil
}

func (r *pgCountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	country := &domain.Country{}
	query := `SELECT id, name, minute_cost FROM countries WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&country.ID, &country.Name, &country.MinuteCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCountryNotFound
		}
		return nil, err
	}
	return country, nil
}

func (r *pgCountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	query := `SELECT id, name, minute_cost FROM countries ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := []domain.Country{}
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.MinuteCost); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *pgCountryRepository) Update(ctx context.Context, country *domain.Country) error {
	query := `UPDATE countries SET name = $2, minute_cost = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, country.ID, country.Name, country.MinuteCost)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}

func (r *pgCountryRepository) Delete(ctx context.Context, id int64) error {
	// Dependent cities (and their customers) go with the country via the
	// store's ON DELETE CASCADE.
	tag, err := r.db.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}
