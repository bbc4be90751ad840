package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgCityRepository struct {
	db repository.DB
}

func NewPgCityRepository(db repository.DB) repository.CityRepository {
	return &pgCityRepository{db: db}
}

func (r *pgCityRepository) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	query := `INSERT INTO cities (name, zip_code, country_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRow(ctx, query, city.Name, city.ZipCode, city.CountryID).Scan(&city.ID); err != nil {
		return nil, err
	}
	return city, nil
}

func (r *pgCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	city := &domain.City{}
	query := `SELECT id, name, zip_code, country_id FROM cities WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&city.ID, &city.Name, &city.ZipCode, &city.CountryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	return city, nil
}

func (r *pgCityRepository) List(ctx context.Context) ([]domain.City, error) {
	query := `SELECT id, name, zip_code, country_id FROM cities ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []domain.City{}
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.ZipCode, &c.CountryID); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *pgCityRepository) Update(ctx context.Context, city *domain.City) error {
	query := `UPDATE cities SET name = $2, zip_code = $3, country_id = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, city.ID, city.Name, city.ZipCode, city.CountryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

func (r *pgCityRepository) Delete(ctx context.Context, id int64) error {
	// Customers of the city cascade at the store level.
	tag, err := r.db.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}
