package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/billing/domain"
	"github.com/altel/telebill/internal/billing/repository"
)

type pgCategoryRepository struct {
	db repository.DB
}

func NewPgCategoryRepository(db repository.DB) repository.CategoryRepository {
	return &pgCategoryRepository{db: db}
}

func (r *pgCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `INSERT INTO categories (name, discount_mtp, rate_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRow(ctx, query, category.Name, category.DiscountMtp, category.RateID).Scan(&category.ID); err != nil {
		return nil, err
	}
	return category, nil
}

func (r *pgCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category := &domain.Category{}
	query := `SELECT id, name, discount_mtp, rate_id FROM categories WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.DiscountMtp, &category.RateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *pgCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, discount_mtp, rate_id FROM categories ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DiscountMtp, &c.RateID); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *pgCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories SET name = $2, discount_mtp = $3, rate_id = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, category.ID, category.Name, category.DiscountMtp, category.RateID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *pgCategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
