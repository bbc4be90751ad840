package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/altel/telebill/internal/auth/domain"
	"github.com/altel/telebill/internal/auth/repository"
)

// Querier is the subset of *pgxpool.Pool this repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgAdminRepository struct {
	db Querier
}

func NewPgAdminRepository(db Querier) repository.AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	admin := &domain.Admin{}
	query := `SELECT id, username, password, created_at FROM admins WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.Password, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
