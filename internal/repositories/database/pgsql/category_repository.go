package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	"github.com/ThibautWa/grigou-sub000/internal/models"
	"github.com/ThibautWa/grigou-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categorySelect = `SELECT id, user_id, name, type, color, icon, is_system, created_at FROM categories`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	return r.findOne(ctx, r.Pool, categorySelect+` WHERE id = $1`, categoryID)
}

func (r *PgxCategoryRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.Category, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, categorySelect+` WHERE is_system OR user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	categories := make([]domain.Category, len(ms))
	for i, m := range ms {
		categories[i] = mapping.ToDomainCategory(m)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (user_id, name, type, color, icon, is_system)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`
	err := r.Pool.QueryRow(ctx, query, m.UserID, m.Name, m.Type, m.Color, m.Icon, m.IsSystem).
		Scan(&m.CategoryID, &m.CreatedAt)
	if err != nil {
		return nil, translatePgError(fmt.Errorf("failed to insert category %q: %w", m.Name, err), "category")
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// FindOrCreateSystemCategoryInTx tolerates a concurrent creator through the
// partial unique index on system category names.
func (r *PgxCategoryRepository) FindOrCreateSystemCategoryInTx(ctx context.Context, tx pgx.Tx, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	_, err := tx.Exec(ctx, `
		INSERT INTO categories (user_id, name, type, is_system)
		VALUES (NULL, $1, $2, TRUE)
		ON CONFLICT (name) WHERE is_system DO NOTHING;`,
		name, string(categoryType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure system category %q: %w", name, err)
	}
	return r.findOne(ctx, tx, categorySelect+` WHERE is_system AND name = $1`, name)
}
