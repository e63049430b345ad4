package repositories

import (
	"context"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	// FindCategoryByID retrieves a category by its identifier.
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)

	// ListCategories returns the system categories plus the user's own, ordered by name.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// SaveCategory inserts a user category.
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)

	// FindOrCreateSystemCategoryInTx returns the system category named name,
	// creating it within tx when it does not exist yet.
	FindOrCreateSystemCategoryInTx(ctx context.Context, tx pgx.Tx, name string, categoryType domain.CategoryType) (*domain.Category, error)
}
