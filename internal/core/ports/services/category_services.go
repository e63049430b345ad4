package services

import (
	"context"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
)

// CategorySvcFacade defines operations on transaction categories
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
}
