package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.SaveCategory(ctx, domain.Category{
		UserID: &userID,
		Name:   name,
		Type:   req.Type,
		Color:  req.Color,
		Icon:   req.Icon,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save category",
			slog.String("user_id", userID),
			slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.Int64("category_id", category.CategoryID))
	return category, nil
}
