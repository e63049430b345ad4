package dto

import (
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a user category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=50"`
	Type  domain.CategoryType `json:"type" binding:"required,oneof=income outcome both"`
	Color *string             `json:"color" binding:"omitempty,hexcolor"`
	Icon  *string             `json:"icon" binding:"omitempty,max=50"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID int64               `json:"id"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Color      *string             `json:"color"`
	Icon       *string             `json:"icon"`
	IsSystem   bool                `json:"isSystem"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		Color:      c.Color,
		Icon:       c.Icon,
		IsSystem:   c.IsSystem,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
