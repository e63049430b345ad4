package mapping

import (
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		UserID:     d.UserID,
		Name:       d.Name,
		Type:       string(d.Type),
		Color:      d.Color,
		Icon:       d.Icon,
		IsSystem:   d.IsSystem,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Name:       m.Name,
		Type:       domain.CategoryType(m.Type),
		Color:      m.Color,
		Icon:       m.Icon,
		IsSystem:   m.IsSystem,
		CreatedAt:  m.CreatedAt,
	}
}
