package domain

import "time"

// CategoryType restricts which transaction types a category applies to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryOutcome CategoryType = "outcome"
	CategoryBoth    CategoryType = "both"
)

// AdjustmentCategoryName is the system category attached to balance adjustments.
const AdjustmentCategoryName = "Adjustment"

// Category labels transactions. System categories have no owner and are
// shared by every user.
type Category struct {
	CategoryID int64        `json:"id"`
	UserID     *string      `json:"userId"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Color      *string      `json:"color"`
	Icon       *string      `json:"icon"`
	IsSystem   bool         `json:"isSystem"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Accepts reports whether transactions of type t may use this category.
func (c Category) Accepts(t TransactionType) bool {
	return c.Type == CategoryBoth || string(c.Type) == string(t)
}
