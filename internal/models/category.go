package models

import "time"

// Category mirrors a row of the categories table.
type Category struct {
	CategoryID int64     `db:"id"`
	UserID     *string   `db:"user_id"`
	Name       string    `db:"name"`
	Type       string    `db:"type"`
	Color      *string   `db:"color"`
	Icon       *string   `db:"icon"`
	IsSystem   bool      `db:"is_system"`
	CreatedAt  time.Time `db:"created_at"`
}
