// Package models contains database model definitions.
package models

import (
	"time"
)

// User represents a stored user account.
type User struct {
	// ID is the unique identifier, assigned by the database.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name, never empty.
	Name string `gorm:"size:255;not null"`
	// Email is unique across all rows, compared case-sensitively.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	// Active indicates whether the account is active. New users start active.
	Active bool `gorm:"not null;default:true"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}
