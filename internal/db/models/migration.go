package models

import (
	"time"
)

// Migration records a schema change that has been applied, keyed by its
// version. A version is never applied twice.
type Migration struct {
	// Version is a strictly increasing integer (gaps are fine).
	Version int64 `gorm:"primaryKey;autoIncrement:false"`
	// Name describes the change for humans.
	Name string `gorm:"size:255;not null"`
	// AppliedAt is the time the change was committed.
	AppliedAt time.Time `gorm:"not null"`
}

// TableName pins the bookkeeping table name.
func (Migration) TableName() string {
	return "migrations"
}
