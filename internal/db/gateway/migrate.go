package gateway

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-scaffold/go-scaffold/internal/db/models"
)

// Definition is a caller-supplied migration: a version, a human
// readable name and the SQL body to execute. Definitions are passed in
// by the surrounding application, the gateway does not discover them
// from the filesystem.
type Definition struct {
	Version int64
	Name    string
	SQL     string
}

// Migrate applies every definition not yet recorded, in ascending
// version order. Each version runs in its own transaction together
// with its bookkeeping row, so either both persist or neither does.
// The first failure aborts the run and names the failing version;
// rerunning resumes from the first unapplied version. CRUD operations
// stay blocked until one Migrate call has completed.
func (g *Gateway) Migrate(ctx context.Context, defs []Definition) ([]models.Migration, error) {
	db, err := g.handle(false)
	if err != nil {
		return nil, err
	}

	ordered := make([]Definition, len(defs))
	copy(ordered, defs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Version < ordered[j].Version })

	for i := 1; i < len(ordered); i++ {
		if ordered[i].Version == ordered[i-1].Version {
			return nil, errors.Wrapf(ErrInvalidInput, "duplicate migration version %d", ordered[i].Version)
		}
	}

	// the bookkeeping table itself is managed by gorm
	if err = db.WithContext(ctx).AutoMigrate(&models.Migration{}); err != nil {
		return nil, errors.Wrap(err, "creating migrations table")
	}

	var appliedVersions []int64
	if err = db.WithContext(ctx).Model(&models.Migration{}).Pluck("version", &appliedVersions).Error; err != nil {
		return nil, errors.Wrap(err, "reading applied migrations")
	}

	seen := make(map[int64]bool, len(appliedVersions))
	for _, v := range appliedVersions {
		seen[v] = true
	}

	var applied []models.Migration

	for _, def := range ordered {
		if seen[def.Version] {
			continue
		}

		record := models.Migration{
			Version:   def.Version,
			Name:      def.Name,
			AppliedAt: time.Now().UTC(),
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(def.SQL).Error; err != nil {
				return err //nolint:wrapcheck
			}

			return tx.Create(&record).Error //nolint:wrapcheck
		})
		if err != nil {
			return applied, &MigrationError{Version: def.Version, Err: err}
		}

		log.Debug().Int64("version", def.Version).Str("name", def.Name).Msg("applied migration")

		applied = append(applied, record)
	}

	g.mu.Lock()
	g.migrated = true
	g.mu.Unlock()

	return applied, nil
}
