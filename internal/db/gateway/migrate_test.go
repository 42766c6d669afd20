package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scaffold/go-scaffold/internal/db/models"
)

func TestMigrateAppliesInOrder(t *testing.T) {
	g := openTestGateway(t, 1)
	ctx := context.Background()

	// hand the definitions over in the wrong order on purpose
	defs := testMigrations()
	defs[0], defs[1] = defs[1], defs[0]

	applied, err := g.Migrate(ctx, defs)
	require.NoError(t, err)
	require.Len(t, applied, 2)

	assert.Equal(t, int64(1), applied[0].Version)
	assert.Equal(t, int64(2), applied[1].Version)
	assert.False(t, applied[0].AppliedAt.IsZero())

	// the barrier is lifted now
	_, err = g.CreateUser(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	g := openTestGateway(t, 1)
	ctx := context.Background()

	first, err := g.Migrate(ctx, testMigrations())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := g.Migrate(ctx, testMigrations())
	require.NoError(t, err)
	assert.Empty(t, second, "second run should apply nothing")
}

func TestMigrateFailureIsAtomicAndResumable(t *testing.T) {
	g := openTestGateway(t, 1)
	ctx := context.Background()

	broken := append(testMigrations(), Definition{
		Version: 3,
		Name:    "broken",
		SQL:     "THIS IS NOT SQL",
	})

	applied, err := g.Migrate(ctx, broken)
	require.Error(t, err)

	var migErr *MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, int64(3), migErr.Version)

	// versions 1 and 2 are recorded, version 3 is not
	require.Len(t, applied, 2)

	var count int64
	require.NoError(t, g.db.Model(&models.Migration{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// the barrier stays down after a failed run
	_, err = g.ListUsers(ctx, nil)
	require.ErrorIs(t, err, ErrSchemaNotReady)

	// a fixed rerun applies only the missing version
	fixed := append(testMigrations(), Definition{
		Version: 3,
		Name:    "audit log",
		SQL:     "CREATE TABLE audit_log (id INTEGER PRIMARY KEY AUTOINCREMENT, entry TEXT)",
	})

	applied, err = g.Migrate(ctx, fixed)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, int64(3), applied[0].Version)

	_, err = g.ListUsers(ctx, nil)
	require.NoError(t, err)
}

func TestMigrateRejectsDuplicateVersions(t *testing.T) {
	g := openTestGateway(t, 1)

	defs := []Definition{
		{Version: 1, Name: "one", SQL: "CREATE TABLE a (id INTEGER)"},
		{Version: 1, Name: "one again", SQL: "CREATE TABLE b (id INTEGER)"},
	}

	_, err := g.Migrate(context.Background(), defs)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMigrateWithNoDefinitions(t *testing.T) {
	g := openTestGateway(t, 1)
	ctx := context.Background()

	applied, err := g.Migrate(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, applied)

	// an empty but completed run still lifts the barrier
	_, err = g.CountUsers(ctx, nil)
	require.Error(t, err, "users table does not exist")
	require.NotErrorIs(t, err, ErrSchemaNotReady)
}
