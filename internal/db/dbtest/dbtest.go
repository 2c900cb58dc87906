// Package dbtest provides a migrated and seeded sqlite database for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/schema"
)

// Open returns an empty sqlite database living in the test's temp dir.
// The database is closed when the test ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	gdb, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), db.GormConfig(0))
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return gdb
}

// New returns a database with the current schema and the seed data.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := Open(t)

	require.NoError(t, schema.Migrate(context.Background(), gdb, config.EngineSQLite), "failed to migrate test database")
	require.NoError(t, schema.Seed(context.Background(), gdb), "failed to seed test database")

	return gdb
}
