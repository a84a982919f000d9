// Package dbtest opens a migrated, seeded SQLite database for store-backed tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"backoffice/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a fresh database in t.TempDir(); it is closed on cleanup.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, _ := NewWithPath(t)
	return gdb
}

// NewWithPath is New plus the file path, for tests that open more handles.
func NewWithPath(t testing.TB) (*gorm.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "backoffice.db")
	gdb := Open(t, path)

	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.Seed(context.Background(), gdb))
	return gdb, path
}

// Open opens another handle (its own connection) on an existing file.
func Open(t testing.TB, path string) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
