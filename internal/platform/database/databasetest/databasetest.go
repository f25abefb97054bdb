// Package databasetest opens a migrated SQLite database for store tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"readinglist/internal/platform/config"
	"readinglist/internal/platform/database"
)

func Open(t testing.TB) *database.DB {
	t.Helper()
	cfg := config.Config{
		DBDriver: config.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "test.db"),
	}
	if err := database.Migrate(cfg, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
