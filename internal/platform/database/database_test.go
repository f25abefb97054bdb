package database_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readinglist/internal/platform/config"
	"readinglist/internal/platform/database"
	"readinglist/internal/platform/database/databasetest"
	apperrors "readinglist/internal/platform/errors"
)

func TestMigrateSeedsSubjects(t *testing.T) {
	t.Parallel()
	db := databasetest.Open(t)
	var n int
	require.NoError(t, db.QueryRow(context.Background(), `SELECT COUNT(*) FROM subjects`).Scan(&n))
	assert.Equal(t, 12, n)
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()
	cfg := config.Config{DBDriver: config.DriverSQLite, DSN: t.TempDir() + "/again.db"}
	require.NoError(t, database.Migrate(cfg, nil))
	require.NoError(t, database.Migrate(cfg, nil))
}

func TestWithinRollsBackOnError(t *testing.T) {
	t.Parallel()
	db := databasetest.Open(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.Within(ctx, func(ctx context.Context) error {
		if _, err := db.Exec(ctx, `INSERT INTO authors (full_name) VALUES (?)`, "Ann Writer"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n))
	assert.Zero(t, n)
}

func TestClassify(t *testing.T) {
	t.Parallel()
	db := databasetest.Open(t)
	ctx := context.Background()

	require.NoError(t, database.Classify(nil, "noop"))
	assert.ErrorIs(t, database.Classify(sql.ErrNoRows, "find"), apperrors.ErrNotFound)
	assert.ErrorIs(t, database.Classify(fmt.Errorf("dial: refused"), "dial"), apperrors.ErrStorage)

	_, err := db.Exec(ctx, `INSERT INTO authors (full_name) VALUES (?)`, "Dup")
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO authors (full_name) VALUES (?)`, "Dup")
	assert.ErrorIs(t, database.Classify(err, "insert author"), apperrors.ErrConflict)

	_, err = db.Exec(ctx, `INSERT INTO goal_books (goal_id, book_isbn) VALUES (?, ?)`, 99, "missing")
	assert.ErrorIs(t, database.Classify(err, "link"), apperrors.ErrNotFound)
}

func TestRebind(t *testing.T) {
	t.Parallel()
	q := `SELECT * FROM t WHERE a = ? AND b = '?' AND c = ?`
	assert.Equal(t, q, database.NewForDialect(config.DriverSQLite).Rebind(q))
	assert.Equal(t, `SELECT * FROM t WHERE a = $1 AND b = '?' AND c = $2`,
		database.NewForDialect(config.DriverPostgres).Rebind(q))
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2026-03-01", "2026-03-01T00:00:00Z", "2026-03-01 00:00:00"} {
		got, err := database.ParseTime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}
	_, err := database.ParseTime("March first")
	assert.Error(t, err)
}
