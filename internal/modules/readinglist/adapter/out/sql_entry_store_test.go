package out_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listout "readinglist/internal/modules/readinglist/adapter/out"
	"readinglist/internal/modules/readinglist/domain"
	listport "readinglist/internal/modules/readinglist/port/out"
	"readinglist/internal/platform/database"
	"readinglist/internal/platform/database/databasetest"
	apperrors "readinglist/internal/platform/errors"
)

var base = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()
	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO books (isbn, title, pages, added_at) VALUES (?, ?, ?, ?)`, []any{"111", "Dune", 412, database.Timestamp(base)}},
		{`INSERT INTO books (isbn, title, pages, added_at) VALUES (?, ?, ?, ?)`, []any{"222", "Good Omens", nil, database.Timestamp(base)}},
		{`INSERT INTO books (isbn, title, pages, added_at) VALUES (?, ?, ?, ?)`, []any{"333", "Hyperion", 482, database.Timestamp(base)}},
		{`INSERT INTO authors (full_name) VALUES (?), (?), (?)`, []any{"Terry Pratchett", "Neil Gaiman", "Frank Herbert"}},
		{`INSERT INTO book_authors (book_isbn, author_id) VALUES (?, 1), (?, 2), (?, 3)`, []any{"222", "222", "111"}},
	}
	for _, s := range stmts {
		_, err := db.Exec(ctx, s.query, s.args...)
		require.NoError(t, err, s.query)
	}
}

func TestEntriesJoinBooksAndAuthors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := databasetest.Open(t)
	seed(t, db)
	store := listout.NewSQLEntryStore(db)

	first, err := store.Insert(ctx, "111", domain.StatusToRead, base)
	require.NoError(t, err)
	second, err := store.Insert(ctx, "222", domain.StatusCompleted, base.Add(time.Hour))
	require.NoError(t, err)

	entries, err := store.Entries(ctx, listport.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].ID, "newest update first")
	assert.Equal(t, "Good Omens", entries[0].Title)
	assert.Equal(t, "Neil Gaiman, Terry Pratchett", entries[0].Authors)
	assert.Nil(t, entries[0].Pages)
	assert.Equal(t, first, entries[1].ID)
	require.NotNil(t, entries[1].Pages)
	assert.Equal(t, 412, *entries[1].Pages)
	assert.True(t, entries[1].DateStarted.Equal(base))

	completed, err := store.Entries(ctx, listport.EntryFilter{Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "222", completed[0].ISBN)
}

func TestInsertClassifiesFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := databasetest.Open(t)
	seed(t, db)
	store := listout.NewSQLEntryStore(db)

	_, err := store.Insert(ctx, "111", domain.StatusToRead, base)
	require.NoError(t, err)
	_, err = store.Insert(ctx, "111", domain.StatusToRead, base)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "listed twice: %v", err)

	_, err = store.Insert(ctx, "999", domain.StatusToRead, base)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "unknown book: %v", err)
}

func TestUpdateStatusRestartsReading(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := databasetest.Open(t)
	seed(t, db)
	store := listout.NewSQLEntryStore(db)

	id, err := store.Insert(ctx, "111", domain.StatusToRead, base)
	require.NoError(t, err)

	later := base.Add(48 * time.Hour)
	require.NoError(t, store.UpdateStatus(ctx, id, domain.StatusPaused, later))
	entries, err := store.Entries(ctx, listport.EntryFilter{})
	require.NoError(t, err)
	assert.True(t, entries[0].DateStarted.Equal(base), "paused keeps the start date")

	require.NoError(t, store.UpdateStatus(ctx, id, domain.StatusCurrentlyReading, later))
	entries, err = store.Entries(ctx, listport.EntryFilter{})
	require.NoError(t, err)
	assert.True(t, entries[0].DateStarted.Equal(later))
	assert.True(t, entries[0].UpdatedAt.Equal(later))

	err = store.UpdateStatus(ctx, 404, domain.StatusPaused, later)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestRateAndTopRatedOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := databasetest.Open(t)
	seed(t, db)
	store := listout.NewSQLEntryStore(db)

	a, _ := store.Insert(ctx, "111", domain.StatusCompleted, base)
	b, _ := store.Insert(ctx, "222", domain.StatusCompleted, base)
	_, _ = store.Insert(ctx, "333", domain.StatusCompleted, base)

	notes := "re-read soon"
	require.NoError(t, store.Rate(ctx, a, 4, &notes, base.Add(time.Minute)))
	require.NoError(t, store.Rate(ctx, b, 5, nil, base.Add(2*time.Minute)))

	top, err := store.Entries(ctx, listport.EntryFilter{RatedOnly: true, Order: listport.OrderRating})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, b, top[0].ID)
	assert.Equal(t, a, top[1].ID)
	assert.Equal(t, "re-read soon", top[1].Notes)

	limited, err := store.Entries(ctx, listport.EntryFilter{Order: listport.OrderRating, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, b, limited[0].ID)

	empty := ""
	require.NoError(t, store.Rate(ctx, a, 3, &empty, base.Add(3*time.Minute)))
	top, err = store.Entries(ctx, listport.EntryFilter{RatedOnly: true, Order: listport.OrderRating})
	require.NoError(t, err)
	assert.Empty(t, top[1].Notes)

	assert.True(t, errors.Is(store.Rate(ctx, 404, 3, nil, base), apperrors.ErrNotFound))
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := databasetest.Open(t)
	seed(t, db)
	store := listout.NewSQLEntryStore(db)

	id, err := store.Insert(ctx, "111", domain.StatusToRead, base)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, id))
	assert.True(t, errors.Is(store.Delete(ctx, id), apperrors.ErrNotFound))

	entries, err := store.Entries(ctx, listport.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
