package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogstore "readinglist/internal/modules/catalog/adapter/out"
	"readinglist/internal/modules/catalog/domain"
	catalogout "readinglist/internal/modules/catalog/port/out"
	"readinglist/internal/modules/catalog/service"
	"readinglist/internal/platform/clock"
	"readinglist/internal/platform/database/databasetest"
	apperrors "readinglist/internal/platform/errors"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// countingStore counts GetBook calls and can fail subject links.
type countingStore struct {
	catalogout.CatalogStore
	gets        int
	failSubject bool
}

func (c *countingStore) GetBook(ctx context.Context, isbn string) (domain.Book, error) {
	c.gets++
	return c.CatalogStore.GetBook(ctx, isbn)
}

func (c *countingStore) LinkSubject(ctx context.Context, isbn string, id int64) error {
	if c.failSubject {
		return errors.New("link failed")
	}
	return c.CatalogStore.LinkSubject(ctx, isbn, id)
}

func newService(t *testing.T) (*service.CatalogService, *countingStore) {
	t.Helper()
	db := databasetest.Open(t)
	store := &countingStore{CatalogStore: catalogstore.NewSQLCatalogStore(db)}
	svc, err := service.NewCatalogService(clock.Fixed(now), store, db, 8, nil)
	require.NoError(t, err)
	return svc, store
}

func TestAddNormalizesAndStamps(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	book, err := svc.Add(context.Background(), domain.Book{
		ISBN:     " 111 ",
		Title:    " Dune ",
		Authors:  []string{"Frank  Herbert", "frank herbert"},
		Subjects: []string{"Science Fiction"},
	})
	require.NoError(t, err)
	assert.Equal(t, "111", book.ISBN)
	assert.Equal(t, []string{"Frank Herbert"}, book.Authors)
	assert.True(t, book.AddedAt.Equal(now))

	got, err := svc.Get(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, []string{"Science Fiction"}, got.Subjects)
}

func TestAddRejectsInvalidBook(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	_, err := svc.Add(context.Background(), domain.Book{ISBN: "111"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestAddRollsBackOnLinkFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService(t)
	store.failSubject = true

	_, err := svc.Add(ctx, domain.Book{ISBN: "111", Title: "Dune", Authors: []string{"Frank Herbert"}, Subjects: []string{"Sci-Fi"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))

	_, err = svc.Get(ctx, "111")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	authors, err := svc.Authors(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestGetIsCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService(t)
	_, err := svc.Add(ctx, domain.Book{ISBN: "111", Title: "Dune"})
	require.NoError(t, err)

	for range 3 {
		_, err := svc.Get(ctx, "111")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.gets)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, 3, store.gets, "misses are not cached")
}

func TestSearchRequiresTerm(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	_, err := svc.Search(context.Background(), "  ")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestRecentlyAddedDefaultLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)
	for i := range 12 {
		_, err := svc.Add(ctx, domain.Book{ISBN: string(rune('a' + i)), Title: "Book"})
		require.NoError(t, err)
	}
	books, err := svc.RecentlyAdded(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, books, service.DefaultRecentLimit)
}

func TestNewCatalogServiceRejectsBadCacheSize(t *testing.T) {
	t.Parallel()
	_, err := service.NewCatalogService(clock.Fixed(now), nil, nil, 0, nil)
	assert.Error(t, err)
}
