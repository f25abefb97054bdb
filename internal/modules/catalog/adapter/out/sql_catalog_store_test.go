package out_test

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
	"readinglist/internal/platform/database"
	"readinglist/internal/platform/database/databasetest"
	apperrors "readinglist/internal/platform/errors"
)

var base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func addBook(t *testing.T, store catalogout.CatalogStore, book domain.Book) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.InsertBook(ctx, book))
	for _, name := range book.Authors {
		id, err := store.EnsureAuthor(ctx, name)
		require.NoError(t, err)
		require.NoError(t, store.LinkAuthor(ctx, book.ISBN, id))
	}
	for _, name := range book.Subjects {
		id, err := store.EnsureSubject(ctx, name)
		require.NoError(t, err)
		require.NoError(t, store.LinkSubject(ctx, book.ISBN, id))
	}
}

func listBook(t *testing.T, db *database.DB, isbn, status string) {
	t.Helper()
	now := database.Timestamp(base)
	_, err := db.Exec(context.Background(),
		`INSERT INTO user_books (book_isbn, reading_status, date_started, updated_at) VALUES (?, ?, ?, ?)`,
		isbn, status, now, now)
	require.NoError(t, err)
}

func seedCatalog(t *testing.T) (catalogout.CatalogStore, *database.DB) {
	t.Helper()
	db := databasetest.Open(t)
	store := catalogstore.NewSQLCatalogStore(db)
	pages := 412
	addBook(t, store, domain.Book{
		ISBN: "9780441013593", Title: "Dune", Pages: &pages, AddedAt: base,
		Authors: []string{"Frank Herbert"}, Subjects: []string{"Programming"},
	})
	addBook(t, store, domain.Book{
		ISBN: "9780262033848", Title: "Introduction to Algorithms", AddedAt: base.Add(time.Hour),
		Authors:  []string{"Thomas Cormen", "Charles Leiserson"},
		Subjects: []string{"Algorithms", "Computer Science"},
	})
	addBook(t, store, domain.Book{
		ISBN: "9780131103627", Title: "The C Programming Language", AddedAt: base.Add(2 * time.Hour),
		Authors:  []string{"Brian Kernighan", "Dennis Ritchie"},
		Subjects: []string{"Programming"},
	})
	return store, db
}

func TestFindBooksDefaultsToTitleOrder(t *testing.T) {
	t.Parallel()
	store, _ := seedCatalog(t)
	books, err := store.FindBooks(context.Background(), catalogout.BookFilter{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, []string{"Charles Leiserson", "Thomas Cormen"}, books[1].Authors)
	assert.Equal(t, []string{"Algorithms", "Computer Science"}, books[1].Subjects)
	require.NotNil(t, books[0].Pages)
	assert.Equal(t, 412, *books[0].Pages)
	assert.Nil(t, books[1].Pages)
	assert.True(t, books[0].AddedAt.Equal(base))
}

func TestFindBooksFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _ := seedCatalog(t)

	titles := func(filter catalogout.BookFilter) []string {
		books, err := store.FindBooks(ctx, filter)
		require.NoError(t, err)
		var out []string
		for _, b := range books {
			out = append(out, b.Title)
		}
		return out
	}

	assert.Equal(t, []string{"The C Programming Language"}, titles(catalogout.BookFilter{Term: "RITCHIE"}))
	assert.Equal(t, []string{"Introduction to Algorithms"}, titles(catalogout.BookFilter{Term: "262033"}))
	assert.Equal(t, []string{"Dune"}, titles(catalogout.BookFilter{Term: "dun"}))
	assert.Empty(t, titles(catalogout.BookFilter{Term: "100%"}))
	assert.Equal(t, []string{"The C Programming Language", "Introduction to Algorithms"}, titles(catalogout.BookFilter{Recent: true, Limit: 2}))

	authors, err := store.Authors(ctx, "kernighan")
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, []string{"The C Programming Language"}, titles(catalogout.BookFilter{AuthorID: authors[0].ID}))

	subjects, err := store.Subjects(ctx)
	require.NoError(t, err)
	var programming int64
	for _, s := range subjects {
		if s.Name == "Programming" {
			programming = s.ID
		}
	}
	require.NotZero(t, programming)
	assert.Equal(t, []string{"Dune", "The C Programming Language"}, titles(catalogout.BookFilter{SubjectID: programming}))
}

func TestGetBook(t *testing.T) {
	t.Parallel()
	store, _ := seedCatalog(t)
	book, err := store.GetBook(context.Background(), "9780131103627")
	require.NoError(t, err)
	assert.Equal(t, []string{"Brian Kernighan", "Dennis Ritchie"}, book.Authors)

	_, err = store.GetBook(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestInsertDuplicateBookConflicts(t *testing.T) {
	t.Parallel()
	store, _ := seedCatalog(t)
	err := store.InsertBook(context.Background(), domain.Book{ISBN: "9780441013593", Title: "Dune again", AddedAt: base})
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "got %v", err)
}

func TestEnsureAuthorIsIdempotent(t *testing.T) {
	t.Parallel()
	store, _ := seedCatalog(t)
	first, err := store.EnsureAuthor(context.Background(), "Frank Herbert")
	require.NoError(t, err)
	second, err := store.EnsureAuthor(context.Background(), "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRankings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, db := seedCatalog(t)
	listBook(t, db, "9780131103627", "completed")
	listBook(t, db, "9780441013593", "completed")
	listBook(t, db, "9780262033848", "to_read")

	authors, err := store.MostReadAuthors(ctx, 2)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Brian Kernighan", authors[0].Name)
	assert.Equal(t, 1, authors[0].Count)

	top, err := store.TopListedSubjects(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Programming", top[0].Name)
	assert.Equal(t, 2, top[0].Count)

	counts, err := store.SubjectBookCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, 12)
	for _, c := range counts {
		if c.Name == "Networking" {
			assert.Zero(t, c.Count)
		}
	}
}
