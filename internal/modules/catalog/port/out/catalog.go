package out

import (
	"context"

	"readinglist/internal/modules/catalog/domain"
)

// BookFilter narrows FindBooks. The zero value lists every book by title.
type BookFilter struct {
	Term      string
	SubjectID int64
	AuthorID  int64
	// Recent orders by insertion time, newest first, and keeps Limit rows.
	Recent bool
	Limit  int
}

type CatalogStore interface {
	FindBooks(ctx context.Context, filter BookFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, isbn string) (domain.Book, error)
	InsertBook(ctx context.Context, book domain.Book) error
	// EnsureAuthor returns the id of the named author, creating it if needed.
	EnsureAuthor(ctx context.Context, name string) (int64, error)
	EnsureSubject(ctx context.Context, name string) (int64, error)
	LinkAuthor(ctx context.Context, isbn string, authorID int64) error
	LinkSubject(ctx context.Context, isbn string, subjectID int64) error

	Authors(ctx context.Context, nameLike string) ([]domain.Author, error)
	Subjects(ctx context.Context) ([]domain.Subject, error)
	// MostReadAuthors ranks authors by completed reading-list entries.
	MostReadAuthors(ctx context.Context, limit int) ([]domain.Tally, error)
	// SubjectBookCounts includes subjects without books.
	SubjectBookCounts(ctx context.Context) ([]domain.Tally, error)
	// TopListedSubjects ranks subjects by reading-list entries.
	TopListedSubjects(ctx context.Context, limit int) ([]domain.Tally, error)
}

type Transactor interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}
