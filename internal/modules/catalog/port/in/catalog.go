package in

import (
	"context"

	"readinglist/internal/modules/catalog/dto"
)

type Usecase interface {
	ListBooks(ctx context.Context) ([]dto.BookOutput, error)
	SearchBooks(ctx context.Context, term string) ([]dto.BookOutput, error)
	BooksBySubject(ctx context.Context, subjectID int64) ([]dto.BookOutput, error)
	BooksByAuthor(ctx context.Context, authorID int64) ([]dto.BookOutput, error)
	GetBook(ctx context.Context, isbn string) (dto.BookOutput, error)
	RecentlyAdded(ctx context.Context, limit int) ([]dto.BookOutput, error)
	AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error)
	ListAuthors(ctx context.Context) ([]dto.AuthorOutput, error)
	SearchAuthors(ctx context.Context, name string) ([]dto.AuthorOutput, error)
	MostReadAuthors(ctx context.Context, limit int) ([]dto.TallyOutput, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectOutput, error)
	SubjectBookCounts(ctx context.Context) ([]dto.TallyOutput, error)
	MyTopSubjects(ctx context.Context, limit int) ([]dto.TallyOutput, error)
}
