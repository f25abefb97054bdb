package in

import (
	"context"

	"readinglist/internal/modules/catalog/dto"
	catalogin "readinglist/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListBooks(ctx context.Context) ([]dto.BookOutput, error) {
	return h.usecase.ListBooks(ctx)
}

func (h CLIHandler) SearchBooks(ctx context.Context, term string) ([]dto.BookOutput, error) {
	return h.usecase.SearchBooks(ctx, term)
}

func (h CLIHandler) BooksBySubject(ctx context.Context, subjectID int64) ([]dto.BookOutput, error) {
	return h.usecase.BooksBySubject(ctx, subjectID)
}

func (h CLIHandler) BooksByAuthor(ctx context.Context, authorID int64) ([]dto.BookOutput, error) {
	return h.usecase.BooksByAuthor(ctx, authorID)
}

func (h CLIHandler) GetBook(ctx context.Context, isbn string) (dto.BookOutput, error) {
	return h.usecase.GetBook(ctx, isbn)
}

func (h CLIHandler) RecentlyAdded(ctx context.Context, limit int) ([]dto.BookOutput, error) {
	return h.usecase.RecentlyAdded(ctx, limit)
}

func (h CLIHandler) AddBook(ctx context.Context, isbn, title string, year, pages *int, description string, authors, subjects []string) (dto.BookOutput, error) {
	return h.usecase.AddBook(ctx, dto.AddBookInput{
		ISBN:            isbn,
		Title:           title,
		PublicationYear: year,
		Pages:           pages,
		Description:     description,
		Authors:         authors,
		Subjects:        subjects,
	})
}

func (h CLIHandler) ListAuthors(ctx context.Context) ([]dto.AuthorOutput, error) {
	return h.usecase.ListAuthors(ctx)
}

func (h CLIHandler) SearchAuthors(ctx context.Context, name string) ([]dto.AuthorOutput, error) {
	return h.usecase.SearchAuthors(ctx, name)
}

func (h CLIHandler) MostReadAuthors(ctx context.Context, limit int) ([]dto.TallyOutput, error) {
	return h.usecase.MostReadAuthors(ctx, limit)
}

func (h CLIHandler) ListSubjects(ctx context.Context) ([]dto.SubjectOutput, error) {
	return h.usecase.ListSubjects(ctx)
}

func (h CLIHandler) SubjectBookCounts(ctx context.Context) ([]dto.TallyOutput, error) {
	return h.usecase.SubjectBookCounts(ctx)
}

func (h CLIHandler) MyTopSubjects(ctx context.Context, limit int) ([]dto.TallyOutput, error) {
	return h.usecase.MyTopSubjects(ctx, limit)
}
