package usecase

import (
	"context"

	"readinglist/internal/modules/catalog/domain"
	"readinglist/internal/modules/catalog/dto"
	catalogin "readinglist/internal/modules/catalog/port/in"
	catalogout "readinglist/internal/modules/catalog/port/out"
	"readinglist/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListBooks(ctx context.Context) ([]dto.BookOutput, error) {
	return i.books(i.svc.Find(ctx, catalogout.BookFilter{}))
}

func (i *Interactor) SearchBooks(ctx context.Context, term string) ([]dto.BookOutput, error) {
	return i.books(i.svc.Search(ctx, term))
}

func (i *Interactor) BooksBySubject(ctx context.Context, subjectID int64) ([]dto.BookOutput, error) {
	return i.books(i.svc.Find(ctx, catalogout.BookFilter{SubjectID: subjectID}))
}

func (i *Interactor) BooksByAuthor(ctx context.Context, authorID int64) ([]dto.BookOutput, error) {
	return i.books(i.svc.Find(ctx, catalogout.BookFilter{AuthorID: authorID}))
}

func (i *Interactor) GetBook(ctx context.Context, isbn string) (dto.BookOutput, error) {
	book, err := i.svc.Get(ctx, isbn)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(book), nil
}

func (i *Interactor) RecentlyAdded(ctx context.Context, limit int) ([]dto.BookOutput, error) {
	return i.books(i.svc.RecentlyAdded(ctx, limit))
}

func (i *Interactor) AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error) {
	book, err := i.svc.Add(ctx, domain.Book{
		ISBN:            input.ISBN,
		Title:           input.Title,
		PublicationYear: input.PublicationYear,
		Pages:           input.Pages,
		Description:     input.Description,
		Authors:         input.Authors,
		Subjects:        input.Subjects,
	})
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(book), nil
}

func (i *Interactor) ListAuthors(ctx context.Context) ([]dto.AuthorOutput, error) {
	return i.SearchAuthors(ctx, "")
}

func (i *Interactor) SearchAuthors(ctx context.Context, name string) ([]dto.AuthorOutput, error) {
	authors, err := i.svc.Authors(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuthorOutput, 0, len(authors))
	for _, a := range authors {
		out = append(out, dto.AuthorOutput{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

func (i *Interactor) MostReadAuthors(ctx context.Context, limit int) ([]dto.TallyOutput, error) {
	return tallies(i.svc.MostReadAuthors(ctx, limit))
}

func (i *Interactor) ListSubjects(ctx context.Context) ([]dto.SubjectOutput, error) {
	subjects, err := i.svc.Subjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubjectOutput, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, dto.SubjectOutput{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

func (i *Interactor) SubjectBookCounts(ctx context.Context) ([]dto.TallyOutput, error) {
	return tallies(i.svc.SubjectBookCounts(ctx))
}

func (i *Interactor) MyTopSubjects(ctx context.Context, limit int) ([]dto.TallyOutput, error) {
	return tallies(i.svc.TopSubjects(ctx, limit))
}

func (i *Interactor) books(books []domain.Book, err error) ([]dto.BookOutput, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookOutput, 0, len(books))
	for _, b := range books {
		out = append(out, toBookOutput(b))
	}
	return out, nil
}

func toBookOutput(b domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ISBN:            b.ISBN,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		Pages:           b.Pages,
		Description:     b.Description,
		AddedAt:         b.AddedAt,
		Authors:         b.Authors,
		Subjects:        b.Subjects,
		Byline:          b.Byline(),
	}
}

func tallies(in []domain.Tally, err error) ([]dto.TallyOutput, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.TallyOutput, 0, len(in))
	for _, t := range in {
		out = append(out, dto.TallyOutput{ID: t.ID, Name: t.Name, Count: t.Count})
	}
	return out, nil
}
