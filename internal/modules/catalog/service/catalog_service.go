package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"readinglist/internal/modules/catalog/domain"
	catalogout "readinglist/internal/modules/catalog/port/out"
	"readinglist/internal/platform/clock"
	apperrors "readinglist/internal/platform/errors"
)

const (
	DefaultRecentLimit      = 10
	DefaultMostReadLimit    = 10
	DefaultTopSubjectsLimit = 5
)

type CatalogService struct {
	clock clock.Clock
	store catalogout.CatalogStore
	tx    catalogout.Transactor
	books *lru.Cache[string, domain.Book]
	log   *zap.Logger
}

func NewCatalogService(clock clock.Clock, store catalogout.CatalogStore, tx catalogout.Transactor, cacheSize int, log *zap.Logger) (*CatalogService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cache, err := lru.New[string, domain.Book](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("book cache: %w", err)
	}
	return &CatalogService{clock: clock, store: store, tx: tx, books: cache, log: log.Named("catalog")}, nil
}

func (s *CatalogService) Find(ctx context.Context, filter catalogout.BookFilter) ([]domain.Book, error) {
	books, err := s.store.FindBooks(ctx, filter)
	if err != nil {
		return nil, s.fail("find books", err)
	}
	return books, nil
}

func (s *CatalogService) Search(ctx context.Context, term string) ([]domain.Book, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term is required", apperrors.ErrInvalidInput)
	}
	return s.Find(ctx, catalogout.BookFilter{Term: term})
}

func (s *CatalogService) RecentlyAdded(ctx context.Context, limit int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.Find(ctx, catalogout.BookFilter{Recent: true, Limit: limit})
}

// Get serves book details from the cache, loading and remembering misses.
func (s *CatalogService) Get(ctx context.Context, isbn string) (domain.Book, error) {
	isbn = strings.TrimSpace(isbn)
	if book, ok := s.books.Get(isbn); ok {
		return book, nil
	}
	book, err := s.store.GetBook(ctx, isbn)
	if err != nil {
		return domain.Book{}, s.fail("get book", err, zap.String("isbn", isbn))
	}
	s.books.Add(isbn, book)
	return book, nil
}

// Add stores the book and links its authors and subjects, creating any that
// do not exist yet. Nothing is written unless all of it succeeds.
func (s *CatalogService) Add(ctx context.Context, book domain.Book) (domain.Book, error) {
	book.ISBN = strings.TrimSpace(book.ISBN)
	book.Title = strings.TrimSpace(book.Title)
	book.Description = strings.TrimSpace(book.Description)
	book.Authors = domain.CleanNames(book.Authors)
	book.Subjects = domain.CleanNames(book.Subjects)
	if err := book.Validate(); err != nil {
		return domain.Book{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	book.AddedAt = s.clock.Now()

	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.InsertBook(ctx, book); err != nil {
			return err
		}
		for _, name := range book.Authors {
			id, err := s.store.EnsureAuthor(ctx, name)
			if err != nil {
				return err
			}
			if err := s.store.LinkAuthor(ctx, book.ISBN, id); err != nil {
				return err
			}
		}
		for _, name := range book.Subjects {
			id, err := s.store.EnsureSubject(ctx, name)
			if err != nil {
				return err
			}
			if err := s.store.LinkSubject(ctx, book.ISBN, id); err != nil {
				return err
			}
		}
		return nil
	})
	s.books.Remove(book.ISBN)
	if err != nil {
		return domain.Book{}, s.fail("add book", err, zap.String("isbn", book.ISBN))
	}
	s.log.Info("book added", zap.String("isbn", book.ISBN), zap.Int("authors", len(book.Authors)))
	return book, nil
}

func (s *CatalogService) Authors(ctx context.Context, nameLike string) ([]domain.Author, error) {
	authors, err := s.store.Authors(ctx, nameLike)
	if err != nil {
		return nil, s.fail("list authors", err)
	}
	return authors, nil
}

func (s *CatalogService) Subjects(ctx context.Context) ([]domain.Subject, error) {
	subjects, err := s.store.Subjects(ctx)
	if err != nil {
		return nil, s.fail("list subjects", err)
	}
	return subjects, nil
}

func (s *CatalogService) MostReadAuthors(ctx context.Context, limit int) ([]domain.Tally, error) {
	if limit <= 0 {
		limit = DefaultMostReadLimit
	}
	tallies, err := s.store.MostReadAuthors(ctx, limit)
	if err != nil {
		return nil, s.fail("most read authors", err)
	}
	return tallies, nil
}

func (s *CatalogService) SubjectBookCounts(ctx context.Context) ([]domain.Tally, error) {
	tallies, err := s.store.SubjectBookCounts(ctx)
	if err != nil {
		return nil, s.fail("subject book counts", err)
	}
	return tallies, nil
}

func (s *CatalogService) TopSubjects(ctx context.Context, limit int) ([]domain.Tally, error) {
	if limit <= 0 {
		limit = DefaultTopSubjectsLimit
	}
	tallies, err := s.store.TopListedSubjects(ctx, limit)
	if err != nil {
		return nil, s.fail("top subjects", err)
	}
	return tallies, nil
}

func (s *CatalogService) fail(op string, err error, fields ...zap.Field) error {
	if apperrors.IsUserFacing(err) {
		return err
	}
	s.log.Warn(op, append(fields, zap.Error(err))...)
	if errors.Is(err, apperrors.ErrStorage) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorage, err)
}
