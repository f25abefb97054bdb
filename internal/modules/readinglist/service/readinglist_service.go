package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"readinglist/internal/modules/readinglist/domain"
	listout "readinglist/internal/modules/readinglist/port/out"
	"readinglist/internal/platform/clock"
	apperrors "readinglist/internal/platform/errors"
)

const (
	DefaultRecentCompleted = 5
	DefaultTopRated        = 10
)

type ReadingListService struct {
	clock clock.Clock
	store listout.EntryStore
	log   *zap.Logger
}

func NewReadingListService(clock clock.Clock, store listout.EntryStore, log *zap.Logger) *ReadingListService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReadingListService{clock: clock, store: store, log: log.Named("readinglist")}
}

func (s *ReadingListService) List(ctx context.Context) ([]domain.Entry, error) {
	return s.entries(ctx, listout.EntryFilter{})
}

func (s *ReadingListService) ByStatus(ctx context.Context, raw string) ([]domain.Entry, error) {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.entries(ctx, listout.EntryFilter{Status: status})
}

func (s *ReadingListService) CurrentlyReading(ctx context.Context) ([]domain.Entry, error) {
	return s.entries(ctx, listout.EntryFilter{Status: domain.StatusCurrentlyReading})
}

func (s *ReadingListService) RecentlyCompleted(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentCompleted
	}
	return s.entries(ctx, listout.EntryFilter{Status: domain.StatusCompleted, Limit: limit})
}

func (s *ReadingListService) TopRated(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = DefaultTopRated
	}
	return s.entries(ctx, listout.EntryFilter{RatedOnly: true, Order: listout.OrderRating, Limit: limit})
}

// Add lists a catalog book. An empty status means to_read.
func (s *ReadingListService) Add(ctx context.Context, isbn, rawStatus string) (int64, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return 0, fmt.Errorf("%w: isbn is required", apperrors.ErrInvalidInput)
	}
	status := domain.StatusToRead
	if strings.TrimSpace(rawStatus) != "" {
		var err error
		if status, err = domain.ParseStatus(rawStatus); err != nil {
			return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	id, err := s.store.Insert(ctx, isbn, status, s.clock.Now())
	if err != nil {
		return 0, s.fail("add to reading list", err, zap.String("isbn", isbn))
	}
	s.log.Info("book listed", zap.Int64("entry_id", id), zap.String("isbn", isbn), zap.String("status", string(status)))
	return id, nil
}

func (s *ReadingListService) UpdateStatus(ctx context.Context, id int64, raw string) error {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.UpdateStatus(ctx, id, status, s.clock.Now()); err != nil {
		return s.fail("update status", err, zap.Int64("entry_id", id))
	}
	return nil
}

// Rate stores a 1-5 rating. Notes, when given, replace the stored notes; an
// empty string clears them.
func (s *ReadingListService) Rate(ctx context.Context, id int64, rating int, notes *string) error {
	if err := domain.ValidateRating(rating); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		notes = &trimmed
	}
	if err := s.store.Rate(ctx, id, rating, notes, s.clock.Now()); err != nil {
		return s.fail("rate entry", err, zap.Int64("entry_id", id))
	}
	return nil
}

func (s *ReadingListService) Remove(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail("remove entry", err, zap.Int64("entry_id", id))
	}
	return nil
}

func (s *ReadingListService) entries(ctx context.Context, filter listout.EntryFilter) ([]domain.Entry, error) {
	entries, err := s.store.Entries(ctx, filter)
	if err != nil {
		return nil, s.fail("list entries", err, zap.String("status", string(filter.Status)))
	}
	return entries, nil
}

func (s *ReadingListService) fail(op string, err error, fields ...zap.Field) error {
	if apperrors.IsUserFacing(err) {
		return err
	}
	s.log.Warn(op, append(fields, zap.Error(err))...)
	if errors.Is(err, apperrors.ErrStorage) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorage, err)
}
