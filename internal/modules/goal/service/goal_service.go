package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"readinglist/internal/modules/goal/domain"
	goalout "readinglist/internal/modules/goal/port/out"
	"readinglist/internal/platform/clock"
	apperrors "readinglist/internal/platform/errors"
)

const DefaultUpcomingDays = 7

type GoalService struct {
	clock clock.Clock
	store goalout.GoalStore
	notes goalout.NoteStore
	tx    goalout.Transactor
	log   *zap.Logger
}

func NewGoalService(clock clock.Clock, store goalout.GoalStore, notes goalout.NoteStore, tx goalout.Transactor, log *zap.Logger) *GoalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalService{clock: clock, store: store, notes: notes, tx: tx, log: log.Named("goal")}
}

func (s *GoalService) Now() time.Time { return s.clock.Now() }

func (s *GoalService) ActiveGoals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := s.store.ActiveGoals(ctx)
	if err != nil {
		return nil, s.fail("list active goals", err)
	}
	return goals, nil
}

func (s *GoalService) Progress(ctx context.Context, goalID int64) (domain.Progress, error) {
	goal, books, pages, err := s.store.ProgressCounts(ctx, goalID)
	if err != nil {
		return domain.Progress{}, s.fail("goal progress", err, zap.Int64("goal_id", goalID))
	}
	return domain.ComputeProgress(goal, books, pages), nil
}

func (s *GoalService) Create(ctx context.Context, goal domain.Goal) (int64, error) {
	goal.Name = strings.TrimSpace(goal.Name)
	if err := goal.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	goal.Completed = false
	id, err := s.store.Create(ctx, goal)
	if err != nil {
		return 0, s.fail("create goal", err)
	}
	s.log.Info("goal created", zap.Int64("goal_id", id), zap.String("name", goal.Name))
	return id, nil
}

// CreateWithBooks creates the goal and links every isbn, or does neither.
func (s *GoalService) CreateWithBooks(ctx context.Context, goal domain.Goal, isbns []string) (int64, error) {
	isbns = cleanISBNs(isbns)
	if len(isbns) == 0 {
		return 0, fmt.Errorf("%w: select at least one book for the goal", apperrors.ErrInvalidInput)
	}
	var id int64
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		if id, err = s.Create(ctx, goal); err != nil {
			return err
		}
		for _, isbn := range isbns {
			if err := s.store.AddBook(ctx, id, isbn); err != nil {
				return s.fail("link book", err, zap.Int64("goal_id", id), zap.String("isbn", isbn))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *GoalService) AddBook(ctx context.Context, goalID int64, isbn string) error {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return fmt.Errorf("%w: isbn is required", apperrors.ErrInvalidInput)
	}
	if err := s.store.AddBook(ctx, goalID, isbn); err != nil {
		return s.fail("add book to goal", err, zap.Int64("goal_id", goalID), zap.String("isbn", isbn))
	}
	return nil
}

func (s *GoalService) MarkComplete(ctx context.Context, goalID int64) error {
	if err := s.store.MarkComplete(ctx, goalID); err != nil {
		return s.fail("mark goal complete", err, zap.Int64("goal_id", goalID))
	}
	s.log.Info("goal completed", zap.Int64("goal_id", goalID))
	return nil
}

// UpcomingDeadlines returns active goals due between today and days from now.
func (s *GoalService) UpcomingDeadlines(ctx context.Context, days int) ([]domain.Goal, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", apperrors.ErrInvalidInput)
	}
	if days == 0 {
		days = DefaultUpcomingDays
	}
	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	goals, err := s.store.DueBetween(ctx, today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, s.fail("upcoming deadlines", err)
	}
	return goals, nil
}

func (s *GoalService) Books(ctx context.Context, goalID int64) ([]domain.GoalBook, error) {
	books, err := s.store.Books(ctx, goalID)
	if err != nil {
		return nil, s.fail("goal books", err, zap.Int64("goal_id", goalID))
	}
	return books, nil
}

func (s *GoalService) Export(ctx context.Context, goalID int64, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	progress, err := s.Progress(ctx, goalID)
	if err != nil {
		return "", err
	}
	books, err := s.Books(ctx, goalID)
	if err != nil {
		return "", err
	}
	path, err := s.notes.Write(ctx, dir, domain.Note{Progress: progress, Books: books})
	if err != nil {
		return "", s.fail("write goal note", err, zap.Int64("goal_id", goalID))
	}
	return path, nil
}

// Import creates a new goal from an exported note. Linked books, completion
// and the original id are not carried over.
func (s *GoalService) Import(ctx context.Context, path string) (int64, domain.Goal, error) {
	note, err := s.notes.Read(ctx, path)
	if err != nil {
		return 0, domain.Goal{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	goal := note.Progress.Goal
	goal.ID = 0
	id, err := s.Create(ctx, goal)
	if err != nil {
		return 0, domain.Goal{}, err
	}
	goal.ID = id
	return id, goal, nil
}

// fail logs storage failures; user-facing errors pass through unlogged.
func (s *GoalService) fail(op string, err error, fields ...zap.Field) error {
	if apperrors.IsUserFacing(err) {
		return err
	}
	s.log.Warn(op, append(fields, zap.Error(err))...)
	if errors.Is(err, apperrors.ErrStorage) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorage, err)
}

func cleanISBNs(isbns []string) []string {
	out := make([]string, 0, len(isbns))
	seen := make(map[string]bool, len(isbns))
	for _, isbn := range isbns {
		isbn = strings.TrimSpace(isbn)
		if isbn == "" || seen[isbn] {
			continue
		}
		seen[isbn] = true
		out = append(out, isbn)
	}
	return out
}
