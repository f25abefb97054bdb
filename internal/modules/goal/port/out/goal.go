package out

import (
	"context"
	"time"

	"readinglist/internal/modules/goal/domain"
)

type GoalStore interface {
	// ActiveGoals returns incomplete goals, earliest deadline first.
	ActiveGoals(ctx context.Context) ([]domain.Goal, error)
	// ProgressCounts returns the goal with the number of linked books and the
	// sum of their page counts. Unknown ids yield apperrors.ErrNotFound.
	ProgressCounts(ctx context.Context, goalID int64) (domain.Goal, int, int, error)
	Create(ctx context.Context, goal domain.Goal) (int64, error)
	AddBook(ctx context.Context, goalID int64, isbn string) error
	MarkComplete(ctx context.Context, goalID int64) error
	DueBetween(ctx context.Context, from, to time.Time) ([]domain.Goal, error)
	Books(ctx context.Context, goalID int64) ([]domain.GoalBook, error)
}

type NoteStore interface {
	Write(ctx context.Context, dir string, note domain.Note) (string, error)
	Read(ctx context.Context, path string) (domain.Note, error)
}

// Transactor runs fn so that every store call made with its context commits
// or rolls back together.
type Transactor interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}
