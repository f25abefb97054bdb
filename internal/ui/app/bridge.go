package app

import (
	"context"
	"time"

	catalogdto "readinglist/internal/modules/catalog/dto"
	goaldto "readinglist/internal/modules/goal/dto"
	listdto "readinglist/internal/modules/readinglist/dto"
	statsdto "readinglist/internal/modules/stats/dto"
	"readinglist/internal/platform/clock"
)

// Each port is the slice of a module's CLI handler the screens use.

type CatalogPort interface {
	ListBooks(ctx context.Context) ([]catalogdto.BookOutput, error)
	SearchBooks(ctx context.Context, term string) ([]catalogdto.BookOutput, error)
	GetBook(ctx context.Context, isbn string) (catalogdto.BookOutput, error)
}

type ListPort interface {
	MyReadingList(ctx context.Context) ([]listdto.EntryOutput, error)
	ByStatus(ctx context.Context, status string) ([]listdto.EntryOutput, error)
	AddBook(ctx context.Context, isbn, status string) (int64, error)
	UpdateStatus(ctx context.Context, entryID int64, status string) error
	Rate(ctx context.Context, entryID int64, rating int, notes *string) error
	Remove(ctx context.Context, entryID int64) error
}

type GoalPort interface {
	ActiveGoals(ctx context.Context) ([]goaldto.GoalOutput, error)
	UpcomingDeadlines(ctx context.Context, days int) ([]goaldto.GoalOutput, error)
	GoalProgress(ctx context.Context, goalID int64) (goaldto.ProgressOutput, error)
	GoalBooks(ctx context.Context, goalID int64) ([]goaldto.GoalBookOutput, error)
	MarkGoalComplete(ctx context.Context, goalID int64) error
	AddBookToGoal(ctx context.Context, goalID int64, isbn string) error
	CreateGoal(ctx context.Context, name, description string, start, deadline time.Time, targetBooks, targetPages *int, isbns []string) (goaldto.GoalOutput, error)
}

type StatsPort interface {
	Overview(ctx context.Context) (statsdto.OverviewOutput, error)
}

// Services is everything the TUI talks to.
type Services struct {
	Catalog CatalogPort
	List    ListPort
	Goals   GoalPort
	Stats   StatsPort
	Clock   clock.Clock
}

// bridge satisfies every screen port at once. Screens that add a book to the
// list share AddToReadingList.
type bridge struct{ s Services }

func (b bridge) ListBooks(ctx context.Context) ([]catalogdto.BookOutput, error) {
	return b.s.Catalog.ListBooks(ctx)
}
func (b bridge) SearchBooks(ctx context.Context, term string) ([]catalogdto.BookOutput, error) {
	return b.s.Catalog.SearchBooks(ctx, term)
}
func (b bridge) GetBook(ctx context.Context, isbn string) (catalogdto.BookOutput, error) {
	return b.s.Catalog.GetBook(ctx, isbn)
}

// AddToReadingList adds with the default status.
func (b bridge) AddToReadingList(ctx context.Context, isbn string) (int64, error) {
	return b.s.List.AddBook(ctx, isbn, "")
}
func (b bridge) MyReadingList(ctx context.Context) ([]listdto.EntryOutput, error) {
	return b.s.List.MyReadingList(ctx)
}
func (b bridge) ByStatus(ctx context.Context, status string) ([]listdto.EntryOutput, error) {
	return b.s.List.ByStatus(ctx, status)
}
func (b bridge) UpdateStatus(ctx context.Context, entryID int64, status string) error {
	return b.s.List.UpdateStatus(ctx, entryID, status)
}
func (b bridge) Rate(ctx context.Context, entryID int64, rating int, notes *string) error {
	return b.s.List.Rate(ctx, entryID, rating, notes)
}
func (b bridge) Remove(ctx context.Context, entryID int64) error {
	return b.s.List.Remove(ctx, entryID)
}

func (b bridge) ActiveGoals(ctx context.Context) ([]goaldto.GoalOutput, error) {
	return b.s.Goals.ActiveGoals(ctx)
}
func (b bridge) UpcomingDeadlines(ctx context.Context, days int) ([]goaldto.GoalOutput, error) {
	return b.s.Goals.UpcomingDeadlines(ctx, days)
}
func (b bridge) GoalProgress(ctx context.Context, goalID int64) (goaldto.ProgressOutput, error) {
	return b.s.Goals.GoalProgress(ctx, goalID)
}
func (b bridge) GoalBooks(ctx context.Context, goalID int64) ([]goaldto.GoalBookOutput, error) {
	return b.s.Goals.GoalBooks(ctx, goalID)
}
func (b bridge) MarkGoalComplete(ctx context.Context, goalID int64) error {
	return b.s.Goals.MarkGoalComplete(ctx, goalID)
}
func (b bridge) AddBookToGoal(ctx context.Context, goalID int64, isbn string) error {
	return b.s.Goals.AddBookToGoal(ctx, goalID, isbn)
}
func (b bridge) CreateGoal(ctx context.Context, name, description string, start, deadline time.Time, targetBooks, targetPages *int, isbns []string) (goaldto.GoalOutput, error) {
	return b.s.Goals.CreateGoal(ctx, name, description, start, deadline, targetBooks, targetPages, isbns)
}

func (b bridge) Overview(ctx context.Context) (statsdto.OverviewOutput, error) {
	return b.s.Stats.Overview(ctx)
}
