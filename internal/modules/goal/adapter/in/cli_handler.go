package in

import (
	"context"
	"time"

	"readinglist/internal/modules/goal/dto"
	goalin "readinglist/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ActiveGoals(ctx context.Context) ([]dto.GoalOutput, error) {
	return h.usecase.ActiveGoals(ctx)
}

func (h CLIHandler) GoalProgress(ctx context.Context, goalID int64) (dto.ProgressOutput, error) {
	return h.usecase.GoalProgress(ctx, goalID)
}

func (h CLIHandler) IsGoalAchieved(ctx context.Context, goalID int64) (bool, error) {
	return h.usecase.IsGoalAchieved(ctx, goalID)
}

func (h CLIHandler) CreateGoal(ctx context.Context, name, description string, start, deadline time.Time, targetBooks, targetPages *int, isbns []string) (dto.GoalOutput, error) {
	return h.usecase.CreateGoal(ctx, dto.CreateGoalInput{
		Name:        name,
		Description: description,
		StartDate:   start,
		Deadline:    deadline,
		TargetBooks: targetBooks,
		TargetPages: targetPages,
		BookISBNs:   isbns,
	})
}

func (h CLIHandler) AddBookToGoal(ctx context.Context, goalID int64, isbn string) error {
	return h.usecase.AddBookToGoal(ctx, dto.AddBookInput{GoalID: goalID, ISBN: isbn})
}

func (h CLIHandler) MarkGoalComplete(ctx context.Context, goalID int64) error {
	return h.usecase.MarkGoalComplete(ctx, goalID)
}

func (h CLIHandler) UpcomingDeadlines(ctx context.Context, days int) ([]dto.GoalOutput, error) {
	return h.usecase.UpcomingDeadlines(ctx, days)
}

func (h CLIHandler) GoalBooks(ctx context.Context, goalID int64) ([]dto.GoalBookOutput, error) {
	return h.usecase.GoalBooks(ctx, goalID)
}

func (h CLIHandler) ExportGoal(ctx context.Context, goalID int64, dir string) (dto.ExportOutput, error) {
	return h.usecase.ExportGoal(ctx, dto.ExportInput{GoalID: goalID, Dir: dir})
}

func (h CLIHandler) ImportGoal(ctx context.Context, path string) (dto.GoalOutput, error) {
	return h.usecase.ImportGoal(ctx, path)
}
