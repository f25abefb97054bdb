package in

import (
	"context"

	"readinglist/internal/modules/goal/dto"
)

type Usecase interface {
	ActiveGoals(ctx context.Context) ([]dto.GoalOutput, error)
	GoalProgress(ctx context.Context, goalID int64) (dto.ProgressOutput, error)
	IsGoalAchieved(ctx context.Context, goalID int64) (bool, error)
	CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error)
	AddBookToGoal(ctx context.Context, input dto.AddBookInput) error
	MarkGoalComplete(ctx context.Context, goalID int64) error
	UpcomingDeadlines(ctx context.Context, days int) ([]dto.GoalOutput, error)
	GoalBooks(ctx context.Context, goalID int64) ([]dto.GoalBookOutput, error)
	ExportGoal(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	ImportGoal(ctx context.Context, path string) (dto.GoalOutput, error)
}
