package usecase

import (
	"context"

	"readinglist/internal/modules/goal/domain"
	"readinglist/internal/modules/goal/dto"
	goalin "readinglist/internal/modules/goal/port/in"
	"readinglist/internal/modules/goal/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ActiveGoals(ctx context.Context) ([]dto.GoalOutput, error) {
	goals, err := i.svc.ActiveGoals(ctx)
	if err != nil {
		return nil, err
	}
	return toGoalOutputs(goals), nil
}

func (i *Interactor) GoalProgress(ctx context.Context, goalID int64) (dto.ProgressOutput, error) {
	progress, err := i.svc.Progress(ctx, goalID)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	standing := progress.Standing(i.svc.Now())
	return dto.ProgressOutput{
		Goal:          toGoalOutput(progress.Goal),
		BooksAdded:    progress.BooksAdded,
		TotalPages:    progress.TotalPages,
		BookPercent:   progress.BookProgressPercentage,
		PagePercent:   progress.PageProgressPercentage,
		BookTargetMet: progress.BookTargetMet,
		PageTargetMet: progress.PageTargetMet,
		Achieved:      progress.Achieved,
		Overdue:       standing.Overdue,
		DaysLeft:      standing.DaysLeft,
	}, nil
}

func (i *Interactor) IsGoalAchieved(ctx context.Context, goalID int64) (bool, error) {
	progress, err := i.svc.Progress(ctx, goalID)
	if err != nil {
		return false, err
	}
	return progress.Achieved, nil
}

func (i *Interactor) CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error) {
	goal := domain.Goal{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		Deadline:    input.Deadline,
		TargetBooks: input.TargetBooks,
		TargetPages: input.TargetPages,
	}
	var (
		id  int64
		err error
	)
	if len(input.BookISBNs) > 0 {
		id, err = i.svc.CreateWithBooks(ctx, goal, input.BookISBNs)
	} else {
		id, err = i.svc.Create(ctx, goal)
	}
	if err != nil {
		return dto.GoalOutput{}, err
	}
	goal.ID = id
	return toGoalOutput(goal), nil
}

func (i *Interactor) AddBookToGoal(ctx context.Context, input dto.AddBookInput) error {
	return i.svc.AddBook(ctx, input.GoalID, input.ISBN)
}

func (i *Interactor) MarkGoalComplete(ctx context.Context, goalID int64) error {
	return i.svc.MarkComplete(ctx, goalID)
}

func (i *Interactor) UpcomingDeadlines(ctx context.Context, days int) ([]dto.GoalOutput, error) {
	goals, err := i.svc.UpcomingDeadlines(ctx, days)
	if err != nil {
		return nil, err
	}
	return toGoalOutputs(goals), nil
}

func (i *Interactor) GoalBooks(ctx context.Context, goalID int64) ([]dto.GoalBookOutput, error) {
	books, err := i.svc.Books(ctx, goalID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalBookOutput, 0, len(books))
	for _, b := range books {
		out = append(out, dto.GoalBookOutput{ISBN: b.ISBN, Title: b.Title, Pages: b.Pages})
	}
	return out, nil
}

func (i *Interactor) ExportGoal(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	path, err := i.svc.Export(ctx, input.GoalID, input.Dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path}, nil
}

func (i *Interactor) ImportGoal(ctx context.Context, path string) (dto.GoalOutput, error) {
	_, goal, err := i.svc.Import(ctx, path)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func toGoalOutput(g domain.Goal) dto.GoalOutput {
	return dto.GoalOutput{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		StartDate:   g.StartDate,
		Deadline:    g.Deadline,
		TargetBooks: g.TargetBooks,
		TargetPages: g.TargetPages,
		Targets:     g.TargetSummary(),
		Completed:   g.Completed,
	}
}

func toGoalOutputs(goals []domain.Goal) []dto.GoalOutput {
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalOutput(g))
	}
	return out
}
