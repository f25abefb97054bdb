package in

import (
	"context"

	"readinglist/internal/modules/readinglist/dto"
	listin "readinglist/internal/modules/readinglist/port/in"
)

type CLIHandler struct {
	usecase listin.Usecase
}

func NewCLIHandler(usecase listin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) MyReadingList(ctx context.Context) ([]dto.EntryOutput, error) {
	return h.usecase.MyReadingList(ctx)
}

func (h CLIHandler) ByStatus(ctx context.Context, status string) ([]dto.EntryOutput, error) {
	return h.usecase.ByStatus(ctx, status)
}

func (h CLIHandler) AddBook(ctx context.Context, isbn, status string) (int64, error) {
	return h.usecase.AddBook(ctx, dto.AddInput{ISBN: isbn, Status: status})
}

func (h CLIHandler) UpdateStatus(ctx context.Context, entryID int64, status string) error {
	return h.usecase.UpdateStatus(ctx, entryID, status)
}

func (h CLIHandler) Rate(ctx context.Context, entryID int64, rating int, notes *string) error {
	return h.usecase.Rate(ctx, dto.RateInput{EntryID: entryID, Rating: rating, Notes: notes})
}

func (h CLIHandler) Remove(ctx context.Context, entryID int64) error {
	return h.usecase.Remove(ctx, entryID)
}

func (h CLIHandler) RecentlyCompleted(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return h.usecase.RecentlyCompleted(ctx, limit)
}

func (h CLIHandler) CurrentlyReading(ctx context.Context) ([]dto.EntryOutput, error) {
	return h.usecase.CurrentlyReading(ctx)
}

func (h CLIHandler) TopRated(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return h.usecase.TopRated(ctx, limit)
}
