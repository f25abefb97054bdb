package usecase

import (
	"context"

	"readinglist/internal/modules/readinglist/domain"
	"readinglist/internal/modules/readinglist/dto"
	listin "readinglist/internal/modules/readinglist/port/in"
	"readinglist/internal/modules/readinglist/service"
)

type Interactor struct {
	svc *service.ReadingListService
}

func NewInteractor(svc *service.ReadingListService) listin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) MyReadingList(ctx context.Context) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.List(ctx))
}

func (i *Interactor) ByStatus(ctx context.Context, status string) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.ByStatus(ctx, status))
}

func (i *Interactor) AddBook(ctx context.Context, input dto.AddInput) (int64, error) {
	return i.svc.Add(ctx, input.ISBN, input.Status)
}

func (i *Interactor) UpdateStatus(ctx context.Context, entryID int64, status string) error {
	return i.svc.UpdateStatus(ctx, entryID, status)
}

func (i *Interactor) Rate(ctx context.Context, input dto.RateInput) error {
	return i.svc.Rate(ctx, input.EntryID, input.Rating, input.Notes)
}

func (i *Interactor) Remove(ctx context.Context, entryID int64) error {
	return i.svc.Remove(ctx, entryID)
}

func (i *Interactor) RecentlyCompleted(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.RecentlyCompleted(ctx, limit))
}

func (i *Interactor) CurrentlyReading(ctx context.Context) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.CurrentlyReading(ctx))
}

func (i *Interactor) TopRated(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return toOutputs(i.svc.TopRated(ctx, limit))
}

func toOutputs(entries []domain.Entry, err error) ([]dto.EntryOutput, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.EntryOutput{
			ID:          e.ID,
			ISBN:        e.ISBN,
			Title:       e.Title,
			Authors:     e.Authors,
			Pages:       e.Pages,
			Status:      string(e.Status),
			StatusLabel: e.Status.Label(),
			Rating:      e.Rating,
			Stars:       domain.Stars(e.Rating),
			Notes:       e.Notes,
			DateStarted: e.DateStarted,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return out, nil
}
