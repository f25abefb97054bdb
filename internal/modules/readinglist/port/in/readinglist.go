package in

import (
	"context"

	"readinglist/internal/modules/readinglist/dto"
)

type Usecase interface {
	MyReadingList(ctx context.Context) ([]dto.EntryOutput, error)
	ByStatus(ctx context.Context, status string) ([]dto.EntryOutput, error)
	AddBook(ctx context.Context, input dto.AddInput) (int64, error)
	UpdateStatus(ctx context.Context, entryID int64, status string) error
	Rate(ctx context.Context, input dto.RateInput) error
	Remove(ctx context.Context, entryID int64) error
	RecentlyCompleted(ctx context.Context, limit int) ([]dto.EntryOutput, error)
	CurrentlyReading(ctx context.Context) ([]dto.EntryOutput, error)
	TopRated(ctx context.Context, limit int) ([]dto.EntryOutput, error)
}
