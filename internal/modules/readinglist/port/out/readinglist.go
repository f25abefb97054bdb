package out

import (
	"context"
	"time"

	"readinglist/internal/modules/readinglist/domain"
)

type Order int

const (
	// OrderRecent sorts by last update, newest first.
	OrderRecent Order = iota
	// OrderRating sorts rated entries first, best first.
	OrderRating
)

type EntryFilter struct {
	Status    domain.Status
	RatedOnly bool
	Order     Order
	Limit     int
}

type EntryStore interface {
	Entries(ctx context.Context, filter EntryFilter) ([]domain.Entry, error)
	// Insert fails with ErrConflict when the book is already listed and
	// ErrNotFound when it is not in the catalog.
	Insert(ctx context.Context, isbn string, status domain.Status, at time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status, at time.Time) error
	Rate(ctx context.Context, id int64, rating int, notes *string, at time.Time) error
	Delete(ctx context.Context, id int64) error
}
