package dto

import "time"

type AddInput struct {
	ISBN string
	// Status defaults to to_read when empty.
	Status string
}

type RateInput struct {
	EntryID int64
	Rating  int
	// Notes replaces the stored notes when non-nil.
	Notes *string
}

type EntryOutput struct {
	ID          int64
	ISBN        string
	Title       string
	Authors     string
	Pages       *int
	Status      string
	StatusLabel string
	Rating      *int
	Stars       string
	Notes       string
	DateStarted time.Time
	UpdatedAt   time.Time
}
