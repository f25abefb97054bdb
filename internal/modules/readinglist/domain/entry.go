package domain

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Entry is a book on the reading list together with the catalog fields the
// screens show.
type Entry struct {
	ID          int64
	ISBN        string
	Status      Status
	Rating      *int
	Notes       string
	DateStarted time.Time
	UpdatedAt   time.Time

	Title   string
	Authors string
	Pages   *int
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// Stars renders a rating as filled and empty stars.
func Stars(rating *int) string {
	if rating == nil {
		return "unrated"
	}
	out := make([]rune, 0, MaxRating)
	for i := 1; i <= MaxRating; i++ {
		if i <= *rating {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
