package domain

// Entry is the part of a reading-list entry the statistics need.
type Entry struct {
	Status string
	Pages  *int
	Rating *int
}

type StatusCount struct {
	Status string
	Count  int
}

// Summary aggregates a reading list. AverageRating is zero when nothing is
// rated.
type Summary struct {
	Total         int
	Completed     int
	Reading       int
	PagesRead     int
	Rated         int
	AverageRating float64
	ByStatus      []StatusCount
}

// Summarize counts entries per status in the order given by statuses;
// statuses not listed there are appended in first-seen order.
func Summarize(entries []Entry, statuses []string, completed, reading string) Summary {
	sum := Summary{Total: len(entries)}
	counts := make(map[string]int, len(statuses))
	order := append([]string(nil), statuses...)
	known := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		known[s] = true
	}

	ratingTotal := 0
	for _, e := range entries {
		counts[e.Status]++
		if !known[e.Status] {
			known[e.Status] = true
			order = append(order, e.Status)
		}
		switch e.Status {
		case completed:
			sum.Completed++
			if e.Pages != nil {
				sum.PagesRead += *e.Pages
			}
		case reading:
			sum.Reading++
		}
		if e.Rating != nil {
			sum.Rated++
			ratingTotal += *e.Rating
		}
	}
	if sum.Rated > 0 {
		sum.AverageRating = float64(ratingTotal) / float64(sum.Rated)
	}
	for _, s := range order {
		sum.ByStatus = append(sum.ByStatus, StatusCount{Status: s, Count: counts[s]})
	}
	return sum
}
