package domain

import (
	"math"
	"time"
)

// Progress is derived from a goal and its aggregated counts. It is never
// stored.
type Progress struct {
	Goal                   Goal
	BooksAdded             int
	TotalPages             int
	BookProgressPercentage float64
	PageProgressPercentage float64
	BookTargetMet          bool
	PageTargetMet          bool
	Achieved               bool
}

// ComputeProgress derives percentages and the achievement verdict. An unset
// target counts as fully met (100%), so a goal with only a page target is
// achieved on pages alone.
func ComputeProgress(goal Goal, booksAdded, totalPages int) Progress {
	bookPct, bookMet := measure(booksAdded, goal.TargetBooks)
	pagePct, pageMet := measure(totalPages, goal.TargetPages)
	return Progress{
		Goal:                   goal,
		BooksAdded:             booksAdded,
		TotalPages:             totalPages,
		BookProgressPercentage: bookPct,
		PageProgressPercentage: pagePct,
		BookTargetMet:          bookMet,
		PageTargetMet:          pageMet,
		Achieved:               bookMet && pageMet,
	}
}

func measure(done int, target *int) (float64, bool) {
	if target == nil {
		return 100, true
	}
	pct := math.Min(100, 100*float64(done)/float64(*target))
	return pct, done >= *target
}

// Standing describes where an unachieved goal sits against its deadline.
type Standing struct {
	Achieved bool
	Overdue  bool
	DaysLeft int
}

func (p Progress) Standing(now time.Time) Standing {
	if p.Achieved {
		return Standing{Achieved: true}
	}
	left := p.Goal.Deadline.Sub(now)
	if left <= 0 {
		return Standing{Overdue: true}
	}
	return Standing{DaysLeft: int(left.Hours() / 24)}
}
