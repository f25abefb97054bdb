package domain

import (
	"fmt"
	"strings"
	"time"
)

// Goal is a reading target with a deadline. Either target may be absent; a
// nil target is never a zero one.
type Goal struct {
	ID          int64
	Name        string
	Description string
	StartDate   time.Time
	Deadline    time.Time
	TargetBooks *int
	TargetPages *int
	Completed   bool
}

// Target returns a pointer to n for building optional targets.
func Target(n int) *int { return &n }

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("goal name is required")
	}
	if g.StartDate.IsZero() || g.Deadline.IsZero() {
		return fmt.Errorf("start date and deadline are required")
	}
	if !g.Deadline.After(g.StartDate) {
		return fmt.Errorf("deadline must be after start date")
	}
	if g.TargetBooks != nil && *g.TargetBooks <= 0 {
		return fmt.Errorf("target books must be a positive number")
	}
	if g.TargetPages != nil && *g.TargetPages <= 0 {
		return fmt.Errorf("target pages must be a positive number")
	}
	return nil
}

// HasTarget reports whether at least one of the targets is set.
func (g Goal) HasTarget() bool {
	return g.TargetBooks != nil || g.TargetPages != nil
}

// TargetSummary renders the targets as "10 books, 3000 pages".
func (g Goal) TargetSummary() string {
	var parts []string
	if g.TargetBooks != nil {
		parts = append(parts, fmt.Sprintf("%d books", *g.TargetBooks))
	}
	if g.TargetPages != nil {
		parts = append(parts, fmt.Sprintf("%d pages", *g.TargetPages))
	}
	if len(parts) == 0 {
		return "no targets"
	}
	return strings.Join(parts, ", ")
}

// GoalBook is a catalog book counted towards a goal.
type GoalBook struct {
	ISBN  string
	Title string
	Pages *int
}

// Note is the exportable form of a goal: its progress and the books linked to it.
type Note struct {
	Progress Progress
	Books    []GoalBook
}
