package dto

import "time"

type CreateGoalInput struct {
	Name        string
	Description string
	StartDate   time.Time
	Deadline    time.Time
	TargetBooks *int
	TargetPages *int
	// BookISBNs, when set, are linked to the new goal in the same transaction.
	BookISBNs []string
}

type AddBookInput struct {
	GoalID int64
	ISBN   string
}

type ExportInput struct {
	GoalID int64
	Dir    string
}

type ExportOutput struct {
	Path string
}

type GoalOutput struct {
	ID          int64
	Name        string
	Description string
	StartDate   time.Time
	Deadline    time.Time
	TargetBooks *int
	TargetPages *int
	Targets     string
	Completed   bool
}

type ProgressOutput struct {
	Goal          GoalOutput
	BooksAdded    int
	TotalPages    int
	BookPercent   float64
	PagePercent   float64
	BookTargetMet bool
	PageTargetMet bool
	Achieved      bool
	Overdue       bool
	DaysLeft      int
}

type GoalBookOutput struct {
	ISBN  string
	Title string
	Pages *int
}
