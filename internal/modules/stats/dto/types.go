package dto

import (
	goaldto "readinglist/internal/modules/goal/dto"
	listdto "readinglist/internal/modules/readinglist/dto"
)

type StatusCount struct {
	Status string
	Label  string
	Count  int
}

type OverviewOutput struct {
	Total         int
	Completed     int
	Reading       int
	PagesRead     int
	Rated         int
	AverageRating float64
	ByStatus      []StatusCount

	RecentlyCompleted []listdto.EntryOutput
	TopRated          []listdto.EntryOutput

	ActiveGoals   int
	Goals         []goaldto.ProgressOutput
	AchievedGoals int
}
