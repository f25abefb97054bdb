package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr(n int) *int { return &n }

func TestSummarize(t *testing.T) {
	t.Parallel()
	entries := []Entry{
		{Status: "completed", Pages: ptr(300), Rating: ptr(4)},
		{Status: "completed", Rating: ptr(5)},
		{Status: "completed", Pages: ptr(200)},
		{Status: "currently_reading", Pages: ptr(900)},
		{Status: "to_read", Rating: ptr(3)},
		{Status: "legacy"},
	}
	got := Summarize(entries, []string{"to_read", "currently_reading", "completed", "paused"}, "completed", "currently_reading")
	want := Summary{
		Total:         6,
		Completed:     3,
		Reading:       1,
		PagesRead:     500,
		Rated:         3,
		AverageRating: 4,
		ByStatus: []StatusCount{
			{Status: "to_read", Count: 1},
			{Status: "currently_reading", Count: 1},
			{Status: "completed", Count: 3},
			{Status: "paused", Count: 0},
			{Status: "legacy", Count: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()
	got := Summarize(nil, []string{"to_read"}, "completed", "currently_reading")
	if got.Total != 0 || got.AverageRating != 0 || len(got.ByStatus) != 1 {
		t.Fatalf("unexpected empty summary: %+v", got)
	}
}
