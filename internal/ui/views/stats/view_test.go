package stats_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/stretchr/testify/assert"

	goaldto "readinglist/internal/modules/goal/dto"
	listdto "readinglist/internal/modules/readinglist/dto"
	statsdto "readinglist/internal/modules/stats/dto"
	"readinglist/internal/ui/views/stats"
)

func TestRender(t *testing.T) {
	t.Parallel()
	books := 4
	out := stats.Render(statsdto.OverviewOutput{
		Total:         3,
		Completed:     1,
		Rated:         1,
		AverageRating: 4,
		ByStatus:      []statsdto.StatusCount{{Status: "completed", Label: "Completed", Count: 1}},
		TopRated:      []listdto.EntryOutput{{Title: "Dune", Stars: "★★★★☆"}},
		ActiveGoals:   2,
		Goals: []goaldto.ProgressOutput{
			{Goal: goaldto.GoalOutput{Name: "Spring", TargetBooks: &books}, BookPercent: 50},
		},
	}, progress.New())

	assert.Contains(t, out, "3 on the list")
	assert.Contains(t, out, "4.0 from 1 ratings")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Spring")
	assert.Contains(t, out, "…and 1 more")
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()
	out := stats.Render(statsdto.OverviewOutput{}, progress.New())
	assert.Contains(t, out, "Your reading list is empty.")
	assert.NotContains(t, out, "By status")
}
