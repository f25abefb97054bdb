package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	goaldto "readinglist/internal/modules/goal/dto"
	goalin "readinglist/internal/modules/goal/port/in"
	listdto "readinglist/internal/modules/readinglist/dto"
	listin "readinglist/internal/modules/readinglist/port/in"
	"readinglist/internal/modules/stats/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ptr(n int) *int { return &n }

type fakeList struct {
	listin.Usecase
	entries []listdto.EntryOutput
	err     error

	mu     sync.Mutex
	limits []int
}

func (f *fakeList) MyReadingList(context.Context) ([]listdto.EntryOutput, error) {
	return f.entries, f.err
}

func (f *fakeList) RecentlyCompleted(_ context.Context, limit int) ([]listdto.EntryOutput, error) {
	f.record(limit)
	return []listdto.EntryOutput{{ID: 1, Title: "Dune"}}, nil
}

func (f *fakeList) TopRated(_ context.Context, limit int) ([]listdto.EntryOutput, error) {
	f.record(limit)
	return []listdto.EntryOutput{{ID: 2, Title: "Emma"}}, nil
}

func (f *fakeList) record(limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
}

type fakeGoals struct {
	goalin.Usecase
	active   []goaldto.GoalOutput
	achieved map[int64]bool

	mu        sync.Mutex
	requested []int64
}

func (f *fakeGoals) ActiveGoals(context.Context) ([]goaldto.GoalOutput, error) {
	return f.active, nil
}

func (f *fakeGoals) GoalProgress(_ context.Context, id int64) (goaldto.ProgressOutput, error) {
	f.mu.Lock()
	f.requested = append(f.requested, id)
	f.mu.Unlock()
	return goaldto.ProgressOutput{Goal: goaldto.GoalOutput{ID: id}, Achieved: f.achieved[id]}, nil
}

func TestOverview(t *testing.T) {
	list := &fakeList{entries: []listdto.EntryOutput{
		{Status: "completed", Pages: ptr(300), Rating: ptr(5)},
		{Status: "completed", Rating: ptr(4)},
		{Status: "currently_reading", Pages: ptr(120)},
		{Status: "to_read"},
	}}
	goals := &fakeGoals{
		active: []goaldto.GoalOutput{{ID: 10}, {ID: 11}, {ID: 12}, {ID: 13}},
		achieved: map[int64]bool{
			10: true,
			12: true,
			13: true,
		},
	}
	out, err := service.NewStatsService(list, goals, nil).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.Completed)
	assert.Equal(t, 1, out.Reading)
	assert.Equal(t, 300, out.PagesRead)
	assert.InDelta(t, 4.5, out.AverageRating, 1e-9)
	require.Len(t, out.ByStatus, 5)
	assert.Equal(t, "To Read", out.ByStatus[0].Label)
	assert.Equal(t, 2, out.ByStatus[2].Count)

	assert.Equal(t, 4, out.ActiveGoals)
	require.Len(t, out.Goals, service.GoalsShown)
	for i, p := range out.Goals {
		assert.Equal(t, int64(10+i), p.Goal.ID, "progress keeps goal order")
	}
	assert.Equal(t, 2, out.AchievedGoals, "only the first three goals count")
	assert.NotContains(t, goals.requested, int64(13))

	assert.ElementsMatch(t, []int{service.RecentCompletedShown, service.TopRatedShown}, list.limits)
	assert.Len(t, out.RecentlyCompleted, 1)
	assert.Len(t, out.TopRated, 1)
}

func TestOverviewPropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	list := &fakeList{err: boom}
	_, err := service.NewStatsService(list, &fakeGoals{}, nil).Overview(context.Background())
	assert.ErrorIs(t, err, boom)
}
