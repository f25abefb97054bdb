package readinglist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"readinglist/internal/modules/readinglist/domain"
)

func TestNextFilterCyclesThroughStatuses(t *testing.T) {
	t.Parallel()
	seen := []string{}
	f := ""
	for range len(domain.Statuses) + 1 {
		f = nextFilter(f)
		seen = append(seen, f)
	}
	want := []string{}
	for _, s := range domain.Statuses {
		want = append(want, string(s))
	}
	want = append(want, "")
	assert.Equal(t, want, seen)
}

func TestStaleLoadIgnored(t *testing.T) {
	t.Parallel()
	m := New(nil, nil)
	m.filter = string(domain.StatusCompleted)
	next, _ := m.Update(EntriesLoadedMsg{Filter: ""})
	assert.True(t, next.(Model).loading)

	next, _ = m.Update(EntriesLoadedMsg{Filter: string(domain.StatusCompleted)})
	assert.False(t, next.(Model).loading)
}
