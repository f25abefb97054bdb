package rate_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listdto "readinglist/internal/modules/readinglist/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/views/rate"
)

type fakePort struct {
	id     int64
	rating int
	notes  *string
}

func (f *fakePort) Rate(_ context.Context, id int64, rating int, notes *string) error {
	f.id, f.rating, f.notes = id, rating, notes
	return nil
}

func TestParseRating(t *testing.T) {
	t.Parallel()
	n, err := rate.ParseRating(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	for _, raw := range []string{"", "0", "6", "x"} {
		_, err := rate.ParseRating(raw)
		assert.Error(t, err, raw)
	}
}

func TestRateSubmitsAndPops(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	var s nav.Screen = rate.New(port, listdto.EntryOutput{ID: 9, Title: "Dune"})
	assert.True(t, s.(rate.Model).Capturing())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.PopMsg{Status: `rated "Dune" 5/5`}, cmd())
	assert.Equal(t, int64(9), port.id)
	assert.Equal(t, 5, port.rating)
	require.NotNil(t, port.notes)
	assert.Empty(t, *port.notes)
}

func TestRateEscPops(t *testing.T) {
	t.Parallel()
	s := rate.New(&fakePort{}, listdto.EntryOutput{ID: 1})
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.PopMsg{}, cmd())
}
