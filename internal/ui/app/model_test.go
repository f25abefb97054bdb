package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readinglist/internal/platform/clock"
	"readinglist/internal/ui/components"
	"readinglist/internal/ui/nav"
)

type stubScreen struct {
	name    string
	capture bool
	seen    []tea.Msg
}

func (s *stubScreen) Title() string     { return s.name }
func (s *stubScreen) Activate() tea.Cmd { return nil }
func (s *stubScreen) Capturing() bool   { return s.capture }
func (s *stubScreen) View() string      { return s.name }
func (s *stubScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func newTestModel() Model {
	return NewModel(Services{Clock: clock.Fixed(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

var esc = tea.KeyMsg{Type: tea.KeyEsc}

func TestModelStartsOnMenu(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	assert.Equal(t, []string{"Menu"}, m.nav.Titles())
	assert.True(t, m.display.focused)
}

func TestEscGoesBackButNeverPastRoot(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m = step(t, m, nav.PushMsg{Screen: &stubScreen{name: "Child"}})
	require.Equal(t, []string{"Menu", "Child"}, m.nav.Titles())

	m = step(t, m, esc)
	assert.Equal(t, []string{"Menu"}, m.nav.Titles())

	m = step(t, m, esc)
	assert.Equal(t, []string{"Menu"}, m.nav.Titles())
}

func TestCapturingScreenReceivesEsc(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	form := &stubScreen{name: "Form", capture: true}
	m = step(t, m, nav.PushMsg{Screen: form})

	m = step(t, m, esc)
	assert.Equal(t, []string{"Menu", "Form"}, m.nav.Titles())
	require.NotEmpty(t, form.seen)
	assert.Equal(t, esc, form.seen[len(form.seen)-1])
}

func TestPopRequestReportsStatus(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m = step(t, m, nav.PushMsg{Screen: &stubScreen{name: "Form"}})
	m = step(t, m, nav.PopMsg{Status: "goal created"})
	assert.Equal(t, []string{"Menu"}, m.nav.Titles())
	assert.Equal(t, "goal created", m.status)
	assert.False(t, m.failed)

	m = step(t, m, nav.StatusMsg{Text: "ignored", Err: errors.New("boom")})
	assert.Equal(t, "boom", m.status)
	assert.True(t, m.failed)
}

func TestHomeResetsToMenu(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m = step(t, m, nav.PushMsg{Screen: &stubScreen{name: "A"}})
	m = step(t, m, nav.PushMsg{Screen: &stubScreen{name: "B"}})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, []string{"Menu"}, m.nav.Titles())
}

func TestPaletteOpensScreens(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	require.True(t, m.palette.Visible())

	// The palette takes keys while open, so esc closes it instead of popping.
	m = step(t, m, esc)
	assert.False(t, m.palette.Visible())

	for _, tc := range []struct{ input, title string }{
		{"stats", "Statistics"},
		{"goals", "Goals"},
		{"goal:new", "New goal"},
		{"list", "My Reading List"},
		{"books", "Books"},
		{"search", "Search"},
	} {
		m = step(t, m, components.PaletteSubmitMsg{Input: tc.input})
		titles := m.nav.Titles()
		assert.Equal(t, tc.title, titles[len(titles)-1], tc.input)
	}

	m = step(t, m, components.PaletteSubmitMsg{Input: "back"})
	assert.Equal(t, "Books", m.nav.Titles()[m.nav.Len()-1])

	m = step(t, m, components.PaletteSubmitMsg{Input: "nope"})
	assert.Equal(t, "unknown command: nope", m.status)

	m = step(t, m, components.PaletteSubmitMsg{Input: "home"})
	assert.Equal(t, []string{"Menu"}, m.nav.Titles())
}

func TestLateResultReachesHiddenScreen(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	parent := &stubScreen{name: "Parent"}
	m = step(t, m, nav.PushMsg{Screen: parent})
	parentID, _, _ := m.nav.Top()
	m = step(t, m, nav.PushMsg{Screen: &stubScreen{name: "Child"}})

	type loaded struct{}
	m = step(t, m, nav.Targeted{ID: parentID, Msg: loaded{}})
	assert.Contains(t, parent.seen, tea.Msg(loaded{}))

	// Popped screens no longer get results.
	m = step(t, m, esc)
	m = step(t, m, esc)
	before := len(parent.seen)
	step(t, m, nav.Targeted{ID: parentID, Msg: loaded{}})
	assert.Len(t, parent.seen, before)
}

func TestQuitFromAnywhere(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m = step(t, m, nav.PushMsg{Screen: &stubScreen{name: "Form", capture: true}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
