package rate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	listdto "readinglist/internal/modules/readinglist/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
)

type Port interface {
	Rate(ctx context.Context, entryID int64, rating int, notes *string) error
}

type failedMsg struct{ err error }

var (
	nextKey   = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	prevKey   = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field"))
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	cancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
)

const (
	fieldRating = iota
	fieldNotes
	fieldCount
)

// Model rates one reading-list entry. Both fields take keystrokes, so the
// form handles esc itself.
type Model struct {
	port   Port
	entry  listdto.EntryOutput
	fields [fieldCount]textinput.Model
	focus  int
	err    string
}

func New(port Port, entry listdto.EntryOutput) Model {
	rating := textinput.New()
	rating.Placeholder = "1-5"
	rating.CharLimit = 1
	rating.Prompt = ""
	if entry.Rating != nil {
		rating.SetValue(strconv.Itoa(*entry.Rating))
	}
	rating.Focus()

	notes := textinput.New()
	notes.Placeholder = "optional notes"
	notes.CharLimit = 500
	notes.Prompt = ""
	notes.SetValue(entry.Notes)

	return Model{port: port, entry: entry, fields: [fieldCount]textinput.Model{rating, notes}}
}

func (m Model) Title() string { return "Rate" }

func (m Model) Activate() tea.Cmd { return textinput.Blink }

func (m Model) Capturing() bool { return true }

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{nextKey, submitKey, cancelKey}
}

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case failedMsg:
		m.err = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, cancelKey):
			return m, nav.Pop("")
		case key.Matches(msg, nextKey):
			cmd := m.setFocus((m.focus + 1) % fieldCount)
			return m, cmd
		case key.Matches(msg, prevKey):
			cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, cmd
		case key.Matches(msg, submitKey):
			rating, err := ParseRating(m.fields[fieldRating].Value())
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			notes := m.fields[fieldNotes].Value()
			return m, m.saveCmd(rating, &notes)
		}
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Rate “"+m.entry.Title+"”") + "\n")
	sb.WriteString(theme.Muted.Render(m.entry.Authors) + "\n\n")
	labels := [fieldCount]string{"Rating", "Notes"}
	for i, f := range m.fields {
		box := theme.Pane
		if i == m.focus {
			box = theme.PaneActive
		}
		sb.WriteString(theme.Label.Render(labels[i]) + "\n" + box.Width(60).Render(f.View()) + "\n")
	}
	if m.err != "" {
		sb.WriteString("\n" + theme.Error.Render(m.err))
	}
	return sb.String()
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = i
	return m.fields[i].Focus()
}

// ParseRating reads a whole number from 1 to 5.
func ParseRating(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("rating must be a whole number from 1 to 5")
	}
	return n, nil
}

func (m Model) saveCmd(rating int, notes *string) tea.Cmd {
	entry := m.entry
	return func() tea.Msg {
		if err := m.port.Rate(context.Background(), entry.ID, rating, notes); err != nil {
			return failedMsg{err: err}
		}
		return nav.PopMsg{Status: fmt.Sprintf("rated %q %d/5", entry.Title, rating)}
	}
}
