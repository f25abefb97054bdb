package menu

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
)

// Entry is one menu line. A nil Open quits the program.
type Entry struct {
	Label string
	Hint  string
	Open  func() nav.Screen
}

type entryItem struct{ entry Entry }

func (i entryItem) Title() string       { return i.entry.Label }
func (i entryItem) Description() string { return i.entry.Hint }
func (i entryItem) FilterValue() string { return i.entry.Label }

var openKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))

type Model struct {
	list list.Model
}

func New(entries []Entry) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Reading List"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return Model{list: l}
}

func (m Model) Title() string { return "Menu" }

// Activate has nothing to refresh; the entries are static.
func (m Model) Activate() tea.Cmd { return nil }

func (m Model) ShortHelp() []key.Binding { return []key.Binding{openKey} }

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, openKey) {
			item, ok := m.list.SelectedItem().(entryItem)
			if !ok {
				return m, nil
			}
			if item.entry.Open == nil {
				return m, tea.Quit
			}
			return m, nav.Push(item.entry.Open())
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string { return m.list.View() }
