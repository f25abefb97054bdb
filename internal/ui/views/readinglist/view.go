package readinglist

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"readinglist/internal/modules/readinglist/domain"
	listdto "readinglist/internal/modules/readinglist/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
	"readinglist/internal/ui/views/rate"
)

type Port interface {
	MyReadingList(ctx context.Context) ([]listdto.EntryOutput, error)
	ByStatus(ctx context.Context, status string) ([]listdto.EntryOutput, error)
	UpdateStatus(ctx context.Context, entryID int64, status string) error
	Remove(ctx context.Context, entryID int64) error
}

type EntriesLoadedMsg struct {
	Filter  string
	Entries []listdto.EntryOutput
	Err     error
}

// changedMsg follows a successful write; the list reloads.
type changedMsg struct{ status string }

type entryItem struct{ entry listdto.EntryOutput }

func (i entryItem) Title() string { return i.entry.Title }
func (i entryItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.entry.StatusLabel, i.entry.Stars, i.entry.Authors)
}
func (i entryItem) FilterValue() string { return i.entry.Title }

var (
	filterKey = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter status"))
	statusKey = key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "set status"))
	rateKey   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rate"))
	removeKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
)

type Model struct {
	port     Port
	ratePort rate.Port
	list     list.Model
	spinner  spinner.Model
	// filter is "" for every entry, otherwise a stored status value.
	filter  string
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port, ratePort rate.Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.SetFilteringEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, ratePort: ratePort, list: l, spinner: sp, loading: true}
	m.list.Title = m.heading()
	return m
}

func (m Model) Title() string { return "My Reading List" }

// Activate reloads with the current filter, so ratings made on the rate
// screen show up on return.
func (m Model) Activate() tea.Cmd {
	return tea.Batch(m.loadCmd(m.filter), m.spinner.Tick)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{filterKey, statusKey, rateKey, removeKey}
}

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EntriesLoadedMsg:
		if msg.Filter != m.filter {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case changedMsg:
		return m, tea.Batch(m.loadCmd(m.filter), nav.Status(msg.status))

	case tea.KeyMsg:
		item, selected := m.list.SelectedItem().(entryItem)
		switch {
		case key.Matches(msg, filterKey):
			m.filter = nextFilter(m.filter)
			m.list.Title = m.heading()
			m.list.ResetSelected()
			return m, m.loadCmd(m.filter)
		case key.Matches(msg, statusKey):
			if !selected {
				return m, nil
			}
			n, _ := strconv.Atoi(msg.String())
			status := domain.Statuses[n-1]
			return m, m.updateStatusCmd(item.entry, status)
		case key.Matches(msg, rateKey):
			if !selected {
				return m, nil
			}
			return m, nav.Push(rate.New(m.ratePort, item.entry))
		case key.Matches(msg, removeKey):
			if !selected {
				return m, nil
			}
			return m, m.removeCmd(item.entry)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading your list…")
	case m.err != nil:
		return theme.Error.Render("Could not load your list: " + m.err.Error())
	case len(m.list.Items()) == 0:
		return theme.Title.Render(m.heading()) + "\n\n" +
			theme.Muted.Render("Nothing here yet. Press f to change the filter or add books from Browse or Search.")
	}
	return m.list.View()
}

func (m Model) heading() string {
	if m.filter == "" {
		return "My Reading List · All"
	}
	return "My Reading List · " + domain.Status(m.filter).Label()
}

// nextFilter cycles all → each status → all.
func nextFilter(current string) string {
	if current == "" {
		return string(domain.Statuses[0])
	}
	for i, s := range domain.Statuses {
		if string(s) == current && i+1 < len(domain.Statuses) {
			return string(domain.Statuses[i+1])
		}
	}
	return ""
}

func (m Model) loadCmd(filter string) tea.Cmd {
	return func() tea.Msg {
		var (
			entries []listdto.EntryOutput
			err     error
		)
		if filter == "" {
			entries, err = m.port.MyReadingList(context.Background())
		} else {
			entries, err = m.port.ByStatus(context.Background(), filter)
		}
		return EntriesLoadedMsg{Filter: filter, Entries: entries, Err: err}
	}
}

func (m Model) updateStatusCmd(entry listdto.EntryOutput, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		if err := m.port.UpdateStatus(context.Background(), entry.ID, string(status)); err != nil {
			return nav.StatusMsg{Err: err}
		}
		return changedMsg{status: fmt.Sprintf("%q is now %s", entry.Title, status.Label())}
	}
}

func (m Model) removeCmd(entry listdto.EntryOutput) tea.Cmd {
	return func() tea.Msg {
		if err := m.port.Remove(context.Background(), entry.ID); err != nil {
			return nav.StatusMsg{Err: err}
		}
		return changedMsg{status: fmt.Sprintf("removed %q from your list", entry.Title)}
	}
}
