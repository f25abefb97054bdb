package search

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "readinglist/internal/modules/catalog/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
)

type Port interface {
	SearchBooks(ctx context.Context, term string) ([]catalogdto.BookOutput, error)
	AddToReadingList(ctx context.Context, isbn string) (int64, error)
}

// PickFunc handles the book chosen in picker mode. Its command usually stores
// the choice and pops back.
type PickFunc func(book catalogdto.BookOutput) tea.Cmd

type ResultsMsg struct {
	Term  string
	Books []catalogdto.BookOutput
	Err   error
}

type resultItem struct{ book catalogdto.BookOutput }

func (i resultItem) Title() string { return i.book.Title }
func (i resultItem) Description() string {
	return fmt.Sprintf("%s · %s", i.book.Byline, i.book.ISBN)
}
func (i resultItem) FilterValue() string { return i.book.Title }

var (
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
	switchKey = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "results/query"))
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to my list"))
	pickKey   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose book"))
)

type Model struct {
	port    Port
	onPick  PickFunc
	input   textinput.Model
	results list.Model
	term    string
	err     error
	width   int
	height  int
}

// New builds the search screen. With pick set it becomes a book picker.
func New(port Port, pick PickFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "title, isbn or author"
	ti.CharLimit = 120
	ti.Prompt = "› "
	ti.Focus()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return Model{port: port, onPick: pick, input: ti, results: l}
}

func (m Model) Title() string {
	if m.onPick != nil {
		return "Choose a book"
	}
	return "Search"
}

// Activate focuses the query field.
func (m Model) Activate() tea.Cmd { return textinput.Blink }

func (m Model) Capturing() bool { return m.input.Focused() }

func (m Model) ShortHelp() []key.Binding {
	if m.input.Focused() {
		return []key.Binding{submitKey, switchKey}
	}
	if m.onPick != nil {
		return []key.Binding{pickKey, switchKey}
	}
	return []key.Binding{addKey, switchKey}
}

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		m.results.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case ResultsMsg:
		if msg.Term != m.term {
			return m, nil
		}
		m.err = msg.Err
		items := make([]list.Item, len(msg.Books))
		for i, b := range msg.Books {
			items[i] = resultItem{book: b}
		}
		cmd := m.results.SetItems(items)
		if len(items) > 0 {
			m.input.Blur()
		}
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, switchKey) {
			if m.input.Focused() {
				m.input.Blur()
				return m, nil
			}
			cmd := m.input.Focus()
			return m, cmd
		}
		if m.input.Focused() {
			// The query field owns esc while focused, so leaving is handled here.
			if msg.Type == tea.KeyEsc {
				return m, nav.Pop("")
			}
			if key.Matches(msg, submitKey) {
				m.term = m.input.Value()
				return m, m.searchCmd(m.term)
			}
			break
		}
		item, ok := m.results.SelectedItem().(resultItem)
		switch {
		case m.onPick != nil && key.Matches(msg, pickKey):
			if ok {
				return m, m.onPick(item.book)
			}
			return m, nil
		case m.onPick == nil && key.Matches(msg, addKey):
			if ok {
				return m, m.addCmd(item.book)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	box := theme.Pane
	if m.input.Focused() {
		box = theme.PaneActive
	}
	header := box.Width(m.width - 4).Render(m.input.View())

	var body string
	switch {
	case m.err != nil:
		body = theme.Error.Render(m.err.Error())
	case m.term == "":
		body = theme.Muted.Render("Type a query and press enter.")
	case len(m.results.Items()) == 0:
		body = theme.Muted.Render(fmt.Sprintf("No books match %q.", m.term))
	default:
		body = m.results.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m Model) searchCmd(term string) tea.Cmd {
	return func() tea.Msg {
		books, err := m.port.SearchBooks(context.Background(), term)
		return ResultsMsg{Term: term, Books: books, Err: err}
	}
}

func (m Model) addCmd(book catalogdto.BookOutput) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.port.AddToReadingList(context.Background(), book.ISBN); err != nil {
			return nav.StatusMsg{Err: err}
		}
		return nav.StatusMsg{Text: fmt.Sprintf("added %q to your reading list", book.Title)}
	}
}
