package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	catalogdto "readinglist/internal/modules/catalog/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
)

type Port interface {
	ListBooks(ctx context.Context) ([]catalogdto.BookOutput, error)
	GetBook(ctx context.Context, isbn string) (catalogdto.BookOutput, error)
	AddToReadingList(ctx context.Context, isbn string) (int64, error)
}

type BooksLoadedMsg struct {
	Books []catalogdto.BookOutput
	Err   error
}

type DetailLoadedMsg struct {
	Book catalogdto.BookOutput
	Err  error
}

type bookItem struct{ book catalogdto.BookOutput }

func (i bookItem) Title() string       { return i.book.Title }
func (i bookItem) Description() string { return i.book.Byline }
func (i bookItem) FilterValue() string { return i.book.Title + " " + i.book.Byline }

var addKey = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to my list"))

type Model struct {
	port     Port
	list     list.Model
	detail   viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	selected string
	loading  bool
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Books"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(60),
	)

	return Model{
		port:     port,
		list:     l,
		detail:   viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
		loading:  true,
	}
}

func (m Model) Title() string { return "Books" }

func (m Model) Activate() tea.Cmd {
	return tea.Batch(m.loadBooksCmd(), m.spinner.Tick)
}

func (m Model) ShortHelp() []key.Binding { return []key.Binding{addKey} }

// Capturing reports whether the list filter is taking keystrokes.
func (m Model) Capturing() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BooksLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Books))
		for i, b := range msg.Books {
			items[i] = bookItem{book: b}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.selected = ""
		cmds = append(cmds, m.syncDetail())
		return m, tea.Batch(cmds...)

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.detail.SetContent(theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		if msg.Book.ISBN == m.selected {
			m.detail.SetContent(m.renderDetail(msg.Book))
			m.detail.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Capturing() && key.Matches(msg, addKey) {
			if item, ok := m.list.SelectedItem().(bookItem); ok {
				return m, m.addCmd(item.book)
			}
			return m, nil
		}
	}

	if m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd, m.syncDetail())
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading books…")
	}
	if m.err != nil {
		return theme.Error.Render("Could not load books: " + m.err.Error())
	}
	if len(m.list.Items()) == 0 {
		return theme.Muted.Render("The catalog is empty. Add books with `readinglist book add`.")
	}
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(m.width - listW - 4).Height(m.height - 2).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.detail.Width = m.width - listW - 6
	m.detail.Height = m.height - 2
}

// syncDetail loads the detail of a newly selected book.
func (m *Model) syncDetail() tea.Cmd {
	item, ok := m.list.SelectedItem().(bookItem)
	if !ok || item.book.ISBN == m.selected {
		return nil
	}
	m.selected = item.book.ISBN
	return m.loadDetailCmd(item.book.ISBN)
}

func (m Model) renderDetail(b catalogdto.BookOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", b.Title)
	fmt.Fprintf(&sb, "*%s*\n\n", b.Byline)
	fmt.Fprintf(&sb, "- **ISBN:** %s\n", b.ISBN)
	if b.PublicationYear != nil {
		fmt.Fprintf(&sb, "- **Published:** %d\n", *b.PublicationYear)
	}
	if b.Pages != nil {
		fmt.Fprintf(&sb, "- **Pages:** %d\n", *b.Pages)
	}
	if len(b.Subjects) > 0 {
		fmt.Fprintf(&sb, "- **Subjects:** %s\n", strings.Join(b.Subjects, ", "))
	}
	if b.Description != "" {
		sb.WriteString("\n" + b.Description + "\n")
	}
	md := sb.String()
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) loadBooksCmd() tea.Cmd {
	return func() tea.Msg {
		books, err := m.port.ListBooks(context.Background())
		return BooksLoadedMsg{Books: books, Err: err}
	}
}

func (m Model) loadDetailCmd(isbn string) tea.Cmd {
	return func() tea.Msg {
		book, err := m.port.GetBook(context.Background(), isbn)
		return DetailLoadedMsg{Book: book, Err: err}
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
