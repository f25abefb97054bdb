package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"readinglist/internal/ui/components"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
	booksview "readinglist/internal/ui/views/books"
	goalformview "readinglist/internal/ui/views/goalform"
	goalsview "readinglist/internal/ui/views/goals"
	"readinglist/internal/ui/views/menu"
	listview "readinglist/internal/ui/views/readinglist"
	searchview "readinglist/internal/ui/views/search"
	statsview "readinglist/internal/ui/views/stats"
)

type keyMap struct {
	Back    key.Binding
	Home    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Home:    key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "home")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// paletteCommands are offered as completions, in this order.
var paletteCommands = []string{"home", "back", "books", "search", "list", "goals", "goal:new", "stats", "quit"}

// capturing is implemented by screens that need every keystroke, such as
// forms. Only ctrl+c reaches the root model while it reports true.
type capturing interface{ Capturing() bool }

type helper interface{ ShortHelp() []key.Binding }

// display is the single surface the visible screen is drawn on. It only
// remembers which stacked screen is attached and whether it has focus; the
// screen itself stays owned by the navigator.
type display struct {
	attached nav.ID
	focused  bool
}

func (d *display) Attach(id nav.ID, _ nav.Screen) {
	d.attached = id
	d.focused = false
}

func (d *display) Detach(id nav.ID) {
	if d.attached == id {
		d.attached = 0
		d.focused = false
	}
}

func (d *display) Focus(id nav.ID) {
	d.focused = d.attached == id
}

// Model is the root Bubble Tea model. It owns the navigator, global keys, the
// command palette and the status bar; everything else belongs to screens.
type Model struct {
	ports   bridge
	nav     *nav.Navigator
	display *display
	boot    tea.Cmd

	keys    keyMap
	help    help.Model
	palette components.Palette
	status  string
	failed  bool
	width   int
	height  int
}

func NewModel(services Services) Model {
	d := &display{}
	m := Model{
		ports:   bridge{s: services},
		display: d,
		nav:     nav.New(d),
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(paletteCommands),
		status:  "ready",
	}
	m.boot = m.nav.PushAndActivate(m.root())
	return m
}

func (m Model) Init() tea.Cmd { return m.boot }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		return m, m.nav.Broadcast(m.contentSize())

	case nav.Targeted:
		return m, m.nav.Deliver(msg)

	case nav.PushMsg:
		return m, m.push(msg.Screen)

	case nav.PopMsg:
		cmd := m.nav.PopToParent()
		if msg.Status != "" {
			m.setStatus(msg.Status, nil)
		}
		return m, cmd

	case nav.ResetMsg:
		return m, m.reset()

	case nav.StatusMsg:
		m.setStatus(msg.Text, msg.Err)
		return m, nil

	case components.PaletteSubmitMsg:
		return m.runPalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
		if m.topCapturing() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Back):
			if m.nav.CanPopToParent() {
				return m, m.nav.PopToParent()
			}
			return m, nil
		case key.Matches(msg, m.keys.Home):
			return m, m.reset()
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		}
		return m, m.nav.Update(msg)

	default:
		// Unaddressed messages come from the runtime or the palette.
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}
	return m, m.nav.Update(msg)
}

func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	_, h := m.contentDims()

	var content string
	if m.palette.Visible() {
		content = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.palette.View())
	} else if _, top, ok := m.nav.Top(); ok {
		content = lipgloss.NewStyle().MaxHeight(h).Render(top.View())
	}
	content = lipgloss.NewStyle().Height(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (m Model) renderHeader() string {
	crumbs := m.nav.Titles()
	for i, c := range crumbs {
		if i == len(crumbs)-1 && m.display.focused {
			crumbs[i] = theme.Hot.Render(c)
		} else {
			crumbs[i] = theme.Muted.Render(c)
		}
	}
	bar := "readinglist  " + strings.Join(crumbs, theme.Muted.Render(" › "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := theme.Muted.Render(m.status)
	if m.failed {
		left = theme.Error.Render(m.status)
	}
	right := m.help.ShortHelpView(m.bindings())
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// bindings lists the visible screen's keys, then the global ones that apply.
func (m Model) bindings() []key.Binding {
	var out []key.Binding
	_, top, ok := m.nav.Top()
	if h, is := top.(helper); ok && is {
		out = append(out, h.ShortHelp()...)
	}
	if m.nav.CanPopToParent() {
		out = append(out, m.keys.Back)
	}
	return append(out, m.keys.Palette, m.keys.Quit)
}

func (m Model) contentDims() (int, int) {
	// One line of header, one of status.
	return m.width, max(1, m.height-2)
}

func (m Model) contentSize() tea.WindowSizeMsg {
	w, h := m.contentDims()
	return tea.WindowSizeMsg{Width: w, Height: h}
}

func (m Model) topCapturing() bool {
	_, top, ok := m.nav.Top()
	c, is := top.(capturing)
	return ok && is && c.Capturing()
}

func (m *Model) setStatus(text string, err error) {
	m.failed = err != nil
	if err != nil {
		text = err.Error()
	}
	m.status = text
}

// push stacks s and sizes it; screens only learn the terminal size from
// resize messages.
func (m *Model) push(s nav.Screen) tea.Cmd {
	activate := m.nav.PushAndActivate(s)
	if m.width == 0 {
		return activate
	}
	return tea.Batch(activate, m.nav.Update(m.contentSize()))
}

func (m *Model) reset() tea.Cmd {
	activate := m.nav.ResetToRoot(m.root())
	if m.width == 0 {
		return activate
	}
	return tea.Batch(activate, m.nav.Update(m.contentSize()))
}

func (m Model) runPalette(input string) (tea.Model, tea.Cmd) {
	switch strings.TrimSpace(input) {
	case "":
		return m, nil
	case "home":
		return m, m.reset()
	case "back":
		return m, m.nav.PopToParent()
	case "quit":
		return m, tea.Quit
	}
	open, ok := m.screens()[strings.TrimSpace(input)]
	if !ok {
		m.setStatus("unknown command: "+input, nil)
		return m, nil
	}
	return m, m.push(open())
}

// screens maps palette names to screen constructors. The menu offers the
// same set.
func (m Model) screens() map[string]func() nav.Screen {
	p := m.ports
	return map[string]func() nav.Screen{
		"books":  func() nav.Screen { return booksview.New(p) },
		"search": func() nav.Screen { return searchview.New(p, nil) },
		"list":   func() nav.Screen { return listview.New(p, p) },
		"goals":  func() nav.Screen { return goalsview.New(p, p, p, p.s.Clock) },
		"goal:new": func() nav.Screen {
			return goalformview.New(p, p.s.Clock.Now())
		},
		"stats": func() nav.Screen { return statsview.New(p) },
	}
}

func (m Model) root() nav.Screen {
	s := m.screens()
	return menu.New([]menu.Entry{
		{Label: "Browse books", Hint: "the whole catalog with details", Open: s["books"]},
		{Label: "Search", Hint: "find books by title, ISBN or author", Open: s["search"]},
		{Label: "My reading list", Hint: "statuses, ratings and notes", Open: s["list"]},
		{Label: "Goals", Hint: "reading goals and their progress", Open: s["goals"]},
		{Label: "Statistics", Hint: "an overview of your reading", Open: s["stats"]},
		{Label: "Quit", Hint: "leave readinglist"},
	})
}
