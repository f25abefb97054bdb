package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "readinglist/internal/modules/catalog/dto"
	goaldto "readinglist/internal/modules/goal/dto"
	"readinglist/internal/platform/clock"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
	"readinglist/internal/ui/views/goalform"
	"readinglist/internal/ui/views/search"
)

// UpcomingDays is the window used by the upcoming-deadlines filter.
const UpcomingDays = 7

type Port interface {
	ActiveGoals(ctx context.Context) ([]goaldto.GoalOutput, error)
	UpcomingDeadlines(ctx context.Context, days int) ([]goaldto.GoalOutput, error)
	GoalProgress(ctx context.Context, goalID int64) (goaldto.ProgressOutput, error)
	GoalBooks(ctx context.Context, goalID int64) ([]goaldto.GoalBookOutput, error)
	MarkGoalComplete(ctx context.Context, goalID int64) error
	AddBookToGoal(ctx context.Context, goalID int64, isbn string) error
}

type GoalsLoadedMsg struct {
	Upcoming bool
	Goals    []goaldto.GoalOutput
	Err      error
}

type DetailLoadedMsg struct {
	GoalID   int64
	Progress goaldto.ProgressOutput
	Books    []goaldto.GoalBookOutput
	Err      error
}

type changedMsg struct{ status string }

type goalItem struct{ goal goaldto.GoalOutput }

func (i goalItem) Title() string { return i.goal.Name }
func (i goalItem) Description() string {
	return fmt.Sprintf("due %s · %s", i.goal.Deadline.Format("2006-01-02"), i.goal.Targets)
}
func (i goalItem) FilterValue() string { return i.goal.Name }

var (
	newKey      = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new goal"))
	addBookKey  = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "add book"))
	completeKey = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete"))
	upcomingKey = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "due soon"))
)

type Model struct {
	port       Port
	searchPort search.Port
	formPort   goalform.Port
	clock      clock.Clock
	list       list.Model
	detail     viewport.Model
	bar        progress.Model
	spinner    spinner.Model
	upcoming   bool
	selected   int64
	loading    bool
	err        error
	width      int
	height     int
}

func New(port Port, searchPort search.Port, formPort goalform.Port, clk clock.Clock) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Active goals"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.SetFilteringEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:       port,
		searchPort: searchPort,
		formPort:   formPort,
		clock:      clk,
		list:       l,
		detail:     viewport.New(0, 0),
		bar:        progress.New(progress.WithGradient(theme.ProgressFrom, theme.ProgressTo)),
		spinner:    sp,
		loading:    true,
	}
}

func (m Model) Title() string { return "Goals" }

// Activate reloads everything; books added through the picker or a goal
// created in the form show up on return.
func (m Model) Activate() tea.Cmd {
	return tea.Batch(m.loadGoalsCmd(m.upcoming), m.spinner.Tick)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{newKey, addBookKey, completeKey, upcomingKey}
}

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
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

	case GoalsLoadedMsg:
		if msg.Upcoming != m.upcoming {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = goalItem{goal: g}
		}
		cmd := m.list.SetItems(items)
		m.selected = 0
		m.detail.SetContent("")
		detail := m.syncDetail()
		return m, tea.Batch(cmd, detail)

	case DetailLoadedMsg:
		if msg.GoalID != m.selected {
			return m, nil
		}
		if msg.Err != nil {
			m.detail.SetContent(theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		m.detail.SetContent(m.renderDetail(msg.Progress, msg.Books))
		m.detail.GotoTop()
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.loadGoalsCmd(m.upcoming), nav.Status(msg.status))

	case tea.KeyMsg:
		item, selected := m.list.SelectedItem().(goalItem)
		switch {
		case key.Matches(msg, newKey):
			return m, nav.Push(goalform.New(m.formPort, m.clock.Now()))
		case key.Matches(msg, upcomingKey):
			m.upcoming = !m.upcoming
			m.list.Title = "Active goals"
			if m.upcoming {
				m.list.Title = fmt.Sprintf("Due within %d days", UpcomingDays)
			}
			m.loading = true
			return m, tea.Batch(m.loadGoalsCmd(m.upcoming), m.spinner.Tick)
		case key.Matches(msg, addBookKey):
			if !selected {
				return m, nil
			}
			return m, nav.Push(search.New(m.searchPort, m.pickFor(item.goal)))
		case key.Matches(msg, completeKey):
			if !selected {
				return m, nil
			}
			return m, m.completeCmd(item.goal)
		}
	}

	if m.loading {
		return m, nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd, m.syncDetail())
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading goals…")
	case m.err != nil:
		return theme.Error.Render("Could not load goals: " + m.err.Error())
	case len(m.list.Items()) == 0:
		msg := "No active goals. Press n to create one."
		if m.upcoming {
			msg = fmt.Sprintf("Nothing due in the next %d days. Press u to show every active goal.", UpcomingDays)
		}
		return theme.Title.Render(m.list.Title) + "\n\n" + theme.Muted.Render(msg)
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
	m.bar.Width = max(10, m.detail.Width-8)
}

func (m *Model) syncDetail() tea.Cmd {
	item, ok := m.list.SelectedItem().(goalItem)
	if !ok || item.goal.ID == m.selected {
		return nil
	}
	m.selected = item.goal.ID
	return m.loadDetailCmd(item.goal.ID)
}

func (m Model) renderDetail(p goaldto.ProgressOutput, books []goaldto.GoalBookOutput) string {
	var sb strings.Builder
	g := p.Goal
	sb.WriteString(theme.Title.Render(g.Name) + "\n")
	if g.Description != "" {
		sb.WriteString(theme.Muted.Render(g.Description) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(theme.Label.Render("Window") + fmt.Sprintf("%s → %s\n",
		g.StartDate.Format("2006-01-02"), g.Deadline.Format("2006-01-02")))
	sb.WriteString(theme.Label.Render("Deadline") + deadlineStanding(p) + "\n\n")

	if g.TargetBooks != nil {
		sb.WriteString(theme.Label.Render("Books") + fmt.Sprintf("%d / %d\n", p.BooksAdded, *g.TargetBooks))
		sb.WriteString(m.bar.ViewAs(p.BookPercent/100) + "\n")
	}
	if g.TargetPages != nil {
		sb.WriteString(theme.Label.Render("Pages") + fmt.Sprintf("%d / %d\n", p.TotalPages, *g.TargetPages))
		sb.WriteString(m.bar.ViewAs(p.PagePercent/100) + "\n")
	}
	if p.Achieved {
		sb.WriteString("\n" + theme.Good.Render("Target reached. Press c to mark the goal complete.") + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Books (%d)", len(books))) + "\n")
	if len(books) == 0 {
		sb.WriteString(theme.Muted.Render("Press b to add one.") + "\n")
	}
	for _, b := range books {
		pages := "?"
		if b.Pages != nil {
			pages = fmt.Sprint(*b.Pages)
		}
		fmt.Fprintf(&sb, "• %s %s\n", b.Title, theme.Muted.Render("("+pages+" pages)"))
	}
	return sb.String()
}

func deadlineStanding(p goaldto.ProgressOutput) string {
	switch {
	case p.Overdue:
		return theme.Error.Render("overdue")
	case p.DaysLeft == 0:
		return theme.Warn.Render("due today")
	case p.DaysLeft <= UpcomingDays:
		return theme.Warn.Render(fmt.Sprintf("%d days left", p.DaysLeft))
	default:
		return fmt.Sprintf("%d days left", p.DaysLeft)
	}
}

// pickFor returns the picker callback that links the chosen book to goal and
// pops back once the link is stored.
func (m Model) pickFor(goal goaldto.GoalOutput) search.PickFunc {
	port := m.port
	return func(book catalogdto.BookOutput) tea.Cmd {
		return func() tea.Msg {
			if err := port.AddBookToGoal(context.Background(), goal.ID, book.ISBN); err != nil {
				return nav.StatusMsg{Err: err}
			}
			return nav.PopMsg{Status: fmt.Sprintf("added %q to %s", book.Title, goal.Name)}
		}
	}
}

func (m Model) loadGoalsCmd(upcoming bool) tea.Cmd {
	return func() tea.Msg {
		var (
			goals []goaldto.GoalOutput
			err   error
		)
		if upcoming {
			goals, err = m.port.UpcomingDeadlines(context.Background(), UpcomingDays)
		} else {
			goals, err = m.port.ActiveGoals(context.Background())
		}
		return GoalsLoadedMsg{Upcoming: upcoming, Goals: goals, Err: err}
	}
}

func (m Model) loadDetailCmd(goalID int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p, err := m.port.GoalProgress(ctx, goalID)
		if err != nil {
			return DetailLoadedMsg{GoalID: goalID, Err: err}
		}
		books, err := m.port.GoalBooks(ctx, goalID)
		return DetailLoadedMsg{GoalID: goalID, Progress: p, Books: books, Err: err}
	}
}

func (m Model) completeCmd(goal goaldto.GoalOutput) tea.Cmd {
	return func() tea.Msg {
		if err := m.port.MarkGoalComplete(context.Background(), goal.ID); err != nil {
			return nav.StatusMsg{Err: err}
		}
		return changedMsg{status: fmt.Sprintf("completed %q", goal.Name)}
	}
}
