package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "readinglist/internal/modules/stats/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
)

type Port interface {
	Overview(ctx context.Context) (statsdto.OverviewOutput, error)
}

type OverviewLoadedMsg struct {
	Overview statsdto.OverviewOutput
	Err      error
}

type Model struct {
	port     Port
	body     viewport.Model
	bar      progress.Model
	spinner  spinner.Model
	overview *statsdto.OverviewOutput
	loading  bool
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:    port,
		body:    viewport.New(0, 0),
		bar:     progress.New(progress.WithGradient(theme.ProgressFrom, theme.ProgressTo), progress.WithWidth(30)),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Title() string { return "Statistics" }

// Activate recomputes the overview every time the screen is shown.
func (m Model) Activate() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.body.Width, m.body.Height = msg.Width, msg.Height
		m.render()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case OverviewLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.overview = &msg.Overview
			m.render()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Crunching numbers…")
	case m.err != nil:
		return theme.Error.Render("Could not compute statistics: " + m.err.Error())
	}
	return m.body.View()
}

func (m *Model) render() {
	if m.overview == nil {
		return
	}
	m.body.SetContent(Render(*m.overview, m.bar))
}

// Render lays out the overview as text.
func Render(o statsdto.OverviewOutput, bar progress.Model) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Reading overview") + "\n\n")
	if o.Total == 0 {
		sb.WriteString(theme.Muted.Render("Your reading list is empty.") + "\n")
	}
	sb.WriteString(theme.Label.Render("Books") + fmt.Sprintf("%d on the list\n", o.Total))
	sb.WriteString(theme.Label.Render("Completed") + fmt.Sprintf("%d\n", o.Completed))
	sb.WriteString(theme.Label.Render("Reading") + fmt.Sprintf("%d\n", o.Reading))
	sb.WriteString(theme.Label.Render("Pages read") + fmt.Sprintf("%d\n", o.PagesRead))
	if o.Rated > 0 {
		sb.WriteString(theme.Label.Render("Avg rating") + fmt.Sprintf("%.1f from %d ratings\n", o.AverageRating, o.Rated))
	}

	if o.Total > 0 {
		sb.WriteString("\n" + theme.Title.Render("By status") + "\n")
		for _, c := range o.ByStatus {
			share := float64(c.Count) / float64(o.Total)
			sb.WriteString(theme.Label.Render(c.Label) + bar.ViewAs(share) + fmt.Sprintf("  %d\n", c.Count))
		}
	}

	if len(o.RecentlyCompleted) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Recently completed") + "\n")
		for _, e := range o.RecentlyCompleted {
			fmt.Fprintf(&sb, "• %s %s\n", e.Title, theme.Muted.Render(e.Authors))
		}
	}
	if len(o.TopRated) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Top rated") + "\n")
		for _, e := range o.TopRated {
			fmt.Fprintf(&sb, "%s %s\n", theme.Hot.Render(e.Stars), e.Title)
		}
	}

	sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Goals (%d active, %d achieved)", o.ActiveGoals, o.AchievedGoals)) + "\n")
	for _, p := range o.Goals {
		name := p.Goal.Name
		if p.Achieved {
			name = theme.Good.Render(name + " ✓")
		}
		sb.WriteString(name + "\n")
		if p.Goal.TargetBooks != nil {
			sb.WriteString(theme.Label.Render("  books") + bar.ViewAs(p.BookPercent/100) + "\n")
		}
		if p.Goal.TargetPages != nil {
			sb.WriteString(theme.Label.Render("  pages") + bar.ViewAs(p.PagePercent/100) + "\n")
		}
	}
	if o.ActiveGoals > len(o.Goals) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("…and %d more on the Goals screen", o.ActiveGoals-len(o.Goals))) + "\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		o, err := m.port.Overview(context.Background())
		return OverviewLoadedMsg{Overview: o, Err: err}
	}
}
