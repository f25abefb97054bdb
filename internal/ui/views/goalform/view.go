package goalform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	goaldto "readinglist/internal/modules/goal/dto"
	"readinglist/internal/ui/nav"
	"readinglist/internal/ui/theme"
)

const dateLayout = "2006-01-02"

type Port interface {
	CreateGoal(ctx context.Context, name, description string, start, deadline time.Time, targetBooks, targetPages *int, isbns []string) (goaldto.GoalOutput, error)
}

const (
	fieldName = iota
	fieldDescription
	fieldStart
	fieldDeadline
	fieldTargetBooks
	fieldTargetPages
	fieldBooks
	fieldCount
)

var labels = [fieldCount]string{"Name", "Description", "Start", "Deadline", "Target books", "Target pages", "ISBNs"}

var (
	nextKey   = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	prevKey   = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field"))
	submitKey = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create"))
	cancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
)

type failedMsg struct{ err error }

// Draft is the parsed form.
type Draft struct {
	Name        string
	Description string
	Start       time.Time
	Deadline    time.Time
	TargetBooks *int
	TargetPages *int
	ISBNs       []string
}

type Model struct {
	port   Port
	fields [fieldCount]textinput.Model
	focus  int
	err    string
}

// New opens an empty form whose start date defaults to today.
func New(port Port, today time.Time) Model {
	var fields [fieldCount]textinput.Model
	placeholders := [fieldCount]string{
		"Summer classics", "optional", dateLayout, dateLayout, "e.g. 5", "e.g. 1500", "comma separated, optional",
	}
	for i := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		fields[i] = ti
	}
	fields[fieldStart].SetValue(today.Format(dateLayout))
	fields[fieldName].Focus()
	return Model{port: port, fields: fields}
}

func (m Model) Title() string { return "New goal" }

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
		case key.Matches(msg, submitKey), msg.Type == tea.KeyEnter && m.focus == fieldCount-1:
			d, err := Parse(m.values())
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.err = ""
			return m, m.createCmd(d)
		case msg.Type == tea.KeyEnter:
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New reading goal") + "\n\n")
	for i, f := range m.fields {
		marker := "  "
		if i == m.focus {
			marker = theme.Hot.Render("› ")
		}
		sb.WriteString(marker + theme.Label.Render(labels[i]) + f.View() + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("Set at least one target. Enter on the last field or ctrl+s creates the goal."))
	if m.err != "" {
		sb.WriteString("\n\n" + theme.Error.Render(m.err))
	}
	return sb.String()
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = i
	return m.fields[i].Focus()
}

func (m Model) values() [fieldCount]string {
	var out [fieldCount]string
	for i, f := range m.fields {
		out[i] = strings.TrimSpace(f.Value())
	}
	return out
}

// Parse checks the raw field values. Range checks beyond what the form can
// see, such as unknown ISBNs, are left to the goal service.
func Parse(values [fieldCount]string) (Draft, error) {
	d := Draft{Name: values[fieldName], Description: values[fieldDescription]}
	if d.Name == "" {
		return Draft{}, errors.New("name is required")
	}
	var err error
	if d.Start, err = time.Parse(dateLayout, values[fieldStart]); err != nil {
		return Draft{}, fmt.Errorf("start must be a date like %s", dateLayout)
	}
	if d.Deadline, err = time.Parse(dateLayout, values[fieldDeadline]); err != nil {
		return Draft{}, fmt.Errorf("deadline must be a date like %s", dateLayout)
	}
	if d.TargetBooks, err = optionalCount("target books", values[fieldTargetBooks]); err != nil {
		return Draft{}, err
	}
	if d.TargetPages, err = optionalCount("target pages", values[fieldTargetPages]); err != nil {
		return Draft{}, err
	}
	if d.TargetBooks == nil && d.TargetPages == nil {
		return Draft{}, errors.New("set a target for books, pages or both")
	}
	for _, isbn := range strings.Split(values[fieldBooks], ",") {
		if isbn = strings.TrimSpace(isbn); isbn != "" {
			d.ISBNs = append(d.ISBNs, isbn)
		}
	}
	return d, nil
}

func optionalCount(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%s must be a positive whole number", name)
	}
	return &n, nil
}

func (m Model) createCmd(d Draft) tea.Cmd {
	return func() tea.Msg {
		g, err := m.port.CreateGoal(context.Background(), d.Name, d.Description, d.Start, d.Deadline, d.TargetBooks, d.TargetPages, d.ISBNs)
		if err != nil {
			return failedMsg{err: err}
		}
		return nav.PopMsg{Status: fmt.Sprintf("created goal %q", g.Name)}
	}
}
