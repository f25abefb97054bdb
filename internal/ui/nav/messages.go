package nav

import tea "github.com/charmbracelet/bubbletea"

// Targeted carries a screen command's result back to the screen that issued
// it.
type Targeted struct {
	ID  ID
	Msg tea.Msg
}

// Request marks messages meant for the root model rather than a screen. They
// are never addressed.
type Request interface {
	request()
}

// PushMsg asks for Screen to be pushed and activated.
type PushMsg struct{ Screen Screen }

// PopMsg asks to go back to the parent screen, optionally reporting Status.
type PopMsg struct{ Status string }

// ResetMsg asks to return to the root screen.
type ResetMsg struct{}

// StatusMsg reports an outcome in the status bar. Err wins over Text.
type StatusMsg struct {
	Text string
	Err  error
}

func (PushMsg) request()   {}
func (PopMsg) request()    {}
func (ResetMsg) request()  {}
func (StatusMsg) request() {}

// Push, Pop and Status build commands for the requests above.
func Push(s Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

func Pop(status string) tea.Cmd {
	return func() tea.Msg { return PopMsg{Status: status} }
}

func Status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// Address wraps cmd so its result comes back as Targeted{id, msg}. Batches
// are addressed element by element; requests and quit pass through.
func Address(id ID, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			out := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				if c := Address(id, c); c != nil {
					out = append(out, c)
				}
			}
			return out
		case Request, tea.QuitMsg:
			return msg
		default:
			return Targeted{ID: id, Msg: msg}
		}
	}
}
