// Package nav keeps the stack of visible screens. Exactly one screen, the top,
// is attached to the display surface and holds input focus; the root is never
// popped.
package nav

import tea "github.com/charmbracelet/bubbletea"

// ID identifies one stacked occurrence of a screen. Pushing the same screen
// twice yields two ids.
type ID int

// Screen is anything the navigator can stack. Activate runs every time the
// screen becomes the visible top and returns the command that refreshes it.
//
// Commands returned by a screen are addressed back to it (see Targeted), so
// they must not be runtime commands such as tea.Sequence or tea.EnterAltScreen.
type Screen interface {
	Title() string
	Activate() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
}

// Surface is the single display the top screen is shown on.
type Surface interface {
	Attach(id ID, s Screen)
	Detach(id ID)
	Focus(id ID)
}

type entry struct {
	id     ID
	screen Screen
}

type Navigator struct {
	surface Surface
	stack   []entry
	lastID  ID
}

// New panics without a surface: there is nothing to navigate on.
func New(surface Surface) *Navigator {
	if surface == nil {
		panic("nav: navigator needs a display surface")
	}
	return &Navigator{surface: surface}
}

// PushAndActivate detaches the current top without notifying it, stacks s,
// attaches and activates it, then focuses it.
func (n *Navigator) PushAndActivate(s Screen) tea.Cmd {
	if top, ok := n.top(); ok {
		n.surface.Detach(top.id)
	}
	n.lastID++
	e := entry{id: n.lastID, screen: s}
	n.stack = append(n.stack, e)
	return n.show(e)
}

// PopToParent drops the top and re-activates the screen below. It does
// nothing while only the root is stacked.
func (n *Navigator) PopToParent() tea.Cmd {
	if !n.CanPopToParent() {
		return nil
	}
	top := n.stack[len(n.stack)-1]
	n.surface.Detach(top.id)
	n.stack = n.stack[:len(n.stack)-1]
	return n.show(n.stack[len(n.stack)-1])
}

// ResetToRoot discards every stacked screen and pushes root as the only one.
func (n *Navigator) ResetToRoot(root Screen) tea.Cmd {
	for len(n.stack) > 0 {
		top := n.stack[len(n.stack)-1]
		n.surface.Detach(top.id)
		n.stack = n.stack[:len(n.stack)-1]
	}
	return n.PushAndActivate(root)
}

func (n *Navigator) CanPopToParent() bool { return len(n.stack) > 1 }

func (n *Navigator) Len() int { return len(n.stack) }

// Top returns the visible screen and its id.
func (n *Navigator) Top() (ID, Screen, bool) {
	e, ok := n.top()
	return e.id, e.screen, ok
}

// Contains reports whether id is still stacked.
func (n *Navigator) Contains(id ID) bool {
	return n.index(id) >= 0
}

// Titles lists stacked screen titles from the root up.
func (n *Navigator) Titles() []string {
	out := make([]string, 0, len(n.stack))
	for _, e := range n.stack {
		out = append(out, e.screen.Title())
	}
	return out
}

// Update hands msg to the top screen.
func (n *Navigator) Update(msg tea.Msg) tea.Cmd {
	if len(n.stack) == 0 {
		return nil
	}
	return n.updateAt(len(n.stack)-1, msg)
}

// Broadcast hands msg to every stacked screen, e.g. a window resize.
func (n *Navigator) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(n.stack))
	for i := range n.stack {
		cmds = append(cmds, n.updateAt(i, msg))
	}
	return tea.Batch(cmds...)
}

// Deliver routes an addressed result to its screen, visible or not. Results
// for screens that were popped are dropped.
func (n *Navigator) Deliver(t Targeted) tea.Cmd {
	i := n.index(t.ID)
	if i < 0 {
		return nil
	}
	return n.updateAt(i, t.Msg)
}

func (n *Navigator) show(e entry) tea.Cmd {
	n.surface.Attach(e.id, e.screen)
	cmd := Address(e.id, e.screen.Activate())
	n.surface.Focus(e.id)
	return cmd
}

func (n *Navigator) updateAt(i int, msg tea.Msg) tea.Cmd {
	e := n.stack[i]
	next, cmd := e.screen.Update(msg)
	n.stack[i].screen = next
	return Address(e.id, cmd)
}

func (n *Navigator) top() (entry, bool) {
	if len(n.stack) == 0 {
		return entry{}, false
	}
	return n.stack[len(n.stack)-1], true
}

func (n *Navigator) index(id ID) int {
	for i, e := range n.stack {
		if e.id == id {
			return i
		}
	}
	return -1
}
