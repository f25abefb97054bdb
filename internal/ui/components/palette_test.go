package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(p Palette, s string) Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteTabCompletesAndSubmits(t *testing.T) {
	t.Parallel()
	p := NewPalette([]string{"goals", "goal:new", "home"})
	p.Open()
	p = typeText(p, "go")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, PaletteSubmitMsg{Input: "goals"}, cmd())
	assert.False(t, p.Visible())
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := NewPalette(nil)
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, PaletteCancelMsg{}, cmd())
	assert.False(t, p.Visible())
	assert.Empty(t, p.View())
}

func TestPaletteIgnoresInputWhenClosed(t *testing.T) {
	t.Parallel()
	p := NewPalette([]string{"home"})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, p.Visible())
}
