package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/mt32panel/internal/clock"
	"github.com/schollz/mt32panel/internal/display"
	"github.com/schollz/mt32panel/internal/types"
)

func newTestModel() Model {
	cfg := display.DefaultConfig()
	cfg.StartupText = "panel under test"
	return New(display.New(cfg), clock.New(), types.NewPartsState(), nil)
}

func TestVelocityColor(t *testing.T) {
	tests := []struct {
		velocity uint8
		want     lipgloss.Color
	}{
		{0, lipgloss.Color("#00ff00")},
		{64, lipgloss.Color("#807f00")},
		{127, lipgloss.Color("#fe0100")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, velocityColor(tt.velocity), "velocity %d", tt.velocity)
	}
}

func TestClampVolume(t *testing.T) {
	assert.Equal(t, uint8(0), clampVolume(-5))
	assert.Equal(t, uint8(50), clampVolume(50))
	assert.Equal(t, uint8(100), clampVolume(105))
}

func TestDemoMessagesFitTheLCD(t *testing.T) {
	for _, msg := range demoMessages {
		assert.Len(t, msg, display.LCDTextSize, "%q", msg)
	}
}

func TestTickPollsTheCore(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(TickMsg(time.Now()))
	require.NotNil(t, cmd, "ticking must reschedule itself")

	got := next.(Model)
	assert.Contains(t, string(got.lcd[:]), "panel under test")
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMessageKeyShowsCustomMessage(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = next.(Model)
	assert.Equal(t, display.ModeCustomMessage, m.disp.Mode())

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	assert.Equal(t, demoMessages[0], strings.TrimRight(string(m.lcd[:]), "\x00"))
}

func TestVolumeKeysClampAtBounds(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 30; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
		m = next.(Model)
	}
	assert.Equal(t, uint8(100), m.disp.MasterVolume())

	for i := 0; i < 30; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
		m = next.(Model)
	}
	assert.Equal(t, uint8(0), m.disp.MasterVolume())
}

func TestViewRendersAllRows(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "MIDI MESSAGE")
	assert.Contains(t, view, "Rhythm Part")
	assert.Contains(t, view, "AcouPiano1", "untouched parts show program 0")
}
