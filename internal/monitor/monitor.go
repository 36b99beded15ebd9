// Package monitor is the terminal front panel: it polls the display core
// at a fixed cadence and renders the LCD, the MIDI MESSAGE LED and the
// per-part activity rows. It never decides what the panel shows; it only
// draws whatever Poll returns.
package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/schollz/mt32panel/internal/charset"
	"github.com/schollz/mt32panel/internal/clock"
	"github.com/schollz/mt32panel/internal/display"
	"github.com/schollz/mt32panel/internal/oscout"
	"github.com/schollz/mt32panel/internal/patches"
	"github.com/schollz/mt32panel/internal/types"
)

// updateInterval matches the hardware refresh floor: the panel is never
// redrawn more often than once per 30 ms.
const updateInterval = 30 * time.Millisecond

// noteFade is how long a note stays visible on the activity rows.
const noteFade = 300 * time.Millisecond

// TickMsg drives one poll of the display core.
type TickMsg time.Time

type keyMap struct {
	Note       key.Binding
	Rhythm     key.Binding
	Program    key.Binding
	Error      key.Binding
	Message    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Note:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "play note")),
		Rhythm:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rhythm note")),
		Program:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "program change")),
		Error:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "checksum error")),
		Message:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "custom message")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Note, k.Program, k.Message, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Note, k.Rhythm, k.Program},
		{k.Error, k.Message},
		{k.VolumeUp, k.VolumeDown},
		{k.Help, k.Quit},
	}
}

// Styles collects the lipgloss styles of the panel.
type Styles struct {
	Title     lipgloss.Style
	LCD       lipgloss.Style
	LCDFrame  lipgloss.Style
	LEDOn     lipgloss.Style
	LEDOff    lipgloss.Style
	Label     lipgloss.Style
	PartLabel lipgloss.Style
	PartIdle  lipgloss.Style
	Container lipgloss.Style
}

// The LCD palette of the real unit: yellow-green characters on olive.
func defaultStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		LCD:       lipgloss.NewStyle().Background(lipgloss.Color("#627F00")).Foreground(lipgloss.Color("#E8FE00")).Padding(0, 1),
		LCDFrame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")),
		LEDOn:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		LEDOff:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		PartLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Width(14),
		PartIdle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Container: lipgloss.NewStyle().Padding(1, 2),
	}
}

// Model is the bubbletea model for the panel.
type Model struct {
	disp  *display.Display
	clk   *clock.Clock
	parts *types.PartsState
	osc   *oscout.Broadcaster

	keys   keyMap
	help   help.Model
	styles *Styles
	ascii  bool

	ledOn bool
	lcd   [display.LCDTextSize]byte

	simPart    uint8
	simProgram uint8
	simVel     uint8
	simMsg     int
	width      int
}

// New builds the panel model. osc may be nil.
func New(disp *display.Display, clk *clock.Clock, parts *types.PartsState, osc *oscout.Broadcaster) Model {
	return Model{
		disp:   disp,
		clk:    clk,
		parts:  parts,
		osc:    osc,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: defaultStyles(),
		ascii:  termenv.ColorProfile() == termenv.Ascii,
		simVel: 100,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(updateInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Demo messages shown on the m key, 20 characters each, written in two
// fragments the way games deliver them over sysex.
var demoMessages = []string{
	"Lucasfilm Games(tm)!",
	"  Insert Disk  2    ",
	"   MT-32 Sound On   ",
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := m.clk.Now()
		m.ledOn, m.lcd = m.disp.Poll(now)
		m.osc.Send(m.ledOn, charset.Render(m.lcd[:]))
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clk.Now()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Note):
		m.simVel = 30 + (m.simVel+17)%98
		m.disp.MIDIMessagePlayed(now)
		m.parts.NotePlayed(m.simPart%8, 60, m.simVel)

	case key.Matches(msg, m.keys.Rhythm):
		m.disp.MIDIMessagePlayed(now)
		m.disp.RhythmNotePlayed(now)
		m.parts.NotePlayed(display.RhythmPart, 40, 110)

	case key.Matches(msg, m.keys.Program):
		part := m.simPart % 8
		m.simProgram = (m.simProgram + 1) % 128
		m.simPart++
		m.disp.MIDIMessagePlayed(now)
		m.parts.SetProgram(part, m.simProgram)
		m.disp.ProgramChanged(part, now)

	case key.Matches(msg, m.keys.Error):
		m.disp.ChecksumErrorOccurred(now)

	case key.Matches(msg, m.keys.Message):
		text := demoMessages[m.simMsg%len(demoMessages)]
		m.simMsg++
		m.disp.CustomMessage([]byte(text[:10]), 0, now)
		m.disp.CustomMessage([]byte(text[10:]), 10, now)

	case key.Matches(msg, m.keys.VolumeUp):
		m.disp.SetMasterVolume(clampVolume(int(m.disp.MasterVolume()) + 5))

	case key.Matches(msg, m.keys.VolumeDown):
		m.disp.SetMasterVolume(clampVolume(int(m.disp.MasterVolume()) - 5))
	}
	return m, nil
}

func clampVolume(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return uint8(v)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("MT-32 Front Panel"))
	b.WriteString("\n\n")

	lcd := m.styles.LCDFrame.Render(m.styles.LCD.Render(charset.Render(m.lcd[:])))
	led := m.renderLED()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, lcd, "  ", led))
	b.WriteString("\n\n")

	b.WriteString(m.renderParts())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.Container.Render(b.String())
}

func (m Model) renderLED() string {
	dot := "●"
	if m.ascii {
		dot = "*"
	}
	style := m.styles.LEDOff
	if m.ledOn {
		style = m.styles.LEDOn
	}
	return style.Render(dot) + " " + m.styles.Label.Render("MIDI MESSAGE")
}

func (m Model) renderParts() string {
	var b strings.Builder
	snapshot := m.parts.Snapshot()
	now := time.Now()

	for part := uint8(0); part < types.PartCount; part++ {
		st := snapshot[part]
		label := patches.PartLabel(part)
		if part < 8 {
			label = patches.Name(st.Program)
		}
		b.WriteString(m.styles.PartLabel.Render(label))
		b.WriteString(" ")
		b.WriteString(m.renderActivity(st, now))
		b.WriteString("\n")
	}
	return b.String()
}

// renderActivity draws one activity bar. Bar length tracks the key and the
// color tracks velocity, bright green for soft notes through red for hard
// ones, fading out after noteFade.
func (m Model) renderActivity(st types.PartState, now time.Time) string {
	const width = 24
	if st.LastNote.IsZero() || now.Sub(st.LastNote) > noteFade {
		return m.styles.PartIdle.Render(strings.Repeat("·", width))
	}

	// Key 12..107 maps across the bar, mirroring the hardware layout.
	pos := int(st.Key)
	if pos < 12 {
		pos = 12
	}
	pos = (pos - 12) * width / 96
	if pos >= width {
		pos = width - 1
	}

	style := lipgloss.NewStyle().Foreground(velocityColor(st.Velocity))
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i == pos {
			b.WriteString(style.Render("█"))
		} else {
			b.WriteString(m.styles.PartIdle.Render("·"))
		}
	}
	return b.String()
}

// velocityColor is the hardware monitor's ramp: (2v, 255-2v, 0).
func velocityColor(velocity uint8) lipgloss.Color {
	r := 2 * int(velocity)
	if r > 255 {
		r = 255
	}
	g := 255 - 2*int(velocity)
	if g < 0 {
		g = 0
	}
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: 0}
	return lipgloss.Color(c.Hex())
}

// Status returns a one-line summary, used for logging on shutdown.
func (m Model) Status() string {
	return fmt.Sprintf("mode=%s led=%t volume=%d", m.disp.Mode(), m.ledOn, m.disp.MasterVolume())
}
