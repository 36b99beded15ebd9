// Package display emulates the front panel of an MT-32 class synthesizer:
// the one-line 20-character LCD and the MIDI MESSAGE LED.
//
// The state machine is pull-based: event methods record what happened and
// arm hold timers, but nothing expires until Poll runs. A caller that stops
// polling will keep seeing the last state indefinitely. This matches the
// hardware, where the panel refresh loop is the only thing that ever takes
// a message down again.
package display

import (
	"errors"
	"sync"
)

// LCDTextSize is the width of the device LCD in character cells.
const LCDTextSize = 20

// SampleRate is the device time base. Ticks are sample counts at this rate.
const SampleRate = 32000

// RhythmPart is the reserved part index for the rhythm part. Melodic parts
// are 0..7.
const RhythmPart = 8

// Tick is a monotonic timestamp counted in samples.
type Tick uint64

// Mode identifies which screen the LCD currently shows.
type Mode int

const (
	// ModeMain is the default master volume screen.
	ModeMain Mode = iota
	ModeStartupMessage
	ModeProgramChange
	ModeCustomMessage
	ModeErrorMessage
)

func (m Mode) String() string {
	switch m {
	case ModeMain:
		return "main"
	case ModeStartupMessage:
		return "startup"
	case ModeProgramChange:
		return "program-change"
	case ModeCustomMessage:
		return "custom-message"
	case ModeErrorMessage:
		return "error"
	}
	return "unknown"
}

// ErrMessageRange is returned by CustomMessage when a fragment does not fit
// inside the 20-character window. The write is rejected and no state changes.
var ErrMessageRange = errors.New("display: custom message fragment out of range")

// Config carries the device-specific constants. The hold durations and the
// fixed strings vary between hardware revisions and are not all documented;
// DefaultConfig gives working values that can be corrected from hardware
// measurements without touching the state machine.
type Config struct {
	// TextHold is how long a timed text screen (startup banner, program
	// change, custom message, checksum error) stays up before the display
	// reverts to the master volume screen.
	TextHold Tick

	// LEDHold is how long the MIDI MESSAGE LED stays lit after a message.
	LEDHold Tick

	// RhythmHold is the hold window of the rhythm activity flag.
	RhythmHold Tick

	// StartupText is shown while the mode is ModeStartupMessage.
	StartupText string

	// ChecksumErrorText is shown when a sysex checksum failure is reported.
	ChecksumErrorText string

	// PatchName resolves a part index to the name shown on a program
	// change. The panel itself has no patch memory; the surrounding synth
	// does, so it is queried through this hook. May be nil, in which case
	// program changes show only the part label.
	PatchName func(part uint8) string
}

// TicksForMillis converts a duration in milliseconds to ticks.
func TicksForMillis(ms int) Tick {
	return Tick(ms) * SampleRate / 1000
}

// DefaultConfig returns the documented default constants.
func DefaultConfig() Config {
	return Config{
		TextHold:          TicksForMillis(1200),
		LEDHold:           TicksForMillis(100),
		RhythmHold:        TicksForMillis(50),
		StartupText:       "                    ",
		ChecksumErrorText: "   Checksum error   ",
	}
}

// Display holds the panel state. One instance per synthesizer.
//
// Event methods are expected on the event-processing path and Poll on a
// lower-frequency refresh path; the mutex makes the one-writer/one-reader
// split safe, and guarantees a reader never observes a half-written buffer.
type Display struct {
	mu  sync.Mutex
	cfg Config

	mode                Mode
	displayBuffer       [LCDTextSize]byte
	customMessageBuffer [LCDTextSize]byte

	displayResetTimestamp Tick
	displayResetScheduled bool

	midiMessageLEDResetTimestamp Tick
	midiMessagePlayedSinceReset  bool
	rhythmStateResetTimestamp    Tick
	rhythmNotePlayedSinceReset   bool

	masterVolume uint8
}

// New creates a Display showing the startup banner, already scheduled to
// revert to the master volume screen. Tick zero is the moment of creation.
func New(cfg Config) *Display {
	d := &Display{cfg: cfg, masterVolume: 100}
	d.mode = ModeStartupMessage
	copyPadded(&d.displayBuffer, cfg.StartupText)
	d.scheduleDisplayReset(0)
	return d
}

// MIDIMessagePlayed records inbound MIDI traffic. Lights the LED for the
// configured hold window. Never changes the screen.
func (d *Display) MIDIMessagePlayed(now Tick) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.midiMessagePlayedSinceReset = true
	d.midiMessageLEDResetTimestamp = now + d.cfg.LEDHold
}

// RhythmNotePlayed records activity on the rhythm part.
//
// The flag has no read path yet: the hardware pairs it with an indicator
// this emulation does not model, so it is tracked and expired like the LED
// but never consumed.
func (d *Display) RhythmNotePlayed(now Tick) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rhythmNotePlayedSinceReset = true
	d.rhythmStateResetTimestamp = now + d.cfg.RhythmHold
}

// ProgramChanged shows the patch newly selected on a part. Part 0..7 are
// the melodic parts 1..8, RhythmPart is the rhythm part. Overwrites any
// timed screen already up.
func (d *Display) ProgramChanged(part uint8, now Tick) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.displayBuffer {
		d.displayBuffer[i] = ' '
	}
	if part == RhythmPart {
		d.displayBuffer[0] = 'R'
	} else {
		d.displayBuffer[0] = '1' + part
	}
	// 0x02 is the device code for the vertical bar glyph.
	d.displayBuffer[1] = 0x02
	if d.cfg.PatchName != nil {
		name := d.cfg.PatchName(part)
		for i := 0; i < len(name) && 2+i < LCDTextSize; i++ {
			d.displayBuffer[2+i] = name[i]
		}
	}

	d.mode = ModeProgramChange
	d.scheduleDisplayReset(now)
}

// ChecksumErrorOccurred shows the checksum error screen. Always wins over
// whatever timed screen was up; there is no queuing, later events clobber
// earlier ones in call order.
func (d *Display) ChecksumErrorOccurred(now Tick) {
	d.mu.Lock()
	defer d.mu.Unlock()
	copyPadded(&d.displayBuffer, d.cfg.ChecksumErrorText)
	d.mode = ModeErrorMessage
	d.scheduleDisplayReset(now)
}

// CustomMessage writes a fragment of a vendor display message at the given
// offset of the 20-character window. Fragments arriving within the hold
// window keep the assembled message up continuously: every accepted write
// re-arms the timer. A fragment that does not fit is rejected with
// ErrMessageRange and leaves all state untouched.
func (d *Display) CustomMessage(fragment []byte, start int, now Tick) error {
	if start < 0 || start+len(fragment) > LCDTextSize {
		return ErrMessageRange
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	copy(d.customMessageBuffer[start:], fragment)
	d.mode = ModeCustomMessage
	d.scheduleDisplayReset(now)
	return nil
}

// ResetTimedScreen drops whatever timed screen is up and returns to the
// master volume screen immediately. The hardware does this when the
// display reset address is written over sysex.
func (d *Display) ResetTimedScreen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.displayResetScheduled = false
	d.mode = ModeMain
	d.composeMainScreen()
}

// SetMasterVolume sets the volume shown on the master volume screen,
// clamped to 0..100. The hardware updates this from the system-area sysex.
func (d *Display) SetMasterVolume(v uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v > 100 {
		v = 100
	}
	d.masterVolume = v
	if d.mode == ModeMain {
		d.composeMainScreen()
	}
}

// MasterVolume returns the current master volume.
func (d *Display) MasterVolume() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.masterVolume
}

// Poll is the single read path, called once per panel refresh. It expires
// the hold timers against now (deadlines are inclusive: a poll at exactly
// the deadline already sees the reverted state), then reports whether the
// MIDI MESSAGE LED is lit and what the LCD shows. Safe to call every tick;
// repeated polls at the same now are idempotent.
func (d *Display) Poll(now Tick) (ledOn bool, text [LCDTextSize]byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.displayResetScheduled && d.displayResetTimestamp <= now {
		d.displayResetScheduled = false
		d.mode = ModeMain
		d.composeMainScreen()
	}
	maybeResetTimer(&d.midiMessagePlayedSinceReset, d.midiMessageLEDResetTimestamp, now)
	maybeResetTimer(&d.rhythmNotePlayedSinceReset, d.rhythmStateResetTimestamp, now)

	if d.mode == ModeCustomMessage {
		text = d.customMessageBuffer
	} else {
		text = d.displayBuffer
	}
	return d.midiMessagePlayedSinceReset, text
}

// Mode returns the screen currently selected. Timers are not evaluated;
// only Poll expires state.
func (d *Display) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Display) scheduleDisplayReset(now Tick) {
	d.displayResetTimestamp = now + d.cfg.TextHold
	d.displayResetScheduled = true
}

func maybeResetTimer(flag *bool, deadline Tick, now Tick) {
	if *flag && deadline <= now {
		*flag = false
	}
}

// composeMainScreen writes the master volume screen, e.g.
// "1 2 3 4 5 R |vol:100" with the bar as device code 0x02.
func (d *Display) composeMainScreen() {
	const prefix = "1 2 3 4 5 R "
	copy(d.displayBuffer[:], prefix)
	d.displayBuffer[12] = 0x02
	copy(d.displayBuffer[13:], "vol:")
	v := d.masterVolume
	for i := LCDTextSize - 1; i >= 17; i-- {
		d.displayBuffer[i] = '0' + v%10
		v /= 10
		if v == 0 {
			for j := 17; j < i; j++ {
				d.displayBuffer[j] = ' '
			}
			break
		}
	}
}

func copyPadded(dst *[LCDTextSize]byte, s string) {
	for i := range dst {
		if i < len(s) {
			dst[i] = s[i]
		} else {
			dst[i] = ' '
		}
	}
}
