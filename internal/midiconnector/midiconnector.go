// Package midiconnector bridges a MIDI input port to the panel: incoming
// messages are decoded into the display core's event calls, timestamped
// with the panel clock at arrival.
package midiconnector

import (
	"fmt"
	"log"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters the rtmidi driver

	"github.com/schollz/mt32panel/internal/clock"
	"github.com/schollz/mt32panel/internal/display"
	"github.com/schollz/mt32panel/internal/sysex"
	"github.com/schollz/mt32panel/internal/types"
)

// Connector feeds one MIDI input port into the panel.
type Connector struct {
	disp  *display.Display
	clk   *clock.Clock
	parts *types.PartsState
	in    drivers.In
	stop  func()
}

// Devices lists the available MIDI input port names.
func Devices() []string {
	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// New resolves a port by name (substring match, as the driver does) and
// prepares a connector for it.
func New(portName string, disp *display.Display, clk *clock.Clock, parts *types.PartsState) (*Connector, error) {
	in, err := midi.FindInPort(portName)
	if err != nil {
		return nil, fmt.Errorf("no MIDI input matching %q: %w", portName, err)
	}
	return &Connector{disp: disp, clk: clk, parts: parts, in: in}, nil
}

// Open starts listening. Sysex delivery is enabled because the custom
// display messages arrive that way.
func (c *Connector) Open() error {
	stop, err := midi.ListenTo(c.in, c.handle, midi.UseSysEx())
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.in.String(), err)
	}
	c.stop = stop
	log.Printf("Listening on MIDI input %q", c.in.String())
	return nil
}

// Close stops listening.
func (c *Connector) Close() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// Name returns the resolved port name.
func (c *Connector) Name() string {
	return c.in.String()
}

// CloseDriver releases the MIDI driver. Call once at program exit.
func CloseDriver() {
	midi.CloseDriver()
}

// partForChannel maps a 0-based MIDI channel to a part index using the
// factory default assignment: channels 2..9 drive parts 1..8 and channel
// 10 drives the rhythm part. Other channels are ignored by the device.
func partForChannel(ch uint8) (uint8, bool) {
	if ch >= 1 && ch <= 8 {
		return ch - 1, true
	}
	if ch == 9 {
		return display.RhythmPart, true
	}
	return 0, false
}

func (c *Connector) handle(msg midi.Message, timestampms int32) {
	now := c.clk.Now()

	var ch, key, vel, prog uint8
	var data []byte
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		c.disp.MIDIMessagePlayed(now)
		part, ok := partForChannel(ch)
		if !ok {
			return
		}
		if part == display.RhythmPart {
			c.disp.RhythmNotePlayed(now)
		}
		c.parts.NotePlayed(part, key, vel)

	case msg.GetProgramChange(&ch, &prog):
		c.disp.MIDIMessagePlayed(now)
		part, ok := partForChannel(ch)
		if !ok || part == display.RhythmPart {
			return
		}
		// Record the program before announcing it: the display queries
		// the patch name resolver while formatting the screen.
		c.parts.SetProgram(part, prog)
		c.disp.ProgramChanged(part, now)

	case msg.GetSysEx(&data):
		c.disp.MIDIMessagePlayed(now)
		c.handleSysEx(data, now)

	default:
		// Anything else still counts as MIDI traffic for the LED.
		c.disp.MIDIMessagePlayed(now)
	}
}

func (c *Connector) handleSysEx(data []byte, now display.Tick) {
	ev, err := sysex.Parse(data)
	if err != nil {
		log.Printf("Ignoring sysex: %v", err)
		return
	}
	switch ev := ev.(type) {
	case sysex.DisplayWrite:
		if err := c.disp.CustomMessage(ev.Data, ev.Offset, now); err != nil {
			log.Printf("Rejected display write at offset %d, %d bytes: %v", ev.Offset, len(ev.Data), err)
		}
	case sysex.DisplayReset:
		c.disp.ResetTimedScreen()
	case sysex.MasterVolume:
		c.disp.SetMasterVolume(ev.Volume)
	case sysex.ChecksumError:
		c.disp.ChecksumErrorOccurred(now)
	}
}
