// Package types holds the small shared types the panel packages exchange,
// so storage, monitor and the MIDI bridge do not import each other.
package types

import (
	"sync"
	"time"
)

// Settings is the persisted panel configuration.
type Settings struct {
	MasterVolume     uint8  `json:"master_volume"`
	MIDIPort         string `json:"midi_port"`
	TextHoldMillis   int    `json:"text_hold_millis"`
	LEDHoldMillis    int    `json:"led_hold_millis"`
	RhythmHoldMillis int    `json:"rhythm_hold_millis"`
	OSCHost          string `json:"osc_host"`
	OSCPort          int    `json:"osc_port"`
}

// DefaultSettings returns the factory defaults.
func DefaultSettings() Settings {
	return Settings{
		MasterVolume:     100,
		TextHoldMillis:   1200,
		LEDHoldMillis:    100,
		RhythmHoldMillis: 50,
		OSCHost:          "localhost",
	}
}

// PartState is a snapshot of one part: its selected program and the last
// note seen on it.
type PartState struct {
	Program  uint8
	Key      uint8
	Velocity uint8
	LastNote time.Time
}

// PartCount is the number of parts: eight melodic plus the rhythm part.
const PartCount = 9

// PartsState tracks per-part activity. Written from the MIDI path, read
// from the render path.
type PartsState struct {
	mu    sync.Mutex
	parts [PartCount]PartState
}

// NewPartsState returns an empty parts table.
func NewPartsState() *PartsState {
	return &PartsState{}
}

// NotePlayed records a note on a part.
func (p *PartsState) NotePlayed(part, key, velocity uint8) {
	if part >= PartCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parts[part].Key = key
	p.parts[part].Velocity = velocity
	p.parts[part].LastNote = time.Now()
}

// SetProgram records a program change on a part.
func (p *PartsState) SetProgram(part, program uint8) {
	if part >= PartCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parts[part].Program = program
}

// Program returns the program selected on a part.
func (p *PartsState) Program(part uint8) uint8 {
	if part >= PartCount {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parts[part].Program
}

// Snapshot returns a copy of all part states.
func (p *PartsState) Snapshot() [PartCount]PartState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parts
}
