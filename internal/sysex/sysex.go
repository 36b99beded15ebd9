// Package sysex decodes the display-relevant subset of the device's system
// exclusive protocol: Roland DT1 writes addressed at the display region,
// the display reset address and the system-area master volume. Everything
// else on the wire is reported as not-ours so callers can skip it.
package sysex

import (
	"errors"
	"fmt"
)

const (
	SysExStart = 0xF0
	SysExEnd   = 0xF7

	ManufacturerRoland = 0x41
	ModelID            = 0x16
	CmdDT1             = 0x12
)

// Address bytes, 7 bits each. The display text window lives at 20 00 00
// (third byte is the offset into the 20 characters), the display reset
// trigger at 20 01 00, and master volume at system area 10 00 16.
const (
	addrDisplayHigh = 0x20
	addrDisplayMid  = 0x00

	addrResetHigh = 0x20
	addrResetMid  = 0x01
	addrResetLow  = 0x00

	addrSystemHigh      = 0x10
	addrSystemMid       = 0x00
	addrMasterVolumeLow = 0x16
)

// DisplayWindowSize mirrors the LCD width; writes beyond it are malformed.
const DisplayWindowSize = 20

var (
	// ErrNotDisplaySysex marks well-formed frames this decoder does not
	// handle (other manufacturers, models, commands or addresses).
	ErrNotDisplaySysex = errors.New("sysex: not a display-related message")

	// ErrTruncated marks frames too short to carry a DT1 payload.
	ErrTruncated = errors.New("sysex: truncated message")
)

// Event is one decoded display-relevant message.
type Event interface{ isEvent() }

// DisplayWrite carries custom message text for the LCD window.
type DisplayWrite struct {
	Offset int
	Data   []byte
}

// DisplayReset asks the panel to drop any custom message and return to the
// default screen.
type DisplayReset struct{}

// MasterVolume carries a system-area master volume write.
type MasterVolume struct {
	Volume uint8
}

// ChecksumError reports a frame addressed at us whose Roland checksum does
// not match. The panel shows its error screen for these, so it is an event
// rather than a decode failure.
type ChecksumError struct{}

func (DisplayWrite) isEvent()  {}
func (DisplayReset) isEvent()  {}
func (MasterVolume) isEvent()  {}
func (ChecksumError) isEvent() {}

// Checksum computes the Roland checksum over address plus data bytes: the
// value that brings the 7-bit sum to a multiple of 128.
func Checksum(addrAndData []byte) byte {
	var sum int
	for _, b := range addrAndData {
		sum += int(b)
	}
	return byte((128 - sum%128) % 128)
}

// Parse decodes one sysex frame. The frame may arrive with or without the
// F0/F7 framing bytes, since MIDI drivers differ on whether they strip
// them. Returns ErrNotDisplaySysex for frames addressed elsewhere.
func Parse(raw []byte) (Event, error) {
	body, err := stripFraming(raw)
	if err != nil {
		return nil, err
	}
	// body: manufacturer, device ID, model ID, command, addr[3], data..., sum
	if len(body) < 8 {
		return nil, ErrTruncated
	}
	if body[0] != ManufacturerRoland || body[2] != ModelID || body[3] != CmdDT1 {
		return nil, ErrNotDisplaySysex
	}

	addr := body[4:7]
	data := body[7 : len(body)-1]
	sum := body[len(body)-1]
	if len(data) == 0 {
		return nil, ErrTruncated
	}

	// The device reports a checksum failure on any DT1 frame addressed at
	// it, whatever the target address.
	if Checksum(body[4:len(body)-1]) != sum {
		return ChecksumError{}, nil
	}

	switch {
	case addr[0] == addrDisplayHigh && addr[1] == addrDisplayMid:
		offset := int(addr[2])
		if offset >= DisplayWindowSize {
			return nil, fmt.Errorf("sysex: display offset %d outside the %d-character window", offset, DisplayWindowSize)
		}
		return DisplayWrite{Offset: offset, Data: data}, nil

	case addr[0] == addrResetHigh && addr[1] == addrResetMid && addr[2] == addrResetLow:
		return DisplayReset{}, nil

	case addr[0] == addrSystemHigh && addr[1] == addrSystemMid && addr[2] == addrMasterVolumeLow:
		return MasterVolume{Volume: data[0]}, nil
	}
	return nil, ErrNotDisplaySysex
}

func stripFraming(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrTruncated
	}
	if raw[0] == SysExStart {
		if len(raw) < 2 || raw[len(raw)-1] != SysExEnd {
			return nil, ErrTruncated
		}
		return raw[1 : len(raw)-1], nil
	}
	return raw, nil
}
