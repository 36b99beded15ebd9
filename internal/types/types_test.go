package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartsState(t *testing.T) {
	p := NewPartsState()

	p.NotePlayed(0, 60, 100)
	p.SetProgram(0, 32)
	p.SetProgram(8, 5)

	snap := p.Snapshot()
	assert.Equal(t, uint8(60), snap[0].Key)
	assert.Equal(t, uint8(100), snap[0].Velocity)
	assert.False(t, snap[0].LastNote.IsZero())
	assert.Equal(t, uint8(32), p.Program(0))
	assert.Equal(t, uint8(5), p.Program(8))
}

func TestPartsStateIgnoresOutOfRangeParts(t *testing.T) {
	p := NewPartsState()
	p.NotePlayed(9, 60, 100)
	p.SetProgram(200, 1)
	assert.Equal(t, uint8(0), p.Program(200))
	assert.Equal(t, [PartCount]PartState{}, p.Snapshot())
}
