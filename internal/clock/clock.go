// Package clock maps wall time onto the panel's sample-accurate tick
// counter. The hardware counts rendered samples; without an audio engine
// attached we derive the same time base from the monotonic clock.
package clock

import (
	"time"

	"github.com/schollz/mt32panel/internal/display"
)

// Clock converts wall time to ticks, anchored at its creation.
type Clock struct {
	start time.Time
}

// New returns a clock whose tick zero is now.
func New() *Clock {
	return &Clock{start: time.Now()}
}

// Now returns the current tick.
func (c *Clock) Now() display.Tick {
	return c.At(time.Now())
}

// At converts an arbitrary time to ticks. Times before the anchor map to
// zero so the tick counter never runs backwards.
func (c *Clock) At(t time.Time) display.Tick {
	elapsed := t.Sub(c.start)
	if elapsed < 0 {
		return 0
	}
	return Duration(elapsed)
}

// Duration converts a duration to a tick count. Split into whole seconds
// plus remainder to stay exact over long sessions.
func Duration(d time.Duration) display.Tick {
	if d < 0 {
		return 0
	}
	secs := d / time.Second
	rem := d % time.Second
	return display.Tick(secs)*display.SampleRate +
		display.Tick(rem*display.SampleRate/time.Second)
}
