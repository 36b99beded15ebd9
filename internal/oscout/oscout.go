// Package oscout broadcasts the panel state over OSC so external renderers
// (hardware LCDs, visualizers) can mirror the display without touching the
// core.
package oscout

import (
	"log"

	"github.com/hypebeast/go-osc/osc"
)

// Broadcaster sends /mt32panel/lcd and /mt32panel/led on change. A nil
// Broadcaster is valid and sends nothing, so callers do not need to guard
// the disabled case.
type Broadcaster struct {
	client   *osc.Client
	lastText string
	lastLED  bool
	sentOnce bool
}

// New returns a broadcaster targeting host:port.
func New(host string, port int) *Broadcaster {
	return &Broadcaster{client: osc.NewClient(host, port)}
}

// Send publishes the state if it differs from the last published one.
func (b *Broadcaster) Send(ledOn bool, text string) {
	if b == nil {
		return
	}
	if b.sentOnce && text == b.lastText && ledOn == b.lastLED {
		return
	}
	b.lastText = text
	b.lastLED = ledOn
	b.sentOnce = true

	lcd := osc.NewMessage("/mt32panel/lcd")
	lcd.Append(text)
	if err := b.client.Send(lcd); err != nil {
		log.Printf("Error sending OSC LCD message: %v", err)
	}

	led := osc.NewMessage("/mt32panel/led")
	var on int32
	if ledOn {
		on = 1
	}
	led.Append(on)
	if err := b.client.Send(led); err != nil {
		log.Printf("Error sending OSC LED message: %v", err)
	}
}
