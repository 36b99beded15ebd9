// Package charset maps the device's LCD character codes to printable runes
// for terminal rendering. The panel core hands out raw device codes; what a
// given code looks like is a renderer concern, handled here.
package charset

// Rune translates one device code. The LCD font covers printable ASCII plus
// two special codes used by the firmware: 0x01 (a custom glyph in the
// device font, shown as a block) and 0x02 (vertical bar). Everything else
// outside 0x20..0x7f renders as a blank cell.
func Rune(b byte) rune {
	switch {
	case b == 0x01:
		return '█'
	case b == 0x02:
		return '|'
	case b < 0x20 || b > 0x7f:
		return ' '
	}
	return rune(b)
}

// Render translates a full text buffer.
func Render(text []byte) string {
	out := make([]rune, len(text))
	for i, b := range text {
		out[i] = Rune(b)
	}
	return string(out)
}
