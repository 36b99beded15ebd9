package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRune(t *testing.T) {
	tests := []struct {
		name string
		in   byte
		want rune
	}{
		{"printable ascii", 'A', 'A'},
		{"space", 0x20, ' '},
		{"tilde", 0x7e, '~'},
		{"del", 0x7f, 0x7f},
		{"custom glyph", 0x01, '█'},
		{"vertical bar", 0x02, '|'},
		{"other control", 0x1f, ' '},
		{"nul", 0x00, ' '},
		{"high byte", 0x80, ' '},
		{"top byte", 0xff, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rune(tt.in))
		})
	}
}

func TestRender(t *testing.T) {
	got := Render([]byte{'3', 0x02, 'A', 'c', 'o', 'u', 0x00, 0x81})
	assert.Equal(t, "3|Acou  ", got)
}
