package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/mt32panel/internal/types"
)

func TestSave(t *testing.T) {
	t.Run("successful save", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "panel")

		s := types.DefaultSettings()
		s.MasterVolume = 80
		s.MIDIPort = "MT-32 IN"

		assert.NoError(t, Save(dir, s))

		data, err := os.ReadFile(filepath.Join(dir, "settings.json.gz"))
		assert.NoError(t, err)
		assert.True(t, len(data) > 0)
	})

	t.Run("save to invalid path", func(t *testing.T) {
		err := Save(string([]byte{0}), types.DefaultSettings())
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "panel")

		s1 := types.DefaultSettings()
		s1.MasterVolume = 42
		s1.MIDIPort = "UM-ONE"
		s1.TextHoldMillis = 2000
		s1.OSCPort = 57200
		assert.NoError(t, Save(dir, s1))

		s2, err := Load(dir)
		assert.NoError(t, err)
		assert.Equal(t, s1, s2)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		s, err := Load(t.TempDir())
		assert.NoError(t, err)
		assert.Equal(t, types.DefaultSettings(), s)
	})

	t.Run("corrupt file returns defaults with error", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json.gz"), []byte("not gzip"), 0o644))

		s, err := Load(dir)
		assert.Error(t, err)
		assert.Equal(t, types.DefaultSettings(), s)
	})
}
