// Package storage persists the panel settings as gzipped JSON in the
// configuration directory.
package storage

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/mt32panel/internal/types"
)

const settingsFile = "settings.json.gz"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Save writes the settings to dir, creating it if needed.
func Save(dir string, s types.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings folder: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, settingsFile))
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(s); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to flush settings: %w", err)
	}
	return nil
}

// Load reads the settings from dir. A missing file is not an error: the
// defaults are returned so a fresh install starts with factory settings.
func Load(dir string) (types.Settings, error) {
	f, err := os.Open(filepath.Join(dir, settingsFile))
	if os.IsNotExist(err) {
		return types.DefaultSettings(), nil
	}
	if err != nil {
		return types.DefaultSettings(), fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return types.DefaultSettings(), fmt.Errorf("failed to read settings file: %w", err)
	}
	defer gz.Close()

	s := types.DefaultSettings()
	if err := json.NewDecoder(gz).Decode(&s); err != nil {
		return types.DefaultSettings(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}
