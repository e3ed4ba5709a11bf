package sunline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// KeyBGMVolume is the settings key for background music volume in [0, 1].
const KeyBGMVolume = "BGMVolume"

// Settings is a small persistent key-value store of float values, saved as
// a JSON object.
type Settings struct {
	path   string
	values map[string]float64
}

// NewSettings creates an in-memory store. An empty path never saves.
func NewSettings(path string) *Settings {
	return &Settings{path: path, values: make(map[string]float64)}
}

// LoadSettings reads the store at path. A missing file yields an empty
// store.
func LoadSettings(path string) (*Settings, error) {
	s := NewSettings(path)
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.values == nil {
		s.values = make(map[string]float64)
	}
	return s, nil
}

// Float returns the value stored under key, or def when unset.
func (s *Settings) Float(key string, def float64) float64 {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is set.
func (s *Settings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// SetFloat stores v under key. Call Save to persist.
func (s *Settings) SetFloat(key string, v float64) {
	s.values[key] = v
}

// Save writes the store to its path.
func (s *Settings) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
