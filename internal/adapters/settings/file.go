// Package settings provides SettingsSource implementations: a static
// snapshot for embedders that manage settings themselves, and a TOML file
// source with live reload.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/textdrop/textdrop/internal/domain"
)

// fileSettings mirrors domain.Settings but uses pointers and string
// durations to make TOML friendly: absent keys keep their defaults.
type fileSettings struct {
	WordThreshold *int            `toml:"word_threshold"`
	AutoAttach    *bool           `toml:"auto_attach"`
	DelayEnabled  *bool           `toml:"delay_enabled"`
	DelaySeconds  *int            `toml:"delay_seconds"`
	Format        string          `toml:"format"`
	BatchMode     *bool           `toml:"batch_mode"`
	MaxParts      *int            `toml:"max_parts"`
	SearchTimeout string          `toml:"search_timeout"`
	Platforms     map[string]bool `toml:"platforms"`
}

// Load reads a TOML settings file and applies it over the defaults.
func Load(path string) (domain.Settings, error) {
	s := domain.DefaultSettings()

	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	var fs fileSettings
	if err := toml.Unmarshal(b, &fs); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := apply(&s, fs); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// apply overrides the snapshot with every key present in the file.
func apply(s *domain.Settings, fs fileSettings) error {
	if fs.WordThreshold != nil {
		s.WordThreshold = *fs.WordThreshold
	}
	if fs.AutoAttach != nil {
		s.AutoAttach = *fs.AutoAttach
	}
	if fs.DelayEnabled != nil {
		s.DelayEnabled = *fs.DelayEnabled
	}
	if fs.DelaySeconds != nil {
		s.DelaySeconds = *fs.DelaySeconds
	}
	if fs.Format != "" {
		s.Format = fs.Format
	}
	if fs.BatchMode != nil {
		s.BatchMode = *fs.BatchMode
	}
	if fs.MaxParts != nil {
		s.MaxParts = *fs.MaxParts
	}
	if fs.SearchTimeout != "" {
		d, err := time.ParseDuration(fs.SearchTimeout)
		if err != nil {
			return fmt.Errorf("search_timeout: %w", err)
		}
		s.SearchTimeout = d
	}
	if fs.Platforms != nil {
		s.PlatformOverrides = fs.Platforms
	}
	return nil
}

// DefaultPath returns ~/.textdrop/settings.toml when the home directory is
// accessible.
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".textdrop", "settings.toml")
	}
	return ""
}

// FileExists reports whether a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
