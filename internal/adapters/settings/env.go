package settings

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
)

// envSetter applies values only when the corresponding flag was not
// explicitly set, preserving flag > env > file > default precedence.
type envSetter struct {
	changed map[string]bool
}

func (s envSetter) skip(flag, raw string) bool {
	return raw == "" || s.changed[flag]
}

func (s envSetter) setString(flag, raw string, dst *string) {
	if s.skip(flag, raw) {
		return
	}
	*dst = raw
}

func (s envSetter) setInt(flag, raw string, dst *int) error {
	if s.skip(flag, raw) {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = v
	return nil
}

func (s envSetter) setBool(flag, raw string, dst *bool) error {
	if s.skip(flag, raw) {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = v
	return nil
}

func (s envSetter) setDuration(flag, raw string, dst *time.Duration) error {
	if s.skip(flag, raw) {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = v
	return nil
}

// ApplyEnv applies TEXTDROP_* environment variables to the snapshot. It
// respects flags that have been explicitly set (changed map). Returns an
// error when a variable has an invalid format.
func ApplyEnv(s *domain.Settings, changed map[string]bool) error {
	e := envSetter{changed: changed}

	if err := e.setInt("word-threshold", os.Getenv("TEXTDROP_WORD_THRESHOLD"), &s.WordThreshold); err != nil {
		return err
	}
	if err := e.setBool("auto-attach", os.Getenv("TEXTDROP_AUTO_ATTACH"), &s.AutoAttach); err != nil {
		return err
	}
	if err := e.setBool("delay-enabled", os.Getenv("TEXTDROP_DELAY_ENABLED"), &s.DelayEnabled); err != nil {
		return err
	}
	if err := e.setInt("delay-seconds", os.Getenv("TEXTDROP_DELAY_SECONDS"), &s.DelaySeconds); err != nil {
		return err
	}
	e.setString("format", os.Getenv("TEXTDROP_FORMAT"), &s.Format)
	if err := e.setBool("batch-mode", os.Getenv("TEXTDROP_BATCH_MODE"), &s.BatchMode); err != nil {
		return err
	}
	if err := e.setInt("max-parts", os.Getenv("TEXTDROP_MAX_PARTS"), &s.MaxParts); err != nil {
		return err
	}
	if err := e.setDuration("search-timeout", os.Getenv("TEXTDROP_SEARCH_TIMEOUT"), &s.SearchTimeout); err != nil {
		return err
	}
	return nil
}
