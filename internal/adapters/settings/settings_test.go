package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, `
word_threshold = 250
delay_enabled = true
delay_seconds = 5
format = "markdown"
batch_mode = true
max_parts = 6
search_timeout = "10s"

[platforms]
claude = true
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.WordThreshold != 250 {
		t.Errorf("WordThreshold = %d, want 250", s.WordThreshold)
	}
	if !s.DelayEnabled || s.DelaySeconds != 5 {
		t.Errorf("delay = %v/%d, want enabled/5", s.DelayEnabled, s.DelaySeconds)
	}
	if s.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", s.Format)
	}
	if !s.BatchMode || s.MaxParts != 6 {
		t.Errorf("batch = %v/%d, want enabled/6", s.BatchMode, s.MaxParts)
	}
	if s.SearchTimeout != 10*time.Second {
		t.Errorf("SearchTimeout = %v, want 10s", s.SearchTimeout)
	}
	if !s.OverrideEnabled("claude") {
		t.Error("claude platform override not applied")
	}
	// Keys absent from the file keep their defaults.
	if !s.AutoAttach {
		t.Error("AutoAttach default lost")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, `word_threshold = 100`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := domain.DefaultSettings()
	if s.WordThreshold != 100 {
		t.Errorf("WordThreshold = %d, want 100", s.WordThreshold)
	}
	if s.Format != want.Format || s.MaxParts != want.MaxParts || s.SearchTimeout != want.SearchTimeout {
		t.Errorf("defaults not preserved: %+v", s)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `word_threshold = [`},
		{"bad duration", `search_timeout = "soon"`},
		{"invalid values", `word_threshold = -1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() = nil error, want failure")
			}
		})
	}
}

func TestNewFileSource_MissingFileServesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	src, err := NewFileSource(path, mockLogger{})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	if got, want := src.Settings(), domain.DefaultSettings(); got.WordThreshold != want.WordThreshold {
		t.Errorf("Settings() = %+v, want defaults", got)
	}
}

func TestFileSource_ReloadNotifiesSubscribers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, `word_threshold = 100`)

	src, err := NewFileSource(path, mockLogger{})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}

	got := make(chan domain.Settings, 1)
	cancel := src.Subscribe(func(s domain.Settings) { got <- s })
	defer cancel()

	writeFile(t, path, `word_threshold = 200`)
	src.Reload()

	select {
	case s := <-got:
		if s.WordThreshold != 200 {
			t.Errorf("notified WordThreshold = %d, want 200", s.WordThreshold)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never notified")
	}
	if src.Settings().WordThreshold != 200 {
		t.Errorf("Settings() not updated after reload")
	}
}

func TestFileSource_BrokenEditKeepsPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, `word_threshold = 100`)

	src, err := NewFileSource(path, mockLogger{})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}

	notified := make(chan struct{}, 1)
	cancel := src.Subscribe(func(domain.Settings) { notified <- struct{}{} })
	defer cancel()

	writeFile(t, path, `word_threshold = [broken`)
	src.Reload()

	select {
	case <-notified:
		t.Error("broken edit notified subscribers")
	case <-time.After(50 * time.Millisecond):
	}
	if src.Settings().WordThreshold != 100 {
		t.Errorf("WordThreshold = %d after broken edit, want previous 100", src.Settings().WordThreshold)
	}
}

func TestFileSource_WatchPicksUpWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	writeFile(t, path, `word_threshold = 100`)

	src, err := NewFileSource(path, mockLogger{})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}

	got := make(chan domain.Settings, 1)
	cancel := src.Subscribe(func(s domain.Settings) { got <- s })
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		src.Watch(ctx)
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, `word_threshold = 300`)

	select {
	case s := <-got:
		if s.WordThreshold != 300 {
			t.Errorf("notified WordThreshold = %d, want 300", s.WordThreshold)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never delivered the change")
	}

	stop()
	<-watchDone
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TEXTDROP_WORD_THRESHOLD", "150")
	t.Setenv("TEXTDROP_BATCH_MODE", "true")
	t.Setenv("TEXTDROP_SEARCH_TIMEOUT", "2s")

	s := domain.DefaultSettings()
	if err := ApplyEnv(&s, nil); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if s.WordThreshold != 150 || !s.BatchMode || s.SearchTimeout != 2*time.Second {
		t.Errorf("env not applied: %+v", s)
	}
}

func TestApplyEnv_ChangedFlagWins(t *testing.T) {
	t.Setenv("TEXTDROP_WORD_THRESHOLD", "150")

	s := domain.DefaultSettings()
	s.WordThreshold = 900
	if err := ApplyEnv(&s, map[string]bool{"word-threshold": true}); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if s.WordThreshold != 900 {
		t.Errorf("WordThreshold = %d, explicitly set flag overridden by env", s.WordThreshold)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("TEXTDROP_MAX_PARTS", "many")

	s := domain.DefaultSettings()
	if err := ApplyEnv(&s, nil); err == nil {
		t.Error("ApplyEnv() = nil error for invalid int")
	}
}

func TestStatic_NeverNotifies(t *testing.T) {
	s := domain.DefaultSettings()
	s.WordThreshold = 42
	src := NewStatic(s)

	if src.Settings().WordThreshold != 42 {
		t.Errorf("Settings() = %+v, want wrapped snapshot", src.Settings())
	}
	cancel := src.Subscribe(func(domain.Settings) { t.Error("static source notified") })
	cancel()
}
