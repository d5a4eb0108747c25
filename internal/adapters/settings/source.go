package settings

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// debounceDelay coalesces rapid editor write bursts into one reload.
const debounceDelay = 100 * time.Millisecond

// Static is a SettingsSource over a fixed snapshot. Subscriptions never
// fire; embedders that change settings should use a FileSource or their own
// implementation.
type Static struct {
	s domain.Settings
}

// NewStatic wraps a fixed settings snapshot.
func NewStatic(s domain.Settings) *Static {
	return &Static{s: s}
}

// Settings returns the wrapped snapshot.
func (s *Static) Settings() domain.Settings { return s.s }

// Subscribe registers nothing; the snapshot never changes.
func (s *Static) Subscribe(func(domain.Settings)) func() { return func() {} }

// FileSource serves settings from a TOML file and reloads it when the file
// changes on disk. Construct with NewFileSource, then run Watch on its own
// goroutine for live reload.
type FileSource struct {
	path   string
	logger ports.Logger

	mu       sync.Mutex
	current  domain.Settings
	subs     map[int]func(domain.Settings)
	nextSub  int
	debounce *time.Timer
}

// NewFileSource loads the file at path and returns a source serving it.
// A missing file is not an error: defaults are served until it appears.
func NewFileSource(path string, logger ports.Logger) (*FileSource, error) {
	f := &FileSource{
		path:    path,
		logger:  logger,
		current: domain.DefaultSettings(),
		subs:    make(map[int]func(domain.Settings)),
	}
	if FileExists(path) {
		s, err := Load(path)
		if err != nil {
			return nil, err
		}
		f.current = s
	}
	return f, nil
}

// Settings returns the current snapshot.
func (f *FileSource) Settings() domain.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Subscribe registers a change callback. The returned func cancels it.
func (f *FileSource) Subscribe(fn func(domain.Settings)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Watch monitors the settings file via fsnotify until ctx is cancelled.
// The parent directory is watched rather than the file itself so atomic
// save-by-rename editors do not silently detach the watch.
func (f *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return err
	}

	base := filepath.Base(f.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			f.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("settings watcher error", ports.Err(err))
		}
	}
}

// scheduleReload debounces a reload so editor write bursts load once.
func (f *FileSource) scheduleReload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.debounce != nil {
		f.debounce.Stop()
	}
	f.debounce = time.AfterFunc(debounceDelay, f.Reload)
}

// Reload re-reads the file and notifies subscribers. An unreadable or
// invalid file keeps the previous snapshot; the last good settings always
// win over a broken edit.
func (f *FileSource) Reload() {
	s, err := Load(f.path)
	if err != nil {
		f.logger.Warn("settings reload failed, keeping previous", ports.Err(err))
		return
	}

	f.mu.Lock()
	f.current = s
	subs := make([]func(domain.Settings), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	f.logger.Info("settings reloaded", ports.String("path", f.path))
	for _, fn := range subs {
		fn(s)
	}
}
