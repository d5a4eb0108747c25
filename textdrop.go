// Package textdrop converts large pasted text into file attachments for
// chat composers.
//
// An Engine watches paste events delivered by the embedder, classifies the
// pasted text, optionally splits it into multiple parts, builds named files
// and attaches them to the page's upload target through a per-platform
// strategy. The embedder supplies the page as a Document and receives the
// terminal result of every paste as an Outcome.
//
// Basic usage:
//
//	engine, err := textdrop.New(
//		textdrop.NewStaticSettings(textdrop.DefaultSettings()),
//		textdrop.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	outcome := engine.HandlePaste(ctx, doc, pastedText)
//	if outcome.Attached() {
//		// files are on the page
//	}
package textdrop

import (
	"context"

	"github.com/textdrop/textdrop/internal/adapters/settings"
	"github.com/textdrop/textdrop/internal/app"
	"github.com/textdrop/textdrop/internal/classify"
	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/filebuild"
	"github.com/textdrop/textdrop/internal/platforms"
	"github.com/textdrop/textdrop/internal/split"
)

// Engine is the paste-to-attachment engine. Create one per page with New;
// it is safe for concurrent use, though only one paste run is ever in
// flight at a time.
type Engine struct {
	orch       *app.Orchestrator
	classifier *classify.Classifier
}

// New creates an Engine reading settings from source.
func New(source SettingsSource, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, domain.ErrInvalidSettings
	}
	if err := source.Settings().Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	classifier := classify.New()
	orch := app.NewOrchestrator(
		o.config,
		split.New(classifier),
		filebuild.New(classifier),
		platforms.NewRegistry(o.platforms...),
		o.presenter,
		o.telemetry,
		o.logger,
		source,
	)

	return &Engine{orch: orch, classifier: classifier}, nil
}

// HandlePaste processes one paste event end-to-end and returns its terminal
// outcome. A paste arriving while another run is in flight is rejected,
// never queued.
func (e *Engine) HandlePaste(ctx context.Context, doc Document, text string) Outcome {
	return e.orch.HandlePaste(ctx, doc, text)
}

// CancelDelay aborts an in-flight pre-attach countdown, restoring the
// pasted text. A no-op when no countdown is running.
func (e *Engine) CancelDelay() {
	e.orch.CancelDelay()
}

// Retry re-runs the attach phase of the last failed paste. Returns
// ErrNoRetry when nothing is pending or the retry budget is spent.
func (e *Engine) Retry(ctx context.Context) (Outcome, error) {
	return e.orch.Retry(ctx)
}

// Classify reports the detected format of text without running a paste.
func (e *Engine) Classify(text string) Classification {
	return e.classifier.Classify(text)
}

// State returns the current run state, mainly for diagnostics.
func (e *Engine) State() RunState {
	return e.orch.State()
}

// Close releases the engine's settings subscription. The engine must not
// be used after Close.
func (e *Engine) Close() {
	e.orch.Close()
}

// NewStaticSettings wraps a fixed settings snapshot for embedders that
// manage settings themselves.
func NewStaticSettings(s Settings) SettingsSource {
	return settings.NewStatic(s)
}

// NewFileSettings serves settings from a TOML file with live reload; run
// Watch on its own goroutine to pick up edits.
func NewFileSettings(path string, logger Logger) (*FileSettings, error) {
	return settings.NewFileSource(path, logger)
}

// DefaultSettings returns the default settings snapshot.
func DefaultSettings() Settings {
	return domain.DefaultSettings()
}
