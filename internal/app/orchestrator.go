// Package app contains the paste orchestration state machine.
//
// The orchestrator owns a paste event end-to-end: capture, dedup, optional
// cancellable delay, optional multi-file splitting, file construction,
// bounded target discovery via the active platform strategy, and outcome
// reporting. At most one run is in flight at a time; a paste arriving while
// busy is rejected outright, never queued.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/filebuild"
	"github.com/textdrop/textdrop/internal/platforms"
	"github.com/textdrop/textdrop/internal/ports"
	"github.com/textdrop/textdrop/internal/split"
)

// Config contains tunables for the orchestrator loop.
type Config struct {
	// PartPause is the fixed pause between sequential batch sub-runs, so the
	// host page's per-upload UI state machine is never reentered.
	PartPause time.Duration

	// DelayTick is the countdown step; one second in production, shortened
	// in tests.
	DelayTick time.Duration

	// MaxRetries bounds manual Retry calls after a failed attach phase.
	MaxRetries int
}

// SetDefaults fills zero fields with production values.
func (c *Config) SetDefaults() {
	if c.PartPause == 0 {
		c.PartPause = 500 * time.Millisecond
	}
	if c.DelayTick == 0 {
		c.DelayTick = time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 2
	}
}

// retrySnapshot holds what a manual retry needs: the document, the platform
// that failed, and the files that were never accepted.
type retrySnapshot struct {
	doc      ports.Document
	platform ports.Platform
	files    []domain.AttachableFile
	settings domain.Settings
	runID    string
	used     int
}

// Orchestrator is the paste state machine. Construct with NewOrchestrator;
// one instance per page load. The busy flag and dedup hash are instance
// fields, never process globals, so independent instances cannot leak state
// into each other.
type Orchestrator struct {
	config    Config
	splitter  *split.Splitter
	builder   *filebuild.Builder
	registry  *platforms.Registry
	presenter ports.Presenter
	telemetry ports.Telemetry
	logger    ports.Logger
	settings  ports.SettingsSource

	mu          sync.Mutex
	state       RunState
	busy        bool
	lastHash    string
	cancelDelay chan struct{}
	retry       *retrySnapshot

	unsubscribe func()
}

// NewOrchestrator creates an orchestrator with the given dependencies and
// subscribes it to settings changes: any change resets the busy flag and
// dedup hash, since changed settings may change how the same text should
// be handled.
func NewOrchestrator(
	config Config,
	splitter *split.Splitter,
	builder *filebuild.Builder,
	registry *platforms.Registry,
	presenter ports.Presenter,
	telemetry ports.Telemetry,
	logger ports.Logger,
	settings ports.SettingsSource,
) *Orchestrator {
	config.SetDefaults()
	o := &Orchestrator{
		config:    config,
		splitter:  splitter,
		builder:   builder,
		registry:  registry,
		presenter: presenter,
		telemetry: telemetry,
		logger:    logger,
		settings:  settings,
		state:     StateIdle,
	}
	o.unsubscribe = settings.Subscribe(func(domain.Settings) {
		o.invalidate("settings changed")
	})
	return o
}

// Close cancels the settings subscription.
func (o *Orchestrator) Close() {
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

// State returns the current run state. Safe to call from any goroutine.
func (o *Orchestrator) State() RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// CancelDelay aborts an in-flight delay countdown, if any. The run ends
// with a cancelled outcome and the original text restored.
func (o *Orchestrator) CancelDelay() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancelDelay != nil {
		close(o.cancelDelay)
		o.cancelDelay = nil
	}
}

// invalidate resets dedup and busy state. Every exit path and the settings
// subscription funnel through here or finish(); a stuck busy flag would
// permanently wedge the orchestrator.
func (o *Orchestrator) invalidate(reason string) {
	o.mu.Lock()
	o.lastHash = ""
	o.busy = false
	o.state = StateIdle
	o.cancelDelay = nil
	o.mu.Unlock()
	o.logger.Debug("orchestrator state invalidated", ports.String("reason", reason))
}

// HandlePaste processes one captured paste event end-to-end and returns its
// terminal outcome. Rejections before any work starts are silent; every
// accepted attempt produces exactly one presenter notification.
func (o *Orchestrator) HandlePaste(ctx context.Context, doc ports.Document, text string) domain.Outcome {
	snapshot := o.settings.Settings()

	if !snapshot.AutoAttach {
		return reject(domain.ReasonDisabled)
	}
	if domain.WordCount(text) < snapshot.WordThreshold {
		return reject(domain.ReasonBelowThreshold)
	}

	platform := o.registry.ForOrigin(doc.Origin())
	if !platform.ShouldIntercept(doc, text, snapshot) {
		return reject(domain.ReasonPlatformVeto)
	}

	hash := domain.ContentHash(text)

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		o.logger.Debug("paste rejected", ports.String("reason", domain.ReasonBusy))
		return reject(domain.ReasonBusy)
	}
	if hash == o.lastHash && o.lastHash != "" {
		o.mu.Unlock()
		o.logger.Debug("paste rejected", ports.String("reason", domain.ReasonDuplicate))
		return reject(domain.ReasonDuplicate)
	}
	o.busy = true
	o.lastHash = hash
	o.state = StateCaptured
	cancelCh := make(chan struct{})
	o.cancelDelay = cancelCh
	o.mu.Unlock()

	runID := ulid.Make().String()
	o.logger.Info("paste captured",
		ports.String("run_id", runID),
		ports.String("platform", platform.Name()),
		ports.Int("bytes", len(text)),
	)
	o.emit(ctx, "paste_captured", map[string]string{
		"run_id":   runID,
		"platform": platform.Name(),
	})

	capture := o.capture(platform, doc, text)
	outcome := o.run(ctx, runID, snapshot, platform, doc, capture, cancelCh)
	o.finish(outcome)
	return outcome
}

// capture snapshots the paste and its composer caret for later restoration.
func (o *Orchestrator) capture(platform ports.Platform, doc ports.Document, text string) domain.PasteCapture {
	caret := 0
	if composer, ok := platform.Composer(doc); ok {
		caret = composer.Caret()
	}
	return domain.NewCapture(text, caret)
}

// run drives an accepted capture through delay, build, and attach. All
// collaborator panics are contained here: a stale host context must never
// escape the orchestrator boundary.
func (o *Orchestrator) run(
	ctx context.Context,
	runID string,
	snapshot domain.Settings,
	platform ports.Platform,
	doc ports.Document,
	capture domain.PasteCapture,
	cancelCh chan struct{},
) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("collaborator panic recovered", ports.Any("panic", r), ports.String("run_id", runID))
			o.presenter.HideProgress()
			outcome = domain.Outcome{
				Status:    domain.StatusDeclined,
				Reason:    fmt.Sprintf("host error: %v", r),
				RunID:     runID,
				Retryable: false,
			}
			o.notify(outcome, platform)
		}
	}()

	if snapshot.DelayEnabled {
		if !o.delay(ctx, snapshot.DelaySeconds, cancelCh) {
			o.restore(platform, doc, capture)
			o.presenter.HideProgress()
			outcome = domain.Outcome{Status: domain.StatusCancelled, Reason: "cancelled during delay", RunID: runID}
			o.notify(outcome, platform)
			o.emit(ctx, "paste_cancelled", map[string]string{"run_id": runID})
			return outcome
		}
	}

	o.transition(StateBuilding, runID)
	files := o.build(ctx, runID, snapshot, capture)

	outcome = o.attachAll(ctx, runID, snapshot, platform, doc, files, 0)
	if !outcome.Attached() && outcome.Status != domain.StatusCancelled {
		// Nothing made it onto the page; give the user their text back.
		if len(outcome.Filenames) == 0 {
			o.restore(platform, doc, capture)
		}
	}
	return outcome
}

// delay runs the cancellable countdown. Returns false when cancelled.
func (o *Orchestrator) delay(ctx context.Context, seconds int, cancelCh chan struct{}) bool {
	o.transition(StateDelaying, "")
	for remaining := seconds; remaining > 0; remaining-- {
		o.presenter.ShowProgress(fmt.Sprintf("attaching as file in %ds", remaining))
		select {
		case <-ctx.Done():
			return false
		case <-cancelCh:
			return false
		case <-time.After(o.config.DelayTick):
		}
	}
	return true
}

// build produces the files for this run: a batch fan-out when splitting
// applies, else exactly one file. Building never fails.
func (o *Orchestrator) build(ctx context.Context, runID string, snapshot domain.Settings, capture domain.PasteCapture) []domain.AttachableFile {
	if snapshot.BatchMode {
		if parts := o.splitter.Split(capture.Text, snapshot.MaxParts); len(parts) > 0 {
			files := make([]domain.AttachableFile, 0, len(parts))
			for _, p := range parts {
				files = append(files, o.builder.BuildPart(p))
			}
			o.logger.Info("batch split",
				ports.String("run_id", runID),
				ports.Int("parts", len(files)),
			)
			return files
		}
	}

	name := o.confirmName(ctx)
	return []domain.AttachableFile{o.builder.Build(capture.Text, snapshot.Format, name)}
}

// confirmName asks the presenter for a custom base name. Cancellation or
// any error falls back to the auto-generated name.
func (o *Orchestrator) confirmName(ctx context.Context) string {
	name, err := o.presenter.ConfirmRename(ctx, "")
	if err != nil {
		if !errors.Is(err, domain.ErrRenameCancelled) {
			o.logger.Warn("rename prompt failed", ports.Err(err))
		}
		return ""
	}
	return name
}

// attachAll attaches files strictly in order, pausing between parts.
// startIdx supports retries that resume after previously accepted files.
func (o *Orchestrator) attachAll(
	ctx context.Context,
	runID string,
	snapshot domain.Settings,
	platform ports.Platform,
	doc ports.Document,
	files []domain.AttachableFile,
	retriesUsed int,
) domain.Outcome {
	o.transition(StateSearching, runID)
	o.presenter.ShowProgress("attaching file")
	defer o.presenter.HideProgress()

	var attached []string
	for i, file := range files {
		if i > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(o.config.PartPause):
			}
		}

		target, ok := platform.EnsureUploadTarget(ctx, doc, snapshot.SearchTimeout)
		if !ok {
			return o.fail(ctx, domain.StatusTargetNotFound, runID, snapshot, platform, doc, files[i:], attached, retriesUsed)
		}
		if !platform.Attach(ctx, doc, file, target) {
			return o.fail(ctx, domain.StatusDeclined, runID, snapshot, platform, doc, files[i:], attached, retriesUsed)
		}

		attached = append(attached, file.Filename)
		o.logger.Info("file attached",
			ports.String("run_id", runID),
			ports.String("filename", file.Filename),
			ports.String("mime", file.MIME),
		)
		o.emit(ctx, "file_attached", map[string]string{
			"run_id":   runID,
			"filename": file.Filename,
			"mime":     file.MIME,
		})
	}

	o.transition(StateAttached, runID)
	outcome := domain.Outcome{Status: domain.StatusAttached, RunID: runID, Filenames: attached}
	o.notify(outcome, platform)
	return outcome
}

// fail records a retry snapshot and reports a categorized, retryable failure.
func (o *Orchestrator) fail(
	ctx context.Context,
	status domain.Status,
	runID string,
	snapshot domain.Settings,
	platform ports.Platform,
	doc ports.Document,
	remaining []domain.AttachableFile,
	attached []string,
	retriesUsed int,
) domain.Outcome {
	o.transition(StateFailed, runID)

	retryable := retriesUsed < o.config.MaxRetries
	o.mu.Lock()
	if retryable {
		o.retry = &retrySnapshot{
			doc:      doc,
			platform: platform,
			files:    remaining,
			settings: snapshot,
			runID:    runID,
			used:     retriesUsed,
		}
	} else {
		o.retry = nil
	}
	o.mu.Unlock()

	reason := "no upload target found on " + platform.Name()
	if status == domain.StatusDeclined {
		reason = platform.Name() + " did not accept the file"
	}

	outcome := domain.Outcome{
		Status:    status,
		Reason:    reason,
		RunID:     runID,
		Filenames: attached,
		Retryable: retryable,
	}
	o.notify(outcome, platform)
	o.emit(ctx, "attach_failed", map[string]string{
		"run_id": runID,
		"status": status.String(),
	})
	return outcome
}

// Retry re-runs the attach phase for the last failed run. Bounded by
// Config.MaxRetries; returns ErrNoRetry when nothing is pending or the
// budget is spent.
func (o *Orchestrator) Retry(ctx context.Context) (domain.Outcome, error) {
	o.mu.Lock()
	snap := o.retry
	if snap == nil || o.busy {
		o.mu.Unlock()
		return domain.Outcome{}, domain.ErrNoRetry
	}
	o.retry = nil
	o.busy = true
	o.mu.Unlock()

	o.logger.Info("manual retry", ports.String("run_id", snap.runID), ports.Int("attempt", snap.used+1))
	outcome := o.attachAll(ctx, snap.runID, snap.settings, snap.platform, snap.doc, snap.files, snap.used+1)
	o.finish(outcome)
	return outcome, nil
}

// restore puts the original pasted text back into the composer at the
// captured caret position. Best effort: a vanished composer is not an error.
func (o *Orchestrator) restore(platform ports.Platform, doc ports.Document, capture domain.PasteCapture) {
	composer, ok := platform.Composer(doc)
	if !ok {
		o.logger.Warn("composer gone, cannot restore text")
		return
	}
	if err := composer.InsertText(capture.Caret, capture.Text); err != nil {
		o.logger.Warn("text restore failed", ports.Err(err))
	}
}

// finish clears the busy flag and in-flight delay channel. On success the
// dedup hash is also cleared so the same text can be processed again.
func (o *Orchestrator) finish(outcome domain.Outcome) {
	o.mu.Lock()
	o.busy = false
	o.cancelDelay = nil
	o.state = StateIdle
	if outcome.Attached() {
		o.lastHash = ""
	}
	o.mu.Unlock()
}

// transition updates the run state with a debug trace.
func (o *Orchestrator) transition(to RunState, runID string) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()
	o.logger.Debug("state transition",
		ports.String("from", from.String()),
		ports.String("to", to.String()),
		ports.String("run_id", runID),
	)
}

// notify sends the single terminal notification for an accepted attempt.
func (o *Orchestrator) notify(outcome domain.Outcome, platform ports.Platform) {
	switch outcome.Status {
	case domain.StatusAttached:
		if len(outcome.Filenames) == 1 {
			o.presenter.Notify("attached "+outcome.Filenames[0], ports.LevelSuccess)
		} else {
			o.presenter.Notify(fmt.Sprintf("attached %d files", len(outcome.Filenames)), ports.LevelSuccess)
		}
	case domain.StatusCancelled:
		o.presenter.Notify("paste left as text", ports.LevelInfo)
	default:
		msg := outcome.Reason
		if outcome.Retryable {
			msg += " (retry available)"
		}
		o.presenter.Notify(msg, ports.LevelError)
	}
}

// emit fires a best-effort telemetry event. Telemetry must never affect
// control flow, so a nil sink is fine and failures stay inside the adapter.
func (o *Orchestrator) emit(ctx context.Context, event string, attrs map[string]string) {
	if o.telemetry == nil {
		return
	}
	o.telemetry.Emit(ctx, event, attrs)
}

// reject builds the silent outcome for pastes dropped before any work.
func reject(reason string) domain.Outcome {
	return domain.Outcome{Status: domain.StatusRejected, Reason: reason}
}
