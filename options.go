package textdrop

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	logAdapter "github.com/textdrop/textdrop/internal/adapters/log"
	presenterAdapter "github.com/textdrop/textdrop/internal/adapters/presenter"
	"github.com/textdrop/textdrop/internal/adapters/settings"
	telemetryAdapter "github.com/textdrop/textdrop/internal/adapters/telemetry"
	"github.com/textdrop/textdrop/internal/app"
	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// Aliases so embedders never import internal packages.
type (
	// Logger is the structured logging interface the engine reports through.
	Logger = ports.Logger

	// Field is a structured log field.
	Field = ports.Field

	// Document is the page the engine operates on.
	Document = ports.Document

	// Node is a single element within a Document.
	Node = ports.Node

	// File is the payload handed to a Node via SetFiles.
	File = ports.File

	// Platform is a per-host strategy for composer lookup, upload-target
	// discovery and attachment.
	Platform = ports.Platform

	// Presenter is the notification/progress/prompt surface.
	Presenter = ports.Presenter

	// Level categorizes notifications.
	Level = ports.Level

	// Telemetry is an optional best-effort usage event sink.
	Telemetry = ports.Telemetry

	// SettingsSource provides settings snapshots and change notifications.
	SettingsSource = ports.SettingsSource

	// Settings is the per-paste settings snapshot.
	Settings = domain.Settings

	// Outcome is the terminal result of one paste run.
	Outcome = domain.Outcome

	// Status categorizes outcomes.
	Status = domain.Status

	// Classification is a detected format with its confidence.
	Classification = domain.ClassificationResult

	// AttachableFile is a built file ready for upload.
	AttachableFile = domain.AttachableFile

	// RunState tracks where the engine is within one paste run.
	RunState = app.RunState

	// FileSettings is a TOML-file-backed SettingsSource with live reload.
	FileSettings = settings.FileSource
)

// Field constructors for structured logging.
var (
	String   = ports.String
	Int      = ports.Int
	Float64  = ports.Float64
	Bool     = ports.Bool
	Duration = ports.Duration
	Err      = ports.Err
	Any      = ports.Any
)

// Notification levels.
const (
	LevelInfo    = ports.LevelInfo
	LevelSuccess = ports.LevelSuccess
	LevelWarn    = ports.LevelWarn
	LevelError   = ports.LevelError
)

// Outcome statuses.
const (
	StatusAttached       = domain.StatusAttached
	StatusRejected       = domain.StatusRejected
	StatusCancelled      = domain.StatusCancelled
	StatusTargetNotFound = domain.StatusTargetNotFound
	StatusDeclined       = domain.StatusDeclined
)

// Sentinel errors surfaced by the engine.
var (
	ErrBusy            = domain.ErrBusy
	ErrInvalidSettings = domain.ErrInvalidSettings
	ErrNoRetry         = domain.ErrNoRetry
	ErrRenameCancelled = domain.ErrRenameCancelled
)

// NewZerologLogger creates a console logger writing to stderr at the given
// level ("debug", "info", "warn", "error"). An unknown level means info.
func NewZerologLogger(level string) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return logAdapter.NewZerologAdapterWithLogger(
		zerolog.New(output).Level(lvl).With().Timestamp().Logger(),
	)
}

// NewNoopLogger creates a logger that discards everything.
func NewNoopLogger() Logger {
	return logAdapter.NewNoopLogger()
}

// Option configures optional behavior of an Engine.
type Option func(*options)

type options struct {
	config    app.Config
	logger    ports.Logger
	presenter ports.Presenter
	telemetry ports.Telemetry
	platforms []ports.Platform
}

func defaultOptions() options {
	return options{
		logger:    logAdapter.NewNoopLogger(),
		presenter: presenterAdapter.Noop{},
		telemetry: telemetryAdapter.Noop{},
	}
}

// WithLogger sets a custom logger. Defaults to a no-op logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPresenter sets the notification surface. Defaults to a silent
// presenter whose rename prompt always reports cancellation.
func WithPresenter(p Presenter) Option {
	return func(o *options) {
		o.presenter = p
	}
}

// WithTelemetry sets a usage event sink. Defaults to a no-op sink.
func WithTelemetry(t Telemetry) Option {
	return func(o *options) {
		o.telemetry = t
	}
}

// WithPlatform registers an extra platform strategy. Extra platforms take
// precedence over the built-in ones when both match an origin.
func WithPlatform(p Platform) Option {
	return func(o *options) {
		o.platforms = append(o.platforms, p)
	}
}

// WithHTTPTelemetry routes usage events to a collector endpoint.
func WithHTTPTelemetry(baseURL, authKey string, logger Logger) Option {
	return func(o *options) {
		o.telemetry = telemetryAdapter.NewHTTPSink(baseURL, authKey, nil, logger)
	}
}
