// Package presenter provides Presenter implementations for embedders that
// do not bring their own UI surface.
package presenter

import (
	"context"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// Noop discards all presentation. Rename prompts always report
// cancellation, so files keep their auto-generated names.
type Noop struct{}

func (Noop) ShowProgress(msg string) {}
func (Noop) HideProgress()           {}

func (Noop) ConfirmRename(ctx context.Context, suggested string) (string, error) {
	return "", domain.ErrRenameCancelled
}

func (Noop) Notify(msg string, level ports.Level) {}

// Logging routes presentation through a Logger. Useful for headless
// embedders and the CLI, where there is no toast surface.
type Logging struct {
	logger ports.Logger
}

// NewLogging creates a logger-backed presenter.
func NewLogging(logger ports.Logger) *Logging {
	return &Logging{logger: logger}
}

func (p *Logging) ShowProgress(msg string) {
	p.logger.Info("progress", ports.String("message", msg))
}

func (p *Logging) HideProgress() {}

// ConfirmRename reports cancellation; a log stream cannot prompt.
func (p *Logging) ConfirmRename(ctx context.Context, suggested string) (string, error) {
	return "", domain.ErrRenameCancelled
}

func (p *Logging) Notify(msg string, level ports.Level) {
	switch level {
	case ports.LevelError:
		p.logger.Error(msg)
	case ports.LevelWarn:
		p.logger.Warn(msg)
	default:
		p.logger.Info(msg, ports.String("level", level.String()))
	}
}
