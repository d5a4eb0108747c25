package ports

import (
	"context"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
)

// Platform is one host application's strategy for locating the composer,
// producing an upload target, and attaching files. Strategies are stateless
// across pastes except for platform-specific in-flight flags.
type Platform interface {
	// Name returns the stable platform identifier (e.g. "chatgpt").
	Name() string

	// Matches reports whether this strategy handles the given page origin.
	Matches(origin string) bool

	// Composer locates the active text-entry surface: the focused editable
	// element when there is one, else the platform's default query.
	Composer(doc Document) (Node, bool)

	// EnsureUploadTarget locates an existing upload control, or triggers
	// whatever UI action reveals one and polls until it appears or the
	// timeout elapses. The timeout is a hard deadline, not a hint.
	EnsureUploadTarget(ctx context.Context, doc Document, timeout time.Duration) (Node, bool)

	// Attach places the file onto the target and fires the platform's
	// expected change events. Returns whether the platform acknowledged
	// acceptance.
	Attach(ctx context.Context, doc Document, file domain.AttachableFile, target Node) bool

	// ShouldIntercept is the platform-specific veto: it may decline a paste
	// the orchestrator would otherwise process, e.g. to defer to a host's
	// competing native paste-to-file feature.
	ShouldIntercept(doc Document, text string, settings domain.Settings) bool
}
