package platforms

import (
	"context"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// Generic is the fallback strategy for unrecognized hosts: find any enabled
// file input, else keep polling for one. It never simulates clicks because
// it knows nothing about the host's UI.
type Generic struct{}

// NewGeneric creates the fallback strategy.
func NewGeneric() *Generic {
	return &Generic{}
}

// Name returns "generic".
func (*Generic) Name() string { return "generic" }

// Matches always returns false; the registry hands Generic out explicitly
// when nothing else matches.
func (*Generic) Matches(origin string) bool { return false }

// Composer prefers the focused editable element, then any textarea or
// contenteditable region.
func (*Generic) Composer(doc ports.Document) (ports.Node, bool) {
	if n, ok := focusedEditable(doc); ok {
		return n, true
	}
	return queryFirst(doc, "textarea", `[contenteditable="true"]`)
}

// EnsureUploadTarget polls for any enabled file input until the timeout.
func (*Generic) EnsureUploadTarget(ctx context.Context, doc ports.Document, timeout time.Duration) (ports.Node, bool) {
	return pollForNode(ctx, timeout, func() (ports.Node, bool) {
		for _, n := range doc.QueryAll(`input[type="file"]`) {
			if n.Enabled() {
				return n, true
			}
		}
		return nil, false
	})
}

// Attach places the file on the target; acceptance is simply a successful
// SetFiles, since an unknown host has no progress indicator to consult.
func (*Generic) Attach(ctx context.Context, doc ports.Document, file domain.AttachableFile, target ports.Node) bool {
	return target.SetFiles([]ports.File{toPortFile(file.Filename, file.MIME, file.Data)}) == nil
}

// ShouldIntercept always accepts; global gating lives in the orchestrator.
func (*Generic) ShouldIntercept(doc ports.Document, text string, settings domain.Settings) bool {
	return true
}
