package platforms

import (
	"context"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// claudeDomains lists the origins the Claude strategy claims.
var claudeDomains = []string{"claude.ai"}

// Claude drives uploads on claude.ai. The host ships its own native
// paste-to-file conversion, so this strategy only intercepts when the user
// explicitly opts in via the per-platform override; otherwise the native
// feature keeps precedence.
type Claude struct{}

// NewClaude creates the Claude strategy.
func NewClaude() *Claude {
	return &Claude{}
}

// Name returns "claude".
func (*Claude) Name() string { return "claude" }

// Matches reports whether origin belongs to Claude.
func (*Claude) Matches(origin string) bool {
	return matchesAny(origin, claudeDomains)
}

// Composer prefers the focused editable element, then the ProseMirror
// editor region.
func (*Claude) Composer(doc ports.Document) (ports.Node, bool) {
	if n, ok := focusedEditable(doc); ok {
		return n, true
	}
	return queryFirst(doc, `div.ProseMirror[contenteditable="true"]`, `div[contenteditable="true"]`)
}

// EnsureUploadTarget returns the upload input directly when present,
// otherwise clicks the attach button and polls.
func (*Claude) EnsureUploadTarget(ctx context.Context, doc ports.Document, timeout time.Duration) (ports.Node, bool) {
	find := func() (ports.Node, bool) {
		for _, n := range doc.QueryAll(`input[type="file"]`) {
			if n.Enabled() {
				return n, true
			}
		}
		return nil, false
	}

	if n, ok := find(); ok {
		return n, true
	}

	clickFirst(doc,
		`button[aria-label="Upload files"]`,
		`button[data-testid="input-menu-plus"]`,
	)
	return pollForNode(ctx, timeout, find)
}

// Attach places the file on the target; claude.ai reflects acceptance
// synchronously through the input's change event.
func (*Claude) Attach(ctx context.Context, doc ports.Document, file domain.AttachableFile, target ports.Node) bool {
	return target.SetFiles([]ports.File{toPortFile(file.Filename, file.MIME, file.Data)}) == nil
}

// ShouldIntercept defers to the host's native paste-to-file feature unless
// the per-platform override is enabled.
func (c *Claude) ShouldIntercept(doc ports.Document, text string, settings domain.Settings) bool {
	return settings.OverrideEnabled(c.Name())
}
