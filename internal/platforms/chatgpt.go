package platforms

import (
	"context"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// chatgptDomains lists the origins the ChatGPT strategy claims.
var chatgptDomains = []string{"chatgpt.com", "chat.openai.com"}

// chatgptSettleTimeout bounds the wait for the upload-in-progress indicator
// to clear after SetFiles.
const chatgptSettleTimeout = 10 * time.Second

// ChatGPT drives uploads on chatgpt.com. The host keeps a hidden file input
// behind the composer's attach menu; revealing it requires clicking the
// attach affordance first.
type ChatGPT struct{}

// NewChatGPT creates the ChatGPT strategy.
func NewChatGPT() *ChatGPT {
	return &ChatGPT{}
}

// Name returns "chatgpt".
func (*ChatGPT) Name() string { return "chatgpt" }

// Matches reports whether origin belongs to ChatGPT.
func (*ChatGPT) Matches(origin string) bool {
	return matchesAny(origin, chatgptDomains)
}

// Composer prefers the focused editable element, then the prompt area.
func (*ChatGPT) Composer(doc ports.Document) (ports.Node, bool) {
	if n, ok := focusedEditable(doc); ok {
		return n, true
	}
	return queryFirst(doc, "#prompt-textarea", `div[contenteditable="true"]`, "textarea")
}

// EnsureUploadTarget returns the file input directly when present; otherwise
// it clicks the attach affordance and polls for the input to appear.
func (*ChatGPT) EnsureUploadTarget(ctx context.Context, doc ports.Document, timeout time.Duration) (ports.Node, bool) {
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
		`button[aria-label="Attach files"]`,
		`button[aria-haspopup="menu"][aria-label*="Attach"]`,
		`[data-testid="composer-plus-btn"]`,
	)
	return pollForNode(ctx, timeout, find)
}

// Attach sets the file and waits for the upload-in-progress indicator to
// disappear before declaring acceptance.
func (*ChatGPT) Attach(ctx context.Context, doc ports.Document, file domain.AttachableFile, target ports.Node) bool {
	if err := target.SetFiles([]ports.File{toPortFile(file.Filename, file.MIME, file.Data)}); err != nil {
		return false
	}
	return pollForCondition(ctx, chatgptSettleTimeout, func() bool {
		_, uploading := queryFirst(doc,
			`[data-testid="attachment-upload-progress"]`,
			`progress[aria-label*="Upload"]`,
		)
		return !uploading
	})
}

// ShouldIntercept always accepts; ChatGPT has no competing native feature.
func (*ChatGPT) ShouldIntercept(doc ports.Document, text string, settings domain.Settings) bool {
	return true
}
