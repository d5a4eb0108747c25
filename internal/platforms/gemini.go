package platforms

import (
	"context"
	"sync"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/ports"
)

// geminiDomains lists the origins the Gemini strategy claims.
var geminiDomains = []string{"gemini.google.com"}

// Gemini drives uploads on gemini.google.com. The file input only exists
// after the uploader menu has been opened, and menu rendering is animated,
// so discovery races a one-shot mutation watch against the fixed poll:
// whichever fires first triggers a re-query, and the loser is cancelled.
type Gemini struct {
	mu       sync.Mutex
	menuOpen bool
}

// NewGemini creates the Gemini strategy.
func NewGemini() *Gemini {
	return &Gemini{}
}

// Name returns "gemini".
func (*Gemini) Name() string { return "gemini" }

// Matches reports whether origin belongs to Gemini.
func (*Gemini) Matches(origin string) bool {
	return matchesAny(origin, geminiDomains)
}

// Composer prefers the focused editable element, then the rich textarea.
func (*Gemini) Composer(doc ports.Document) (ports.Node, bool) {
	if n, ok := focusedEditable(doc); ok {
		return n, true
	}
	return queryFirst(doc, `div[contenteditable="true"][role="textbox"]`, "rich-textarea", "textarea")
}

// EnsureUploadTarget opens the uploader menu at most once per discovery and
// waits for the input by racing a mutation watch against the poll.
func (g *Gemini) EnsureUploadTarget(ctx context.Context, doc ports.Document, timeout time.Duration) (ports.Node, bool) {
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

	g.mu.Lock()
	if !g.menuOpen {
		if clickFirst(doc, `button[aria-label="Open upload file menu"]`, "uploader-button button") {
			g.menuOpen = true
		}
	}
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.menuOpen = false
		g.mu.Unlock()
	}()

	mutations, cancel := doc.Mutations(ctx)
	defer cancel()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-deadline.C:
			return nil, false
		case <-mutations:
			// One-shot watch is spent; the poll carries on alone. Nil the
			// channel so a closed implementation cannot spin the select.
			mutations = nil
			if n, ok := find(); ok {
				return n, true
			}
		case <-tick.C:
			if n, ok := find(); ok {
				return n, true
			}
		}
	}
}

// Attach places the file on the target and accepts on a clean SetFiles.
func (*Gemini) Attach(ctx context.Context, doc ports.Document, file domain.AttachableFile, target ports.Node) bool {
	return target.SetFiles([]ports.File{toPortFile(file.Filename, file.MIME, file.Data)}) == nil
}

// ShouldIntercept always accepts.
func (*Gemini) ShouldIntercept(doc ports.Document, text string, settings domain.Settings) bool {
	return true
}
