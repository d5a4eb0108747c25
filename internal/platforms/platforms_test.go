package platforms

import (
	"context"
	"testing"
	"time"

	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/domtest"
	"github.com/textdrop/textdrop/internal/ports"
)

func TestRegistry_ForOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   string
	}{
		{"chatgpt.com", "chatgpt"},
		{"chat.openai.com", "chatgpt"},
		{"claude.ai", "claude"},
		{"sub.claude.ai", "claude"},
		{"gemini.google.com", "gemini"},
		{"CLAUDE.AI", "claude"},
		{"example.com", "generic"},
		{"notclaude.ai", "generic"},
		{"", "generic"},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			got := r.ForOrigin(tt.origin)
			if got.Name() != tt.want {
				t.Errorf("ForOrigin(%q) = %q, want %q", tt.origin, got.Name(), tt.want)
			}
		})
	}
}

func TestRegistry_ExtraPlatformWins(t *testing.T) {
	custom := &stubPlatform{name: "custom", origin: "claude.ai"}
	r := NewRegistry(custom)

	if got := r.ForOrigin("claude.ai"); got.Name() != "custom" {
		t.Errorf("ForOrigin() = %q, want custom (extras precede built-ins)", got.Name())
	}
}

func TestGeneric_Composer(t *testing.T) {
	doc := domtest.NewDocument("example.com")
	focused := domtest.NewComposer("typed")
	fallback := domtest.NewComposer("")
	doc.Place("textarea", fallback)

	g := NewGeneric()

	// No focus: fall back to the default query.
	n, ok := g.Composer(doc)
	if !ok || n.(*domtest.Node) != fallback {
		t.Error("Composer() did not return the fallback textarea")
	}

	// Focused editable element wins.
	doc.Focus(focused)
	n, ok = g.Composer(doc)
	if !ok || n.(*domtest.Node) != focused {
		t.Error("Composer() did not prefer the focused element")
	}
}

func TestGeneric_EnsureUploadTarget_Immediate(t *testing.T) {
	doc := domtest.NewDocument("example.com")
	input := domtest.NewInput()
	doc.Place(`input[type="file"]`, input)

	n, ok := NewGeneric().EnsureUploadTarget(context.Background(), doc, time.Second)
	if !ok || n.(*domtest.Node) != input {
		t.Fatal("EnsureUploadTarget() did not find the existing input")
	}
}

func TestGeneric_EnsureUploadTarget_AppearsLater(t *testing.T) {
	doc := domtest.NewDocument("example.com")
	input := domtest.NewInput()

	go func() {
		time.Sleep(120 * time.Millisecond)
		doc.Place(`input[type="file"]`, input)
	}()

	n, ok := NewGeneric().EnsureUploadTarget(context.Background(), doc, 2*time.Second)
	if !ok || n.(*domtest.Node) != input {
		t.Fatal("EnsureUploadTarget() did not find the late input")
	}
}

func TestGeneric_EnsureUploadTarget_Timeout(t *testing.T) {
	doc := domtest.NewDocument("example.com")

	start := time.Now()
	_, ok := NewGeneric().EnsureUploadTarget(context.Background(), doc, 150*time.Millisecond)
	if ok {
		t.Fatal("EnsureUploadTarget() = ok with no input anywhere")
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("returned after %v, want at least the timeout", elapsed)
	}
}

func TestGeneric_EnsureUploadTarget_SkipsDisabled(t *testing.T) {
	doc := domtest.NewDocument("example.com")
	disabled := domtest.NewInput()
	disabled.IsEnabled = false
	doc.Place(`input[type="file"]`, disabled)

	if _, ok := NewGeneric().EnsureUploadTarget(context.Background(), doc, 120*time.Millisecond); ok {
		t.Error("EnsureUploadTarget() returned a disabled input")
	}
}

func TestChatGPT_EnsureUploadTarget_ClickReveals(t *testing.T) {
	doc := domtest.NewDocument("chatgpt.com")
	input := domtest.NewInput()
	attach := domtest.NewButton()
	attach.OnClick = func() {
		doc.Place(`input[type="file"]`, input)
	}
	doc.Place(`button[aria-label="Attach files"]`, attach)

	n, ok := NewChatGPT().EnsureUploadTarget(context.Background(), doc, 2*time.Second)
	if !ok || n.(*domtest.Node) != input {
		t.Fatal("EnsureUploadTarget() did not find the revealed input")
	}
	if attach.Clicks() != 1 {
		t.Errorf("attach button clicked %d times, want 1", attach.Clicks())
	}
}

func TestChatGPT_Attach_WaitsForUploadToSettle(t *testing.T) {
	doc := domtest.NewDocument("chatgpt.com")
	input := domtest.NewInput()
	progress := domtest.NewButton()
	doc.Place(`[data-testid="attachment-upload-progress"]`, progress)

	go func() {
		time.Sleep(120 * time.Millisecond)
		doc.Clear(`[data-testid="attachment-upload-progress"]`)
	}()

	file := domain.AttachableFile{Data: []byte("x"), Filename: "x.txt", MIME: "text/plain"}
	if !NewChatGPT().Attach(context.Background(), doc, file, input) {
		t.Fatal("Attach() = false, want true after indicator cleared")
	}
	if len(input.Files()) != 1 {
		t.Errorf("input holds %d files, want 1", len(input.Files()))
	}
}

func TestClaude_ShouldIntercept_RequiresOverride(t *testing.T) {
	doc := domtest.NewDocument("claude.ai")
	c := NewClaude()

	s := domain.DefaultSettings()
	if c.ShouldIntercept(doc, "text", s) {
		t.Error("ShouldIntercept() = true without override")
	}

	s.PlatformOverrides = map[string]bool{"claude": true}
	if !c.ShouldIntercept(doc, "text", s) {
		t.Error("ShouldIntercept() = false with override enabled")
	}
}

func TestGemini_EnsureUploadTarget_MutationWakesSearch(t *testing.T) {
	doc := domtest.NewDocument("gemini.google.com")
	input := domtest.NewInput()
	menu := domtest.NewButton()
	doc.Place(`button[aria-label="Open upload file menu"]`, menu)

	go func() {
		time.Sleep(100 * time.Millisecond)
		doc.Place(`input[type="file"]`, input) // Place fires the mutation watch
	}()

	n, ok := NewGemini().EnsureUploadTarget(context.Background(), doc, 2*time.Second)
	if !ok || n.(*domtest.Node) != input {
		t.Fatal("EnsureUploadTarget() did not find the input after mutation")
	}
	if menu.Clicks() != 1 {
		t.Errorf("menu clicked %d times, want 1", menu.Clicks())
	}
}

func TestGemini_EnsureUploadTarget_ContextCancel(t *testing.T) {
	doc := domtest.NewDocument("gemini.google.com")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(80 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if _, ok := NewGemini().EnsureUploadTarget(ctx, doc, 10*time.Second); ok {
		t.Fatal("EnsureUploadTarget() = ok after cancellation")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation did not stop the search promptly")
	}
}

// stubPlatform is a minimal Platform for registry tests.
type stubPlatform struct {
	name   string
	origin string
}

func (s *stubPlatform) Name() string               { return s.name }
func (s *stubPlatform) Matches(origin string) bool { return origin == s.origin }

func (s *stubPlatform) Composer(doc ports.Document) (ports.Node, bool) { return nil, false }

func (s *stubPlatform) EnsureUploadTarget(ctx context.Context, doc ports.Document, timeout time.Duration) (ports.Node, bool) {
	return nil, false
}

func (s *stubPlatform) Attach(ctx context.Context, doc ports.Document, file domain.AttachableFile, target ports.Node) bool {
	return false
}

func (s *stubPlatform) ShouldIntercept(doc ports.Document, text string, settings domain.Settings) bool {
	return true
}
