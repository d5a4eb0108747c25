package filebuild

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/textdrop/textdrop/internal/classify"
	"github.com/textdrop/textdrop/internal/domain"
)

func newBuilder() *Builder {
	return New(classify.New())
}

func TestBuild_AlwaysProducesFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
	}{
		{"empty content", "", domain.FormatAuto},
		{"plain prose", "just some words", domain.FormatAuto},
		{"explicit format", "SELECT 1;", "sql"},
		{"unknown format", "whatever", "not-a-format"},
	}

	b := newBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := b.Build(tt.content, tt.format, "")
			if f.Filename == "" {
				t.Error("Filename is empty")
			}
			if f.MIME == "" {
				t.Error("MIME is empty")
			}
			if f.Size() < 0 {
				t.Errorf("Size() = %d, want >= 0", f.Size())
			}
		})
	}
}

func TestBuild_AutoFormatDetection(t *testing.T) {
	b := newBuilder()

	f := b.Build("package main\n\nfunc main() {\n\tx := 1\n\t_ = x\n}\n", domain.FormatAuto, "snippet")
	if f.Filename != "snippet.go" {
		t.Errorf("Filename = %q, want snippet.go", f.Filename)
	}

	f = b.Build("ordinary prose with no structure", domain.FormatAuto, "notes")
	if f.Filename != "notes.txt" {
		t.Errorf("Filename = %q, want notes.txt", f.Filename)
	}
}

func TestBuild_JSONContentWrapped(t *testing.T) {
	// Even a partial JSON paste must yield a syntactically valid file.
	raw := `{"truncated": [1, 2,`
	f := newBuilder().Build(raw, "json", "payload")

	if !json.Valid(f.Data) {
		t.Fatalf("built JSON file is not valid JSON: %s", f.Data)
	}

	var wrapper map[string]string
	if err := json.Unmarshal(f.Data, &wrapper); err != nil {
		t.Fatalf("unmarshal wrapper: %v", err)
	}
	if wrapper["content"] != raw {
		t.Errorf("content key = %q, want original text", wrapper["content"])
	}
	if f.MIME != "application/json" {
		t.Errorf("MIME = %q, want application/json", f.MIME)
	}
}

func TestBuild_SequentialFallbackNames(t *testing.T) {
	b := newBuilder()

	first := b.Build("alpha", "text", "")
	second := b.Build("beta", "text", "")

	if first.Filename != "paste.1.txt" {
		t.Errorf("first Filename = %q, want paste.1.txt", first.Filename)
	}
	if second.Filename != "paste.2.txt" {
		t.Errorf("second Filename = %q, want paste.2.txt", second.Filename)
	}
}

func TestBuild_InvalidCustomNameFallsBack(t *testing.T) {
	f := newBuilder().Build("content", "text", "///***!!!")
	if f.Filename != "paste.1.txt" {
		t.Errorf("Filename = %q, want paste.1.txt", f.Filename)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"passthrough", "notes", "notes"},
		{"spaces to dashes", "my great file", "my-great-file"},
		{"strips invalid runes", "a/b\\c:d*e", "abcde"},
		{"collapses whitespace", "a   b  c", "a-b-c"},
		{"trims separators", "--name__", "name"},
		{"only invalid runes", "///:::***", ""},
		{"empty", "", ""},
		{"caps length", strings.Repeat("x", 100), strings.Repeat("x", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuild_MIMEFallback(t *testing.T) {
	f := newBuilder().Build("anything", "mystery", "x")
	if f.MIME != "text/plain" {
		t.Errorf("MIME = %q, want text/plain", f.MIME)
	}
	if !strings.HasSuffix(f.Filename, ".txt") {
		t.Errorf("Filename = %q, want .txt suffix", f.Filename)
	}
}
