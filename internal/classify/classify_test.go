package classify

import (
	"strings"
	"testing"
)

func TestClassify_EmptyInput(t *testing.T) {
	c := New()
	r := c.Classify("")

	if r.Format != "text" {
		t.Errorf("Format = %q, want text", r.Format)
	}
	if r.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", r.Confidence)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := New()
	input := "def handler(event):\n    return event\n"

	first := c.Classify(input)
	for i := 0; i < 10; i++ {
		got := c.Classify(input)
		if got != first {
			t.Fatalf("call %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestClassify_FencedHint(t *testing.T) {
	tests := []struct {
		hint string
		want string
	}{
		{"go", "go"},
		{"golang", "go"},
		{"py", "python"},
		{"ts", "typescript"},
		{"bash", "shell"},
		{"rb", "ruby"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			// Body content is deliberately unrelated to the hint.
			r := c.Classify("```" + tt.hint + "\nwholly unrelated prose body\n```")
			if r.Format != tt.want {
				t.Errorf("Format = %q, want %q", r.Format, tt.want)
			}
			if r.Confidence < 0.95 {
				t.Errorf("Confidence = %v, want >= 0.95", r.Confidence)
			}
		})
	}
}

func TestClassify_JSONDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"object", `{"a": 1, "b": [2, 3]}`},
		{"array", `[{"x": true}, {"x": false}]`},
		{"leading whitespace", "\n\t {\"k\": \"v\"}"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Classify(tt.text)
			if r.Format != "json" {
				t.Errorf("Format = %q, want json", r.Format)
			}
			if r.Confidence < 0.95 {
				t.Errorf("Confidence = %v, want >= 0.95", r.Confidence)
			}
		})
	}
}

func TestIsJSONDocument_Rejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"truncated", `{"a": 1,`},
		{"bare scalar", `42`},
		{"prose", `not json at all`},
		{"empty", ``},
	}

	for _, tt := range tests {
		if isJSONDocument(tt.text) {
			t.Errorf("isJSONDocument(%s) = true, want false", tt.name)
		}
	}
}

func TestClassify_MarkupFastPaths(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"xml prologue", "<?xml version=\"1.0\"?>\n<root><child/></root>", "xml"},
		{"html doctype", "<!DOCTYPE html>\n<html><body>hi</body></html>", "html"},
		{"html root", "<html lang=\"en\"><head></head></html>", "html"},
		{"php open tag", "<?php\necho $greeting;\n", "php"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Classify(tt.text)
			if r.Format != tt.want {
				t.Errorf("Format = %q, want %q", r.Format, tt.want)
			}
			if r.Confidence < 0.95 {
				t.Errorf("Confidence = %v, want >= 0.95", r.Confidence)
			}
		})
	}
}

func TestClassify_MarkdownHeuristic(t *testing.T) {
	md := "# Title\n\nSome prose here.\n\n> a quote\n\nMore prose with a [link](https://example.com).\n"

	r := New().Classify(md)
	if r.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", r.Format)
	}
}

func TestIsMarkdown_SingleSignal(t *testing.T) {
	// A lone heading marker is not enough for the heuristic.
	if isMarkdown("# just one heading\nplain prose follows\nnothing else\n") {
		t.Error("isMarkdown() = true for single-signal text")
	}
	if !isMarkdown("# heading\n\n> quoted line\n") {
		t.Error("isMarkdown() = false for heading+blockquote text")
	}
}

func TestClassify_WeightedScoring(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"go source",
			"package main\n\nfunc main() {\n\tx := 1\n\tif err != nil {\n\t\treturn\n\t}\n}\n",
			"go",
		},
		{
			"python source",
			"import os\n\nclass Runner:\n    def run(self):\n        print(self.name)\n",
			"python",
		},
		{
			"sql statements",
			"SELECT id, name FROM users WHERE active = 1 GROUP BY name;\nINSERT INTO audit (id) VALUES (1);\n",
			"sql",
		},
		{
			"css rules",
			".button { color: red; padding: 4px; }\n@media (max-width: 600px) { .button { color: blue; } }\n",
			"css",
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Classify(tt.text)
			if r.Format != tt.want {
				t.Errorf("Format = %q, want %q", r.Format, tt.want)
			}
			if r.Confidence <= 0 || r.Confidence > 1 {
				t.Errorf("Confidence = %v, want in (0,1]", r.Confidence)
			}
		})
	}
}

func TestClassify_ProseFallsBackToText(t *testing.T) {
	r := New().Classify("The quick brown fox jumps over the lazy dog. " +
		"Nothing here resembles any structured format at all.")
	if r.Format != "text" {
		t.Errorf("Format = %q, want text", r.Format)
	}
	if r.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", r.Confidence)
	}
}

func TestClassify_LargeInputSampled(t *testing.T) {
	// Head carries the signal; the filler middle must not defeat it.
	var b strings.Builder
	b.WriteString("package main\n\nfunc main() {\n\tx := 1\n\t_ = x\n}\n")
	filler := strings.Repeat("lorem ipsum dolor sit amet filler line\n", 1)
	for b.Len() < sampleThreshold+headSampleLen {
		b.WriteString(filler)
	}

	r := New().Classify(b.String())
	if r.Format != "go" {
		t.Errorf("Format = %q, want go", r.Format)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fallback string
		want     string
	}{
		{"confident go", "package main\n\nfunc main() {\n\tx := 1\n\t_ = x\n}\n", "txt", "go"},
		{"prose falls back", "just some ordinary words", "txt", "txt"},
		{"empty falls back", "", "log", "log"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ExtensionFor(tt.text, tt.fallback)
			if got != tt.want {
				t.Errorf("ExtensionFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"go", "go"},
		{"python", "py"},
		{"markdown", "md"},
		{"unknown-format", "txt"},
		{"text", "txt"},
	}

	for _, tt := range tests {
		if got := ExtensionOf(tt.format); got != tt.want {
			t.Errorf("ExtensionOf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestMIMEOf(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", "application/json"},
		{"html", "text/html"},
		{"unknown-format", "text/plain"},
		{"text", "text/plain"},
	}

	for _, tt := range tests {
		if got := MIMEOf(tt.format); got != tt.want {
			t.Errorf("MIMEOf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
