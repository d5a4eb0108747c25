// Package filebuild turns classified text into named, MIME-typed files
// ready for upload.
//
// Building never fails: every input produces some file, worst case plain
// text with an auto-generated sequential name.
package filebuild

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/textdrop/textdrop/internal/classify"
	"github.com/textdrop/textdrop/internal/domain"
)

// maxNameLen caps sanitized custom names.
const maxNameLen = 64

var (
	invalidNameRunes = regexp.MustCompile(`[^a-zA-Z0-9 _-]+`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// Builder constructs AttachableFiles. The sequential-name counter is scoped
// to the Builder instance, matching one page session.
type Builder struct {
	classifier *classify.Classifier
	seq        int
}

// New creates a Builder over the given classifier.
func New(c *classify.Classifier) *Builder {
	return &Builder{classifier: c}
}

// Build constructs a file from content in the given format. An empty
// customName requests an auto-generated sequential name. Format
// domain.FormatAuto delegates to the classifier with a plain-text fallback.
func (b *Builder) Build(content, format, customName string) domain.AttachableFile {
	if format == "" || format == domain.FormatAuto {
		format = b.detect(content)
	}

	ext := classify.ExtensionOf(format)

	name := SanitizeName(customName)
	if name == "" {
		b.seq++
		name = autoName(b.seq, ext)
	} else {
		name = name + "." + ext
	}

	return domain.AttachableFile{
		Data:     encode(content, format),
		Filename: name,
		MIME:     classify.MIMEOf(format),
	}
}

// BuildPart constructs a file for a pre-named batch part. The part's format
// and filename are used verbatim.
func (b *Builder) BuildPart(p domain.BatchPart) domain.AttachableFile {
	return domain.AttachableFile{
		Data:     encode(p.Content, p.Format),
		Filename: p.Filename,
		MIME:     classify.MIMEOf(p.Format),
	}
}

// detect classifies content, falling back to plain text below the
// extension-confidence threshold.
func (b *Builder) detect(content string) string {
	r := b.classifier.Classify(content)
	if r.Confidence < classify.DefaultExtensionConfidence {
		return domain.FormatText
	}
	return r.Format
}

// encode serializes content for the target format. JSON content is wrapped
// as an object with the raw text under a content key so the resulting file
// is syntactically valid even when the pasted text itself was partial.
func encode(content, format string) []byte {
	if format == "json" {
		wrapped, err := json.MarshalIndent(map[string]string{"content": content}, "", "  ")
		if err == nil {
			return wrapped
		}
		// Marshal of a string map cannot realistically fail; degrade to raw.
	}
	return []byte(content)
}

// SanitizeName normalizes a user-supplied base filename: strips characters
// outside letters/digits/space/dash/underscore, collapses whitespace to
// dashes, trims leading/trailing separators, and caps the length. Returns
// "" when nothing usable remains.
func SanitizeName(name string) string {
	name = invalidNameRunes.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(strings.TrimSpace(name), "-")
	name = strings.Trim(name, "-_")
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
		name = strings.Trim(name, "-_")
	}
	return name
}

// autoName returns the sequential fallback filename paste.{n}.{ext}.
func autoName(n int, ext string) string {
	return fmt.Sprintf("paste.%d.%s", n, ext)
}
