// Package classify infers a content format from raw pasted text.
//
// The classifier is a pure function over its input: no I/O, no randomness,
// no external state. It never fails; unrecognizable input degrades to the
// "text" format with zero confidence.
package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/textdrop/textdrop/internal/domain"
)

// Sampling and scoring constants.
const (
	// sampleThreshold is the input size above which only a head/tail sample
	// is analyzed. Signals cluster at the start (headers, imports) and end
	// (trailing syntax) of a paste, so the middle can be skipped.
	sampleThreshold = 200 << 10
	headSampleLen   = 120 << 10
	tailSampleLen   = 60 << 10
	sampleMarker    = "\n...\n"

	strongWeight  = 3.0
	patternWeight = 1.0

	// fastConfidence is reported by exact-signal short circuits.
	fastConfidence = 0.98
	// structuredConfidence is reported for full-document parses.
	structuredConfidence = 0.95
	// markdownConfidence is reported by the Markdown heuristic.
	markdownConfidence = 0.9

	// highTagDensity marks markup-heavy input (tags per line).
	highTagDensity = 0.2
	// lowTagDensity is the ceiling under which the Markdown heuristic and
	// the stylesheet boost apply.
	lowTagDensity = 0.05

	// DefaultExtensionConfidence is the minimum confidence at which
	// ExtensionFor trusts the classifier over the caller's fallback.
	DefaultExtensionConfidence = 0.3
)

var (
	fencedHintRe  = regexp.MustCompile("^\\s*```([A-Za-z0-9+#_-]+)")
	xmlPrologueRe = regexp.MustCompile(`^\s*<\?xml\b`)
	htmlRootRe    = regexp.MustCompile(`(?i)^\s*(<!doctype\s+html|<html\b)`)
	phpOpenRe     = regexp.MustCompile(`^\s*<\?php\b`)
	htmlTagRe     = regexp.MustCompile(`</?[A-Za-z][\w-]*(\s[^<>]*)?>`)
)

// Classifier scores raw text against per-format signal sets.
// The zero value is ready to use; New exists for symmetry with the other
// components.
type Classifier struct{}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify returns the best-guess format for text with a confidence ratio.
// Identical input always yields identical output.
func (c *Classifier) Classify(text string) domain.ClassificationResult {
	if text == "" {
		return domain.Unclassified()
	}

	sample := sampleText(text)

	// Exact signals short-circuit the scoring pass.
	if m := fencedHintRe.FindStringSubmatch(sample); m != nil {
		if format, ok := fenceAliases[strings.ToLower(m[1])]; ok {
			return domain.ClassificationResult{Format: format, Confidence: fastConfidence}
		}
	}
	if xmlPrologueRe.MatchString(sample) {
		return domain.ClassificationResult{Format: "xml", Confidence: fastConfidence}
	}
	if htmlRootRe.MatchString(sample) {
		return domain.ClassificationResult{Format: "html", Confidence: fastConfidence}
	}
	if isJSONDocument(text) {
		return domain.ClassificationResult{Format: "json", Confidence: structuredConfidence}
	}
	if phpOpenRe.MatchString(sample) {
		return domain.ClassificationResult{Format: "php", Confidence: fastConfidence}
	}

	density := tagDensity(sample)
	if density < lowTagDensity && isMarkdown(sample) {
		return domain.ClassificationResult{Format: "markdown", Confidence: markdownConfidence}
	}

	return scorePass(sample, density)
}

// ExtensionFor returns the file extension for text's detected format, or
// fallback when confidence is below DefaultExtensionConfidence.
func (c *Classifier) ExtensionFor(text, fallback string) string {
	r := c.Classify(text)
	if r.Confidence < DefaultExtensionConfidence {
		return fallback
	}
	return ExtensionOf(r.Format)
}

// scorePass runs the weighted scoring loop over the format registry.
// Confidence is top score over the sum of all scores; ties are broken by
// registration order (first wins).
func scorePass(sample string, density float64) domain.ClassificationResult {
	var (
		best     string
		topScore float64
		sum      float64
	)

	for _, f := range formats {
		var raw float64
		for _, re := range f.Strong {
			raw += float64(countMatches(re, sample)) * strongWeight
		}
		for _, re := range f.Patterns {
			raw += float64(countMatches(re, sample)) * patternWeight
		}
		score := raw * f.Weight
		score = adjustForDensity(f.Name, score, density)

		sum += score
		if score > topScore {
			topScore = score
			best = f.Name
		}
	}

	if sum == 0 || best == "" {
		return domain.Unclassified()
	}
	return domain.ClassificationResult{Format: best, Confidence: topScore / sum}
}

// adjustForDensity applies the format-specific tag-density corrections:
// markup formats are boosted when structural tags are dense, script-like
// formats are penalized in the same situation (their keywords often appear
// inside embedded markup), and stylesheets are boosted when tags are scarce.
func adjustForDensity(format string, score, density float64) float64 {
	switch format {
	case "html", "xml":
		if density >= highTagDensity {
			return score * 1.5
		}
	case "javascript", "typescript", "php":
		if density >= highTagDensity {
			return score * 0.5
		}
	case "css":
		if density < lowTagDensity {
			return score * 1.3
		}
	}
	return score
}

// countMatches caps per-regexp hit counting so a single repeated idiom
// cannot drown out every other signal.
func countMatches(re *regexp.Regexp, s string) int {
	const maxHits = 50
	m := re.FindAllStringIndex(s, maxHits)
	return len(m)
}

// tagDensity returns HTML-like tags per line of the sample.
func tagDensity(s string) float64 {
	lines := strings.Count(s, "\n") + 1
	tags := len(htmlTagRe.FindAllStringIndex(s, -1))
	return float64(tags) / float64(lines)
}

// isJSONDocument reports whether text is a complete, syntactically valid
// JSON object or array document. Scalars are excluded: a pasted "42" is
// prose, not a self-describing document.
func isJSONDocument(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// sampleText bounds worst-case cost: inputs above sampleThreshold are
// reduced to the head and tail joined by a neutral marker.
func sampleText(text string) string {
	if len(text) <= sampleThreshold {
		return text
	}
	return text[:headSampleLen] + sampleMarker + text[len(text)-tailSampleLen:]
}
