// Package split decides whether an oversized paste should be partitioned
// into multiple labeled parts, each independently re-classified.
//
// Like the classifier it is pure and never fails: every policy violation
// simply yields "do not split" (a nil result).
package split

import (
	"strings"

	"github.com/textdrop/textdrop/internal/classify"
	"github.com/textdrop/textdrop/internal/domain"
)

// Splitting policy constants.
const (
	// minSplitBytes is the smallest text worth splitting at all.
	minSplitBytes = 1 << 10

	// minSplitLines is the smallest number of logical units worth dividing.
	minSplitLines = 30

	// minPartChars drops trimmed chunks smaller than this.
	minPartChars = 10

	// structuredGuardConfidence aborts splitting when the whole text is a
	// self-describing format above this confidence; fragments of such
	// formats are syntactically invalid.
	structuredGuardConfidence = 0.8

	// partConfidenceMin is the confidence a chunk's own classification needs
	// to override the whole text's format.
	partConfidenceMin = 0.4
)

// structuredFormats are the self-describing formats the guard protects.
var structuredFormats = map[string]bool{
	"json": true,
	"xml":  true,
	"html": true,
	"yaml": true,
}

// Splitter partitions text into BatchParts using the classifier for both the
// structured-format guard and per-part format detection.
type Splitter struct {
	classifier *classify.Classifier
}

// New creates a Splitter over the given classifier.
func New(c *classify.Classifier) *Splitter {
	return &Splitter{classifier: c}
}

// Split partitions text into up to maxParts contiguous parts. A nil result
// means "do not split"; a non-nil result always holds at least two parts
// whose line ranges are contiguous, non-overlapping, and 1-based.
func (s *Splitter) Split(text string, maxParts int) []domain.BatchPart {
	if maxParts <= 1 {
		return nil
	}
	if len(text) < minSplitBytes {
		return nil
	}

	global := s.classifier.Classify(text)
	if structuredFormats[global.Format] && global.Confidence > structuredGuardConfidence {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) < minSplitLines {
		return nil
	}

	chunkSize := (len(lines) + maxParts - 1) / maxParts

	var parts []domain.BatchPart
	for start := 0; start < len(lines); start += chunkSize {
		end := start + chunkSize
		if end > len(lines) {
			end = len(lines)
		}

		content := strings.Join(lines[start:end], "\n")
		if len(strings.TrimSpace(content)) < minPartChars {
			continue
		}

		format := global.Format
		if pr := s.classifier.Classify(content); pr.Confidence >= partConfidenceMin {
			format = pr.Format
		}

		number := len(parts) + 1
		parts = append(parts, domain.BatchPart{
			Content:   content,
			Number:    number,
			StartLine: start + 1,
			EndLine:   end,
			Format:    format,
			Filename:  domain.PartFilename(number, start+1, end, classify.ExtensionOf(format)),
		})
	}

	// Partial splitting into a single part is not a valid outcome.
	if len(parts) < 2 {
		return nil
	}
	return parts
}
