package domain

// ClassificationResult is the classifier's best guess for a block of text.
// Confidence is a derived ratio in [0,1], not a probability: it is the top
// format's score divided by the sum of all format scores, or 0 when nothing
// scored at all.
type ClassificationResult struct {
	Format     string
	Confidence float64
}

// FormatText is the fallback format for unclassifiable content.
const FormatText = "text"

// Unclassified is the result for empty or unrecognizable input.
func Unclassified() ClassificationResult {
	return ClassificationResult{Format: FormatText, Confidence: 0}
}
