package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// hashPrefixLen is the number of leading bytes mixed into the dedup hash.
const hashPrefixLen = 64

// PasteCapture is a single intercepted paste event. It is created the instant
// a paste is seen, consumed by exactly one orchestrator run, and discarded
// when that run reaches a terminal state.
type PasteCapture struct {
	// Text is the raw pasted text, verbatim.
	Text string

	// Caret is the rune offset of the caret in the composer at capture time.
	// Used to restore the text if the run is cancelled.
	Caret int

	// Hash is a cheap fingerprint of Text used only for same-content
	// deduplication within a short window. Not a cryptographic digest.
	Hash string
}

// NewCapture builds a PasteCapture for the given text and caret position.
func NewCapture(text string, caret int) PasteCapture {
	return PasteCapture{
		Text:  text,
		Caret: caret,
		Hash:  ContentHash(text),
	}
}

// ContentHash returns the cheap dedup fingerprint for text: its length plus
// a short prefix. Two identical pastes always collide; distinct pastes of the
// same length and prefix may collide, which only costs a skipped run.
func ContentHash(text string) string {
	prefix := text
	if len(prefix) > hashPrefixLen {
		prefix = prefix[:hashPrefixLen]
		// Avoid slicing through a multi-byte rune.
		for !utf8.ValidString(prefix) && len(prefix) > 0 {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return fmt.Sprintf("%d:%s", len(text), prefix)
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
