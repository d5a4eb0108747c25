package ports

import "context"

// Document is the narrow view of the host page that platform strategies are
// allowed to see. Implementations wrap whatever DOM access the embedding
// environment provides; tests use in-memory fakes.
//
// All methods are expected to be cheap and non-blocking except Mutations,
// which hands out a one-shot notification channel.
type Document interface {
	// Origin returns the page origin host (e.g. "chatgpt.com"), used for
	// platform selection.
	Origin() string

	// Query returns the first node matching the selector, or false.
	Query(selector string) (Node, bool)

	// QueryAll returns every node matching the selector, in document order.
	QueryAll(selector string) []Node

	// ActiveElement returns the currently focused node, or false when focus
	// is nowhere useful.
	ActiveElement() (Node, bool)

	// Mutations returns a channel that receives one value on the next DOM
	// mutation and is then exhausted. The returned cancel func must always
	// be called so the underlying observer is disconnected; the loser of a
	// poll-vs-mutation race must not leak across paste events.
	Mutations(ctx context.Context) (<-chan struct{}, context.CancelFunc)
}

// Node is a handle to a single host-page element. Strategies read and write
// only through these operations, never through wider DOM access.
type Node interface {
	// Tag returns the lower-case element tag name.
	Tag() string

	// Visible reports whether the element is rendered and has extent.
	Visible() bool

	// Enabled reports whether the element accepts interaction.
	Enabled() bool

	// Editable reports whether the element accepts text input.
	Editable() bool

	// Click simulates a user click.
	Click() error

	// Text returns the element's current text content.
	Text() string

	// Caret returns the current caret position as a rune offset, or 0 when
	// the element has no caret.
	Caret() int

	// InsertText inserts text at the given rune offset, pushing existing
	// content right. Used for caret-preserving restore on cancellation.
	InsertText(offset int, text string) error

	// SetFiles places files onto a file-input element and fires the host's
	// expected change notification. Returns an error for non-file elements.
	SetFiles(files []File) error
}

// File is the name/type/data triple handed to Node.SetFiles. It mirrors
// domain.AttachableFile without importing it, keeping ports leaf-only.
type File struct {
	Name string
	MIME string
	Data []byte
}
