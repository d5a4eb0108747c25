// Package domtest provides in-memory fakes for the host-document ports,
// used by platform and orchestrator tests.
package domtest

import (
	"context"
	"errors"
	"sync"

	"github.com/textdrop/textdrop/internal/ports"
)

// Node is a scriptable fake ports.Node. Zero value is an invisible,
// disabled, non-editable element; set the fields to shape behavior.
type Node struct {
	mu sync.Mutex

	TagName    string
	IsVisible  bool
	IsEnabled  bool
	IsEditable bool

	ClickErr    error
	SetFilesErr error
	CaretPos    int

	// OnClick runs on every successful Click, letting tests reveal inputs
	// in response to affordance clicks.
	OnClick func()

	clicks int
	text   string
	files  []ports.File
}

// NewInput returns a visible, enabled file-input node.
func NewInput() *Node {
	return &Node{TagName: "input", IsVisible: true, IsEnabled: true}
}

// NewComposer returns a visible, editable composer node holding text.
func NewComposer(text string) *Node {
	return &Node{TagName: "textarea", IsVisible: true, IsEnabled: true, IsEditable: true, text: text}
}

// NewButton returns a visible, enabled button node.
func NewButton() *Node {
	return &Node{TagName: "button", IsVisible: true, IsEnabled: true}
}

func (n *Node) Tag() string    { return n.TagName }
func (n *Node) Visible() bool  { return n.IsVisible }
func (n *Node) Enabled() bool  { return n.IsEnabled }
func (n *Node) Editable() bool { return n.IsEditable }

// Click records the click and runs OnClick.
func (n *Node) Click() error {
	if n.ClickErr != nil {
		return n.ClickErr
	}
	n.mu.Lock()
	n.clicks++
	onClick := n.OnClick
	n.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

// Clicks returns how many times the node was clicked.
func (n *Node) Clicks() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.clicks
}

// Caret returns the configured caret position.
func (n *Node) Caret() int { return n.CaretPos }

// Text returns the node's current text content.
func (n *Node) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// InsertText inserts text at the given rune offset.
func (n *Node) InsertText(offset int, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	runes := []rune(n.text)
	if offset < 0 || offset > len(runes) {
		return errors.New("domtest: offset out of range")
	}
	n.text = string(runes[:offset]) + text + string(runes[offset:])
	return nil
}

// SetFiles records the files placed on the node.
func (n *Node) SetFiles(files []ports.File) error {
	if n.SetFilesErr != nil {
		return n.SetFilesErr
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.files = append(n.files, files...)
	return nil
}

// Files returns every file placed on the node, in order.
func (n *Node) Files() []ports.File {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.File{}, n.files...)
}

// Document is a scriptable fake ports.Document keyed by selector.
type Document struct {
	mu       sync.Mutex
	origin   string
	nodes    map[string][]*Node
	active   *Node
	watchers []chan struct{}
}

// NewDocument creates a fake document for the given origin.
func NewDocument(origin string) *Document {
	return &Document{origin: origin, nodes: make(map[string][]*Node)}
}

// Origin returns the configured origin.
func (d *Document) Origin() string { return d.origin }

// Place registers nodes under a selector and signals a mutation.
func (d *Document) Place(selector string, nodes ...*Node) {
	d.mu.Lock()
	d.nodes[selector] = append(d.nodes[selector], nodes...)
	d.mu.Unlock()
	d.Mutate()
}

// Clear removes all nodes for a selector and signals a mutation.
func (d *Document) Clear(selector string) {
	d.mu.Lock()
	delete(d.nodes, selector)
	d.mu.Unlock()
	d.Mutate()
}

// Focus marks a node as the active element.
func (d *Document) Focus(n *Node) {
	d.mu.Lock()
	d.active = n
	d.mu.Unlock()
}

// Query returns the first node registered under selector.
func (d *Document) Query(selector string) (ports.Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ns := d.nodes[selector]
	if len(ns) == 0 {
		return nil, false
	}
	return ns[0], true
}

// QueryAll returns every node registered under selector.
func (d *Document) QueryAll(selector string) []ports.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	ns := d.nodes[selector]
	out := make([]ports.Node, 0, len(ns))
	for _, n := range ns {
		out = append(out, n)
	}
	return out
}

// ActiveElement returns the focused node, if any.
func (d *Document) ActiveElement() (ports.Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return nil, false
	}
	return d.active, true
}

// Mutations registers a one-shot watcher.
func (d *Document) Mutations(ctx context.Context) (<-chan struct{}, context.CancelFunc) {
	ch := make(chan struct{}, 1)
	d.mu.Lock()
	d.watchers = append(d.watchers, ch)
	d.mu.Unlock()

	cancel := func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, w := range d.watchers {
			if w == ch {
				d.watchers = append(d.watchers[:i], d.watchers[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// Mutate fires every registered one-shot watcher.
func (d *Document) Mutate() {
	d.mu.Lock()
	watchers := d.watchers
	d.watchers = nil
	d.mu.Unlock()
	for _, w := range watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}
