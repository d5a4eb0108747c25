// Package platforms holds the per-host-application strategies for locating
// composers, producing upload targets, and attaching files.
//
// One strategy exists per supported host plus a generic fallback. Selection
// happens once per paste by matching the page origin against each strategy's
// domain list; first match wins.
package platforms

import (
	"context"
	"strings"
	"time"

	"github.com/textdrop/textdrop/internal/ports"
)

// pollInterval is the fixed step for target-discovery polling. The bound is
// always the caller's timeout, never the interval.
const pollInterval = 50 * time.Millisecond

// Registry selects the active platform strategy for a page origin.
type Registry struct {
	platforms []ports.Platform
	fallback  ports.Platform
}

// NewRegistry builds a registry with the built-in strategies. Extra
// strategies are consulted before the built-ins, so embedders can override
// a host's behavior.
func NewRegistry(extra ...ports.Platform) *Registry {
	builtin := []ports.Platform{
		NewChatGPT(),
		NewClaude(),
		NewGemini(),
	}
	return &Registry{
		platforms: append(append([]ports.Platform{}, extra...), builtin...),
		fallback:  NewGeneric(),
	}
}

// ForOrigin returns the first strategy whose domain list matches origin,
// or the generic fallback when no platform recognizes it.
func (r *Registry) ForOrigin(origin string) ports.Platform {
	for _, p := range r.platforms {
		if p.Matches(origin) {
			return p
		}
	}
	return r.fallback
}

// matchesAny reports whether origin equals one of the domains or is a
// subdomain of one.
func matchesAny(origin string, domains []string) bool {
	origin = strings.ToLower(origin)
	for _, d := range domains {
		if origin == d || strings.HasSuffix(origin, "."+d) {
			return true
		}
	}
	return false
}

// focusedEditable returns the focused element when it accepts text input.
func focusedEditable(doc ports.Document) (ports.Node, bool) {
	if n, ok := doc.ActiveElement(); ok && n.Editable() {
		return n, true
	}
	return nil, false
}

// queryFirst returns the first node matching any of the selectors.
func queryFirst(doc ports.Document, selectors ...string) (ports.Node, bool) {
	for _, sel := range selectors {
		if n, ok := doc.Query(sel); ok {
			return n, true
		}
	}
	return nil, false
}

// clickFirst clicks the first visible, enabled node matching any selector.
// Returns whether something was clicked.
func clickFirst(doc ports.Document, selectors ...string) bool {
	for _, sel := range selectors {
		for _, n := range doc.QueryAll(sel) {
			if n.Visible() && n.Enabled() {
				if err := n.Click(); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// pollForNode polls find at the fixed interval until it yields a node or the
// timeout elapses. The timeout is a hard deadline.
func pollForNode(ctx context.Context, timeout time.Duration, find func() (ports.Node, bool)) (ports.Node, bool) {
	if n, ok := find(); ok {
		return n, true
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-deadline.C:
			return nil, false
		case <-tick.C:
			if n, ok := find(); ok {
				return n, true
			}
		}
	}
}

// pollForCondition polls check until it returns true or the timeout elapses.
func pollForCondition(ctx context.Context, timeout time.Duration, check func() bool) bool {
	if check() {
		return true
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-tick.C:
			if check() {
				return true
			}
		}
	}
}

// toPortFile converts a domain file for Node.SetFiles.
func toPortFile(name, mime string, data []byte) ports.File {
	return ports.File{Name: name, MIME: mime, Data: data}
}
