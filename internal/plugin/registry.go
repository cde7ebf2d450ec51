package plugin

import (
	"context"
	"fmt"
	"strings"
)

// Action mutates the value at the cursor in place. It must leave the node
// conforming to its schema.
type Action interface {
	Apply(ctx context.Context, node *any) error
}

// ActionFunc adapts a function to Action
type ActionFunc func(ctx context.Context, node *any) error

// Apply calls f
func (f ActionFunc) Apply(ctx context.Context, node *any) error {
	return f(ctx, node)
}

// Entry is one registered plugin
type Entry struct {
	// Scope is matched as a suffix of the rendered cursor path, e.g. "[drives]".
	Scope string
	// Label is shown as the trailing menu row.
	Label  string
	Action Action
}

// Registry maps cursor path suffixes to actions. It is filled once at
// startup and only read afterwards.
type Registry struct {
	entries []Entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a plugin. Entries are matched in registration order.
func (r *Registry) Register(scope, label string, action Action) {
	if scope == "" || action == nil {
		panic(fmt.Sprintf("plugin %q needs a scope and an action", label))
	}
	r.entries = append(r.entries, Entry{Scope: scope, Label: label, Action: action})
}

// Find returns the first entry whose scope is a suffix of path
func (r *Registry) Find(path string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	for _, e := range r.entries {
		if strings.HasSuffix(path, e.Scope) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns all registered entries
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
