package navigator

import "strings"

// Segment is one step of the cursor
type Segment struct {
	// Key is a record field name or a decimal list index.
	Key string
	// Index is the content row that opened this segment; the parent menu
	// highlights it again when the cursor comes back.
	Index int
}

// Path is the cursor from the root to the focused node
type Path []Segment

// String renders the path as [a][b][0]; the root renders as []
func (p Path) String() string {
	return "[" + strings.Join(p.Keys(), "][") + "]"
}

// Keys returns the segment keys
func (p Path) Keys() []string {
	keys := make([]string, len(p))
	for i, seg := range p {
		keys[i] = seg.Key
	}
	return keys
}

// IsRoot reports whether the path is empty
func (p Path) IsRoot() bool {
	return len(p) == 0
}
