package schema

import (
	"slices"
	"strconv"
)

// Kind identifies which shape a Node describes
type Kind int

const (
	KindInt Kind = iota
	KindStr
	KindRecord
	KindList
)

// String returns the name used for the kind in schema files
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindStr:
		return "Str"
	case KindRecord:
		return "Record"
	case KindList:
		return "List"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is one compiled schema shape. Only the fields that belong to its
// Kind are set. Nodes are never mutated after Compile returns.
type Node struct {
	kind Kind

	intDefault int64
	strDefault string

	fields map[string]*Node
	names  []string

	element     *Node
	listDefault any
}

// Int builds an integer node
func Int(def int64) *Node {
	return &Node{kind: KindInt, intDefault: def}
}

// Str builds a string node
func Str(def string) *Node {
	return &Node{kind: KindStr, strDefault: def}
}

// Record builds a keyed record node from its fields
func Record(fields map[string]*Node) *Node {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	return &Node{kind: KindRecord, fields: fields, names: names}
}

// List builds a homogeneous list node. def is the value an absent list
// starts with; nil means an empty list.
func List(element *Node, def any) *Node {
	if def == nil {
		def = []any{}
	}
	return &Node{kind: KindList, element: element, listDefault: def}
}

// Kind returns the node kind
func (n *Node) Kind() Kind {
	return n.kind
}

// IntDefault returns the default of an Int node
func (n *Node) IntDefault() int64 {
	return n.intDefault
}

// StrDefault returns the default of a Str node
func (n *Node) StrDefault() string {
	return n.strDefault
}

// Names returns the record field names in menu order (sorted)
func (n *Node) Names() []string {
	return n.names
}

// Field returns the schema of a record field
func (n *Node) Field(name string) (*Node, bool) {
	f, ok := n.fields[name]
	return f, ok
}

// Element returns the element schema of a List node
func (n *Node) Element() *Node {
	return n.element
}

// Child resolves one path segment below n: a field name for records, a
// decimal index for lists. Scalars have no children.
func (n *Node) Child(key string) (*Node, bool) {
	switch n.kind {
	case KindRecord:
		return n.Field(key)
	case KindList:
		if _, err := strconv.Atoi(key); err != nil {
			return nil, false
		}
		return n.element, true
	default:
		return nil, false
	}
}
