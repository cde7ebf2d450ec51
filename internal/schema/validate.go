package schema

import (
	"encoding/json"
	"strconv"
)

// Validate checks that value has the shape n describes. It stops at the
// first mismatch. Record keys unknown to the schema are ignored.
func Validate(value any, n *Node, path []string) error {
	switch n.kind {
	case KindInt:
		if !IsNumber(value) {
			return &ValidationError{Path: path, Reason: "has to be a number"}
		}

	case KindStr:
		if _, ok := value.(string); !ok {
			return &ValidationError{Path: path, Reason: "has to be a string"}
		}

	case KindRecord:
		obj, ok := value.(map[string]any)
		if !ok {
			return &ValidationError{Path: path, Reason: "has to be an object"}
		}
		for _, name := range n.names {
			child, ok := obj[name]
			if !ok {
				return &ValidationError{Path: path, Reason: "doesn't have child " + name}
			}
			if err := Validate(child, n.fields[name], extend(path, name)); err != nil {
				return err
			}
		}

	case KindList:
		list, ok := value.([]any)
		if !ok {
			return &ValidationError{Path: path, Reason: "has to be an array"}
		}
		for i, elem := range list {
			if err := Validate(elem, n.element, extend(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
	}

	return nil
}

// IsNumber reports whether v is a JSON number in any of the Go
// representations a parser may produce.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	default:
		return false
	}
}
