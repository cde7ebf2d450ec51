package schema

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

const (
	intPrefix = "Int"
	strPrefix = "Str"
)

// Compile turns a parsed schema description into a Node tree.
//
// Scalars are strings: "Int", "Int 42", "Str" or "Str some default".
// Lists are arrays whose first element is the element schema and whose
// optional second element is the list's own default. Objects are records.
func Compile(raw any) (*Node, error) {
	return compile(raw, nil)
}

func compile(raw any, path []string) (*Node, error) {
	switch v := raw.(type) {
	case string:
		return compileScalar(v, path)

	case []any:
		if len(v) == 0 {
			return nil, &CompileError{Kind: ErrMissingListElementType, Path: path, Raw: render(v)}
		}
		element, err := compile(v[0], extend(path, "0"))
		if err != nil {
			return nil, err
		}

		var def any = []any{}
		if len(v) > 1 {
			def = Clone(v[1])
		}
		node := List(element, def)

		// The list default has to conform, otherwise a fresh document
		// would fail its own validation.
		if err := Validate(def, node, nil); err != nil {
			return nil, &CompileError{Kind: ErrInvalidListDefault, Path: path, Raw: render(v[1]), Cause: err}
		}
		return node, nil

	case map[string]any:
		fields := make(map[string]*Node, len(v))
		for _, name := range slices.Sorted(maps.Keys(v)) {
			field, err := compile(v[name], extend(path, name))
			if err != nil {
				return nil, err
			}
			fields[name] = field
		}
		return Record(fields), nil

	default:
		return nil, &CompileError{Kind: ErrUnsupportedType, Path: path, Raw: render(v)}
	}
}

func compileScalar(s string, path []string) (*Node, error) {
	switch {
	case strings.HasPrefix(s, intPrefix):
		// Garbage after the type name falls back to 0.
		def, err := strconv.ParseInt(strings.TrimSpace(s[len(intPrefix):]), 10, 64)
		if err != nil {
			def = 0
		}
		return Int(def), nil
	case strings.HasPrefix(s, strPrefix):
		return Str(strings.TrimSpace(s[len(strPrefix):])), nil
	default:
		return nil, &CompileError{Kind: ErrUnsupportedType, Path: path, Raw: render(s)}
	}
}

// render formats a raw value for error messages
func render(v any) string {
	return oj.JSON(v, &ojg.Options{Sort: true})
}
