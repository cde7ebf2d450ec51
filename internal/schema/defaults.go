package schema

// DefaultValue builds the value a freshly created node starts with.
//
// Records get every field's default. Lists get their own stored default,
// never a list of element defaults. The result never aliases the schema.
func DefaultValue(n *Node) any {
	switch n.kind {
	case KindInt:
		return n.intDefault
	case KindStr:
		return n.strDefault
	case KindRecord:
		obj := make(map[string]any, len(n.fields))
		for name, field := range n.fields {
			obj[name] = DefaultValue(field)
		}
		return obj
	case KindList:
		return Clone(n.listDefault)
	default:
		return nil
	}
}

// Clone deep-copies a generic JSON tree. Scalars are shared.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Clone(child)
		}
		return out
	default:
		return t
	}
}

func extend(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}
