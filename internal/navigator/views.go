package navigator

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/rivo/uniseg"

	"github.com/billie-coop/confed/internal/schema"
)

const valueLabel = "Value"

// editInt prompts for a new integer and returns to the parent
func (n *Navigator) editInt(ctx context.Context, cur cursor) error {
	initial, ok := asInt(cur.value)
	if !ok {
		return invariant(n.path, "value %v is not a number", cur.value)
	}

	v, err := n.opts.Presenter.PromptInt(ctx, valueLabel, initial)
	if err != nil {
		return err
	}
	if err := n.replace(cur, v); err != nil {
		return err
	}
	return n.leaveScalar(ctx)
}

// editStr prompts for a new string and returns to the parent
func (n *Navigator) editStr(ctx context.Context, cur cursor) error {
	initial, ok := cur.value.(string)
	if !ok {
		return invariant(n.path, "value %v is not a string", cur.value)
	}

	v, err := n.opts.Presenter.PromptText(ctx, valueLabel, initial, true)
	if err != nil {
		return err
	}
	if err := n.replace(cur, strings.TrimSpace(v)); err != nil {
		return err
	}
	return n.leaveScalar(ctx)
}

// leaveScalar pops after a scalar edit. A scalar document has no parent
// menu, so the session moves on to the exit flow.
func (n *Navigator) leaveScalar(ctx context.Context) error {
	if n.path.IsRoot() {
		return n.exitFlow(ctx)
	}
	n.pop()
	return nil
}

func (n *Navigator) showRecord(ctx context.Context, cur cursor) error {
	fields, ok := cur.value.(map[string]any)
	if !ok {
		return invariant(n.path, "value is not an object")
	}

	names := cur.node.Names()
	rows := make([]string, len(names))
	for i, name := range names {
		v, ok := fields[name]
		if !ok {
			return invariant(n.path, "object has no field %q", name)
		}
		rows[i] = fieldLabel(name, v)
	}

	c, ok, err := n.choose(ctx, cur, n.title(), rows, nil)
	if err != nil || !ok {
		return err
	}
	n.push(Segment{Key: names[c.index], Index: c.index})
	return nil
}

func (n *Navigator) showList(ctx context.Context, cur cursor) error {
	items, ok := cur.value.([]any)
	if !ok {
		return invariant(n.path, "value is not an array")
	}

	rows := make([]string, len(items))
	for i, item := range items {
		label := compact(item)
		if n.deleteMode {
			label = deletePrefix + label
		}
		rows[i] = truncate(label, n.opts.LabelWidth)
	}

	var controls []string
	if !n.deleteMode {
		if len(items) > 0 {
			controls = append(controls, DeleteItemText)
		}
		controls = append(controls, AddItemText)
	}

	c, ok, err := n.choose(ctx, cur, n.title(), rows, controls)
	if err != nil || !ok {
		return err
	}

	if c.kind == rowControl {
		switch controls[c.index] {
		case DeleteItemText:
			n.deleteMode = true
			n.restore = -1
			n.log.Debug().Str("path", n.path.String()).Msg("delete mode entered")
			return nil
		case AddItemText:
			return n.addItem(cur, items)
		}
		return invariant(n.path, "unknown control row %d", c.index)
	}

	if n.deleteMode {
		return n.deleteItem(cur, items, c.index)
	}
	n.push(Segment{Key: strconv.Itoa(c.index), Index: c.index})
	return nil
}

// addItem appends the element default and descends into it
func (n *Navigator) addItem(cur cursor, items []any) error {
	grown := append(items[:len(items):len(items)], schema.DefaultValue(cur.node.Element()))
	if err := n.replace(cur, grown); err != nil {
		return err
	}

	idx := len(grown) - 1
	n.log.Debug().Str("path", n.path.String()).Int("index", idx).Msg("item added")
	n.push(Segment{Key: strconv.Itoa(idx), Index: idx})
	return nil
}

// deleteItem removes one element and leaves delete mode
func (n *Navigator) deleteItem(cur cursor, items []any, idx int) error {
	shrunk := make([]any, 0, len(items)-1)
	shrunk = append(shrunk, items[:idx]...)
	shrunk = append(shrunk, items[idx+1:]...)
	if err := n.replace(cur, shrunk); err != nil {
		return err
	}

	n.deleteMode = false
	n.restore = -1
	n.log.Debug().Str("path", n.path.String()).Int("index", idx).Msg("item deleted")
	return nil
}

func (n *Navigator) title() string {
	return "Path:  " + n.path.String()
}

// fieldLabel renders a record row
func fieldLabel(name string, v any) string {
	switch tv := v.(type) {
	case string:
		return fmt.Sprintf(`%s: "%s"`, name, tv)
	case []any:
		return fmt.Sprintf("%s (Size: %d)", name, len(tv))
	case map[string]any:
		return name
	default:
		if schema.IsNumber(v) {
			return name + ": " + compact(v)
		}
		return name
	}
}

func compact(v any) string {
	return oj.JSON(v, &ojg.Options{Sort: true})
}

// truncate cuts s to width grapheme clusters and marks the cut
func truncate(s string, width int) string {
	if uniseg.GraphemeClusterCount(s) <= width {
		return s
	}

	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for i := 0; i < width && gr.Next(); i++ {
		b.WriteString(gr.Str())
	}
	b.WriteString("...")
	return b.String()
}

// asInt reads any numeric value as int64. Fractions are truncated.
func asInt(v any) (int64, bool) {
	switch tv := v.(type) {
	case int64:
		return tv, true
	case int:
		return int64(tv), true
	case int32:
		return int64(tv), true
	case uint64:
		if tv > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(tv), true
	case float64:
		return int64(tv), true
	case float32:
		return int64(tv), true
	default:
		if !schema.IsNumber(v) {
			return 0, false
		}
		f, err := strconv.ParseFloat(fmt.Sprint(v), 64)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	}
}
