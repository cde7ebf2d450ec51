package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ohler55/ojg/jp"
	"github.com/rs/zerolog"

	"github.com/billie-coop/confed/internal/logging"
	"github.com/billie-coop/confed/internal/plugin"
	"github.com/billie-coop/confed/internal/schema"
)

// DefaultLabelWidth is the list row width used when Options leaves it unset
const DefaultLabelWidth = 100

// Options wires the navigator to its collaborators
type Options struct {
	Presenter Presenter
	Plugins   *plugin.Registry
	Save      SaveFunc
	// Out receives status lines such as "Saved changes!".
	Out io.Writer
	// Document names the edited file in log lines.
	Document string
	// LabelWidth truncates list rows, counted in grapheme clusters.
	LabelWidth int
}

// Navigator walks a configuration value in lock-step with its schema
type Navigator struct {
	root  *schema.Node
	value any
	opts  Options
	log   zerolog.Logger

	path       Path
	restore    int
	deleteMode bool
	exit       bool
	saved      bool
}

// cursor is the resolved focus of one loop iteration
type cursor struct {
	node  *schema.Node
	value any
	expr  jp.Expr
}

// New creates a navigator. value must already conform to root.
func New(root *schema.Node, value any, opts Options) *Navigator {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = DefaultLabelWidth
	}
	return &Navigator{
		root:    root,
		value:   value,
		opts:    opts,
		log:     logging.Session(opts.Document),
		restore: -1,
	}
}

// Run shows menus until the operator saves or discards
func (n *Navigator) Run(ctx context.Context) error {
	n.log.Info().Str("root", n.root.Kind().String()).Msg("editing session started")

	for !n.exit {
		if err := n.step(ctx); err != nil {
			n.log.Error().Err(err).Str("path", n.path.String()).Msg("editing session aborted")
			return err
		}
	}

	n.log.Info().Bool("saved", n.saved).Msg("editing session finished")
	return nil
}

// Value returns the live configuration value
func (n *Navigator) Value() any {
	return n.value
}

// Path returns a copy of the cursor
func (n *Navigator) Path() Path {
	return append(Path(nil), n.path...)
}

// DeleteMode reports whether the next list selection deletes
func (n *Navigator) DeleteMode() bool {
	return n.deleteMode
}

// Saved reports whether the session ended with a save
func (n *Navigator) Saved() bool {
	return n.saved
}

// step renders one menu for the node under the cursor and applies the answer
func (n *Navigator) step(ctx context.Context) error {
	cur, err := n.resolve()
	if err != nil {
		return err
	}

	switch cur.node.Kind() {
	case schema.KindInt:
		return n.editInt(ctx, cur)
	case schema.KindStr:
		return n.editStr(ctx, cur)
	case schema.KindRecord:
		return n.showRecord(ctx, cur)
	case schema.KindList:
		return n.showList(ctx, cur)
	default:
		return invariant(n.path, "unknown schema kind %v", cur.node.Kind())
	}
}

// resolve descends the schema and the value along the cursor
func (n *Navigator) resolve() (cursor, error) {
	node := n.root
	expr := jp.R()

	for i, seg := range n.path {
		child, ok := node.Child(seg.Key)
		if !ok {
			return cursor{}, invariant(n.path[:i+1], "schema %s has no child %q", node.Kind(), seg.Key)
		}
		if node.Kind() == schema.KindList {
			idx, _ := strconv.Atoi(seg.Key)
			expr = expr.N(idx)
		} else {
			expr = expr.C(seg.Key)
		}
		node = child
	}

	if n.path.IsRoot() {
		return cursor{node: node, value: n.value, expr: expr}, nil
	}

	found := expr.Get(n.value)
	if len(found) != 1 {
		return cursor{}, invariant(n.path, "value has no node at %s", expr)
	}
	return cursor{node: node, value: found[0], expr: expr}, nil
}

// replace swaps the value under the cursor
func (n *Navigator) replace(cur cursor, value any) error {
	if n.path.IsRoot() {
		n.value = value
		return nil
	}
	if err := cur.expr.SetOne(n.value, value); err != nil {
		return invariant(n.path, "cannot set %s: %v", cur.expr, err)
	}
	return nil
}

func (n *Navigator) push(seg Segment) {
	n.deleteMode = false
	n.restore = -1
	n.path = append(n.path, seg)
	n.log.Debug().Str("path", n.path.String()).Msg("cursor pushed")
}

func (n *Navigator) pop() {
	n.deleteMode = false
	if n.path.IsRoot() {
		n.restore = -1
		return
	}
	last := n.path[len(n.path)-1]
	n.path = n.path[:len(n.path)-1]
	n.restore = last.Index
	n.log.Debug().Str("path", n.path.String()).Int("restore", last.Index).Msg("cursor popped")
}

// choice is the operator's answer to a menu, after control rows have been
// handled
type choice struct {
	kind  rowKind
	index int
}

// choose assembles the menu around content and controls, shows it and
// handles back, exit and plugin rows itself. ok is false when the answer was
// fully handled.
func (n *Navigator) choose(ctx context.Context, cur cursor, title string, content, controls []string) (choice, bool, error) {
	l := layout{back: !n.path.IsRoot(), content: len(content), controls: len(controls)}

	var entry plugin.Entry
	if !n.deleteMode {
		entry, l.plugin = n.opts.Plugins.Find(n.path.String())
	}

	items := make([]string, 0, l.rows())
	if l.back {
		items = append(items, BackText)
	}
	items = append(items, ExitText)
	items = append(items, content...)
	items = append(items, controls...)
	if l.plugin {
		items = append(items, entry.Label)
	}

	row, err := n.opts.Presenter.Select(ctx, title, items, l.defaultRow(n.restore))
	if err != nil {
		return choice{}, false, err
	}
	if row < 0 || row >= l.rows() {
		return choice{}, false, invariant(n.path, "menu row %d out of range", row)
	}

	kind, index := l.classify(row)
	switch kind {
	case rowBack:
		n.pop()
		return choice{}, false, nil
	case rowExit:
		return choice{}, false, n.exitFlow(ctx)
	case rowPlugin:
		return choice{}, false, n.runPlugin(ctx, cur, entry)
	default:
		return choice{kind: kind, index: index}, true, nil
	}
}

// runPlugin applies a plugin action to the node under the cursor
func (n *Navigator) runPlugin(ctx context.Context, cur cursor, entry plugin.Entry) error {
	n.log.Debug().Str("path", n.path.String()).Str("plugin", entry.Label).Msg("running plugin")

	// The action works on a copy so a failure cannot leave half an edit behind.
	node := schema.Clone(cur.value)
	if err := entry.Action.Apply(ctx, &node); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return err
		}
		n.log.Warn().Err(err).Str("plugin", entry.Label).Msg("plugin failed")
		fmt.Fprintf(n.opts.Out, "%s failed: %v\n", entry.Label, err)
		return nil
	}

	if err := schema.Validate(node, cur.node, n.path.Keys()); err != nil {
		return invariant(n.path, "plugin %s left an invalid node: %v", entry.Label, err)
	}
	return n.replace(cur, node)
}

// exitFlow asks whether to keep the changes and ends the session
func (n *Navigator) exitFlow(ctx context.Context) error {
	n.exit = true

	row, err := n.opts.Presenter.Select(ctx, "Do you want to save your changes?", []string{SaveText, DiscardText}, 0)
	if err != nil {
		return err
	}

	if row != 0 {
		fmt.Fprintln(n.opts.Out, "Discarded changes!")
		return nil
	}

	if n.opts.Save != nil {
		if err := n.opts.Save(n.value); err != nil {
			return fmt.Errorf("failed to save changes: %w", err)
		}
	}
	n.saved = true
	fmt.Fprintln(n.opts.Out, "Saved changes!")
	return nil
}
