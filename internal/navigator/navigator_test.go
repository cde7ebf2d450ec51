package navigator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/confed/internal/plugin"
	"github.com/billie-coop/confed/internal/schema"
)

var errScriptExhausted = errors.New("script exhausted")

// answer is one scripted operator reply
type answer struct {
	row  int
	text string
	num  int64
	err  error
}

// call records what the navigator asked for
type call struct {
	method   string
	title    string
	items    []string
	def      int
	label    string
	initText string
	initNum  int64
}

// scripted replays answers in order and records every call
type scripted struct {
	answers []answer
	calls   []call
}

func (s *scripted) next() (answer, error) {
	if len(s.answers) == 0 {
		return answer{}, errScriptExhausted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, a.err
}

func (s *scripted) Select(_ context.Context, title string, items []string, def int) (int, error) {
	s.calls = append(s.calls, call{method: "select", title: title, items: append([]string(nil), items...), def: def})
	a, err := s.next()
	return a.row, err
}

func (s *scripted) PromptText(_ context.Context, label, initial string, _ bool) (string, error) {
	s.calls = append(s.calls, call{method: "text", label: label, initText: initial})
	a, err := s.next()
	return a.text, err
}

func (s *scripted) PromptInt(_ context.Context, label string, initial int64) (int64, error) {
	s.calls = append(s.calls, call{method: "int", label: label, initNum: initial})
	a, err := s.next()
	return a.num, err
}

func pick(rows ...int) []answer {
	out := make([]answer, len(rows))
	for i, r := range rows {
		out[i] = answer{row: r}
	}
	return out
}

func mustCompile(t *testing.T, src string) *schema.Node {
	t.Helper()
	raw, err := oj.ParseString(src)
	require.NoError(t, err)
	n, err := schema.Compile(raw)
	require.NoError(t, err)
	return n
}

type harness struct {
	nav   *Navigator
	p     *scripted
	out   *bytes.Buffer
	saves []any
}

func newHarness(t *testing.T, src string, value any, plugins *plugin.Registry, answers ...answer) *harness {
	t.Helper()
	h := &harness{p: &scripted{answers: answers}, out: &bytes.Buffer{}}
	h.nav = New(mustCompile(t, src), value, Options{
		Presenter: h.p,
		Plugins:   plugins,
		Out:       h.out,
		Save: func(v any) error {
			h.saves = append(h.saves, v)
			return nil
		},
	})
	return h
}

func TestNavigator_EmptyListOffersOnlyAdd(t *testing.T) {
	h := newHarness(t, `{"tags": ["Str", []]}`, map[string]any{"tags": []any{}}, nil,
		pick(1, 1, 1)...)

	require.NoError(t, h.nav.Run(context.Background()))

	require.Len(t, h.p.calls, 3)
	assert.Equal(t, []string{ExitText, "tags (Size: 0)"}, h.p.calls[0].items)
	assert.Equal(t, "Path:  []", h.p.calls[0].title)
	assert.Equal(t, []string{BackText, ExitText, AddItemText}, h.p.calls[1].items)
	assert.Equal(t, "Path:  [tags]", h.p.calls[1].title)
	assert.Equal(t, []string{SaveText, DiscardText}, h.p.calls[2].items)
	assert.Equal(t, "Discarded changes!\n", h.out.String())
	assert.Empty(t, h.saves)
	assert.False(t, h.nav.Saved())
}

func TestNavigator_DeleteOnlyElement(t *testing.T) {
	h := newHarness(t, `{"tags": ["Str"]}`, map[string]any{"tags": []any{"x"}}, nil,
		pick(1, 3, 2, 1, 0)...)

	require.NoError(t, h.nav.Run(context.Background()))

	require.Len(t, h.p.calls, 5)
	assert.Equal(t, []string{BackText, ExitText, `"x"`, DeleteItemText, AddItemText}, h.p.calls[1].items)
	assert.Equal(t, []string{BackText, ExitText, `-> "x"`}, h.p.calls[2].items)
	assert.Equal(t, []string{BackText, ExitText, AddItemText}, h.p.calls[3].items)
	assert.Equal(t, 0, h.p.calls[3].def)

	assert.Equal(t, map[string]any{"tags": []any{}}, h.nav.Value())
	assert.False(t, h.nav.DeleteMode())
	require.Len(t, h.saves, 1)
	assert.Equal(t, map[string]any{"tags": []any{}}, h.saves[0])
	assert.True(t, h.nav.Saved())
	assert.Equal(t, "Saved changes!\n", h.out.String())
}

func TestNavigator_DeleteKeepsOrder(t *testing.T) {
	h := newHarness(t, `{"tags": ["Str"]}`, map[string]any{"tags": []any{"a", "b", "c"}}, nil,
		pick(1, 5, 3, 1, 1)...)

	require.NoError(t, h.nav.Run(context.Background()))

	assert.Equal(t, []string{BackText, ExitText, `-> "a"`, `-> "b"`, `-> "c"`}, h.p.calls[2].items)
	assert.Equal(t, map[string]any{"tags": []any{"a", "c"}}, h.nav.Value())
}

func TestNavigator_EditScalarsRestoresRow(t *testing.T) {
	h := newHarness(t, `{"a": "Int 0", "b": "Str"}`, map[string]any{"a": int64(1), "b": "x"}, nil,
		answer{row: 2},
		answer{text: "  hello "},
		answer{row: 1},
		answer{num: 7},
		answer{row: 0},
		answer{row: 0},
	)

	require.NoError(t, h.nav.Run(context.Background()))

	require.Len(t, h.p.calls, 6)
	assert.Equal(t, []string{ExitText, "a: 1", `b: "x"`}, h.p.calls[0].items)
	assert.Equal(t, 0, h.p.calls[0].def)

	assert.Equal(t, "text", h.p.calls[1].method)
	assert.Equal(t, "Value", h.p.calls[1].label)
	assert.Equal(t, "x", h.p.calls[1].initText)

	// back on the record menu with "b" highlighted
	assert.Equal(t, []string{ExitText, "a: 1", `b: "hello"`}, h.p.calls[2].items)
	assert.Equal(t, 2, h.p.calls[2].def)

	assert.Equal(t, "int", h.p.calls[3].method)
	assert.Equal(t, int64(1), h.p.calls[3].initNum)
	assert.Equal(t, 1, h.p.calls[4].def)

	want := map[string]any{"a": int64(7), "b": "hello"}
	assert.Equal(t, want, h.nav.Value())
	require.Len(t, h.saves, 1)
	assert.Equal(t, want, h.saves[0])
}

func TestNavigator_AddDescendsAndRestoresNewRow(t *testing.T) {
	h := newHarness(t, `{"tags": ["Str hi"]}`, map[string]any{"tags": []any{}}, nil,
		answer{row: 1},
		answer{row: 2},
		answer{text: "yo"},
		answer{row: 0},
		answer{row: 0},
		answer{row: 1},
	)

	require.NoError(t, h.nav.Run(context.Background()))

	require.Len(t, h.p.calls, 6)
	assert.Equal(t, "hi", h.p.calls[2].initText)
	assert.Equal(t, []string{BackText, ExitText, `"yo"`, DeleteItemText, AddItemText}, h.p.calls[3].items)
	assert.Equal(t, 2, h.p.calls[3].def)
	assert.Equal(t, "Path:  [tags]", h.p.calls[3].title)
	// back at the root with "tags" highlighted
	assert.Equal(t, 1, h.p.calls[4].def)

	assert.Equal(t, map[string]any{"tags": []any{"yo"}}, h.nav.Value())
}

func TestNavigator_AddNestedRecord(t *testing.T) {
	src := `{"drives": [{"unit_name": "Str", "interval": "Int 180"}]}`
	h := newHarness(t, src, map[string]any{"drives": []any{}}, nil,
		answer{row: 1},
		answer{row: 2},
		answer{row: 0},
		answer{row: 1},
		answer{row: 1},
	)

	require.NoError(t, h.nav.Run(context.Background()))

	assert.Equal(t, "Path:  [drives][0]", h.p.calls[2].title)
	assert.Equal(t, []string{BackText, ExitText, "interval: 180", `unit_name: ""`}, h.p.calls[2].items)
	assert.Equal(t, []string{BackText, ExitText, `{"interval":180,"unit_name":""}`, DeleteItemText, AddItemText}, h.p.calls[3].items)

	root := mustCompile(t, src)
	assert.NoError(t, schema.Validate(h.nav.Value(), root, nil))
}

func TestNavigator_ListAddDeleteLengths(t *testing.T) {
	root := `{"n": ["Int 5"]}`
	start := []any{int64(1), int64(2), int64(3)}

	t.Run("add", func(t *testing.T) {
		h := newHarness(t, root, map[string]any{"n": append([]any(nil), start...)}, nil,
			answer{row: 1},
			answer{row: 6},
			answer{num: 5},
			answer{row: 1},
			answer{row: 1},
		)
		require.NoError(t, h.nav.Run(context.Background()))

		got := h.nav.Value().(map[string]any)["n"].([]any)
		require.Len(t, got, len(start)+1)
		assert.Equal(t, start, got[:len(start)])
		assert.NoError(t, schema.Validate(got[len(start)], mustCompile(t, `"Int"`), nil))
	})

	for i := range start {
		t.Run(fmt.Sprintf("delete_%d", i), func(t *testing.T) {
			h := newHarness(t, root, map[string]any{"n": append([]any(nil), start...)}, nil,
				answer{row: 1},
				answer{row: 5},
				answer{row: 2 + i},
				answer{row: 1},
				answer{row: 1},
			)
			require.NoError(t, h.nav.Run(context.Background()))

			want := append(append([]any(nil), start[:i]...), start[i+1:]...)
			assert.Equal(t, want, h.nav.Value().(map[string]any)["n"])
		})
	}
}

func TestNavigator_ScalarRootGoesToExit(t *testing.T) {
	h := newHarness(t, `"Int 3"`, int64(3), nil,
		answer{num: 5},
		answer{row: 0},
	)

	require.NoError(t, h.nav.Run(context.Background()))

	require.Len(t, h.p.calls, 2)
	assert.Equal(t, int64(3), h.p.calls[0].initNum)
	assert.Equal(t, "Do you want to save your changes?", h.p.calls[1].title)
	assert.Equal(t, []any{int64(5)}, h.saves)
}

func TestNavigator_FloatAtIntNode(t *testing.T) {
	h := newHarness(t, `{"a": "Int"}`, map[string]any{"a": float64(2)}, nil,
		answer{row: 1},
		answer{num: 4},
		answer{row: 0},
		answer{row: 1},
	)

	require.NoError(t, h.nav.Run(context.Background()))

	assert.Equal(t, int64(2), h.p.calls[1].initNum)
	assert.Equal(t, map[string]any{"a": int64(4)}, h.nav.Value())
}

func TestNavigator_LongLabelsAreTruncated(t *testing.T) {
	h := newHarness(t, `{"tags": ["Str"]}`, map[string]any{"tags": []any{"abcdefgh", "ab"}}, nil,
		pick(1, 1, 1)...)
	h.nav.opts.LabelWidth = 5

	require.NoError(t, h.nav.Run(context.Background()))

	assert.Equal(t, []string{BackText, ExitText, `"abcd...`, `"ab"`, DeleteItemText, AddItemText}, h.p.calls[1].items)
}

func TestNavigator_Plugins(t *testing.T) {
	src := `{"drives": [{"unit_name": "Str"}], "name": "Str"}`
	value := func() map[string]any {
		return map[string]any{"drives": []any{}, "name": "x"}
	}

	t.Run("appends_records", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(_ context.Context, node *any) error {
			list := (*node).([]any)
			*node = append(list, map[string]any{"unit_name": "a"}, map[string]any{"unit_name": "b"})
			return nil
		}))
		h := newHarness(t, src, value(), reg, pick(1, 3, 1, 0)...)

		require.NoError(t, h.nav.Run(context.Background()))

		assert.Equal(t, []string{ExitText, "drives (Size: 0)", `name: "x"`}, h.p.calls[0].items)
		assert.Equal(t, []string{BackText, ExitText, AddItemText, "[ import ]"}, h.p.calls[1].items)
		assert.Equal(t, []string{
			BackText, ExitText,
			`{"unit_name":"a"}`, `{"unit_name":"b"}`,
			DeleteItemText, AddItemText, "[ import ]",
		}, h.p.calls[2].items)
		assert.False(t, h.nav.DeleteMode())
		assert.Len(t, h.nav.Value().(map[string]any)["drives"], 2)
		assert.Equal(t, Path{{Key: "drives", Index: 0}}, h.nav.Path())
	})

	t.Run("hidden_in_delete_mode", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(context.Context, *any) error { return nil }))
		v := value()
		v["drives"] = []any{map[string]any{"unit_name": "a"}}
		h := newHarness(t, src, v, reg, pick(1, 3, 1, 1)...)

		require.NoError(t, h.nav.Run(context.Background()))

		assert.Equal(t, []string{BackText, ExitText, `-> {"unit_name":"a"}`}, h.p.calls[2].items)
		assert.True(t, h.nav.DeleteMode())
	})

	t.Run("failure_leaves_value", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(_ context.Context, node *any) error {
			*node = []any{map[string]any{"unit_name": "partial"}}
			return errors.New("boom")
		}))
		h := newHarness(t, src, value(), reg, pick(1, 3, 1, 1)...)

		require.NoError(t, h.nav.Run(context.Background()))

		assert.Contains(t, h.out.String(), "[ import ] failed: boom")
		assert.Equal(t, []any{}, h.nav.Value().(map[string]any)["drives"])
	})

	t.Run("failure_discards_in_place_edits", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(_ context.Context, node *any) error {
			(*node).([]any)[0].(map[string]any)["unit_name"] = "partial"
			return errors.New("boom")
		}))
		v := value()
		v["drives"] = []any{map[string]any{"unit_name": "orig"}}
		h := newHarness(t, src, v, reg, pick(1, 5, 1, 1)...)

		require.NoError(t, h.nav.Run(context.Background()))

		assert.Contains(t, h.out.String(), "[ import ] failed: boom")
		assert.Equal(t, []any{map[string]any{"unit_name": "orig"}}, h.nav.Value().(map[string]any)["drives"])
		assert.Equal(t, []string{
			BackText, ExitText, `{"unit_name":"orig"}`, DeleteItemText, AddItemText, "[ import ]",
		}, h.p.calls[2].items)
	})

	t.Run("invalid_result", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(_ context.Context, node *any) error {
			*node = "not a list"
			return nil
		}))
		h := newHarness(t, src, value(), reg, pick(1, 3)...)

		err := h.nav.Run(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvariant)
		assert.Empty(t, h.saves)
	})

	t.Run("cancelled", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(context.Context, *any) error {
			return fmt.Errorf("picking workbook: %w", context.Canceled)
		}))
		h := newHarness(t, src, value(), reg, pick(1, 3)...)

		err := h.nav.Run(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, h.saves)
	})

	t.Run("scope_is_a_suffix", func(t *testing.T) {
		reg := plugin.NewRegistry()
		reg.Register("[drives]", "[ import ]", plugin.ActionFunc(func(context.Context, *any) error { return nil }))
		h := newHarness(t, src, value(), reg, pick(0, 1)...)

		require.NoError(t, h.nav.Run(context.Background()))

		assert.NotContains(t, h.p.calls[0].items, "[ import ]")
	})
}

func TestNavigator_InterruptEndsWithoutSaving(t *testing.T) {
	h := newHarness(t, `{"a": "Int"}`, map[string]any{"a": int64(0)}, nil,
		answer{row: 1},
		answer{err: fmt.Errorf("interrupted: %w", context.Canceled)},
	)

	err := h.nav.Run(context.Background())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.saves)
	assert.Empty(t, h.out.String())
}

func TestNavigator_SaveFailure(t *testing.T) {
	p := &scripted{answers: pick(0, 0)}
	nav := New(mustCompile(t, `{"a": "Int"}`), map[string]any{"a": int64(0)}, Options{
		Presenter: p,
		Save:      func(any) error { return errors.New("disk full") },
	})

	err := nav.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, nav.Saved())
}

func TestNavigator_Desync(t *testing.T) {
	h := newHarness(t, `{"a": {"b": "Int"}}`, map[string]any{"a": map[string]any{}}, nil, pick(1)...)

	err := h.nav.Run(context.Background())

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "[a]", inv.Path.String())
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestNavigator_PathNeverDesyncs(t *testing.T) {
	src := `{"a": {"b": ["Int"], "c": "Str"}, "d": [{"e": "Int"}]}`
	root := mustCompile(t, src)
	value := schema.DefaultValue(root)

	// a > b > add, back to the root, d > add > e, exit
	h := newHarness(t, src, value, nil,
		answer{row: 1},
		answer{row: 2},
		answer{row: 2},
		answer{num: 3},
		answer{row: 0},
		answer{row: 0},
		answer{row: 2},
		answer{row: 2},
		answer{row: 2},
		answer{num: 9},
		answer{row: 1},
		answer{row: 0},
	)

	require.NoError(t, h.nav.Run(context.Background()))

	require.NoError(t, schema.Validate(h.nav.Value(), root, nil))
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": []any{int64(3)}, "c": ""},
		"d": []any{map[string]any{"e": int64(9)}},
	}, h.nav.Value())
	assert.Equal(t, "[d][0]", h.nav.Path().String())
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name  string
		l     layout
		rows  int
		kinds []rowKind
		index []int
	}{
		{
			name:  "root_record",
			l:     layout{content: 2},
			rows:  3,
			kinds: []rowKind{rowExit, rowContent, rowContent},
			index: []int{0, 0, 1},
		},
		{
			name:  "nested_list_with_plugin",
			l:     layout{back: true, content: 2, controls: 2, plugin: true},
			rows:  7,
			kinds: []rowKind{rowBack, rowExit, rowContent, rowContent, rowControl, rowControl, rowPlugin},
			index: []int{0, 0, 0, 1, 0, 1, 0},
		},
		{
			name:  "empty_list",
			l:     layout{back: true, controls: 1},
			rows:  3,
			kinds: []rowKind{rowBack, rowExit, rowControl},
			index: []int{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.rows, tt.l.rows())
			for row := range tt.rows {
				kind, idx := tt.l.classify(row)
				assert.Equal(t, tt.kinds[row], kind, "row %d", row)
				assert.Equal(t, tt.index[row], idx, "row %d", row)
			}
		})
	}
}

func TestLayout_RowRoundTrip(t *testing.T) {
	for _, back := range []bool{false, true} {
		l := layout{back: back, content: 4, controls: 2}
		for i := range l.content {
			kind, idx := l.classify(l.row(i))
			assert.Equal(t, rowContent, kind)
			assert.Equal(t, i, idx)
		}
	}
}

func TestLayout_DefaultRow(t *testing.T) {
	l := layout{back: true, content: 3, controls: 1}
	assert.Equal(t, 0, l.defaultRow(-1))
	assert.Equal(t, 2, l.defaultRow(0))
	assert.Equal(t, 4, l.defaultRow(2))
	assert.Equal(t, l.rows()-1, l.defaultRow(10))

	root := layout{content: 3}
	assert.Equal(t, 1, root.defaultRow(0))
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "[]", Path(nil).String())
	p := Path{{Key: "drives"}, {Key: "0"}, {Key: "unit_name"}}
	assert.Equal(t, "[drives][0][unit_name]", p.String())
	assert.Equal(t, []string{"drives", "0", "unit_name"}, p.Keys())
	assert.False(t, p.IsRoot())
}

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "int", value: int64(5), want: "count: 5"},
		{name: "string", value: "text", want: `count: "text"`},
		{name: "array", value: []any{1, 2}, want: "count (Size: 2)"},
		{name: "object", value: map[string]any{"x": 1}, want: "count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldLabel("count", tt.value))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "🇩🇪🇫🇷...", truncate("🇩🇪🇫🇷🇮🇹", 2))
}
