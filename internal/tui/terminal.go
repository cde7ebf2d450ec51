package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/billie-coop/confed/internal/logging"
)

// ErrInterrupted is returned when the operator presses ctrl+c or the
// context is cancelled while a prompt is open.
var ErrInterrupted = fmt.Errorf("interrupted: %w", context.Canceled)

var errNoItems = errors.New("menu has no items")

// Terminal shows menus and prompts as short-lived bubbletea programs. Each
// call blocks until the operator answers.
type Terminal struct {
	in  io.Reader
	out io.Writer
	log zerolog.Logger
}

// NewTerminal creates a presenter. Nil streams fall back to the process
// terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, log: logging.Component("tui")}
}

// Select shows items under title and returns the chosen index
func (t *Terminal) Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return 0, errNoItems
	}

	final, err := t.run(ctx, newMenuModel(title, items, defaultIndex))
	if err != nil {
		return 0, err
	}

	m := final.(menuModel)
	if !m.chosen {
		return 0, ErrInterrupted
	}
	t.log.Debug().Str("title", title).Int("row", m.cursor).Msg("menu answered")
	return m.cursor, nil
}

// PromptText asks for a line of text
func (t *Terminal) PromptText(ctx context.Context, label, initial string, allowEmpty bool) (string, error) {
	var validate func(string) error
	if !allowEmpty {
		validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		}
	}
	return t.prompt(ctx, label, initial, validate)
}

// PromptInt asks for an integer and re-prompts until the input parses
func (t *Terminal) PromptInt(ctx context.Context, label string, initial int64) (int64, error) {
	text, err := t.prompt(ctx, label, strconv.FormatInt(initial, 10), validateInt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}

func validateInt(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("%q is not a whole number", strings.TrimSpace(s))
	}
	return nil
}

func (t *Terminal) prompt(ctx context.Context, label, initial string, validate func(string) error) (string, error) {
	final, err := t.run(ctx, newInputModel(label, initial, validate))
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if !m.done {
		return "", ErrInterrupted
	}
	return m.Value(), nil
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}
	if t.out != nil {
		opts = append(opts, tea.WithOutput(t.out))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return final, nil
}
