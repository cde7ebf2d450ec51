package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/confed/internal/tui/styles"
)

// inputModel is a single line editor. The value is kept as runes so the
// cursor never splits a multi-byte character.
type inputModel struct {
	label     string
	value     []rune
	cursorPos int
	keys      KeyMap

	// validate rejects a value on enter; the prompt stays open and shows
	// the error.
	validate func(string) error
	err      error

	done        bool
	interrupted bool
}

func newInputModel(label, initial string, validate func(string) error) inputModel {
	value := []rune(initial)
	return inputModel{
		label:     label,
		value:     value,
		cursorPos: len(value),
		keys:      DefaultKeyMap(),
		validate:  validate,
	}
}

// Value returns the current text
func (m inputModel) Value() string {
	return string(m.value)
}

// Init initializes the model
func (m inputModel) Init() tea.Cmd {
	return nil
}

// Update handles input events
func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(kp, m.keys.Interrupt) {
		m.interrupted = true
		return m, tea.Quit
	}
	if key.Matches(kp, m.keys.Select) {
		if m.validate != nil {
			if m.err = m.validate(m.Value()); m.err != nil {
				return m, nil
			}
		}
		m.done = true
		return m, tea.Quit
	}

	m.err = nil
	switch kp.String() {
	case "backspace":
		if m.cursorPos > 0 {
			m.value = slices.Delete(slices.Clone(m.value), m.cursorPos-1, m.cursorPos)
			m.cursorPos--
		}
	case "delete":
		if m.cursorPos < len(m.value) {
			m.value = slices.Delete(slices.Clone(m.value), m.cursorPos, m.cursorPos+1)
		}
	case "left":
		if m.cursorPos > 0 {
			m.cursorPos--
		}
	case "right":
		if m.cursorPos < len(m.value) {
			m.cursorPos++
		}
	case "home", "ctrl+a":
		m.cursorPos = 0
	case "end", "ctrl+e":
		m.cursorPos = len(m.value)
	case "ctrl+u":
		m.value = m.value[m.cursorPos:]
		m.cursorPos = 0
	default:
		// Regular character input, space included
		if kp.Text != "" && kp.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			m.insert([]rune(kp.Text))
		}
	}
	return m, nil
}

func (m *inputModel) insert(r []rune) {
	value := make([]rune, 0, len(m.value)+len(r))
	value = append(value, m.value[:m.cursorPos]...)
	value = append(value, r...)
	value = append(value, m.value[m.cursorPos:]...)
	m.value = value
	m.cursorPos += len(r)
}

// View renders the prompt. Nothing is left on screen once it is answered.
func (m inputModel) View() tea.View {
	if m.done || m.interrupted {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m inputModel) render() string {
	s := styles.CurrentTheme().S()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.label + ":"))
	b.WriteString("\n")

	// Show cursor
	before := string(m.value[:m.cursorPos])
	if m.cursorPos < len(m.value) {
		b.WriteString(s.Input.Render(before))
		b.WriteString(s.Cursor.Render(string(m.value[m.cursorPos])))
		b.WriteString(s.Input.Render(string(m.value[m.cursorPos+1:])))
	} else {
		b.WriteString(s.Input.Render(before))
		b.WriteString(s.Cursor.Render(" "))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(s.Error.Render(styles.ErrorIcon + " " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(s.Help.Render(helpLine(m.keys.Select, m.keys.Interrupt)))
	return b.String()
}
