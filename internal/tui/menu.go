package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/confed/internal/tui/styles"
)

// menuModel is a single-choice menu. It quits once a row is chosen or the
// operator interrupts.
type menuModel struct {
	title  string
	items  []string
	cursor int
	keys   KeyMap

	chosen      bool
	interrupted bool
}

func newMenuModel(title string, items []string, defaultIndex int) menuModel {
	if defaultIndex < 0 || defaultIndex >= len(items) {
		defaultIndex = 0
	}
	return menuModel{
		title:  title,
		items:  items,
		cursor: defaultIndex,
		keys:   DefaultKeyMap(),
	}
}

// Init initializes the model
func (m menuModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kp, m.keys.Interrupt):
		m.interrupted = true
		return m, tea.Quit
	case key.Matches(kp, m.keys.Select):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(kp, m.keys.Up):
		// wraps around to the last row
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case key.Matches(kp, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.items)
	case key.Matches(kp, m.keys.Home):
		m.cursor = 0
	case key.Matches(kp, m.keys.End):
		m.cursor = len(m.items) - 1
	}
	return m, nil
}

// View renders the menu. Nothing is left on screen once it is answered.
func (m menuModel) View() tea.View {
	if m.chosen || m.interrupted {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m menuModel) render() string {
	s := styles.CurrentTheme().S()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(s.Selected.Render(styles.CursorIcon + " " + item))
		} else {
			b.WriteString(itemStyle(s, item).Render(item))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Interrupt)))
	return b.String()
}

// itemStyle dims the injected control rows such as "[ exit ]"
func itemStyle(s *styles.Styles, item string) lipgloss.Style {
	if strings.HasPrefix(item, "[ ") && strings.HasSuffix(item, " ]") {
		return s.Control
	}
	return s.Item
}
