package styles

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Semantic color names for consistency
type Theme struct {
	Name   string
	IsDark bool

	// GlamourStyle names the glamour style used for rendered documents.
	GlamourStyle string

	// Brand colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Foreground colors
	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgSelected color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color

	styles *Styles
}

type Styles struct {
	Base  lipgloss.Style
	Title lipgloss.Style
	Muted lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Menu styles
	Item     lipgloss.Style
	Selected lipgloss.Style
	Control  lipgloss.Style
	Input    lipgloss.Style
	Cursor   lipgloss.Style
	Help     lipgloss.Style
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(t.Accent).
			Bold(true).
			MarginBottom(1),

		Muted: base.Foreground(t.FgMuted),

		Success: base.Foreground(t.Success),

		Error: base.Foreground(t.Error),

		Warning: base.Foreground(t.Warning),

		Item: base.PaddingLeft(2),

		Selected: base.
			Foreground(t.Primary).
			Bold(true),

		Control: base.
			PaddingLeft(2).
			Foreground(t.FgMuted),

		Input: base.Foreground(t.FgSelected),

		Cursor: lipgloss.NewStyle().
			Background(t.Primary).
			Foreground(t.FgSelected),

		Help: base.
			Foreground(t.FgSubtle).
			Italic(true).
			MarginTop(1),
	}
}

// Manager handles theme switching and registration
type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

var defaultManager *Manager

func DefaultManager() *Manager {
	if defaultManager == nil {
		defaultManager = NewManager("confed")
	}
	return defaultManager
}

func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

// SetTheme switches the default manager to the named theme
func SetTheme(name string) error {
	return DefaultManager().SetTheme(name)
}

// Lookup finds a built-in theme by name
func Lookup(name string) (*Theme, bool) {
	t, ok := DefaultManager().themes[name]
	return t, ok
}

// Names lists the built-in theme names, sorted
func Names() []string {
	return DefaultManager().List()
}

func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}

	m.Register(NewConfedTheme())
	m.Register(NewDarkTheme())
	m.Register(NewLightTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes["confed"]
	}

	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseHex converts hex string to color
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(strings.TrimSpace(hex), "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
