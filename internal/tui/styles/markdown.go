package styles

import (
	"github.com/charmbracelet/glamour/v2"
)

// GetMarkdownRenderer returns a glamour TermRenderer using the current
// theme's document style
func GetMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStylePath(CurrentTheme().GlamourStyle),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
}
