package styles

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// RenderThemeGradient renders bold text with the current theme's primary gradient
func RenderThemeGradient(text string) string {
	theme := CurrentTheme()
	return ApplyBoldGradient(text, theme.Primary, theme.Secondary)
}

// ApplyBoldGradient renders text with a bold horizontal gradient
func ApplyBoldGradient(text string, color1, color2 color.Color) string {
	if text == "" {
		return ""
	}

	// Handle Unicode properly
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(color1).Bold(true).Render(text)
	}

	var output strings.Builder
	colors := blendColors(len(clusters), color1, color2)
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(colors[i]).Bold(true)
		fmt.Fprint(&output, style.Render(cluster))
	}

	return output.String()
}

// blendColors creates a gradient between colors
func blendColors(steps int, color1, color2 color.Color) []color.Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []color.Color{color1}
	}

	colors := make([]color.Color, steps)

	// Convert to colorful for better blending
	c1, _ := colorful.MakeColor(color1)
	c2, _ := colorful.MakeColor(color2)

	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		// Use HCL color space for perceptually uniform blending
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}

	return colors
}
