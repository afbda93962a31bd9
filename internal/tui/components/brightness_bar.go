package components

import (
	"strings"

	"github.com/angristan/hue-scenes/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// RenderBrightnessBar renders the global brightness as a horizontal bar.
// When no light is on the bar renders as an empty track.
func RenderBrightnessBar(brightness int, anyOn bool, width int) string {
	if width <= 0 {
		width = 10
	}

	if !anyOn {
		return styles.StyleBrightnessBarEmpty.Render(strings.Repeat("─", width))
	}

	segments := (brightness * width) / 100
	if brightness > 0 && segments == 0 {
		segments = 1
	}

	fill := lipgloss.NewStyle().Foreground(styles.ColorLightOn)

	var b strings.Builder
	for i := 1; i <= width; i++ {
		if i <= segments {
			b.WriteString(fill.Render("█"))
		} else {
			b.WriteString(styles.StyleBrightnessBarEmpty.Render("─"))
		}
	}
	return b.String()
}
