package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSwatches renders a scene's preview colors as a row of colored blocks
func RenderSwatches(colors []string) string {
	var b strings.Builder
	for _, hex := range colors {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██"))
	}
	return b.String()
}
