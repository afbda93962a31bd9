package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - lavender theme
var (
	ColorPrimary    = lipgloss.Color("#B794F4") // Lavender
	ColorAccent     = lipgloss.Color("#E9D8FD") // Light lavender
	ColorSurface    = lipgloss.Color("#2D2D44") // Surface color
	ColorSurfaceAlt = lipgloss.Color("#3D3D5C") // Alternate surface

	ColorText        = lipgloss.Color("#FAFAFA")
	ColorTextMuted   = lipgloss.Color("#A0A0B0")
	ColorTextDim     = lipgloss.Color("#6B6B80")
	ColorTextInverse = lipgloss.Color("#1A1A2E")

	ColorSuccess = lipgloss.Color("#68D391")
	ColorError   = lipgloss.Color("#FC8181")

	// Light states
	ColorLightOn  = lipgloss.Color("#FBBF24") // Warm yellow for on
	ColorLightOff = lipgloss.Color("#4A4A5A") // Gray for off
)

// Styles for the UI components
var (
	StyleHeaderGradient = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText).
				Background(ColorPrimary).
				Padding(0, 2)

	StyleSceneItem = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	StyleSceneItemSelected = lipgloss.NewStyle().
				Foreground(ColorTextInverse).
				Background(ColorPrimary).
				Padding(0, 1)

	StyleSceneKind = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)

	StyleModeActive = lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorSuccess).
			Padding(0, 1)

	StyleModeInactive = lipgloss.NewStyle().
				Foreground(ColorTextDim).
				Padding(0, 1)

	StyleStatus = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError)

	StyleBrightnessBarEmpty = lipgloss.NewStyle().
				Foreground(ColorSurfaceAlt)

	StyleInputFocused = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			MarginTop(1)

	StyleSpinner = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(1, 2)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StylePrimary = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)
