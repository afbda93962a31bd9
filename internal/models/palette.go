package models

import (
	"strings"

	"github.com/samber/lo"
)

// FallbackColor is the neutral swatch used for scenes with no usable
// color data.
const FallbackColor = "#444444"

// maxPreviewColors caps the number of swatches per scene
const maxPreviewColors = 6

// XYBri is an xy chromaticity sample paired with a brightness (0-254)
type XYBri struct {
	X, Y, Bri float64
}

// PaletteAction is a per-light scene action which may carry an xy color,
// a color temperature, both, or neither.
type PaletteAction struct {
	Color *XYBri
	Mirek *float64
}

// ScenePalette holds the raw color data attached to a scene on the bridge
type ScenePalette struct {
	Colors       []XYBri
	Temperatures []float64
	Actions      []PaletteAction
}

// PreviewColors derives the ordered swatch list for a scene. Samples are
// converted in a fixed order (palette colors, palette temperatures, action
// colors, action temperatures) so previews are reproducible across loads,
// then deduplicated case-insensitively and capped at six. A scene with no
// usable color data yields the single neutral fallback swatch.
func (p ScenePalette) PreviewColors() []string {
	var hexes []string

	for _, c := range p.Colors {
		hexes = append(hexes, XYBriToHex(c.X, c.Y, c.Bri))
	}
	for _, mirek := range p.Temperatures {
		hexes = append(hexes, MirekToHex(mirek))
	}
	for _, a := range p.Actions {
		if a.Color != nil {
			hexes = append(hexes, XYBriToHex(a.Color.X, a.Color.Y, a.Color.Bri))
		}
	}
	for _, a := range p.Actions {
		if a.Mirek != nil {
			hexes = append(hexes, MirekToHex(*a.Mirek))
		}
	}

	hexes = lo.Filter(hexes, func(h string, _ int) bool { return h != NoColor })
	hexes = lo.UniqBy(hexes, strings.ToLower)

	if len(hexes) == 0 {
		return []string{FallbackColor}
	}
	if len(hexes) > maxPreviewColors {
		hexes = hexes[:maxPreviewColors]
	}
	return hexes
}
