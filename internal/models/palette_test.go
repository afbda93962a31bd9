package models

import (
	"testing"
)

func TestPreviewColorsDeduplicates(t *testing.T) {
	a := XYBri{X: 0.675, Y: 0.322, Bri: 254}
	b := XYBri{X: 0.1691, Y: 0.0441, Bri: 254}

	p := ScenePalette{Colors: []XYBri{a, a, b}}
	colors := p.PreviewColors()

	if len(colors) != 2 {
		t.Fatalf("got %d colors (%v), want 2", len(colors), colors)
	}
	if colors[0] != XYBriToHex(a.X, a.Y, a.Bri) {
		t.Errorf("first color %s, want first-seen sample preserved", colors[0])
	}
	if colors[1] != XYBriToHex(b.X, b.Y, b.Bri) {
		t.Errorf("second color %s, want order preserved", colors[1])
	}
}

func TestPreviewColorsFixedOrder(t *testing.T) {
	mirek := 250.0
	p := ScenePalette{
		Colors:       []XYBri{{X: 0.675, Y: 0.322, Bri: 254}},
		Temperatures: []float64{500},
		Actions: []PaletteAction{
			{Color: &XYBri{X: 0.1691, Y: 0.0441, Bri: 254}},
			{Mirek: &mirek},
		},
	}

	colors := p.PreviewColors()
	want := []string{
		XYBriToHex(0.675, 0.322, 254),
		MirekToHex(500),
		XYBriToHex(0.1691, 0.0441, 254),
		MirekToHex(250),
	}

	if len(colors) != len(want) {
		t.Fatalf("got %d colors (%v), want %d", len(colors), colors, len(want))
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("colors[%d] = %s, want %s", i, colors[i], want[i])
		}
	}
}

func TestPreviewColorsDropInvalidSamples(t *testing.T) {
	p := ScenePalette{
		Colors:       []XYBri{{X: 0.3, Y: 0, Bri: 254}}, // y == 0 yields no color
		Temperatures: []float64{-10, 500},
	}

	colors := p.PreviewColors()
	if len(colors) != 1 || colors[0] != MirekToHex(500) {
		t.Errorf("got %v, want only the valid temperature sample", colors)
	}
}

func TestPreviewColorsFallback(t *testing.T) {
	tests := []struct {
		name string
		p    ScenePalette
	}{
		{"empty palette", ScenePalette{}},
		{"actions without color data", ScenePalette{Actions: []PaletteAction{{}, {}}}},
		{"all samples invalid", ScenePalette{Temperatures: []float64{0, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colors := tt.p.PreviewColors()
			if len(colors) != 1 || colors[0] != FallbackColor {
				t.Errorf("got %v, want [%s]", colors, FallbackColor)
			}
		})
	}
}

func TestPreviewColorsCappedAtSix(t *testing.T) {
	var p ScenePalette
	// 20 distinct temperatures produce more than six distinct swatches
	for mirek := 153.0; mirek <= 500; mirek += 18 {
		p.Temperatures = append(p.Temperatures, mirek)
	}

	colors := p.PreviewColors()
	if len(colors) > 6 {
		t.Errorf("got %d colors, want at most 6", len(colors))
	}
}
