package models

import (
	"fmt"
	"math"
)

// NoColor is returned by the conversion functions when the input cannot
// describe a color. Callers filter it out rather than treating it as an error.
const NoColor = ""

// XYBriToHex converts CIE 1931 xy chromaticity plus a brightness value
// (0-254 scale) to a lowercase "#rrggbb" string.
// Returns NoColor for non-finite inputs or y == 0.
func XYBriToHex(x, y, bri float64) string {
	if !isFinite(x) || !isFinite(y) || !isFinite(bri) || y == 0 {
		return NoColor
	}

	// Recover XYZ using brightness as relative luminance
	Y := bri / 254.0
	X := (Y / y) * x
	Z := (Y / y) * (1 - x - y)

	// XYZ to linear sRGB (D65)
	r := X*3.2406 - Y*1.5372 - Z*0.4986
	g := -X*0.9689 + Y*1.8758 + Z*0.0415
	b := X*0.0557 - Y*0.2040 + Z*1.0570

	r = gammaCorrect(r)
	g = gammaCorrect(g)
	b = gammaCorrect(b)

	return fmt.Sprintf("#%02x%02x%02x", quantize(r), quantize(g), quantize(b))
}

// MirekToHex converts a color temperature in mirek (reciprocal megakelvin)
// to a lowercase "#rrggbb" string.
// Returns NoColor for non-finite or non-positive input.
//
// Based on Tanner Helland's black-body approximation:
// http://www.tannerhelland.com/4435/convert-temperature-rgb-algorithm-code/
func MirekToHex(mirek float64) string {
	if !isFinite(mirek) || mirek <= 0 {
		return NoColor
	}

	kelvin := 1000000.0 / mirek
	temp := kelvin / 100.0

	var r, g, b float64

	if temp <= 66 {
		r = 255
	} else {
		r = 329.698727446 * math.Pow(temp-60, -0.1332047592)
		r = clampFloat(r, 0, 255)
	}

	if temp <= 66 {
		g = 99.4708025861*math.Log(temp) - 161.1195681661
		g = clampFloat(g, 0, 255)
	} else {
		g = 288.1221695283 * math.Pow(temp-60, -0.0755148492)
		g = clampFloat(g, 0, 255)
	}

	if temp >= 66 {
		b = 255
	} else if temp <= 19 {
		b = 0
	} else {
		b = 138.5177312231*math.Log(temp-10) - 305.0447927307
		b = clampFloat(b, 0, 255)
	}

	return fmt.Sprintf("#%02x%02x%02x",
		uint8(math.Round(r)), uint8(math.Round(g)), uint8(math.Round(b)))
}

// gammaCorrect applies the sRGB piecewise gamma function
func gammaCorrect(value float64) float64 {
	if value <= 0.0031308 {
		return 12.92 * value
	}
	return 1.055*math.Pow(value, 1.0/2.4) - 0.055
}

// quantize clamps a gamma-corrected channel to [0,1] and scales to 0-255
func quantize(value float64) uint8 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 255
	}
	return uint8(math.Round(value * 255))
}

// clampFloat clamps a float64 to a range
func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
