package models

import "github.com/samber/lo"

// Light represents a Philips Hue light
type Light struct {
	// Unique identifier from the bridge
	ID string
	// User-friendly name
	Name string
	// Current on/off state
	On bool
	// Brightness percentage (0-100), only meaningful when On.
	// Lights that report on with no dimming capability default to 100.
	Brightness int
}

// AnyOn returns true if at least one light is on
func AnyOn(lights []*Light) bool {
	return lo.SomeBy(lights, func(l *Light) bool { return l.On })
}

// AverageBrightness returns the average brightness percentage over lights
// that are currently on. Returns 0 when no light is on.
func AverageBrightness(lights []*Light) int {
	on := lo.Filter(lights, func(l *Light, _ int) bool { return l.On })
	if len(on) == 0 {
		return 0
	}

	total := lo.SumBy(on, func(l *Light) int { return l.Brightness })
	return total / len(on)
}
