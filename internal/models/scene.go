package models

// SceneKind distinguishes regular scenes from smart scenes, which use a
// different recall action on the bridge.
type SceneKind string

const (
	KindScene      SceneKind = "scene"
	KindSmartScene SceneKind = "smart_scene"
)

// Smart scenes carry no static color recipe, so they get a fixed
// two-color placeholder preview.
var SmartScenePlaceholder = []string{"#fbbf24", "#63b3ed"}

// Scene represents a Hue scene or smart scene
type Scene struct {
	// Unique identifier from the bridge
	ID string
	// User-friendly name (not guaranteed unique)
	Name string
	// Regular scene or smart scene
	Kind SceneKind
	// 1-6 preview swatches as "#rrggbb" strings, never empty
	Colors []string
}

// IsSmart returns true for smart scenes
func (s *Scene) IsSmart() bool {
	return s.Kind == KindSmartScene
}
