package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angristan/hue-scenes/internal/models"
)

// DemoBridge implements BridgeClient for demo mode without a real Hue
// bridge. All state changes are maintained in memory.
type DemoBridge struct {
	scenes      []*models.Scene
	smartScenes []*models.Scene
	lights      map[string]*models.Light
	lightOrder  []string
	mu          sync.RWMutex

	// Latency simulates bridge round-trips; zero in tests
	Latency time.Duration
}

// NewDemoBridge creates a demo bridge with sample data
func NewDemoBridge() *DemoBridge {
	d := &DemoBridge{
		lights:  make(map[string]*models.Light),
		Latency: 300 * time.Millisecond,
	}
	d.seed()
	return d
}

func (d *DemoBridge) seed() {
	demoScenes := []struct {
		id, name string
		palette  models.ScenePalette
	}{
		{
			id:   "demo-scene-relax",
			name: "Relax",
			palette: models.ScenePalette{
				Colors:       []models.XYBri{{X: 0.5019, Y: 0.4152, Bri: 144}},
				Temperatures: []float64{447},
			},
		},
		{
			id:   "demo-scene-energize",
			name: "Energize",
			palette: models.ScenePalette{
				Temperatures: []float64{156, 233},
			},
		},
		{
			id:   "demo-scene-tropical",
			name: "Tropical Twilight",
			palette: models.ScenePalette{
				Colors: []models.XYBri{
					{X: 0.5862, Y: 0.3575, Bri: 190},
					{X: 0.2432, Y: 0.1716, Bri: 140},
					{X: 0.1723, Y: 0.0495, Bri: 120},
				},
			},
		},
		{
			id:      "demo-scene-nightlight",
			name:    "Nightlight",
			palette: models.ScenePalette{},
		},
	}

	for _, s := range demoScenes {
		d.scenes = append(d.scenes, &models.Scene{
			ID:     s.id,
			Name:   s.name,
			Kind:   models.KindScene,
			Colors: s.palette.PreviewColors(),
		})
	}

	d.smartScenes = []*models.Scene{
		{
			ID:     "demo-smart-natural",
			Name:   "Natural Light",
			Kind:   models.KindSmartScene,
			Colors: models.SmartScenePlaceholder,
		},
	}

	demoLights := []*models.Light{
		{ID: "demo-light-1", Name: "Desk Lamp", On: true, Brightness: 80},
		{ID: "demo-light-2", Name: "Ceiling", On: true, Brightness: 60},
		{ID: "demo-light-3", Name: "Bookshelf", On: false, Brightness: 40},
	}
	for _, l := range demoLights {
		d.lights[l.ID] = l
		d.lightOrder = append(d.lightOrder, l.ID)
	}
}

func (d *DemoBridge) delay() {
	if d.Latency > 0 {
		time.Sleep(d.Latency)
	}
}

// Host returns the demo bridge host
func (d *DemoBridge) Host() string {
	return "demo-bridge.local"
}

// BridgeID returns the demo bridge identifier
func (d *DemoBridge) BridgeID() string {
	return "demo-bridge-001"
}

// GetScenes returns the demo scenes
func (d *DemoBridge) GetScenes(ctx context.Context) ([]*models.Scene, error) {
	d.delay()
	d.mu.RLock()
	defer d.mu.RUnlock()

	scenes := make([]*models.Scene, len(d.scenes))
	copy(scenes, d.scenes)
	return scenes, nil
}

// GetSmartScenes returns the demo smart scenes
func (d *DemoBridge) GetSmartScenes(ctx context.Context) ([]*models.Scene, error) {
	d.delay()
	d.mu.RLock()
	defer d.mu.RUnlock()

	scenes := make([]*models.Scene, len(d.smartScenes))
	copy(scenes, d.smartScenes)
	return scenes, nil
}

// GetLights returns snapshots of the demo lights
func (d *DemoBridge) GetLights(ctx context.Context) ([]*models.Light, error) {
	d.delay()
	d.mu.RLock()
	defer d.mu.RUnlock()

	lights := make([]*models.Light, 0, len(d.lightOrder))
	for _, id := range d.lightOrder {
		snapshot := *d.lights[id]
		lights = append(lights, &snapshot)
	}
	return lights, nil
}

// ActivateScene pretends to recall a scene by turning every demo light on
func (d *DemoBridge) ActivateScene(ctx context.Context, sceneID string, kind models.SceneKind) error {
	d.delay()
	d.mu.Lock()
	defer d.mu.Unlock()

	found := false
	for _, s := range append(d.scenes, d.smartScenes...) {
		if s.ID == sceneID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("scene %s not found", sceneID)
	}

	for _, l := range d.lights {
		l.On = true
	}
	return nil
}

// SetLightOn turns a demo light on or off
func (d *DemoBridge) SetLightOn(ctx context.Context, lightID string, on bool) error {
	d.delay()
	d.mu.Lock()
	defer d.mu.Unlock()

	if light, ok := d.lights[lightID]; ok {
		light.On = on
	}
	return nil
}

// SetLightBrightness sets a demo light's brightness (0-100)
func (d *DemoBridge) SetLightBrightness(ctx context.Context, lightID string, brightness int) error {
	d.delay()
	d.mu.Lock()
	defer d.mu.Unlock()

	if light, ok := d.lights[lightID]; ok {
		if brightness < 0 {
			brightness = 0
		}
		if brightness > 100 {
			brightness = 100
		}
		light.Brightness = brightness
	}
	return nil
}
