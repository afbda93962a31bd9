package api

import (
	"context"

	"github.com/angristan/hue-scenes/internal/models"
)

// BridgeClient defines the interface for interacting with a Hue bridge.
// This abstraction allows for both real bridge connections and demo mode.
type BridgeClient interface {
	// Listing
	GetScenes(ctx context.Context) ([]*models.Scene, error)
	GetSmartScenes(ctx context.Context) ([]*models.Scene, error)
	GetLights(ctx context.Context) ([]*models.Light, error)

	// ActivateScene recalls a scene; the recall action depends on the kind
	ActivateScene(ctx context.Context, sceneID string, kind models.SceneKind) error

	// Light control
	SetLightOn(ctx context.Context, lightID string, on bool) error
	SetLightBrightness(ctx context.Context, lightID string, brightness int) error

	// Metadata
	Host() string
	BridgeID() string
}

// Compile-time checks
var (
	_ BridgeClient = (*HueBridge)(nil)
	_ BridgeClient = (*DemoBridge)(nil)
)
