package messages

import (
	"github.com/angristan/hue-scenes/internal/api"
)

// BridgeConnectedMsg indicates successful bridge pairing during setup
type BridgeConnectedMsg struct {
	Bridge *api.HueBridge
	AppKey string
}
