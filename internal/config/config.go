package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// BridgeConfig stores connection details for a Hue bridge
type BridgeConfig struct {
	// IP address or hostname of the bridge
	Host string `json:"host"`
	// Application key (username) for authentication
	AppKey string `json:"app_key"`
	// Unique bridge identifier
	BridgeID string `json:"bridge_id"`
}

// Config stores all application configuration
type Config struct {
	// List of configured bridges
	Bridges []BridgeConfig `json:"bridges"`
	// ID of the last used bridge
	LastBridgeID string `json:"last_bridge_id,omitempty"`
}

// ErrNotConfigured means no bridge address and app key could be resolved
// from the environment or the config file.
var ErrNotConfigured = errors.New("no bridge configured; set HUE_BRIDGE_IP and HUE_APP_KEY or run setup")

// configDir returns the configuration directory path
func configDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hue-scenes"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hue-scenes"), nil
}

// configPath returns the full path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk. A .env file in the working
// directory is loaded first so HUE_BRIDGE_IP / HUE_APP_KEY overrides are
// visible to Resolve.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to disk, creating the directory when needed
func (c *Config) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AddBridge adds a bridge configuration, replacing any existing entry with
// the same bridge ID.
func (c *Config) AddBridge(bridge BridgeConfig) {
	for i, b := range c.Bridges {
		if b.BridgeID == bridge.BridgeID {
			c.Bridges[i] = bridge
			return
		}
	}

	c.Bridges = append(c.Bridges, bridge)
}

// HasBridges returns true if at least one bridge is configured
func (c *Config) HasBridges() bool {
	return len(c.Bridges) > 0
}

// Resolve determines the bridge to connect to. Environment variables take
// precedence over the config file; without either, ErrNotConfigured.
func (c *Config) Resolve() (*BridgeConfig, error) {
	host := os.Getenv("HUE_BRIDGE_IP")
	appKey := os.Getenv("HUE_APP_KEY")
	if host != "" && appKey != "" {
		return &BridgeConfig{Host: host, AppKey: appKey}, nil
	}

	if len(c.Bridges) == 0 {
		return nil, ErrNotConfigured
	}

	if c.LastBridgeID != "" {
		for i := range c.Bridges {
			if c.Bridges[i].BridgeID == c.LastBridgeID {
				return &c.Bridges[i], nil
			}
		}
	}

	return &c.Bridges[0], nil
}
