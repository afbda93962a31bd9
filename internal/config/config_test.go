package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestConfigLoadSave(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	cfg := &Config{
		Bridges: []BridgeConfig{
			{
				Host:     "192.168.1.100",
				AppKey:   "test-app-key",
				BridgeID: "001788FFFE123456",
			},
		},
		LastBridgeID: "001788FFFE123456",
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	configPath := filepath.Join(tmpDir, "hue-scenes", "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(loaded.Bridges) != 1 {
		t.Fatalf("Expected 1 bridge, got %d", len(loaded.Bridges))
	}
	if loaded.Bridges[0].Host != "192.168.1.100" {
		t.Errorf("Expected host 192.168.1.100, got %s", loaded.Bridges[0].Host)
	}
	if loaded.LastBridgeID != "001788FFFE123456" {
		t.Errorf("Expected LastBridgeID 001788FFFE123456, got %s", loaded.LastBridgeID)
	}
}

func TestConfigLoadMissingFile(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no file should return empty config, got error: %v", err)
	}
	if cfg.HasBridges() {
		t.Error("Empty config should have no bridges")
	}
}

func TestConfigAddBridgeReplacesByID(t *testing.T) {
	cfg := &Config{}

	cfg.AddBridge(BridgeConfig{Host: "192.168.1.100", AppKey: "key1", BridgeID: "bridge1"})
	cfg.AddBridge(BridgeConfig{Host: "192.168.1.101", AppKey: "key2", BridgeID: "bridge2"})

	if len(cfg.Bridges) != 2 {
		t.Fatalf("Expected 2 bridges, got %d", len(cfg.Bridges))
	}

	// Same ID replaces in place rather than appending
	cfg.AddBridge(BridgeConfig{Host: "10.0.0.5", AppKey: "key1-new", BridgeID: "bridge1"})

	if len(cfg.Bridges) != 2 {
		t.Fatalf("Expected 2 bridges after replace, got %d", len(cfg.Bridges))
	}
	if cfg.Bridges[0].Host != "10.0.0.5" || cfg.Bridges[0].AppKey != "key1-new" {
		t.Errorf("Bridge was not replaced: %+v", cfg.Bridges[0])
	}
}

func TestResolvePrefersEnvironment(t *testing.T) {
	t.Setenv("HUE_BRIDGE_IP", "10.1.2.3")
	t.Setenv("HUE_APP_KEY", "env-key")

	cfg := &Config{
		Bridges: []BridgeConfig{{Host: "192.168.1.100", AppKey: "file-key", BridgeID: "b1"}},
	}

	bridge, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if bridge.Host != "10.1.2.3" || bridge.AppKey != "env-key" {
		t.Errorf("Resolve() = %+v, want env values", bridge)
	}
}

func TestResolveFallsBackToFile(t *testing.T) {
	t.Setenv("HUE_BRIDGE_IP", "")
	t.Setenv("HUE_APP_KEY", "")

	cfg := &Config{
		Bridges: []BridgeConfig{
			{Host: "192.168.1.100", AppKey: "key1", BridgeID: "b1"},
			{Host: "192.168.1.101", AppKey: "key2", BridgeID: "b2"},
		},
		LastBridgeID: "b2",
	}

	bridge, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if bridge.BridgeID != "b2" {
		t.Errorf("Resolve() = %+v, want last-used bridge b2", bridge)
	}
}

func TestResolveUnconfigured(t *testing.T) {
	t.Setenv("HUE_BRIDGE_IP", "")
	t.Setenv("HUE_APP_KEY", "")

	cfg := &Config{}
	if _, err := cfg.Resolve(); err != ErrNotConfigured {
		t.Errorf("Resolve() error = %v, want ErrNotConfigured", err)
	}
}
