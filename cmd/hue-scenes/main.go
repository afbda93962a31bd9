package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/config"
	"github.com/angristan/hue-scenes/internal/logging"
	"github.com/angristan/hue-scenes/internal/tui"
)

func main() {
	setupMode := flag.Bool("setup", false, "discover and pair with a bridge")
	demoMode := flag.Bool("demo", false, "run against an in-memory demo bridge")
	flag.Parse()

	if os.Getenv("HUE_DEMO") != "" {
		*demoMode = true
	}

	if err := logging.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var bridge api.BridgeClient
	switch {
	case *demoMode:
		bridge = api.NewDemoBridge()
	case *setupMode:
		// Setup screen builds the bridge after pairing
	default:
		bc, err := cfg.Resolve()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\nRun with --setup to pair with a bridge.\n", err)
			os.Exit(1)
		}
		bridge = api.NewHueBridge(bc.Host, bc.AppKey, bc.BridgeID)
	}

	log.Info("starting", "demo", *demoMode, "setup", *setupMode)

	model := tui.NewModel(cfg, bridge)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
