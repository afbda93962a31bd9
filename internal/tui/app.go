package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/config"
	"github.com/angristan/hue-scenes/internal/tui/messages"
	"github.com/angristan/hue-scenes/internal/tui/screens"
)

// Screen represents the current screen state
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenScenes
)

// Model is the main application model
type Model struct {
	config *config.Config
	bridge api.BridgeClient

	screen Screen

	setupScreen  screens.SetupModel
	scenesScreen screens.ScenesModel

	width  int
	height int
}

// NewModel creates the application model. With a nil bridge the app starts
// in the setup flow.
func NewModel(cfg *config.Config, bridge api.BridgeClient) Model {
	m := Model{
		config: cfg,
		bridge: bridge,
		screen: ScreenSetup,
	}

	m.setupScreen = screens.NewSetupModel()
	if bridge != nil {
		m.screen = ScreenScenes
		m.scenesScreen = screens.NewScenesModel(bridge)
	}

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("Hue Scenes"),
	}

	switch m.screen {
	case ScreenSetup:
		cmds = append(cmds, m.setupScreen.Init())
	case ScreenScenes:
		cmds = append(cmds, m.scenesScreen.Init())
	}

	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setupScreen.SetSize(msg.Width, msg.Height)
		m.scenesScreen.SetSize(msg.Width, msg.Height)

	case messages.BridgeConnectedMsg:
		// Pairing succeeded: persist the bridge and enter the scene browser
		m.bridge = msg.Bridge
		m.config.AddBridge(config.BridgeConfig{
			Host:     msg.Bridge.Host(),
			AppKey:   msg.AppKey,
			BridgeID: msg.Bridge.BridgeID(),
		})
		m.config.LastBridgeID = msg.Bridge.BridgeID()
		if err := m.config.Save(); err != nil {
			log.Error("failed to save config", "err", err)
		}

		m.screen = ScreenScenes
		m.scenesScreen = screens.NewScenesModel(m.bridge)
		m.scenesScreen.SetSize(m.width, m.height)
		cmds = append(cmds, m.scenesScreen.Init())
		return m, tea.Batch(cmds...)
	}

	switch m.screen {
	case ScreenSetup:
		var cmd tea.Cmd
		m.setupScreen, cmd = m.setupScreen.Update(msg)
		cmds = append(cmds, cmd)

	case ScreenScenes:
		var cmd tea.Cmd
		m.scenesScreen, cmd = m.scenesScreen.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the current screen
func (m Model) View() string {
	switch m.screen {
	case ScreenSetup:
		return m.setupScreen.View()
	case ScreenScenes:
		return m.scenesScreen.View()
	default:
		return ""
	}
}
