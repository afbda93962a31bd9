package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/tui/messages"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

// SetupState represents the current setup state
type SetupState int

const (
	StateDiscovering SetupState = iota
	StateBridgeList
	StateManualEntry
	StatePairing
	StateSuccess
	StateError
)

// SetupModel is the setup screen model
type SetupModel struct {
	state    SetupState
	bridges  []api.DiscoveredBridge
	selected int
	input    textinput.Model
	spinner  spinner.Model
	err      error

	// Pairing state
	pairingHost     string
	pairingBridgeID string

	width  int
	height int
}

// NewSetupModel creates a new setup screen model
func NewSetupModel() SetupModel {
	ti := textinput.New()
	ti.Placeholder = "192.168.1.x"
	ti.CharLimit = 45

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return SetupModel{
		state:   StateDiscovering,
		input:   ti,
		spinner: sp,
	}
}

// Init initializes the setup screen
func (m SetupModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.discoverCmd(),
	)
}

// SetSize sets the terminal size
func (m *SetupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state != StateManualEntry {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		switch m.state {
		case StateBridgeList:
			switch msg.String() {
			case "up", "k":
				if m.selected > 0 {
					m.selected--
				}
			case "down", "j":
				if m.selected < len(m.bridges) {
					m.selected++
				}
			case "enter":
				if m.selected < len(m.bridges) {
					bridge := m.bridges[m.selected]
					m.state = StatePairing
					m.pairingHost = bridge.Host
					m.pairingBridgeID = bridge.BridgeID
					cmds = append(cmds, m.spinner.Tick, m.pairCmd())
				} else {
					m.state = StateManualEntry
					m.input.Focus()
					cmds = append(cmds, textinput.Blink)
				}
			case "m":
				m.state = StateManualEntry
				m.input.Focus()
				cmds = append(cmds, textinput.Blink)
			case "r":
				m.state = StateDiscovering
				cmds = append(cmds, m.spinner.Tick, m.discoverCmd())
			}

		case StateManualEntry:
			switch msg.String() {
			case "enter":
				host := strings.TrimSpace(m.input.Value())
				if host != "" {
					m.state = StatePairing
					m.pairingHost = host
					m.pairingBridgeID = ""
					cmds = append(cmds, m.spinner.Tick, m.pairCmd())
				}
			case "esc":
				m.state = StateBridgeList
				m.input.Blur()
			}
		}

	case bridgesDiscoveredMsg:
		m.bridges = msg.bridges
		m.state = StateBridgeList

	case pairingSuccessMsg:
		m.state = StateSuccess
		return m, func() tea.Msg {
			return messages.BridgeConnectedMsg{
				Bridge: msg.bridge,
				AppKey: msg.appKey,
			}
		}

	case pairingErrorMsg:
		m.state = StateError
		m.err = msg.err

	case discoveryErrorMsg:
		m.state = StateBridgeList
		m.err = msg.err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.state == StateManualEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the setup screen
func (m SetupModel) View() string {
	var b strings.Builder

	header := styles.StyleHeaderGradient.Render("  Hue Scenes Setup  ")
	b.WriteString(lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Top, header))
	b.WriteString("\n\n")

	var content string
	switch m.state {
	case StateDiscovering:
		content = fmt.Sprintf("%s Searching for Hue bridges...", m.spinner.View())
	case StateBridgeList:
		content = m.renderBridgeList()
	case StateManualEntry:
		content = m.renderManualEntry()
	case StatePairing:
		content = m.renderPairing()
	case StateSuccess:
		content = styles.StyleSuccess.Render("✓ Successfully paired with bridge!")
	case StateError:
		content = m.renderError()
	}

	b.WriteString(lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, content))

	return b.String()
}

func (m SetupModel) renderBridgeList() string {
	var b strings.Builder

	if len(m.bridges) == 0 {
		b.WriteString(styles.StyleTextMuted.Render("No bridges found.\n\n"))
	} else {
		b.WriteString("Found bridges:\n\n")
		for i, bridge := range m.bridges {
			cursor := "  "
			style := styles.StyleSceneItem
			if i == m.selected {
				cursor = "> "
				style = styles.StyleSceneItemSelected
			}
			name := bridge.Host
			if len(bridge.BridgeID) >= 8 {
				name = fmt.Sprintf("%s (%s)", bridge.Host, bridge.BridgeID[:8])
			}
			b.WriteString(cursor + style.Render(name) + "\n")
		}
	}

	cursor := "  "
	style := styles.StyleSceneItem
	if m.selected >= len(m.bridges) {
		cursor = "> "
		style = styles.StyleSceneItemSelected
	}
	b.WriteString("\n" + cursor + style.Render("Enter IP manually...") + "\n")

	b.WriteString("\n" + styles.StyleHelp.Render("↑/↓ navigate • enter select • r refresh • m manual"))

	return b.String()
}

func (m SetupModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString("Enter bridge IP address:\n\n")
	b.WriteString(styles.StyleInputFocused.Render(m.input.View()))
	b.WriteString("\n\n" + styles.StyleHelp.Render("enter confirm • esc back"))

	return b.String()
}

func (m SetupModel) renderPairing() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s Pairing with %s...\n\n", m.spinner.View(), m.pairingHost))
	b.WriteString(styles.StylePrimary.Render("Press the link button on your Hue bridge"))

	return b.String()
}

func (m SetupModel) renderError() string {
	if errors.Is(m.err, api.ErrLinkButtonNotPressed) {
		return styles.StyleError.Render("✗ The link button was not pressed in time.") +
			"\n\n" + styles.StyleTextMuted.Render("Restart setup and press the button on the bridge when prompted.")
	}
	return styles.StyleError.Render("✗ Error: " + m.err.Error())
}

// Commands

func (m SetupModel) discoverCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		bridges, err := api.DiscoverBridges(ctx, 5*time.Second)
		if err != nil {
			return discoveryErrorMsg{err: err}
		}
		return bridgesDiscoveredMsg{bridges: bridges}
	}
}

func (m SetupModel) pairCmd() tea.Cmd {
	host := m.pairingHost
	bridgeID := m.pairingBridgeID

	return func() tea.Msg {
		// Window covers all pairing attempts
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		appKey, err := api.CreateAppKey(ctx, host, "hue-scenes#terminal")
		if err != nil {
			return pairingErrorMsg{err: err}
		}

		// Discovery usually provides the bridge ID; manual entry does not
		if bridgeID == "" {
			bridgeID, err = api.GetBridgeID(ctx, host)
			if err != nil {
				return pairingErrorMsg{err: err}
			}
		}

		return pairingSuccessMsg{
			bridge: api.NewHueBridge(host, appKey, bridgeID),
			appKey: appKey,
		}
	}
}

// Messages

type bridgesDiscoveredMsg struct {
	bridges []api.DiscoveredBridge
}

type discoveryErrorMsg struct {
	err error
}

type pairingSuccessMsg struct {
	bridge *api.HueBridge
	appKey string
}

type pairingErrorMsg struct {
	err error
}
