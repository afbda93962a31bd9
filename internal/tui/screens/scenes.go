package screens

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/models"
	"github.com/angristan/hue-scenes/internal/tui/components"
	"github.com/angristan/hue-scenes/internal/tui/styles"
)

// Mode is the current input mode. The modes are mutually exclusive by
// construction; entering one leaves the others.
type Mode int

const (
	// ModeNormal: arrows move the selection, enter activates
	ModeNormal Mode = iota
	// ModeSet: every selection move also activates the selected scene
	ModeSet
	// ModeBrightness: arrows adjust global brightness instead of selection
	ModeBrightness
)

// settleDelay gives the bridge time to apply a recall before the light
// roster is reloaded.
const settleDelay = 400 * time.Millisecond

// statusTimeout clears transient status messages
const statusTimeout = 2 * time.Second

// ScenesModel is the scene browser screen model
type ScenesModel struct {
	bridge api.BridgeClient

	scenes   []*models.Scene
	selected int
	mode     Mode

	// Light roster and state derived from it
	lights     []*models.Light
	anyOn      bool
	brightness int

	// Transient status line; seq invalidates stale clear ticks
	status    string
	statusErr bool
	statusSeq int

	loading bool
	spinner spinner.Model

	// Terminal error state: once set the screen no longer reacts to
	// anything but quit keys
	err error

	width  int
	height int
}

// Internal messages

type loadedMsg struct {
	scenes []*models.Scene
	lights []*models.Light
}

type loadFailedMsg struct {
	err error
}

// lightsReloadedMsg carries a fresh roster after an action settled
type lightsReloadedMsg struct {
	lights []*models.Light
	note   string
}

type actionFailedMsg struct {
	err error
}

type statusClearMsg struct {
	seq int
}

// NewScenesModel creates the scene browser for the given bridge
func NewScenesModel(bridge api.BridgeClient) ScenesModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return ScenesModel{
		bridge:  bridge,
		mode:    ModeNormal,
		loading: true,
		spinner: sp,
	}
}

// Init starts the spinner and the initial load
func (m ScenesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// SetSize sets the terminal size
func (m *ScenesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages
func (m ScenesModel) Update(msg tea.Msg) (ScenesModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()

		// Quit works from any state, including the terminal error state
		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

		if m.err != nil || m.loading {
			return m, nil
		}

		switch key {
		case "s", "S":
			if m.mode == ModeSet {
				m.mode = ModeNormal
			} else {
				m.mode = ModeSet
			}

		case "b", "B":
			if m.mode == ModeBrightness {
				m.mode = ModeNormal
			} else {
				m.mode = ModeBrightness
			}

		case "up", "k":
			if m.mode == ModeBrightness {
				cmds = append(cmds, m.adjustBrightness(1))
			} else {
				cmds = append(cmds, m.moveSelection(-1))
			}

		case "down", "j":
			if m.mode == ModeBrightness {
				cmds = append(cmds, m.adjustBrightness(-1))
			} else {
				cmds = append(cmds, m.moveSelection(1))
			}

		case "enter":
			if scene := m.SelectedScene(); scene != nil {
				cmds = append(cmds, m.activateCmd(scene))
			}

		case "o", "O":
			cmds = append(cmds, m.toggleAllCmd())
		}

	case loadedMsg:
		m.loading = false
		m.scenes = msg.scenes
		m.selected = 0
		m.applyLights(msg.lights)

	case loadFailedMsg:
		m.loading = false
		m.err = msg.err
		log.Error("initial load failed", "err", msg.err)

	case lightsReloadedMsg:
		m.applyLights(msg.lights)
		if msg.note != "" {
			cmds = append(cmds, m.setStatus(msg.note, false))
		}

	case actionFailedMsg:
		log.Warn("bridge action failed", "err", msg.err)
		cmds = append(cmds, m.setStatus(msg.err.Error(), true))

	case statusClearMsg:
		// A newer status invalidates pending clears
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// SelectedScene returns the scene under the cursor, or nil for an empty list
func (m ScenesModel) SelectedScene() *models.Scene {
	if len(m.scenes) == 0 || m.selected < 0 || m.selected >= len(m.scenes) {
		return nil
	}
	return m.scenes[m.selected]
}

// applyLights replaces the roster and recomputes the derived summary
func (m *ScenesModel) applyLights(lights []*models.Light) {
	m.lights = lights
	m.anyOn = models.AnyOn(lights)
	m.brightness = models.AverageBrightness(lights)
}

// moveSelection moves the cursor by delta, clamped to the scene list.
// In set mode a move that lands on a new scene also activates it.
func (m *ScenesModel) moveSelection(delta int) tea.Cmd {
	if len(m.scenes) == 0 {
		return nil
	}

	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.scenes) {
		next = len(m.scenes) - 1
	}

	moved := next != m.selected
	m.selected = next

	if moved && m.mode == ModeSet {
		return m.activateCmd(m.scenes[m.selected])
	}
	return nil
}

// adjustBrightness shifts the global brightness target and pushes it to
// every light. The displayed value updates immediately; call results only
// surface on failure.
func (m *ScenesModel) adjustBrightness(delta int) tea.Cmd {
	target := m.brightness + delta
	if target < 1 {
		target = 1
	}
	if target > 100 {
		target = 100
	}
	m.brightness = target

	bridge := m.bridge
	lights := m.lights
	return func() tea.Msg {
		if err := forEachLight(lights, func(ctx context.Context, l *models.Light) error {
			return bridge.SetLightBrightness(ctx, l.ID, target)
		}); err != nil {
			return actionFailedMsg{err}
		}
		return nil
	}
}

// toggleAllCmd flips every light to the negation of "any on", then reloads
// the roster once the calls complete.
func (m *ScenesModel) toggleAllCmd() tea.Cmd {
	bridge := m.bridge
	lights := m.lights
	target := !m.anyOn

	return func() tea.Msg {
		if err := forEachLight(lights, func(ctx context.Context, l *models.Light) error {
			return bridge.SetLightOn(ctx, l.ID, target)
		}); err != nil {
			return actionFailedMsg{err}
		}

		fresh, err := bridge.GetLights(context.Background())
		if err != nil {
			return actionFailedMsg{err}
		}

		note := "All lights off"
		if target {
			note = "All lights on"
		}
		return lightsReloadedMsg{lights: fresh, note: note}
	}
}

// activateCmd recalls a scene, waits for the bridge to settle and reloads
// the light roster. Failures leave selection and mode untouched.
func (m *ScenesModel) activateCmd(scene *models.Scene) tea.Cmd {
	bridge := m.bridge

	return func() tea.Msg {
		ctx := context.Background()

		if err := bridge.ActivateScene(ctx, scene.ID, scene.Kind); err != nil {
			return actionFailedMsg{err}
		}

		time.Sleep(settleDelay)

		lights, err := bridge.GetLights(ctx)
		if err != nil {
			return actionFailedMsg{err}
		}
		return lightsReloadedMsg{
			lights: lights,
			note:   fmt.Sprintf("Activated %s", scene.Name),
		}
	}
}

// forEachLight issues one call per light concurrently and returns the
// first error encountered, if any.
func forEachLight(lights []*models.Light, fn func(context.Context, *models.Light) error) error {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, len(lights))

	for i, l := range lights {
		wg.Add(1)
		go func(i int, l *models.Light) {
			defer wg.Done()
			errs[i] = fn(ctx, l)
		}(i, l)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// loadCmd fetches scenes, smart scenes and lights concurrently. A smart
// scene failure alone degrades to an empty list; any other failure is
// terminal for the screen.
func (m ScenesModel) loadCmd() tea.Cmd {
	bridge := m.bridge

	return func() tea.Msg {
		ctx := context.Background()

		var (
			scenes, smart       []*models.Scene
			lights              []*models.Light
			scenesErr, smartErr error
			lightsErr           error
		)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			scenes, scenesErr = bridge.GetScenes(ctx)
		}()
		go func() {
			defer wg.Done()
			smart, smartErr = bridge.GetSmartScenes(ctx)
		}()
		go func() {
			defer wg.Done()
			lights, lightsErr = bridge.GetLights(ctx)
		}()
		wg.Wait()

		if scenesErr != nil {
			return loadFailedMsg{err: scenesErr}
		}
		if lightsErr != nil {
			return loadFailedMsg{err: lightsErr}
		}
		if smartErr != nil {
			// Older bridges have no smart scene endpoint
			log.Warn("smart scene fetch failed, continuing without", "err", smartErr)
			smart = nil
		}

		all := append(scenes, smart...)
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].Name < all[j].Name
		})

		return loadedMsg{scenes: all, lights: lights}
	}
}

// setStatus replaces the status line and schedules its clear
func (m *ScenesModel) setStatus(status string, isErr bool) tea.Cmd {
	m.status = status
	m.statusErr = isErr
	m.statusSeq++

	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// View renders the scene browser
func (m ScenesModel) View() string {
	header := components.RenderHeader(m.width, m.bridge.Host())

	if m.err != nil {
		box := styles.StyleErrorBox.Render(
			styles.StyleError.Render("Failed to load from the bridge") + "\n\n" +
				m.err.Error() + "\n\n" +
				styles.StyleTextMuted.Render("Check HUE_BRIDGE_IP / HUE_APP_KEY or the config file, then restart.\nPress q to quit."))
		return header + "\n" + lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
	}

	if m.loading {
		loading := fmt.Sprintf("%s Loading scenes...", m.spinner.View())
		return header + "\n" + lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, loading)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	if len(m.scenes) == 0 {
		b.WriteString(styles.StyleTextMuted.Render("  No scenes on this bridge"))
		b.WriteString("\n")
	}

	for i, scene := range m.scenes {
		cursor := "  "
		style := styles.StyleSceneItem
		if i == m.selected {
			cursor = "> "
			style = styles.StyleSceneItemSelected
		}

		line := cursor + components.RenderSwatches(scene.Colors) + " " + style.Render(scene.Name)
		if scene.IsSmart() {
			line += " " + styles.StyleSceneKind.Render("smart")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m ScenesModel) renderFooter() string {
	var b strings.Builder

	modeTag := func(label string, active bool) string {
		if active {
			return styles.StyleModeActive.Render(label)
		}
		return styles.StyleModeInactive.Render(label)
	}

	power := "off"
	if m.anyOn {
		power = "on"
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %3d%%  lights %s\n",
		modeTag("SET", m.mode == ModeSet),
		modeTag("BRI", m.mode == ModeBrightness),
		components.RenderBrightnessBar(m.brightness, m.anyOn, 20),
		m.brightness,
		power,
	))

	if m.status != "" {
		style := styles.StyleStatus
		if m.statusErr {
			style = styles.StyleStatusError
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(styles.StyleHelp.Render(
		"↑/↓ navigate • enter activate • s set mode • b brightness • o toggle all • q quit"))

	return b.String()
}
