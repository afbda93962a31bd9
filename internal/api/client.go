package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/angristan/hue-scenes/internal/models"
)

// HueBridge represents a connection to a Philips Hue bridge
type HueBridge struct {
	host     string
	appKey   string
	bridgeID string
	client   *http.Client
}

// NewHueBridge creates a new bridge client
func NewHueBridge(host, appKey, bridgeID string) *HueBridge {
	return &HueBridge{
		host:     host,
		appKey:   appKey,
		bridgeID: bridgeID,
		client: &http.Client{
			Transport: &http.Transport{
				// Hue bridges serve self-signed certificates
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// Host returns the bridge host
func (b *HueBridge) Host() string {
	return b.host
}

// BridgeID returns the bridge identifier
func (b *HueBridge) BridgeID() string {
	return b.bridgeID
}

// doRequest performs an authenticated API request
func (b *HueBridge) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	url := fmt.Sprintf("https://%s%s", b.host, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("hue-application-key", b.appKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return b.client.Do(req)
}

// apiResponse wraps the V2 API response format
type apiResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Description string `json:"description"`
	} `json:"errors"`
}

// getResource fetches a V2 resource collection and unmarshals its data array
func (b *HueBridge) getResource(ctx context.Context, path string, out any) (err error) {
	resp, err := b.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	if len(apiResp.Errors) > 0 {
		return fmt.Errorf("API error: %s", apiResp.Errors[0].Description)
	}

	if err := json.Unmarshal(apiResp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", path, err)
	}

	return nil
}

// lightResource represents the V2 API light resource
type lightResource struct {
	ID       string `json:"id"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
	On struct {
		On bool `json:"on"`
	} `json:"on"`
	Dimming *struct {
		Brightness float64 `json:"brightness"`
	} `json:"dimming"`
}

func (r *lightResource) toModel() *models.Light {
	light := &models.Light{
		ID:   r.ID,
		Name: r.Metadata.Name,
		On:   r.On.On,
	}

	if r.Dimming != nil {
		light.Brightness = int(r.Dimming.Brightness)
	} else if r.On.On {
		// On with no dimming capability reads as full brightness
		light.Brightness = 100
	}

	return light
}

// GetLights retrieves all lights from the bridge
func (b *HueBridge) GetLights(ctx context.Context) ([]*models.Light, error) {
	var rawLights []lightResource
	if err := b.getResource(ctx, "/clip/v2/resource/light", &rawLights); err != nil {
		return nil, err
	}

	result := make([]*models.Light, len(rawLights))
	for i, raw := range rawLights {
		result[i] = raw.toModel()
	}

	return result, nil
}

// xyColor mirrors the V2 API color payload
type xyColor struct {
	XY struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"xy"`
}

// dimming mirrors the V2 API dimming payload (brightness is a percentage)
type dimming struct {
	Brightness float64 `json:"brightness"`
}

// briScale converts a V2 brightness percentage to the 254-step scale used
// by the color pipeline, defaulting to full brightness when absent.
func briScale(d *dimming) float64 {
	if d == nil {
		return 254
	}
	return d.Brightness / 100.0 * 254
}

// sceneResource represents the V2 API scene resource
type sceneResource struct {
	ID       string `json:"id"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Palette *struct {
		Color []struct {
			Color   xyColor  `json:"color"`
			Dimming *dimming `json:"dimming"`
		} `json:"color"`
		ColorTemperature []struct {
			ColorTemperature struct {
				Mirek float64 `json:"mirek"`
			} `json:"color_temperature"`
			Dimming *dimming `json:"dimming"`
		} `json:"color_temperature"`
	} `json:"palette"`
	Actions []struct {
		Action struct {
			Color            *xyColor `json:"color"`
			ColorTemperature *struct {
				Mirek *float64 `json:"mirek"`
			} `json:"color_temperature"`
			Dimming *dimming `json:"dimming"`
		} `json:"action"`
	} `json:"actions"`
}

// toPalette flattens the raw scene color data for the preview pipeline
func (r *sceneResource) toPalette() models.ScenePalette {
	var p models.ScenePalette

	if r.Palette != nil {
		for _, c := range r.Palette.Color {
			p.Colors = append(p.Colors, models.XYBri{
				X:   c.Color.XY.X,
				Y:   c.Color.XY.Y,
				Bri: briScale(c.Dimming),
			})
		}
		for _, ct := range r.Palette.ColorTemperature {
			p.Temperatures = append(p.Temperatures, ct.ColorTemperature.Mirek)
		}
	}

	for _, a := range r.Actions {
		action := models.PaletteAction{}
		if a.Action.Color != nil {
			action.Color = &models.XYBri{
				X:   a.Action.Color.XY.X,
				Y:   a.Action.Color.XY.Y,
				Bri: briScale(a.Action.Dimming),
			}
		}
		if a.Action.ColorTemperature != nil && a.Action.ColorTemperature.Mirek != nil {
			action.Mirek = a.Action.ColorTemperature.Mirek
		}
		p.Actions = append(p.Actions, action)
	}

	return p
}

func (r *sceneResource) toModel() *models.Scene {
	return &models.Scene{
		ID:     r.ID,
		Name:   r.Metadata.Name,
		Kind:   models.KindScene,
		Colors: r.toPalette().PreviewColors(),
	}
}

// GetScenes retrieves all regular scenes from the bridge, with preview
// colors derived from their palettes and actions.
func (b *HueBridge) GetScenes(ctx context.Context) ([]*models.Scene, error) {
	var rawScenes []sceneResource
	if err := b.getResource(ctx, "/clip/v2/resource/scene", &rawScenes); err != nil {
		return nil, err
	}

	result := make([]*models.Scene, len(rawScenes))
	for i, raw := range rawScenes {
		result[i] = raw.toModel()
	}

	return result, nil
}

// smartSceneResource represents the V2 API smart scene resource
type smartSceneResource struct {
	ID       string `json:"id"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
}

// GetSmartScenes retrieves all smart scenes. Smart scenes have no static
// color recipe, so they carry the fixed placeholder preview.
func (b *HueBridge) GetSmartScenes(ctx context.Context) ([]*models.Scene, error) {
	var rawScenes []smartSceneResource
	if err := b.getResource(ctx, "/clip/v2/resource/smart_scene", &rawScenes); err != nil {
		return nil, err
	}

	result := make([]*models.Scene, len(rawScenes))
	for i, raw := range rawScenes {
		result[i] = &models.Scene{
			ID:     raw.ID,
			Name:   raw.Metadata.Name,
			Kind:   models.KindSmartScene,
			Colors: models.SmartScenePlaceholder,
		}
	}

	return result, nil
}

// ActivateScene recalls a scene. Regular scenes use the "active" recall
// action; smart scenes use "activate" on their own resource path. Unknown
// kinds fall back to the regular scene action.
func (b *HueBridge) ActivateScene(ctx context.Context, sceneID string, kind models.SceneKind) error {
	path := fmt.Sprintf("/clip/v2/resource/scene/%s", sceneID)
	body := `{"recall":{"action":"active"}}`

	if kind == models.KindSmartScene {
		path = fmt.Sprintf("/clip/v2/resource/smart_scene/%s", sceneID)
		body = `{"recall":{"action":"activate"}}`
	}

	return b.put(ctx, path, body)
}

// SetLightOn turns a light on or off
func (b *HueBridge) SetLightOn(ctx context.Context, lightID string, on bool) error {
	body := fmt.Sprintf(`{"on":{"on":%t}}`, on)
	return b.put(ctx, fmt.Sprintf("/clip/v2/resource/light/%s", lightID), body)
}

// SetLightBrightness sets a light's brightness (0-100)
func (b *HueBridge) SetLightBrightness(ctx context.Context, lightID string, brightness int) error {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 100 {
		brightness = 100
	}
	body := fmt.Sprintf(`{"dimming":{"brightness":%d}}`, brightness)
	return b.put(ctx, fmt.Sprintf("/clip/v2/resource/light/%s", lightID), body)
}

// put sends a PUT request and fails on non-2xx responses with the body as detail
func (b *HueBridge) put(ctx context.Context, path, bodyStr string) (err error) {
	resp, err := b.doRequest(ctx, "PUT", path, strings.NewReader(bodyStr))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		detail := strings.TrimSpace(string(bodyBytes))
		if detail == "" {
			detail = resp.Status
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, detail)
	}

	return nil
}
