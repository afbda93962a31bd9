package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angristan/hue-scenes/internal/models"
)

// newTestBridge wires a HueBridge at a TLS test server
func newTestBridge(t *testing.T, handler http.HandlerFunc) *HueBridge {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "https://")
	return NewHueBridge(host, "test-app-key", "test-bridge")
}

func TestGetScenesDerivesPreviewColors(t *testing.T) {
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clip/v2/resource/scene" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("hue-application-key"); got != "test-app-key" {
			t.Errorf("app key header = %q", got)
		}

		io.WriteString(w, `{"data":[{
			"id":"scene-1",
			"metadata":{"name":"Sunset"},
			"palette":{
				"color":[{"color":{"xy":{"x":0.5862,"y":0.3575}},"dimming":{"brightness":75}}],
				"color_temperature":[{"color_temperature":{"mirek":450},"dimming":{"brightness":50}}]
			},
			"actions":[]
		}]}`)
	})

	scenes, err := bridge.GetScenes(context.Background())
	if err != nil {
		t.Fatalf("GetScenes() error: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1", len(scenes))
	}

	scene := scenes[0]
	if scene.Name != "Sunset" || scene.Kind != models.KindScene {
		t.Errorf("scene = %+v", scene)
	}

	want := []string{
		models.XYBriToHex(0.5862, 0.3575, 75.0/100*254),
		models.MirekToHex(450),
	}
	if len(scene.Colors) != len(want) {
		t.Fatalf("colors = %v, want %v", scene.Colors, want)
	}
	for i := range want {
		if scene.Colors[i] != want[i] {
			t.Errorf("colors[%d] = %s, want %s", i, scene.Colors[i], want[i])
		}
	}
}

func TestGetScenesPaletteLessFallback(t *testing.T) {
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id":"scene-1","metadata":{"name":"Bare"}}]}`)
	})

	scenes, err := bridge.GetScenes(context.Background())
	if err != nil {
		t.Fatalf("GetScenes() error: %v", err)
	}
	if len(scenes) != 1 || len(scenes[0].Colors) != 1 || scenes[0].Colors[0] != models.FallbackColor {
		t.Errorf("scenes = %+v, want single fallback swatch", scenes[0])
	}
}

func TestGetScenesSurfacesAPIError(t *testing.T) {
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[],"errors":[{"description":"unauthorized user"}]}`)
	})

	_, err := bridge.GetScenes(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unauthorized user") {
		t.Errorf("GetScenes() error = %v, want API error detail", err)
	}
}

func TestGetSmartScenesUsesPlaceholder(t *testing.T) {
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clip/v2/resource/smart_scene" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"data":[{"id":"smart-1","metadata":{"name":"Natural Light"}}]}`)
	})

	scenes, err := bridge.GetSmartScenes(context.Background())
	if err != nil {
		t.Fatalf("GetSmartScenes() error: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("got %d smart scenes, want 1", len(scenes))
	}
	if scenes[0].Kind != models.KindSmartScene {
		t.Errorf("kind = %s, want smart_scene", scenes[0].Kind)
	}
	if len(scenes[0].Colors) != len(models.SmartScenePlaceholder) {
		t.Errorf("colors = %v, want placeholder", scenes[0].Colors)
	}
}

func TestGetLightsDefaultsBrightness(t *testing.T) {
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[
			{"id":"l1","metadata":{"name":"Desk"},"on":{"on":true},"dimming":{"brightness":42}},
			{"id":"l2","metadata":{"name":"Plug"},"on":{"on":true}},
			{"id":"l3","metadata":{"name":"Strip"},"on":{"on":false}}
		]}`)
	})

	lights, err := bridge.GetLights(context.Background())
	if err != nil {
		t.Fatalf("GetLights() error: %v", err)
	}
	if len(lights) != 3 {
		t.Fatalf("got %d lights, want 3", len(lights))
	}
	if lights[0].Brightness != 42 {
		t.Errorf("dimmable light brightness = %d, want 42", lights[0].Brightness)
	}
	if lights[1].Brightness != 100 {
		t.Errorf("non-dimmable on light brightness = %d, want default 100", lights[1].Brightness)
	}
	if lights[2].On || lights[2].Brightness != 0 {
		t.Errorf("off light = %+v", lights[2])
	}
}

func TestActivateSceneRecallActions(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.SceneKind
		wantPath string
		wantBody string
	}{
		{"regular scene", models.KindScene, "/clip/v2/resource/scene/abc", `{"recall":{"action":"active"}}`},
		{"smart scene", models.KindSmartScene, "/clip/v2/resource/smart_scene/abc", `{"recall":{"action":"activate"}}`},
		{"unknown kind defaults to scene", models.SceneKind("weird"), "/clip/v2/resource/scene/abc", `{"recall":{"action":"active"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotBody string
			bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				body, _ := io.ReadAll(r.Body)
				gotBody = string(body)
			})

			if err := bridge.ActivateScene(context.Background(), "abc", tt.kind); err != nil {
				t.Fatalf("ActivateScene() error: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %s, want %s", gotPath, tt.wantPath)
			}
			if gotBody != tt.wantBody {
				t.Errorf("body = %s, want %s", gotBody, tt.wantBody)
			}
		})
	}
}

func TestActivateSceneFailsWithBodyDetail(t *testing.T) {
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"errors":[{"description":"scene gone"}]}`)
	})

	err := bridge.ActivateScene(context.Background(), "missing", models.KindScene)
	if err == nil {
		t.Fatal("ActivateScene() succeeded, want error on 404")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "scene gone") {
		t.Errorf("error = %v, want status and body detail", err)
	}
}

func TestSetLightBrightnessClamps(t *testing.T) {
	var gotBody struct {
		Dimming struct {
			Brightness int `json:"brightness"`
		} `json:"dimming"`
	}
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad body: %v", err)
		}
	})

	if err := bridge.SetLightBrightness(context.Background(), "l1", 250); err != nil {
		t.Fatalf("SetLightBrightness() error: %v", err)
	}
	if gotBody.Dimming.Brightness != 100 {
		t.Errorf("brightness = %d, want clamped to 100", gotBody.Dimming.Brightness)
	}

	if err := bridge.SetLightBrightness(context.Background(), "l1", -5); err != nil {
		t.Fatalf("SetLightBrightness() error: %v", err)
	}
	if gotBody.Dimming.Brightness != 0 {
		t.Errorf("brightness = %d, want clamped to 0", gotBody.Dimming.Brightness)
	}
}

func TestSetLightOnBody(t *testing.T) {
	var gotBody string
	bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	})

	if err := bridge.SetLightOn(context.Background(), "l1", false); err != nil {
		t.Fatalf("SetLightOn() error: %v", err)
	}
	if gotBody != `{"on":{"on":false}}` {
		t.Errorf("body = %s", gotBody)
	}
}
