package timeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuemix/internal/timeline"
)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestLoadTemplate(t *testing.T) {
	path := writeTemplate(t, `{
		"template_id": "TPL001",
		"template_name": "Trailer",
		"duration_ms": 12000,
		"markers": [
			{"time_ms": 100, "type": "sfx", "prompt_data": {"description": "hit"}},
			{"time_ms": 0, "type": "music", "prompt_data": {"positiveGlobalStyles": [], "negativeGlobalStyles": [], "sections": []}}
		]
	}`)

	tpl, warnings, err := timeline.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if tpl.TemplateID != "TPL001" || tpl.DurationMs != 12000 || len(tpl.Markers) != 2 {
		t.Fatalf("unexpected template %+v", tpl)
	}

	sorted := tpl.SortedMarkers()
	if sorted[0].Type != timeline.TypeMusic || sorted[1].Type != timeline.TypeSFX {
		t.Fatal("SortedMarkers not ordered by time")
	}
	// Original slice retains insertion order.
	if tpl.Markers[0].Type != timeline.TypeSFX {
		t.Fatal("Load must not reorder markers")
	}
}

func TestLoadTemplateMissingMarkers(t *testing.T) {
	path := writeTemplate(t, `{"template_id": "X", "duration_ms": 1000}`)
	_, _, err := timeline.Load(path)
	if !errors.Is(err, timeline.ErrNoMarkers) {
		t.Fatalf("expected ErrNoMarkers, got %v", err)
	}
}

func TestLoadTemplateClampsNegativeDuration(t *testing.T) {
	path := writeTemplate(t, `{"duration_ms": -5, "markers": []}`)
	tpl, warnings, err := timeline.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tpl.DurationMs != 0 {
		t.Fatalf("expected clamped duration, got %d", tpl.DurationMs)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if err := tpl.Validate(); err == nil {
		t.Fatal("zero duration template must fail assembly validation")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	marker, err := timeline.NewMarker(250, timeline.TypeSFX, "stinger")
	if err != nil {
		t.Fatalf("NewMarker: %v", err)
	}
	marker.AddVersion(timeline.Version{AssetFile: "SFX_00001_v1.mp3", Status: timeline.StatusGenerated})

	tpl := &timeline.Template{
		TemplateID:   "TPL002",
		TemplateName: "Spot",
		DurationMs:   5000,
		Markers:      []*timeline.Marker{marker},
	}

	path := filepath.Join(t.TempDir(), "nested", "out.json")
	if err := tpl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _, err := timeline.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Markers[0].CurrentVersion != 1 {
		t.Fatalf("version pointer lost: %+v", loaded.Markers[0])
	}
	if loaded.Markers[0].Name != "stinger" || loaded.Markers[0].TimeMs != 250 {
		t.Fatalf("marker fields lost: %+v", loaded.Markers[0])
	}
}
