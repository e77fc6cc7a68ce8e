package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Template is a video timeline plus the markers placed on it. DurationMs is
// authoritative for assembly length and is independent of any single
// marker's audio length.
type Template struct {
	TemplateID   string    `json:"template_id"`
	TemplateName string    `json:"template_name"`
	DurationMs   int64     `json:"duration_ms"`
	Markers      []*Marker `json:"markers"`
}

// ErrNoMarkers reports a template file without a markers field.
var ErrNoMarkers = errors.New("template has no markers field")

// Load reads and validates a template JSON file. Defensive corrections
// (negative times or duration clamped to zero) are reported as warnings
// rather than errors, matching how older exports are tolerated.
func Load(path string) (*Template, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read template: %w", err)
	}

	// Detect a missing markers field before decoding so the error is
	// clearer than a zero-value template.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("parse template: %w", err)
	}
	if _, ok := probe["markers"]; !ok {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNoMarkers)
	}

	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, nil, fmt.Errorf("parse template: %w", err)
	}

	var warnings []string
	if tpl.DurationMs < 0 {
		warnings = append(warnings, fmt.Sprintf("negative duration_ms %d clamped to 0", tpl.DurationMs))
		tpl.DurationMs = 0
	}
	if tpl.TemplateID == "" {
		tpl.TemplateID = "TEMPLATE"
	}
	if tpl.TemplateName == "" {
		tpl.TemplateName = "Untitled"
	}

	for i, m := range tpl.Markers {
		if err := m.Validate(); err != nil {
			return nil, warnings, fmt.Errorf("marker %d: %w", i, err)
		}
	}

	return &tpl, warnings, nil
}

// Save writes the template to disk, creating parent directories as needed.
func (t *Template) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

// Validate checks template-level invariants for assembly.
func (t *Template) Validate() error {
	if t.DurationMs <= 0 {
		return fmt.Errorf("template %s: duration_ms must be positive, got %d", t.TemplateID, t.DurationMs)
	}
	for i, m := range t.Markers {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("marker %d: %w", i, err)
		}
	}
	return nil
}

// SortedMarkers returns the markers ordered by ascending time, ties broken
// by original insertion order. The template itself is not reordered.
func (t *Template) SortedMarkers() []*Marker {
	out := append([]*Marker(nil), t.Markers...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeMs < out[j].TimeMs
	})
	return out
}

// MarkersOfType returns the markers of one type in insertion order.
func (t *Template) MarkersOfType(markerType MarkerType) []*Marker {
	var out []*Marker
	for _, m := range t.Markers {
		if m.Type == markerType {
			out = append(out, m)
		}
	}
	return out
}
