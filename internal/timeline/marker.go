package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MarkerType identifies the audio category of a marker.
type MarkerType string

const (
	TypeSFX   MarkerType = "sfx"
	TypeVoice MarkerType = "voice"
	TypeMusic MarkerType = "music"
)

// ErrInvalidMarkerType reports a marker type outside the known set.
var ErrInvalidMarkerType = errors.New("invalid marker type")

// ErrUnknownVersion reports a version pointer that matches no history entry.
var ErrUnknownVersion = errors.New("unknown version")

var allTypes = []MarkerType{TypeSFX, TypeVoice, TypeMusic}

// ParseMarkerType validates a wire string against the known marker types.
func ParseMarkerType(value string) (MarkerType, error) {
	candidate := MarkerType(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range allTypes {
		if candidate == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMarkerType, value)
}

const (
	// DefaultFadeMs is the fade-in/fade-out applied to music markers whose
	// assembly config does not specify one.
	DefaultFadeMs = 50
)

// AssemblyConfig controls how a music marker's asset is cut into the
// timeline. It is ignored for sfx and voice markers.
type AssemblyConfig struct {
	StartOffsetMs    int64
	FadeInMs         int64
	FadeOutMs        int64
	TargetDurationMs *int64
}

// Clamped returns a copy with negative numeric fields corrected to zero.
func (c AssemblyConfig) Clamped() AssemblyConfig {
	out := c
	if out.StartOffsetMs < 0 {
		out.StartOffsetMs = 0
	}
	if out.FadeInMs < 0 {
		out.FadeInMs = 0
	}
	if out.FadeOutMs < 0 {
		out.FadeOutMs = 0
	}
	if out.TargetDurationMs != nil && *out.TargetDurationMs < 0 {
		zero := int64(0)
		out.TargetDurationMs = &zero
	}
	return out
}

// Marker is a timed audio cue on the template timeline.
type Marker struct {
	TimeMs int64
	Type   MarkerType
	Name   string
	Prompt PromptData
	// Assembly holds the music cut/fade settings. The wire-format default
	// depends on whether the field was present at all; see UnmarshalJSON.
	Assembly AssemblyConfig
	// CurrentVersion references a Version by its Version number, not by
	// slice position. Zero means no version exists yet.
	CurrentVersion int
	Versions       []Version
}

// NewMarker creates a marker of the given type with default prompt data and
// an empty version history.
func NewMarker(timeMs int64, markerType MarkerType, name string) (*Marker, error) {
	prompt, err := DefaultPrompt(markerType)
	if err != nil {
		return nil, err
	}
	if timeMs < 0 {
		timeMs = 0
	}
	return &Marker{
		TimeMs: timeMs,
		Type:   markerType,
		Name:   name,
		Prompt: prompt,
		Assembly: AssemblyConfig{
			FadeInMs:  DefaultFadeMs,
			FadeOutMs: DefaultFadeMs,
		},
	}, nil
}

// SetType switches the marker type and reconstructs the prompt payload from
// scratch. Prompt data is never coerced between shapes.
func (m *Marker) SetType(markerType MarkerType) error {
	prompt, err := DefaultPrompt(markerType)
	if err != nil {
		return err
	}
	m.Type = markerType
	m.Prompt = prompt
	return nil
}

// AddVersion appends a generation attempt to the history and points the
// marker at it. History is append-only. Returns the assigned version number.
func (m *Marker) AddVersion(v Version) int {
	next := 1
	for _, existing := range m.Versions {
		if existing.Version >= next {
			next = existing.Version + 1
		}
	}
	v.Version = next
	m.Versions = append(m.Versions, v)
	m.CurrentVersion = next
	return next
}

// Rollback moves the current-version pointer to an existing history entry.
func (m *Marker) Rollback(version int) error {
	for _, v := range m.Versions {
		if v.Version == version {
			m.CurrentVersion = version
			return nil
		}
	}
	return fmt.Errorf("%w: marker %q has no version %d", ErrUnknownVersion, m.Label(), version)
}

// CurrentVersionRecord returns the active version, or nil when the marker
// has no usable version yet.
func (m *Marker) CurrentVersionRecord() *Version {
	if m.CurrentVersion == 0 {
		return nil
	}
	for i := range m.Versions {
		if m.Versions[i].Version == m.CurrentVersion {
			return &m.Versions[i]
		}
	}
	return nil
}

// Label returns the marker's display name, falling back to its type.
func (m *Marker) Label() string {
	if strings.TrimSpace(m.Name) != "" {
		return m.Name
	}
	return string(m.Type)
}

// Validate checks the marker's structural invariants.
func (m *Marker) Validate() error {
	if _, err := ParseMarkerType(string(m.Type)); err != nil {
		return err
	}
	if m.Prompt == nil {
		return fmt.Errorf("marker %q: missing prompt data", m.Label())
	}
	if m.Prompt.MarkerType() != m.Type {
		return fmt.Errorf("marker %q: prompt data shape %q does not match type %q",
			m.Label(), m.Prompt.MarkerType(), m.Type)
	}
	if m.TimeMs < 0 {
		return fmt.Errorf("marker %q: negative time_ms %d", m.Label(), m.TimeMs)
	}
	if m.CurrentVersion != 0 && m.CurrentVersionRecord() == nil {
		return fmt.Errorf("marker %q: current_version %d references no history entry",
			m.Label(), m.CurrentVersion)
	}
	return nil
}

// markerWire is the persisted JSON shape, including the legacy fields the
// migrations below understand.
type markerWire struct {
	TimeMs   int64           `json:"time_ms"`
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Prompt   json.RawMessage `json:"prompt_data,omitempty"`
	Assembly *assemblyWire   `json:"assemblyConfig,omitempty"`

	CurrentVersion *int      `json:"current_version,omitempty"`
	Versions       []Version `json:"versions,omitempty"`

	// Legacy fields.
	LegacyPrompt    *string `json:"prompt,omitempty"`
	LegacyAssetFile string  `json:"asset_file,omitempty"`
	LegacyAssetID   string  `json:"asset_id,omitempty"`
	LegacyStatus    string  `json:"status,omitempty"`
}

type assemblyWire struct {
	StartOffsetMs    *int64 `json:"startOffsetMs,omitempty"`
	FadeInMs         *int64 `json:"fadeInMs,omitempty"`
	FadeOutMs        *int64 `json:"fadeOutMs,omitempty"`
	TargetDurationMs *int64 `json:"targetDurationMs"`
}

// UnmarshalJSON decodes the persisted marker format, applying legacy
// migrations:
//
//   - a string "prompt" field becomes typed prompt_data
//   - a marker without "versions" but with a top-level asset_file is treated
//     as having exactly one generated version wrapping that file
//   - a missing assemblyConfig means zero fades and zero offset, while an
//     assemblyConfig present with absent fade fields gets the 50 ms defaults
func (m *Marker) UnmarshalJSON(data []byte) error {
	var wire markerWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	markerType, err := ParseMarkerType(wire.Type)
	if err != nil {
		return err
	}

	var prompt PromptData
	switch {
	case len(wire.Prompt) > 0:
		prompt, err = decodePrompt(markerType, wire.Prompt)
		if err != nil {
			return err
		}
	case wire.LegacyPrompt != nil:
		prompt = migrateLegacyPrompt(markerType, *wire.LegacyPrompt)
	default:
		prompt, err = DefaultPrompt(markerType)
		if err != nil {
			return err
		}
	}

	assembly := AssemblyConfig{}
	if wire.Assembly != nil {
		assembly.FadeInMs = DefaultFadeMs
		assembly.FadeOutMs = DefaultFadeMs
		if wire.Assembly.StartOffsetMs != nil {
			assembly.StartOffsetMs = *wire.Assembly.StartOffsetMs
		}
		if wire.Assembly.FadeInMs != nil {
			assembly.FadeInMs = *wire.Assembly.FadeInMs
		}
		if wire.Assembly.FadeOutMs != nil {
			assembly.FadeOutMs = *wire.Assembly.FadeOutMs
		}
		assembly.TargetDurationMs = wire.Assembly.TargetDurationMs
	}
	assembly = assembly.Clamped()

	versions := wire.Versions
	currentVersion := 0
	switch {
	case len(versions) > 0:
		if wire.CurrentVersion != nil {
			currentVersion = *wire.CurrentVersion
		} else {
			currentVersion = versions[len(versions)-1].Version
		}
	case wire.LegacyAssetFile != "":
		// Pre-version template: wrap the single asset file. An absent
		// status means the file was exported as-generated.
		status := StatusGenerated
		if wire.LegacyStatus != "" {
			status = migrateLegacyStatus(wire.LegacyStatus)
		}
		versions = []Version{{
			Version:   1,
			AssetFile: wire.LegacyAssetFile,
			AssetID:   wire.LegacyAssetID,
			Status:    status,
		}}
		currentVersion = 1
	}

	timeMs := wire.TimeMs
	if timeMs < 0 {
		timeMs = 0
	}

	*m = Marker{
		TimeMs:         timeMs,
		Type:           markerType,
		Name:           wire.Name,
		Prompt:         prompt,
		Assembly:       assembly,
		CurrentVersion: currentVersion,
		Versions:       versions,
	}
	return nil
}

// MarshalJSON encodes the marker in the current persisted format.
func (m *Marker) MarshalJSON() ([]byte, error) {
	promptRaw, err := json.Marshal(m.Prompt)
	if err != nil {
		return nil, fmt.Errorf("encode prompt data: %w", err)
	}

	wire := markerWire{
		TimeMs: m.TimeMs,
		Type:   string(m.Type),
		Name:   m.Name,
		Prompt: promptRaw,
	}

	cfg := m.Assembly
	wire.Assembly = &assemblyWire{
		StartOffsetMs:    &cfg.StartOffsetMs,
		FadeInMs:         &cfg.FadeInMs,
		FadeOutMs:        &cfg.FadeOutMs,
		TargetDurationMs: cfg.TargetDurationMs,
	}

	current := m.CurrentVersion
	wire.CurrentVersion = &current
	wire.Versions = m.Versions

	return json.Marshal(wire)
}

func cutPrompt(prompt string) (profile, text string, found bool) {
	before, after, ok := strings.Cut(prompt, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(before), strings.TrimSpace(after), true
}
