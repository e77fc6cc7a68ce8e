package timeline

import (
	"encoding/json"
	"fmt"
)

// PromptData is the type-tagged payload describing what a marker's audio
// should contain. Exactly one concrete shape exists per marker type.
type PromptData interface {
	MarkerType() MarkerType
}

// SFXPrompt describes a sound-effect generation request.
type SFXPrompt struct {
	Description string `json:"description"`
}

// MarkerType implements PromptData.
func (SFXPrompt) MarkerType() MarkerType { return TypeSFX }

// VoicePrompt describes a voice generation request.
type VoicePrompt struct {
	VoiceProfile string `json:"voice_profile,omitempty"`
	Text         string `json:"text"`
}

// MarkerType implements PromptData.
func (VoicePrompt) MarkerType() MarkerType { return TypeVoice }

// Section is one segment of a music prompt.
type Section struct {
	SectionName         string   `json:"sectionName"`
	DurationMs          int64    `json:"durationMs"`
	PositiveLocalStyles []string `json:"positiveLocalStyles"`
	NegativeLocalStyles []string `json:"negativeLocalStyles"`
	// Lines is carried verbatim for wire compatibility with existing
	// exported templates. It has no assembly behavior.
	Lines json.RawMessage `json:"lines,omitempty"`
}

// MusicPrompt describes a music generation request.
type MusicPrompt struct {
	PositiveGlobalStyles []string  `json:"positiveGlobalStyles"`
	NegativeGlobalStyles []string  `json:"negativeGlobalStyles"`
	Sections             []Section `json:"sections"`
}

// MarkerType implements PromptData.
func (MusicPrompt) MarkerType() MarkerType { return TypeMusic }

// DefaultPrompt returns the empty-but-valid prompt payload for a marker type.
func DefaultPrompt(markerType MarkerType) (PromptData, error) {
	switch markerType {
	case TypeSFX:
		return &SFXPrompt{}, nil
	case TypeVoice:
		return &VoicePrompt{}, nil
	case TypeMusic:
		return &MusicPrompt{
			PositiveGlobalStyles: []string{},
			NegativeGlobalStyles: []string{},
			Sections:             []Section{},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMarkerType, markerType)
	}
}

// decodePrompt parses raw prompt_data for the given marker type.
func decodePrompt(markerType MarkerType, raw json.RawMessage) (PromptData, error) {
	if len(raw) == 0 {
		return DefaultPrompt(markerType)
	}
	switch markerType {
	case TypeSFX:
		var p SFXPrompt
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode sfx prompt: %w", err)
		}
		return &p, nil
	case TypeVoice:
		var p VoicePrompt
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode voice prompt: %w", err)
		}
		return &p, nil
	case TypeMusic:
		var p MusicPrompt
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode music prompt: %w", err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMarkerType, markerType)
	}
}

// migrateLegacyPrompt converts the pre-prompt_data string prompt into the
// typed payload for the marker type.
func migrateLegacyPrompt(markerType MarkerType, prompt string) PromptData {
	switch markerType {
	case TypeVoice:
		// Old exports sometimes packed "Profile: text" into one string.
		if profile, text, found := cutPrompt(prompt); found {
			return &VoicePrompt{VoiceProfile: profile, Text: text}
		}
		return &VoicePrompt{Text: prompt}
	case TypeMusic:
		positive := []string{}
		if prompt != "" {
			positive = []string{prompt}
		}
		return &MusicPrompt{
			PositiveGlobalStyles: positive,
			NegativeGlobalStyles: []string{},
			Sections:             []Section{},
		}
	default:
		return &SFXPrompt{Description: prompt}
	}
}
