package assembly

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cuemix/internal/media/pcm"
)

// StemRecord describes one emitted stem file.
type StemRecord struct {
	Bus      ChannelID `json:"bus"`
	File     string    `json:"file"`
	Channels int       `json:"channels"`
	Markers  int       `json:"markers"`
}

// Metadata is the per-run record written next to the audio output. It is
// the authoritative description of what went into the assembly: the channel
// layout, the stems, every asset included, and every marker skipped.
type Metadata struct {
	TemplateID    string          `json:"template_id"`
	TemplateName  string          `json:"template_name"`
	RunID         string          `json:"run_id"`
	CreatedAt     time.Time       `json:"created_at"`
	DurationMs    int64           `json:"duration_ms"`
	SampleRate    int             `json:"sample_rate"`
	BitDepth      int             `json:"bit_depth"`
	ChannelLayout []string        `json:"channel_layout"`
	Stems         []StemRecord    `json:"stems"`
	CompositeFile string          `json:"composite_file"`
	PreviewFile   string          `json:"preview_file,omitempty"`
	Assets        []string        `json:"included_assets"`
	Skipped       []SkippedMarker `json:"skipped_markers"`
}

func newMetadata(runID string, templateID, templateName string, durationMs int64, plan Plan) *Metadata {
	return &Metadata{
		TemplateID:    templateID,
		TemplateName:  templateName,
		RunID:         runID,
		CreatedAt:     time.Now().UTC(),
		DurationMs:    durationMs,
		SampleRate:    pcm.SampleRate,
		BitDepth:      pcm.BitDepth,
		ChannelLayout: plan.ChannelLayout(),
		Assets:        []string{},
		Skipped:       []SkippedMarker{},
	}
}

// WriteFile writes the metadata record as indented JSON.
func (md *Metadata) WriteFile(path string) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ReadMetadata loads a previously written metadata record.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &md, nil
}
