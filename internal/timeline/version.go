package timeline

import (
	"encoding/json"
	"strings"
	"time"
)

// Status tracks the lifecycle of one generation attempt.
type Status string

const (
	StatusNotGenerated Status = "not_yet_generated"
	StatusGenerating   Status = "generating"
	StatusGenerated    Status = "generated"
	StatusFailed       Status = "failed"
)

// Usable reports whether a version's asset can be placed on the timeline.
func (s Status) Usable() bool {
	return s == StatusGenerated
}

// Version records one generation attempt for a marker: the produced asset
// and the prompt snapshot it was generated from. History entries are never
// rewritten once persisted.
type Version struct {
	Version        int             `json:"version"`
	AssetFile      string          `json:"asset_file"`
	AssetID        string          `json:"asset_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at,omitzero"`
	Status         Status          `json:"status"`
	PromptSnapshot json.RawMessage `json:"prompt_data_snapshot,omitempty"`
}

// versionWire tolerates the timestamp and status spellings older exporters
// produced (naive ISO timestamps, space-separated status words).
type versionWire struct {
	Version        int             `json:"version"`
	AssetFile      string          `json:"asset_file"`
	AssetID        string          `json:"asset_id,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	Status         string          `json:"status,omitempty"`
	PromptSnapshot json.RawMessage `json:"prompt_data_snapshot,omitempty"`
}

// UnmarshalJSON decodes a version entry, normalizing legacy spellings.
func (v *Version) UnmarshalJSON(data []byte) error {
	var wire versionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*v = Version{
		Version:        wire.Version,
		AssetFile:      wire.AssetFile,
		AssetID:        wire.AssetID,
		CreatedAt:      parseTimestamp(wire.CreatedAt),
		Status:         migrateLegacyStatus(wire.Status),
		PromptSnapshot: wire.PromptSnapshot,
	}
	return nil
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func migrateLegacyStatus(value string) Status {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
	switch Status(normalized) {
	case StatusGenerating, StatusGenerated, StatusFailed:
		return Status(normalized)
	case StatusNotGenerated:
		return StatusNotGenerated
	}
	if normalized == "not_generated" {
		return StatusNotGenerated
	}
	return StatusNotGenerated
}
