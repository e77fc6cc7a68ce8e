package testsupport

import (
	"context"
	"fmt"
	"testing"

	"cuemix/internal/assets"
	"cuemix/internal/media/pcm"
	"cuemix/internal/timeline"
)

// ConstantClip returns a clip holding the same sample value in every slot.
// Constant-valued fixtures make summation and fade arithmetic easy to assert.
func ConstantClip(channels int, durationMs int64, value int16) *pcm.Clip {
	clip := pcm.NewSilentClip(channels, durationMs)
	for i := range clip.Samples {
		clip.Samples[i] = value
	}
	return clip
}

// GeneratedMarker builds a marker with a single generated version pointing at
// the given asset key.
func GeneratedMarker(t testing.TB, timeMs int64, markerType timeline.MarkerType, name, assetKey string) *timeline.Marker {
	t.Helper()
	m, err := timeline.NewMarker(timeMs, markerType, name)
	if err != nil {
		t.Fatalf("NewMarker(%q): %v", name, err)
	}
	m.AddVersion(timeline.Version{AssetFile: assetKey, Status: timeline.StatusGenerated})
	return m
}

// StaticResolver serves clips from memory, keyed by version asset_file. It
// keeps engine tests free of ffmpeg.
type StaticResolver struct {
	Clips map[string]*pcm.Clip
}

// Resolve implements assets.Resolver.
func (r *StaticResolver) Resolve(_ context.Context, marker *timeline.Marker, version *timeline.Version) (*assets.Asset, error) {
	if version == nil {
		return nil, fmt.Errorf("%w: marker %q has no version", assets.ErrAssetMissing, marker.Label())
	}
	clip, ok := r.Clips[version.AssetFile]
	if !ok {
		return nil, fmt.Errorf("%w: %s", assets.ErrAssetMissing, version.AssetFile)
	}
	return &assets.Asset{
		Path:       version.AssetFile,
		DurationMs: clip.DurationMs(),
		Clip:       clip,
	}, nil
}
