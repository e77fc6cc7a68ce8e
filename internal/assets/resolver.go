package assets

import (
	"context"
	"errors"

	"cuemix/internal/media/pcm"
	"cuemix/internal/timeline"
)

// ErrAssetMissing reports an asset file that does not exist.
var ErrAssetMissing = errors.New("asset file missing")

// ErrAssetCorrupt reports an asset file that exists but cannot be probed or
// decoded as audio.
var ErrAssetCorrupt = errors.New("asset file unreadable")

// Asset is a marker's resolved audio: the on-disk location and the decoded
// clip at the system sample rate.
type Asset struct {
	Path       string
	DurationMs int64
	Clip       *pcm.Clip
}

// Resolver turns a marker version into playable audio. Implementations
// must be safe for concurrent use; the mixer resolves buses in parallel.
type Resolver interface {
	Resolve(ctx context.Context, marker *timeline.Marker, version *timeline.Version) (*Asset, error)
}
