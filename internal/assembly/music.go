package assembly

import (
	"fmt"

	"cuemix/internal/media/pcm"
	"cuemix/internal/timeline"
)

// MusicClip cuts a music asset for placement on the timeline: skip the start
// offset, truncate to the target duration, then fade the edges of what
// remains. Fades always apply after truncation so a cut never ends abruptly.
//
// availableMs is the room left on the timeline from the marker's position to
// the template end; it bounds the cut when the marker sets no explicit
// target duration. Assets are never looped to fill the target.
func MusicClip(clip *pcm.Clip, cfg timeline.AssemblyConfig, availableMs int64) (*pcm.Clip, error) {
	cfg = cfg.Clamped()

	assetMs := clip.DurationMs()
	if cfg.StartOffsetMs >= assetMs {
		return nil, fmt.Errorf("%w: offset %dms, asset %dms",
			ErrOffsetExceedsAsset, cfg.StartOffsetMs, assetMs)
	}

	targetMs := availableMs
	if cfg.TargetDurationMs != nil {
		targetMs = *cfg.TargetDurationMs
	}
	if targetMs < 0 {
		targetMs = 0
	}

	cut := clip.Slice(pcm.FramesForMs(cfg.StartOffsetMs), pcm.FramesForMs(targetMs))
	cut.FadeIn(cfg.FadeInMs)
	cut.FadeOut(cfg.FadeOutMs)
	return cut, nil
}
