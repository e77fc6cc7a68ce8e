package assembly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cuemix/internal/assets"
	"cuemix/internal/media/pcm"
	"cuemix/internal/timeline"
)

// SkippedMarker records a marker that could not contribute audio and the
// reason it was left out. Skips degrade the mix; they never abort the run.
type SkippedMarker struct {
	Marker string    `json:"marker"`
	Bus    ChannelID `json:"bus"`
	TimeMs int64     `json:"time_ms"`
	Reason string    `json:"reason"`
}

// BusMix is the result of mixing one bus: the summed accumulator plus the
// bookkeeping the emitter and metadata need.
type BusMix struct {
	Bus     Bus
	Buffer  *pcm.Buffer
	Placed  int
	Label   string
	Assets  []string
	Skipped []SkippedMarker
}

// MixBus overlays a bus's markers onto a silent buffer spanning the template
// duration. Overlapping markers sum; clamping to int16 happens once, when
// the buffer is rendered. Markers whose current version is not generated, or
// whose asset cannot be resolved, are skipped with a warning.
//
// A bus with no markers still yields a silent buffer so the composite
// channel layout stays fixed.
func MixBus(ctx context.Context, bus Bus, markers []*timeline.Marker, durationMs int64, resolver assets.Resolver, logger *slog.Logger) (*BusMix, error) {
	mix := &BusMix{
		Bus:    bus,
		Buffer: pcm.NewBuffer(bus.Channels, durationMs),
	}

	for _, m := range markers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		version := m.CurrentVersionRecord()
		if version == nil {
			mix.skip(logger, m, "no version generated yet")
			continue
		}
		if !version.Status.Usable() {
			mix.skip(logger, m, fmt.Sprintf("version %d has status %q", version.Version, version.Status))
			continue
		}

		asset, err := resolver.Resolve(ctx, m, version)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			mix.skip(logger, m, err.Error())
			continue
		}

		clip := asset.Clip
		if bus.Type == timeline.TypeMusic {
			clip, err = MusicClip(clip, m.Assembly, durationMs-m.TimeMs)
			if err != nil {
				mix.skip(logger, m, err.Error())
				continue
			}
		}

		clip, err = clip.Coerce(bus.Channels)
		if err != nil {
			mix.skip(logger, m, err.Error())
			continue
		}

		if err := mix.Buffer.Overlay(clip, m.TimeMs); err != nil {
			return nil, fmt.Errorf("bus %s: marker %q: %w", bus.ID, m.Label(), err)
		}

		if mix.Placed == 0 {
			mix.Label = m.Label()
		}
		mix.Placed++
		mix.Assets = append(mix.Assets, asset.Path)
		logger.Debug("marker placed",
			slog.String("bus", string(bus.ID)),
			slog.String("marker", m.Label()),
			slog.Int64("time_ms", m.TimeMs),
			slog.Int64("clip_ms", clip.DurationMs()))
	}

	logger.Info("bus mixed",
		slog.String("bus", string(bus.ID)),
		slog.Int("placed", mix.Placed),
		slog.Int("skipped", len(mix.Skipped)))
	return mix, nil
}

func (mix *BusMix) skip(logger *slog.Logger, m *timeline.Marker, reason string) {
	mix.Skipped = append(mix.Skipped, SkippedMarker{
		Marker: m.Label(),
		Bus:    mix.Bus.ID,
		TimeMs: m.TimeMs,
		Reason: reason,
	})
	logger.Warn("marker skipped",
		slog.String("bus", string(mix.Bus.ID)),
		slog.String("marker", m.Label()),
		slog.Int64("time_ms", m.TimeMs),
		slog.String("reason", reason))
}
