package pcm

import "fmt"

// Buffer is a mix bus accumulator. Samples are kept as int32 so overlapping
// clips sum exactly; values outside the int16 range are clamped only when
// the buffer is rendered with Render.
type Buffer struct {
	channels int
	samples  []int32
}

// NewBuffer returns a silent buffer spanning durationMs at the given
// channel count.
func NewBuffer(channels int, durationMs int64) *Buffer {
	return &Buffer{
		channels: channels,
		samples:  make([]int32, FramesForMs(durationMs)*channels),
	}
}

// Channels returns the buffer's channel count.
func (b *Buffer) Channels() int { return b.channels }

// Frames returns the number of sample frames in the buffer.
func (b *Buffer) Frames() int {
	if b.channels == 0 {
		return 0
	}
	return len(b.samples) / b.channels
}

// DurationMs returns the buffer length in milliseconds.
func (b *Buffer) DurationMs() int64 {
	return MsForFrames(b.Frames())
}

// Overlay sums the clip into the buffer starting at atMs. Any portion that
// would extend past the buffer end is dropped. The clip must already be
// coerced to the buffer's channel count.
func (b *Buffer) Overlay(clip *Clip, atMs int64) error {
	if clip.Channels != b.channels {
		return fmt.Errorf("overlay: clip has %d channels, buffer has %d", clip.Channels, b.channels)
	}
	if atMs < 0 {
		atMs = 0
	}
	startFrame := FramesForMs(atMs)
	frames := clip.Frames()
	available := b.Frames() - startFrame
	if available <= 0 {
		return nil
	}
	if frames > available {
		frames = available
	}
	base := startFrame * b.channels
	for i := 0; i < frames*b.channels; i++ {
		b.samples[base+i] += int32(clip.Samples[i])
	}
	return nil
}

// SampleAt returns the accumulated (pre-clamp) value at a frame/channel.
func (b *Buffer) SampleAt(frame, channel int) int32 {
	return b.samples[frame*b.channels+channel]
}

// Render converts the accumulator to an int16 clip, hard-clamping any sample
// outside the representable range. This is the engine's documented overlap
// tradeoff: summation may clip, and no automatic gain reduction is applied.
func (b *Buffer) Render() *Clip {
	out := make([]int16, len(b.samples))
	for i, s := range b.samples {
		out[i] = clamp(s)
	}
	return &Clip{Channels: b.channels, Samples: out}
}

func clamp(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
