package pcm

import "fmt"

const (
	// SampleRate is the single system sample rate. Every asset is coerced
	// to it on decode before it reaches the mixer.
	SampleRate = 48000
	// BitDepth is the on-disk sample width.
	BitDepth = 16
)

// FramesForMs converts a millisecond position or length to sample frames.
func FramesForMs(ms int64) int {
	return int(ms * SampleRate / 1000)
}

// MsForFrames converts a frame count to milliseconds.
func MsForFrames(frames int) int64 {
	return int64(frames) * 1000 / SampleRate
}

// Clip is a decoded audio segment: interleaved int16 samples at SampleRate.
type Clip struct {
	Channels int
	Samples  []int16
}

// NewSilentClip returns an all-zero clip of the given length.
func NewSilentClip(channels int, durationMs int64) *Clip {
	return &Clip{
		Channels: channels,
		Samples:  make([]int16, FramesForMs(durationMs)*channels),
	}
}

// Frames returns the number of sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// DurationMs returns the clip length in milliseconds.
func (c *Clip) DurationMs() int64 {
	return MsForFrames(c.Frames())
}

// Coerce returns a clip with the requested channel count: mono sources are
// duplicated onto both stereo channels, stereo sources are downmixed by
// averaging. Same-count clips are returned unchanged.
func (c *Clip) Coerce(channels int) (*Clip, error) {
	switch {
	case channels == c.Channels:
		return c, nil
	case c.Channels == 1 && channels == 2:
		return c.toStereo(), nil
	case c.Channels == 2 && channels == 1:
		return c.toMono(), nil
	default:
		return nil, fmt.Errorf("cannot coerce %d-channel clip to %d channels", c.Channels, channels)
	}
}

func (c *Clip) toStereo() *Clip {
	out := make([]int16, len(c.Samples)*2)
	for i, s := range c.Samples {
		out[i*2] = s
		out[i*2+1] = s
	}
	return &Clip{Channels: 2, Samples: out}
}

func (c *Clip) toMono() *Clip {
	frames := c.Frames()
	out := make([]int16, frames)
	for i := 0; i < frames; i++ {
		left := int32(c.Samples[i*2])
		right := int32(c.Samples[i*2+1])
		out[i] = int16((left + right) / 2)
	}
	return &Clip{Channels: 1, Samples: out}
}

// Slice returns the sub-clip starting at startFrame, at most maxFrames long.
// A negative maxFrames means "to the end". Out-of-range bounds yield an
// empty clip rather than a panic.
func (c *Clip) Slice(startFrame, maxFrames int) *Clip {
	frames := c.Frames()
	if startFrame < 0 {
		startFrame = 0
	}
	if startFrame > frames {
		startFrame = frames
	}
	remaining := frames - startFrame
	if maxFrames < 0 || maxFrames > remaining {
		maxFrames = remaining
	}
	start := startFrame * c.Channels
	end := start + maxFrames*c.Channels
	return &Clip{
		Channels: c.Channels,
		Samples:  append([]int16(nil), c.Samples[start:end]...),
	}
}
