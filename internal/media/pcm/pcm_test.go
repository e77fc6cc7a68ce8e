package pcm_test

import (
	"testing"

	"cuemix/internal/media/pcm"
)

func constClip(channels int, durationMs int64, value int16) *pcm.Clip {
	clip := pcm.NewSilentClip(channels, durationMs)
	for i := range clip.Samples {
		clip.Samples[i] = value
	}
	return clip
}

func TestFrameMsConversions(t *testing.T) {
	if got := pcm.FramesForMs(1000); got != pcm.SampleRate {
		t.Fatalf("FramesForMs(1000) = %d", got)
	}
	if got := pcm.MsForFrames(pcm.SampleRate / 2); got != 500 {
		t.Fatalf("MsForFrames(half rate) = %d", got)
	}
}

func TestCoerceChannels(t *testing.T) {
	mono := constClip(1, 10, 1000)
	stereo, err := mono.Coerce(2)
	if err != nil {
		t.Fatalf("Coerce to stereo: %v", err)
	}
	if stereo.Frames() != mono.Frames() {
		t.Fatalf("frame count changed: %d vs %d", stereo.Frames(), mono.Frames())
	}
	if stereo.Samples[0] != 1000 || stereo.Samples[1] != 1000 {
		t.Fatal("mono must duplicate onto both stereo channels")
	}

	uneven := pcm.NewSilentClip(2, 10)
	for i := 0; i < uneven.Frames(); i++ {
		uneven.Samples[i*2] = 2000
		uneven.Samples[i*2+1] = 1000
	}
	back, err := uneven.Coerce(1)
	if err != nil {
		t.Fatalf("Coerce to mono: %v", err)
	}
	if back.Samples[0] != 1500 {
		t.Fatalf("stereo downmix must average channels, got %d", back.Samples[0])
	}
}

func TestSliceBounds(t *testing.T) {
	clip := constClip(1, 100, 42)
	frames := clip.Frames()

	sub := clip.Slice(frames/2, -1)
	if sub.Frames() != frames-frames/2 {
		t.Fatalf("unexpected tail length %d", sub.Frames())
	}
	if sub.Samples[0] != 42 {
		t.Fatal("slice lost samples")
	}

	if got := clip.Slice(frames+10, -1).Frames(); got != 0 {
		t.Fatalf("out-of-range slice should be empty, got %d frames", got)
	}
	if got := clip.Slice(0, 7).Frames(); got != 7 {
		t.Fatalf("bounded slice wrong length %d", got)
	}
}

func TestFadeInRampIsMonotonic(t *testing.T) {
	clip := constClip(1, 200, 20000)
	clip.FadeIn(50)

	if clip.Samples[0] != 0 {
		t.Fatalf("first faded sample should be zero, got %d", clip.Samples[0])
	}
	fadeFrames := pcm.FramesForMs(50)
	if clip.Samples[fadeFrames] != 20000 {
		t.Fatalf("post-fade sample should be full scale, got %d", clip.Samples[fadeFrames])
	}
	prev := int16(-1)
	for i := 0; i < fadeFrames; i++ {
		if clip.Samples[i] < prev {
			t.Fatalf("fade-in not monotonic at frame %d", i)
		}
		prev = clip.Samples[i]
	}
}

func TestFadeOutReachesSilence(t *testing.T) {
	clip := constClip(1, 200, 20000)
	clip.FadeOut(50)

	last := clip.Frames() - 1
	if clip.Samples[last] != 0 {
		t.Fatalf("final faded sample should be zero, got %d", clip.Samples[last])
	}
	beforeFade := clip.Frames() - pcm.FramesForMs(50) - 1
	if clip.Samples[beforeFade] != 20000 {
		t.Fatalf("pre-fade sample altered: %d", clip.Samples[beforeFade])
	}
}

func TestFadeLongerThanClipCoversWholeClip(t *testing.T) {
	clip := constClip(1, 10, 10000)
	clip.FadeOut(500)
	if clip.Samples[clip.Frames()-1] != 0 {
		t.Fatal("fade-out should still end at silence")
	}
}

func TestOverlaySumsAndTruncates(t *testing.T) {
	buf := pcm.NewBuffer(1, 100)
	a := constClip(1, 50, 1000)
	b := constClip(1, 50, 500)

	if err := buf.Overlay(a, 0); err != nil {
		t.Fatalf("overlay a: %v", err)
	}
	if err := buf.Overlay(b, 25); err != nil {
		t.Fatalf("overlay b: %v", err)
	}

	// Overlap region [25ms, 50ms) holds the exact sum.
	overlapFrame := pcm.FramesForMs(30)
	if got := buf.SampleAt(overlapFrame, 0); got != 1500 {
		t.Fatalf("overlap should sum to 1500, got %d", got)
	}
	soloFrame := pcm.FramesForMs(10)
	if got := buf.SampleAt(soloFrame, 0); got != 1000 {
		t.Fatalf("solo region should be 1000, got %d", got)
	}

	// A clip hanging past the end contributes only the in-range portion.
	tail := constClip(1, 50, 100)
	if err := buf.Overlay(tail, 80); err != nil {
		t.Fatalf("overlay tail: %v", err)
	}
	if buf.Frames() != pcm.FramesForMs(100) {
		t.Fatalf("buffer length changed to %d frames", buf.Frames())
	}
	if got := buf.SampleAt(pcm.FramesForMs(90), 0); got != 100 {
		t.Fatalf("tail not mixed, got %d", got)
	}
}

func TestRenderHardClamps(t *testing.T) {
	buf := pcm.NewBuffer(1, 10)
	loud := constClip(1, 10, 30000)
	_ = buf.Overlay(loud, 0)
	_ = buf.Overlay(loud, 0)

	if got := buf.SampleAt(0, 0); got != 60000 {
		t.Fatalf("accumulator should hold pre-clip sum, got %d", got)
	}
	rendered := buf.Render()
	if rendered.Samples[0] != 32767 {
		t.Fatalf("render should hard clamp to 32767, got %d", rendered.Samples[0])
	}
}

func TestOverlayChannelMismatchRejected(t *testing.T) {
	buf := pcm.NewBuffer(2, 10)
	if err := buf.Overlay(constClip(1, 10, 1), 0); err == nil {
		t.Fatal("expected channel mismatch error")
	}
}
