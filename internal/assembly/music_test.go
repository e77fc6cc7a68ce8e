package assembly_test

import (
	"errors"
	"testing"

	"cuemix/internal/assembly"
	"cuemix/internal/media/pcm"
	"cuemix/internal/testsupport"
	"cuemix/internal/timeline"
)

func TestMusicClipOffsetAndTruncation(t *testing.T) {
	clip := testsupport.ConstantClip(2, 2000, 10_000)
	target := int64(1000)
	cfg := timeline.AssemblyConfig{
		StartOffsetMs:    500,
		FadeInMs:         100,
		FadeOutMs:        100,
		TargetDurationMs: &target,
	}

	cut, err := assembly.MusicClip(clip, cfg, 5000)
	if err != nil {
		t.Fatalf("MusicClip: %v", err)
	}
	if cut.DurationMs() != 1000 {
		t.Fatalf("cut duration = %dms, want 1000", cut.DurationMs())
	}
	// Fades apply after truncation: silent-ish edges, full scale in between.
	if cut.Samples[0] != 0 {
		t.Errorf("first sample = %d, want 0 (fade-in start)", cut.Samples[0])
	}
	mid := cut.Frames() / 2 * cut.Channels
	if cut.Samples[mid] != 10_000 {
		t.Errorf("middle sample = %d, want 10000", cut.Samples[mid])
	}
	last := len(cut.Samples) - 1
	if cut.Samples[last] != 0 {
		t.Errorf("last sample = %d, want 0 (fade-out end)", cut.Samples[last])
	}
}

func TestMusicClipDefaultsToAvailableRoom(t *testing.T) {
	clip := testsupport.ConstantClip(2, 5000, 1000)
	cut, err := assembly.MusicClip(clip, timeline.AssemblyConfig{}, 300)
	if err != nil {
		t.Fatalf("MusicClip: %v", err)
	}
	if cut.DurationMs() != 300 {
		t.Fatalf("cut duration = %dms, want 300 (timeline room)", cut.DurationMs())
	}
}

func TestMusicClipNeverLoops(t *testing.T) {
	clip := testsupport.ConstantClip(2, 1000, 1000)
	target := int64(5000)
	cfg := timeline.AssemblyConfig{StartOffsetMs: 800, TargetDurationMs: &target}

	cut, err := assembly.MusicClip(clip, cfg, 10_000)
	if err != nil {
		t.Fatalf("MusicClip: %v", err)
	}
	if cut.DurationMs() != 200 {
		t.Fatalf("cut duration = %dms, want 200 (asset remainder)", cut.DurationMs())
	}
}

func TestMusicClipOffsetExceedsAsset(t *testing.T) {
	clip := testsupport.ConstantClip(2, 1000, 1000)

	_, err := assembly.MusicClip(clip, timeline.AssemblyConfig{StartOffsetMs: 1500}, 10_000)
	if !errors.Is(err, assembly.ErrOffsetExceedsAsset) {
		t.Fatalf("offset past end: expected ErrOffsetExceedsAsset, got %v", err)
	}

	// Offset exactly at the asset end leaves an empty usable region.
	_, err = assembly.MusicClip(clip, timeline.AssemblyConfig{StartOffsetMs: 1000}, 10_000)
	if !errors.Is(err, assembly.ErrOffsetExceedsAsset) {
		t.Fatalf("offset at end: expected ErrOffsetExceedsAsset, got %v", err)
	}
}

func TestMusicClipNegativeFieldsClamped(t *testing.T) {
	clip := testsupport.ConstantClip(2, 1000, 1000)
	cfg := timeline.AssemblyConfig{StartOffsetMs: -50, FadeInMs: -10, FadeOutMs: -10}

	cut, err := assembly.MusicClip(clip, cfg, 1000)
	if err != nil {
		t.Fatalf("MusicClip: %v", err)
	}
	if cut.DurationMs() != 1000 {
		t.Fatalf("cut duration = %dms, want 1000", cut.DurationMs())
	}
	if cut.Samples[0] != 1000 {
		t.Errorf("first sample = %d, want 1000 (no fade)", cut.Samples[0])
	}
	if got := cut.Frames(); got != pcm.FramesForMs(1000) {
		t.Errorf("frames = %d, want %d", got, pcm.FramesForMs(1000))
	}
}
