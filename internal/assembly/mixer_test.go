package assembly_test

import (
	"context"
	"strings"
	"testing"

	"cuemix/internal/assembly"
	"cuemix/internal/logging"
	"cuemix/internal/media/pcm"
	"cuemix/internal/testsupport"
	"cuemix/internal/timeline"
)

func sfxBus(n int) assembly.Bus {
	return assembly.Bus{ID: assembly.SFXBusID(n), Type: timeline.TypeSFX, Channels: 1}
}

func TestMixBusSumsOverlappingMarkers(t *testing.T) {
	resolver := &testsupport.StaticResolver{Clips: map[string]*pcm.Clip{
		"a.mp3": testsupport.ConstantClip(1, 100, 1000),
		"b.mp3": testsupport.ConstantClip(1, 100, 250),
	}}
	markers := []*timeline.Marker{
		testsupport.GeneratedMarker(t, 0, timeline.TypeSFX, "a", "a.mp3"),
		testsupport.GeneratedMarker(t, 50, timeline.TypeSFX, "b", "b.mp3"),
	}

	mix, err := assembly.MixBus(context.Background(), sfxBus(1), markers, 1000, resolver, logging.NewNop())
	if err != nil {
		t.Fatalf("MixBus: %v", err)
	}
	if mix.Placed != 2 {
		t.Fatalf("placed = %d, want 2", mix.Placed)
	}

	soloFrame := pcm.FramesForMs(25)
	overlapFrame := pcm.FramesForMs(75)
	afterFrame := pcm.FramesForMs(200)
	if got := mix.Buffer.SampleAt(soloFrame, 0); got != 1000 {
		t.Errorf("solo region = %d, want 1000", got)
	}
	if got := mix.Buffer.SampleAt(overlapFrame, 0); got != 1250 {
		t.Errorf("overlap region = %d, want 1250 (summed)", got)
	}
	if got := mix.Buffer.SampleAt(afterFrame, 0); got != 0 {
		t.Errorf("after region = %d, want 0", got)
	}
}

func TestMixBusTruncatesAtTemplateEnd(t *testing.T) {
	resolver := &testsupport.StaticResolver{Clips: map[string]*pcm.Clip{
		"long.mp3": testsupport.ConstantClip(1, 500, 700),
	}}
	markers := []*timeline.Marker{
		testsupport.GeneratedMarker(t, 80, timeline.TypeSFX, "tail", "long.mp3"),
	}

	mix, err := assembly.MixBus(context.Background(), sfxBus(1), markers, 100, resolver, logging.NewNop())
	if err != nil {
		t.Fatalf("MixBus: %v", err)
	}
	rendered := mix.Buffer.Render()
	if rendered.DurationMs() != 100 {
		t.Fatalf("rendered duration = %dms, want 100", rendered.DurationMs())
	}
	if got := mix.Buffer.SampleAt(pcm.FramesForMs(90), 0); got != 700 {
		t.Errorf("in-range sample = %d, want 700", got)
	}
}

func TestMixBusSkipsUnusableVersions(t *testing.T) {
	resolver := &testsupport.StaticResolver{Clips: map[string]*pcm.Clip{
		"ok.mp3": testsupport.ConstantClip(1, 100, 500),
	}}

	pending, err := timeline.NewMarker(0, timeline.TypeSFX, "pending")
	if err != nil {
		t.Fatalf("NewMarker: %v", err)
	}
	failed := testsupport.GeneratedMarker(t, 100, timeline.TypeSFX, "failed", "broken.mp3")
	failed.Versions[0].Status = timeline.StatusFailed
	missing := testsupport.GeneratedMarker(t, 200, timeline.TypeSFX, "missing", "gone.mp3")
	good := testsupport.GeneratedMarker(t, 300, timeline.TypeSFX, "good", "ok.mp3")

	mix, err := assembly.MixBus(context.Background(), sfxBus(1),
		[]*timeline.Marker{pending, failed, missing, good}, 1000, resolver, logging.NewNop())
	if err != nil {
		t.Fatalf("MixBus: %v", err)
	}
	if mix.Placed != 1 {
		t.Fatalf("placed = %d, want 1", mix.Placed)
	}
	if len(mix.Skipped) != 3 {
		t.Fatalf("skipped = %d, want 3: %+v", len(mix.Skipped), mix.Skipped)
	}
	reasons := map[string]string{}
	for _, s := range mix.Skipped {
		reasons[s.Marker] = s.Reason
	}
	if !strings.Contains(reasons["pending"], "no version") {
		t.Errorf("pending reason = %q", reasons["pending"])
	}
	if !strings.Contains(reasons["failed"], "failed") {
		t.Errorf("failed reason = %q", reasons["failed"])
	}
	if mix.Label != "good" {
		t.Errorf("label = %q, want first contributing marker", mix.Label)
	}
}

func TestMixBusSkipsMusicOffsetPastAsset(t *testing.T) {
	resolver := &testsupport.StaticResolver{Clips: map[string]*pcm.Clip{
		"short.mp3": testsupport.ConstantClip(2, 1000, 800),
	}}
	m := testsupport.GeneratedMarker(t, 0, timeline.TypeMusic, "bed", "short.mp3")
	m.Assembly.StartOffsetMs = 30_000

	bus := assembly.Bus{ID: assembly.BusMusic, Type: timeline.TypeMusic, Channels: 2}
	mix, err := assembly.MixBus(context.Background(), bus,
		[]*timeline.Marker{m}, 12_000, resolver, logging.NewNop())
	if err != nil {
		t.Fatalf("MixBus: %v", err)
	}
	if mix.Placed != 0 || len(mix.Skipped) != 1 {
		t.Fatalf("placed=%d skipped=%d, want 0/1", mix.Placed, len(mix.Skipped))
	}
	if !strings.Contains(mix.Skipped[0].Reason, "offset") {
		t.Errorf("skip reason = %q", mix.Skipped[0].Reason)
	}
}

func TestMixBusCoercesMonoToStereo(t *testing.T) {
	resolver := &testsupport.StaticResolver{Clips: map[string]*pcm.Clip{
		"mono.mp3": testsupport.ConstantClip(1, 200, 900),
	}}
	m := testsupport.GeneratedMarker(t, 0, timeline.TypeMusic, "bed", "mono.mp3")
	m.Assembly.FadeInMs = 0
	m.Assembly.FadeOutMs = 0

	bus := assembly.Bus{ID: assembly.BusMusic, Type: timeline.TypeMusic, Channels: 2}
	mix, err := assembly.MixBus(context.Background(), bus,
		[]*timeline.Marker{m}, 1000, resolver, logging.NewNop())
	if err != nil {
		t.Fatalf("MixBus: %v", err)
	}
	frame := pcm.FramesForMs(100)
	if l, r := mix.Buffer.SampleAt(frame, 0), mix.Buffer.SampleAt(frame, 1); l != 900 || r != 900 {
		t.Errorf("stereo duplicate = %d/%d, want 900/900", l, r)
	}
}

func TestMixBusEmptyProducesSilence(t *testing.T) {
	mix, err := assembly.MixBus(context.Background(), sfxBus(2), nil, 250,
		&testsupport.StaticResolver{}, logging.NewNop())
	if err != nil {
		t.Fatalf("MixBus: %v", err)
	}
	rendered := mix.Buffer.Render()
	if rendered.DurationMs() != 250 {
		t.Fatalf("duration = %dms, want 250", rendered.DurationMs())
	}
	for i, s := range rendered.Samples {
		if s != 0 {
			t.Fatalf("sample %d = %d, want silence", i, s)
		}
	}
}
