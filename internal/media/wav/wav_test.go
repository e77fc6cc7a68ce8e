package wav_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"cuemix/internal/media/pcm"
	"cuemix/internal/media/wav"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	clip := pcm.NewSilentClip(2, 20)
	for i := range clip.Samples {
		clip.Samples[i] = int16(i%7) * 1000
	}

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	if err := wav.WriteFile(path, clip); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	decoded, rate, err := wav.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if rate != pcm.SampleRate {
		t.Fatalf("unexpected sample rate %d", rate)
	}
	if decoded.Channels != 2 || decoded.Frames() != clip.Frames() {
		t.Fatalf("shape lost: %d channels, %d frames", decoded.Channels, decoded.Frames())
	}
	for i := range clip.Samples {
		if decoded.Samples[i] != clip.Samples[i] {
			t.Fatalf("sample %d differs: %d vs %d", i, decoded.Samples[i], clip.Samples[i])
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := wav.Decode(bytes.NewReader([]byte("definitely not audio data")))
	if !errors.Is(err, wav.ErrNotWave) {
		t.Fatalf("expected ErrNotWave, got %v", err)
	}
}

func TestInterleaveChannelOrder(t *testing.T) {
	music := pcm.NewSilentClip(2, 10)
	sfx1 := pcm.NewSilentClip(1, 10)
	voice := pcm.NewSilentClip(1, 10)
	for i := 0; i < music.Frames(); i++ {
		music.Samples[i*2] = 1   // music L
		music.Samples[i*2+1] = 2 // music R
	}
	for i := range sfx1.Samples {
		sfx1.Samples[i] = 3
	}
	for i := range voice.Samples {
		voice.Samples[i] = 4
	}

	combined := wav.Interleave(music, sfx1, voice)
	if combined.Channels != 4 {
		t.Fatalf("expected 4 channels, got %d", combined.Channels)
	}
	frame0 := combined.Samples[0:4]
	want := []int16{1, 2, 3, 4}
	for i, v := range want {
		if frame0[i] != v {
			t.Fatalf("channel %d holds %d, want %d", i, frame0[i], v)
		}
	}
}

func TestInterleavePadsShortInputs(t *testing.T) {
	long := pcm.NewSilentClip(1, 20)
	short := pcm.NewSilentClip(1, 10)
	for i := range short.Samples {
		short.Samples[i] = 9
	}

	combined := wav.Interleave(long, short)
	if combined.Frames() != long.Frames() {
		t.Fatalf("expected %d frames, got %d", long.Frames(), combined.Frames())
	}
	lastFrame := combined.Frames() - 1
	if combined.Samples[lastFrame*2+1] != 0 {
		t.Fatal("short input should be padded with silence")
	}
}
