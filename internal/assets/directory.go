package assets

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"cuemix/internal/media/ffprobe"
	"cuemix/internal/media/pcm"
	"cuemix/internal/timeline"
)

// DirectoryResolver resolves version asset_file paths against a base
// directory and decodes them with ffmpeg.
type DirectoryResolver struct {
	// Dir is the base directory relative asset paths resolve against.
	Dir string
	// FFmpeg and FFprobe override the binaries used; empty means PATH.
	FFmpeg  string
	FFprobe string
}

// Resolve implements Resolver: stat, probe, then decode to 48 kHz PCM.
// Multichannel sources beyond stereo are folded down to stereo by ffmpeg;
// the mixer handles mono/stereo coercion from there.
func (r *DirectoryResolver) Resolve(ctx context.Context, marker *timeline.Marker, version *timeline.Version) (*Asset, error) {
	if version == nil || strings.TrimSpace(version.AssetFile) == "" {
		return nil, fmt.Errorf("%w: marker %q has no asset file", ErrAssetMissing, marker.Label())
	}

	path := version.AssetFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetMissing, path)
		}
		return nil, fmt.Errorf("stat asset %s: %w", path, err)
	}

	probed, err := ffprobe.Inspect(ctx, r.FFprobe, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetCorrupt, path, err)
	}
	stream, ok := probed.AudioStream()
	if !ok {
		return nil, fmt.Errorf("%w: %s: no audio stream", ErrAssetCorrupt, path)
	}

	channels := stream.Channels
	if channels < 1 || channels > 2 {
		channels = 2
	}

	clip, err := decodeFile(ctx, r.FFmpeg, path, channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetCorrupt, path, err)
	}

	return &Asset{
		Path:       path,
		DurationMs: clip.DurationMs(),
		Clip:       clip,
	}, nil
}

// decodeFile runs ffmpeg to decode an audio file to raw interleaved int16
// samples at the system sample rate.
func decodeFile(ctx context.Context, bin string, path string, channels int) (*pcm.Clip, error) {
	bin = strings.TrimSpace(bin)
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin,
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(pcm.SampleRate),
		"-ac", strconv.Itoa(channels),
		"-loglevel", "error",
		"pipe:1",
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("ffmpeg decode: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}

	// Drop a trailing odd byte so int16 alignment holds.
	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}
	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(out[i*2 : i*2+2]))
	}
	return &pcm.Clip{Channels: channels, Samples: samples}, nil
}
