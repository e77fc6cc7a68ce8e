package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"cuemix/internal/media/pcm"
)

// ErrNotWave reports a file without a RIFF/WAVE signature.
var ErrNotWave = errors.New("not a RIFF/WAVE file")

// ErrUnsupportedFormat reports a WAVE encoding other than 16-bit PCM.
var ErrUnsupportedFormat = errors.New("unsupported wave format")

const (
	formatPCM       = 1
	headerChunkSize = 16
)

// Encode writes the clip as a 16-bit PCM WAVE stream at the system sample
// rate.
func Encode(w io.Writer, clip *pcm.Clip) error {
	if clip.Channels < 1 {
		return fmt.Errorf("encode wav: invalid channel count %d", clip.Channels)
	}

	dataSize := len(clip.Samples) * 2
	blockAlign := clip.Channels * 2
	byteRate := pcm.SampleRate * blockAlign

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], headerChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(clip.Channels))
	binary.LittleEndian.PutUint32(header[24:28], pcm.SampleRate)
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], pcm.BitDepth)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	buf := make([]byte, dataSize)
	for i, s := range clip.Samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}

// WriteFile encodes the clip to path.
func WriteFile(path string, clip *pcm.Clip) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(file, clip); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Decode parses a 16-bit PCM WAVE stream. The reported sample rate is
// returned alongside the clip; callers decide whether to accept rates other
// than the system rate.
func Decode(r io.Reader) (*pcm.Clip, int, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, 0, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, 0, ErrNotWave
	}

	var (
		channels   int
		sampleRate int
		haveFmt    bool
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, 0, fmt.Errorf("%w: missing data chunk", ErrNotWave)
			}
			return nil, 0, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			bits := binary.LittleEndian.Uint16(body[14:16])
			if format != formatPCM || bits != pcm.BitDepth {
				return nil, 0, fmt.Errorf("%w: format %d, %d bits", ErrUnsupportedFormat, format, bits)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, 0, fmt.Errorf("%w: data chunk before fmt", ErrNotWave)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, fmt.Errorf("read data chunk: %w", err)
			}
			samples := make([]int16, len(body)/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(body[i*2 : i*2+2]))
			}
			return &pcm.Clip{Channels: channels, Samples: samples}, sampleRate, nil
		default:
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return nil, 0, fmt.Errorf("skip %s chunk: %w", id, err)
			}
		}
	}
}

// ReadFile decodes a WAVE file from disk.
func ReadFile(path string) (*pcm.Clip, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file)
}

// Interleave combines per-bus clips into a single N-channel clip, laying
// each input's channels out in argument order. Inputs shorter than the
// longest are padded with silence.
func Interleave(clips ...*pcm.Clip) *pcm.Clip {
	totalChannels := 0
	frames := 0
	for _, clip := range clips {
		totalChannels += clip.Channels
		if clip.Frames() > frames {
			frames = clip.Frames()
		}
	}

	out := make([]int16, frames*totalChannels)
	offset := 0
	for _, clip := range clips {
		clipFrames := clip.Frames()
		for frame := 0; frame < clipFrames; frame++ {
			for ch := 0; ch < clip.Channels; ch++ {
				out[frame*totalChannels+offset+ch] = clip.Samples[frame*clip.Channels+ch]
			}
		}
		offset += clip.Channels
	}
	return &pcm.Clip{Channels: totalChannels, Samples: out}
}
