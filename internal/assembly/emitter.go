package assembly

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"cuemix/internal/media/pcm"
	"cuemix/internal/media/wav"
	"cuemix/internal/timeline"
)

const (
	lockFileName     = ".cuemix.lock"
	metadataFileName = "metadata.json"
)

// Emitter writes an assembly's outputs into a directory: one stem per bus,
// the interleaved composite, optionally a stereo preview, and the metadata
// record. Any write failure aborts the emit; partial files from a failed run
// are not cleaned up, but the absence of metadata.json marks the run as
// incomplete.
type Emitter struct {
	OutDir       string
	WritePreview bool
	Logger       *slog.Logger
}

// Emit renders the bus mixes to disk and completes the metadata record.
// The directory is guarded with a file lock so two processes cannot
// interleave their stem numbering.
func (e *Emitter) Emit(md *Metadata, mixes []*BusMix) error {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(e.OutDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock output directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrOutputLocked, e.OutDir)
	}
	defer func() { _ = lock.Unlock() }()

	clips := make([]*pcm.Clip, 0, len(mixes))
	for _, mix := range mixes {
		clip := mix.Buffer.Render()
		clips = append(clips, clip)

		name, err := e.stemName(mix)
		if err != nil {
			return err
		}
		path := filepath.Join(e.OutDir, name)
		if err := wav.WriteFile(path, clip); err != nil {
			return fmt.Errorf("emit stem %s: %w", mix.Bus.ID, err)
		}
		e.Logger.Info("stem written",
			slog.String("bus", string(mix.Bus.ID)),
			slog.String("file", name),
			slog.Int("markers", mix.Placed))

		md.Stems = append(md.Stems, StemRecord{
			Bus:      mix.Bus.ID,
			File:     name,
			Channels: mix.Bus.Channels,
			Markers:  mix.Placed,
		})
		md.Assets = append(md.Assets, mix.Assets...)
		md.Skipped = append(md.Skipped, mix.Skipped...)
	}

	composite := wav.Interleave(clips...)
	compositeName := fmt.Sprintf("%s_%dch.wav", sanitize(md.TemplateID), composite.Channels)
	if err := wav.WriteFile(filepath.Join(e.OutDir, compositeName), composite); err != nil {
		return fmt.Errorf("emit composite: %w", err)
	}
	md.CompositeFile = compositeName
	e.Logger.Info("composite written",
		slog.String("file", compositeName),
		slog.Int("channels", composite.Channels))

	if e.WritePreview {
		previewName := fmt.Sprintf("%s_preview.wav", sanitize(md.TemplateID))
		if err := wav.WriteFile(filepath.Join(e.OutDir, previewName), previewMix(clips, md.DurationMs)); err != nil {
			return fmt.Errorf("emit preview: %w", err)
		}
		md.PreviewFile = previewName
		e.Logger.Info("preview written", slog.String("file", previewName))
	}

	if err := md.WriteFile(filepath.Join(e.OutDir, metadataFileName)); err != nil {
		return err
	}
	return nil
}

// previewMix folds every stem into a single stereo clip for quick auditions.
// Summation matches the bus mixer: overlaps add and clamp only on render.
func previewMix(clips []*pcm.Clip, durationMs int64) *pcm.Clip {
	buf := pcm.NewBuffer(2, durationMs)
	for _, clip := range clips {
		stereo, err := clip.Coerce(2)
		if err != nil {
			continue
		}
		_ = buf.Overlay(stereo, 0)
	}
	return buf.Render()
}

var stemPrefixes = map[timeline.MarkerType]string{
	timeline.TypeMusic: "MUS",
	timeline.TypeSFX:   "SFX",
	timeline.TypeVoice: "VOX",
}

// stemName builds the stem filename: a type prefix, a five-digit sequence
// number continuing from whatever already sits in the output directory, and
// a sanitized description from the first contributing marker.
func (e *Emitter) stemName(mix *BusMix) (string, error) {
	prefix, ok := stemPrefixes[mix.Bus.Type]
	if !ok {
		return "", fmt.Errorf("bus %s: %w: %q", mix.Bus.ID, timeline.ErrInvalidMarkerType, mix.Bus.Type)
	}

	desc := sanitize(mix.Label)
	if desc == "" {
		desc = sanitize(string(mix.Bus.ID))
	}

	next, err := nextStemIndex(e.OutDir, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%05d_%s.wav", prefix, next, desc), nil
}

var stemIndexPattern = regexp.MustCompile(`^(MUS|SFX|VOX)_(\d{5})_.*\.wav$`)

func nextStemIndex(dir, prefix string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("scan output directory: %w", err)
	}
	max := 0
	for _, entry := range entries {
		match := stemIndexPattern.FindStringSubmatch(entry.Name())
		if match == nil || match[1] != prefix {
			continue
		}
		n, err := strconv.Atoi(match[2])
		if err == nil && n > max {
			max = n
		}
	}
	return max + 1, nil
}

var nonWordPattern = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// sanitize reduces a free-form marker name to a filesystem-safe slug.
func sanitize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = nonWordPattern.ReplaceAllString(name, "")
	name = strings.Trim(name, "_-")
	const maxLen = 48
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return name
}
