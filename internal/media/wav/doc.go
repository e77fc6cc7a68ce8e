// Package wav reads and writes 16-bit PCM RIFF/WAVE files and interleaves
// per-bus clips into one N-channel composite. Lossy formats never pass
// through here; ffmpeg decodes those to PCM first.
package wav
