// Package assets resolves a marker's current-version audio into decoded PCM.
//
// The engine depends on the Resolver interface rather than a fixed directory
// layout so assemblies are testable with in-memory fixtures. The production
// implementation probes files with ffprobe (distinguishing missing from
// corrupt assets) and decodes them with ffmpeg to the system sample rate.
package assets
