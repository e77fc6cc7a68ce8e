// Package ffprobe wraps the ffprobe binary for inspecting marker assets
// before they are decoded: duration, channel count, and whether the file is
// a readable audio container at all. A probe failure distinguishes a corrupt
// asset from a missing one, which the resolver reports differently.
package ffprobe
