// Package config loads, normalizes, and validates Cuemix configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CUEMIX_OUTPUT_DIR. The Config type centralizes every knob the CLI and the
// assembly engine need: output/asset/log directories, the sfx bus count,
// ffmpeg/ffprobe binaries, and the history database location.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
