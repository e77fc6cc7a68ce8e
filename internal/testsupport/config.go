package testsupport

import (
	"path/filepath"
	"testing"

	"cuemix/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.AssetDir = filepath.Join(base, "assets")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Enabled = false
	cfg.History.Path = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSFXBuses sets the sfx bus count on the test config.
func WithSFXBuses(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Assembly.SFXBuses = n
	}
}

// WithPreview enables the stereo preview mix on the test config.
func WithPreview() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Assembly.WritePreview = true
	}
}
