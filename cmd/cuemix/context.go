package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cuemix/internal/assets"
	"cuemix/internal/config"
	"cuemix/internal/history"
	"cuemix/internal/logging"
	"cuemix/internal/timeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// resolver builds the production asset resolver from the loaded config.
func (c *commandContext) resolver() (*assets.DirectoryResolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return &assets.DirectoryResolver{
		Dir:     cfg.Paths.AssetDir,
		FFmpeg:  cfg.Tools.FFmpeg,
		FFprobe: cfg.Tools.FFprobe,
	}, nil
}

// openHistory opens the run ledger, or returns nil when history is disabled.
// Callers own the returned store and must close it.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history ledger: %w", err)
	}
	return store, nil
}

// loadTemplate reads a template file, surfacing load-time warnings on stderr
// before any command output.
func loadTemplate(cmd *cobra.Command, path string) (*timeline.Template, error) {
	tpl, warnings, err := timeline.Load(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
	return tpl, nil
}
