package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAssembly(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.AssetDir == "" {
		return errors.New("paths.asset_dir must be set")
	}
	return nil
}

func (c *Config) validateAssembly() error {
	if c.Assembly.SFXBuses < 1 {
		return fmt.Errorf("assembly.sfx_buses must be at least 1, got %d", c.Assembly.SFXBuses)
	}
	if c.Assembly.SFXBuses > 32 {
		return fmt.Errorf("assembly.sfx_buses must be at most 32, got %d", c.Assembly.SFXBuses)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
