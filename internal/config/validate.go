package config

import (
	"errors"
	"fmt"

	"gifify/internal/gifbuild"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateUI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDefaults() error {
	if c.Defaults.FPS <= 0 {
		return errors.New("defaults.fps must be positive")
	}
	if c.Defaults.Colors < 2 || c.Defaults.Colors > 256 {
		return errors.New("defaults.colors must be between 2 and 256")
	}
	if _, err := gifbuild.ParseDither(c.Defaults.Dither); err != nil {
		return fmt.Errorf("defaults.dither %q: %w", c.Defaults.Dither, err)
	}
	if c.Defaults.Loop < 0 {
		return errors.New("defaults.loop must be zero or positive")
	}
	return nil
}

func (c *Config) validateUI() error {
	if c.UI.MaxUploadMiB < 0 {
		return errors.New("ui.max_upload_mib must be positive")
	}
	if c.UI.HistoryLimit < 0 {
		return errors.New("ui.history_limit must be positive")
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
