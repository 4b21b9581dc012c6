package main

import (
	"log/slog"
	"strings"
	"sync"

	"gifify/internal/config"
	"gifify/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
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

// logger builds a logger from config, optionally forcing debug level when the
// user asked for verbose output.
func (c *commandContext) logger(verbose bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		adjusted := *cfg
		adjusted.Logging.Level = "debug"
		cfg = &adjusted
	}
	return logging.NewFromConfig(cfg)
}
