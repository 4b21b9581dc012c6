package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDefaults()
	c.normalizeTools()
	c.normalizeUI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.UIBind) == "" {
		c.Paths.UIBind = defaultUIBind
	}
	c.Paths.UIBind = strings.TrimSpace(c.Paths.UIBind)
	return nil
}

func (c *Config) normalizeDefaults() {
	if c.Defaults.FPS == 0 {
		c.Defaults.FPS = defaultFPS
	}
	if c.Defaults.Colors == 0 {
		c.Defaults.Colors = defaultColors
	}
	if strings.TrimSpace(c.Defaults.Dither) == "" {
		c.Defaults.Dither = defaultDither
	}
	c.Defaults.Dither = strings.ToLower(strings.TrimSpace(c.Defaults.Dither))
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	if strings.TrimSpace(c.Tools.Gifsicle) == "" {
		c.Tools.Gifsicle = defaultGifsicle
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.Gifsicle = strings.TrimSpace(c.Tools.Gifsicle)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
}

func (c *Config) normalizeUI() {
	if c.UI.MaxUploadMiB == 0 {
		c.UI.MaxUploadMiB = defaultMaxUploadMiB
	}
	if c.UI.HistoryLimit == 0 {
		c.UI.HistoryLimit = defaultHistoryLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
