// Package config loads, normalizes, and validates gifify configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI and web UI need: scratch directories, external tool names, fallback
// conversion parameters, and logging options.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
