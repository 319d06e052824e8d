// Package config loads the demo runtime's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowSpec sizes the demo window.
type WindowSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the demo runtime configuration. The override core itself never
// reads config; everything here feeds the demo host and the script runtime.
type Config struct {
	Window          WindowSpec `yaml:"window"`
	ScriptDir       string     `yaml:"script_dir"`
	BlackoutAtStart bool       `yaml:"blackout_at_start"`
	LogLevel        string     `yaml:"log_level"`

	// LightParentOffset overrides the byte offset of the owning-entity
	// pointer inside the light entity record. Zero means use the host
	// layout's own offset. Only useful against a host build with a shifted
	// layout.
	LightParentOffset uint64 `yaml:"light_parent_offset"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window:          WindowSpec{Width: 1280, Height: 720},
		ScriptDir:       "scripts",
		BlackoutAtStart: true,
		LogLevel:        "info",
	}
}

// Load reads a config file, filling unset fields from Default. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	if cfg.Window.Width <= 0 {
		cfg.Window.Width = Default().Window.Width
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = Default().Window.Height
	}
	if cfg.ScriptDir == "" {
		cfg.ScriptDir = Default().ScriptDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}

	return cfg, nil
}
