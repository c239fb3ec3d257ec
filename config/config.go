// Package config reads the TOML settings shared by the command line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/echoflaresat/colorpick/colors"
)

// Config holds user defaults. Command line flags override it.
//
//	space = "oklch"
//	swatch = true
//	history_size = 32
//	workers = 8
type Config struct {
	// Space is the target space when none is given on the command line.
	Space string `toml:"space"`
	// Swatch prints a true-color block next to the converted text.
	Swatch bool `toml:"swatch"`
	// HistorySize bounds the recent colors list.
	HistorySize int `toml:"history_size"`
	// Workers limits parallel conversions in colorbatch; 0 means one per CPU.
	Workers int `toml:"workers"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Space:       colors.SpaceRGB.String(),
		Swatch:      true,
		HistorySize: 16,
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join("~", ".config", "colorpick", "config.toml")
}

// Load reads path over Default. A leading "~" is expanded; an empty path
// means DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	full, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", path, err)
	}

	cfg := Default()
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		colors.Logger().Debug("no config file, using defaults", "path", full)
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", full, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", full, err)
	}
	return cfg, nil
}

// Validate checks values a TOML decoder cannot.
func (c Config) Validate() error {
	if _, err := colors.ParseSpace(c.Space); err != nil {
		return err
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// TargetSpace is the parsed Space.
func (c Config) TargetSpace() colors.Space {
	s, err := colors.ParseSpace(c.Space)
	if err != nil {
		return colors.SpaceRGB
	}
	return s
}

// Save writes c to path as TOML, creating parent directories.
func (c Config) Save(path string) error {
	full, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %s: %w", path, err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
