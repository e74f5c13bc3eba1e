// Package config loads cmd/emulator's host settings from a TOML file:
// display scale, key bindings, which debug components to log, and a
// per-cartridge mapper override for ROMs whose header lies about their
// own type.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk settings document. Fields left zero-valued by a
// partial file fall back to the matching Default* constant.
type Config struct {
	Scale         int               `toml:"scale"`
	LogComponents []string          `toml:"log_components"`
	KeyBindings   map[string]string `toml:"key_bindings"`
	MapperOverride map[string]string `toml:"mapper_override"`
}

// DefaultScale is the integer window scale used when no config file, or
// no scale entry, is present.
const DefaultScale = 3

// DefaultKeyBindings names one SDL scancode per joypad button, matching
// internal/ui's built-in keymap.
func DefaultKeyBindings() map[string]string {
	return map[string]string{
		"right":  "Right",
		"left":   "Left",
		"up":     "Up",
		"down":   "Down",
		"a":      "Z",
		"b":      "X",
		"select": "RShift",
		"start":  "Return",
	}
}

// Default returns a Config populated entirely from built-in defaults.
func Default() Config {
	return Config{
		Scale:       DefaultScale,
		KeyBindings: DefaultKeyBindings(),
	}
}

// Load reads a TOML config file at path, filling in any field the file
// omits with its default. A missing file is not an error: Load returns
// Default() unchanged, matching a fresh install with no config yet.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var onDisk Config
	if _, err := toml.Decode(string(data), &onDisk); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if onDisk.Scale > 0 {
		cfg.Scale = onDisk.Scale
	}
	if len(onDisk.KeyBindings) > 0 {
		cfg.KeyBindings = onDisk.KeyBindings
	}
	if onDisk.LogComponents != nil {
		cfg.LogComponents = onDisk.LogComponents
	}
	if onDisk.MapperOverride != nil {
		cfg.MapperOverride = onDisk.MapperOverride
	}

	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories as
// needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// DefaultPath returns the per-user config file location, or "" if the
// host has no usable config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "nitro-core-dx", "config.toml")
}
