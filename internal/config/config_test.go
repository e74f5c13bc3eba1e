package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultScale, cfg.Scale)
	require.Equal(t, DefaultKeyBindings(), cfg.KeyBindings)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Config{
		Scale:         5,
		LogComponents: []string{"cpu", "ppu"},
		KeyBindings: map[string]string{
			"a": "K",
			"b": "J",
		},
		MapperOverride: map[string]string{
			"HOMEBREW": "mbc5",
		},
	}

	require.NoError(t, Save(path, cfg))
	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, loaded.Scale)
	require.Equal(t, []string{"cpu", "ppu"}, loaded.LogComponents)
	require.Equal(t, "K", loaded.KeyBindings["a"])
	require.Equal(t, "mbc5", loaded.MapperOverride["HOMEBREW"])
}

func TestLoadPartialFileFillsScaleDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_components = ["apu"]`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultScale, cfg.Scale)
	require.Equal(t, []string{"apu"}, cfg.LogComponents)
}
