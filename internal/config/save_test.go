package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Hotkey = "f9"
	cfg.Mode = ModeToggle
	cfg.Model = "medium"
	cfg.Deafen = DeafenHalf
	cfg.Audio.Input = "usb mic"
	cfg.Notify = false

	path := filepath.Join(t.TempDir(), "settings.json5")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Exists)
	assert.Equal(t, cfg, loaded.Config)
}

func TestSaveWritesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json5")
	require.NoError(t, Save(path, Default()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "// Global hotkey to start/stop recording")
	assert.Contains(t, string(content), "// Recording mode:")
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json5")
	require.NoError(t, Save(path, Default()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json5")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.Exists)
	assert.Equal(t, Default(), loaded.Config)
	require.Len(t, loaded.Warnings, 1)
	assert.Contains(t, loaded.Warnings[0].Message, "not found")
}
