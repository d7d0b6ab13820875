package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath applies CLI/XDG/home fallback rules for the settings file.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "vibemic", "settings.json5"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for settings fallback")
	}

	return filepath.Join(home, ".config", "vibemic", "settings.json5"), nil
}

// ResolveModelDir returns the configured model directory, or the XDG data
// fallback when unset.
func ResolveModelDir(configured string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "vibemic", "models"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for model directory fallback")
	}

	return filepath.Join(home, ".local", "share", "vibemic", "models"), nil
}

// ModelPath resolves the on-disk ggml file for the configured model size.
func (c Config) ModelPath() (string, error) {
	dir, err := ResolveModelDir(c.ModelDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ggml-"+c.Model+".bin"), nil
}
