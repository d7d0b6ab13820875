// Package doctor runs runtime readiness diagnostics for settings, tools,
// audio, and the speech model.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/0patrik/Vibe-code-mic/internal/audio"
	"github.com/0patrik/Vibe-code-mic/internal/config"
	"github.com/0patrik/Vibe-code-mic/internal/hotkey"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/settings/runtime checks for loaded settings.
func Run(cfg config.Loaded) Report {
	checks := []Check{{
		Name:    "settings",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	}}

	checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), "wayland")
	}, "session type is wayland", "expected XDG_SESSION_TYPE=wayland"))

	checks = append(checks, checkEnv("HYPRLAND_INSTANCE_SIGNATURE", func(v string) bool {
		return strings.TrimSpace(v) != ""
	}, "Hyprland session detected", "HYPRLAND_INSTANCE_SIGNATURE is empty"))

	checks = append(checks, checkBinary("hyprctl", "required for window targeting and paste dispatch"))

	if cfg.Config.Deafen != config.DeafenOff {
		checks = append(checks, checkBinary("pactl", "required for deafen_while_recording"))
	}

	if len(cfg.Config.TypeCmd.Argv) > 0 {
		checks = append(checks, checkBinary(cfg.Config.TypeCmd.Argv[0], "type_cmd is configured"))
	} else {
		checks = append(checks, checkBinary("wl-copy", "clipboard injection path"))
		checks = append(checks, checkBinary("wl-paste", "clipboard restore path"))
	}

	checks = append(checks, checkKeySpecs(cfg.Config))
	checks = append(checks, checkModelFile(cfg.Config))
	checks = append(checks, checkAudioSelection(cfg.Config))

	return Report{Checks: checks}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	if predicate(os.Getenv(name)) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkKeySpecs parses every configured key binding.
func checkKeySpecs(cfg config.Config) Check {
	specs := map[string]string{
		"hotkey":       cfg.Hotkey,
		"cancel_key":   cfg.CancelKey,
		"no_enter_key": cfg.NoEnterKey,
	}
	for name, spec := range specs {
		if spec == "" && name != "hotkey" {
			continue
		}
		if _, err := hotkey.ParseBinding(spec); err != nil {
			return Check{Name: "keys", Pass: false, Message: fmt.Sprintf("%s: %v", name, err)}
		}
	}
	return Check{Name: "keys", Pass: true, Message: "all key specs parse"}
}

// checkModelFile verifies the resolved ggml model file is present.
func checkModelFile(cfg config.Config) Check {
	path, err := cfg.ModelPath()
	if err != nil {
		return Check{Name: "model", Pass: false, Message: err.Error()}
	}
	if _, err := os.Stat(path); err != nil {
		return Check{Name: "model", Pass: false, Message: fmt.Sprintf("model file %q is not readable: %v", path, err)}
	}
	return Check{Name: "model", Pass: true, Message: fmt.Sprintf("found %q", path)}
}

// checkAudioSelection runs live device selection to surface selection/fallback issues.
func checkAudioSelection(cfg config.Config) Check {
	selection, err := audio.SelectDevice(context.Background(), cfg.Audio.Input, cfg.Audio.Fallback)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}
