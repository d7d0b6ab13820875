package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Save writes cfg back to path as commented JSON5 so the file stays
// self-documenting after programmatic rebinding.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("settings path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ensure settings dir: %w", err)
	}

	content := renderSettings(cfg)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings %q: %w", path, err)
	}
	return nil
}

func renderSettings(cfg Config) string {
	var b strings.Builder

	b.WriteString("{\n")
	section := func(comment ...string) {
		for _, line := range comment {
			b.WriteString("  // " + line + "\n")
		}
	}
	entry := func(key string, value string) {
		b.WriteString(fmt.Sprintf("  %q: %s,\n\n", key, value))
	}
	q := strconv.Quote

	section(
		"Global hotkey to start/stop recording",
		`Examples: "f2", "f5", "ctrl+shift+d"`,
	)
	entry("hotkey", q(cfg.Hotkey))

	section(`Recording mode: "push" (hold to record) or "toggle" (press to start/stop)`)
	entry("mode", q(cfg.Mode))

	section(
		"What happens after the transcription is injected",
		`"enter" = press Enter key (send message), "nothing" = just type the text`,
	)
	entry("after_action", q(cfg.AfterAction))

	section(
		"Where to type the transcription",
		`"original" = window focused when recording started, "active" = currently focused window`,
	)
	entry("window_target", q(cfg.WindowTarget))

	section(
		`Whisper model size: "tiny", "base", "small", "medium", "large"`,
		"Larger models are more accurate but slower and use more RAM",
	)
	entry("model", q(cfg.Model))

	section("Directory holding ggml-<model>.bin files (empty = XDG data dir)")
	entry("model_dir", q(cfg.ModelDir))

	section(`Spoken language hint for the model ("auto" to detect)`)
	entry("language", q(cfg.Language))

	section("Audio input device name (substring match against PulseAudio sources)")
	entry("device_name", q(cfg.Audio.Input))

	section("Fallback device when the preferred input is unavailable or muted")
	entry("audio_fallback", q(cfg.Audio.Fallback))

	section("Cancel key: discards the current recording")
	entry("cancel_key", q(cfg.CancelKey))

	section("Stop-without-Enter key: injects the text but skips the Enter press")
	entry("no_enter_key", q(cfg.NoEnterKey))

	section(
		"Deafen system audio while recording to avoid picking up playback",
		`"off", "half" (halve volume), or "on" (mute)`,
	)
	entry("deafen_while_recording", q(cfg.Deafen))

	section("hyprctl sendshortcut payload used to paste the transcript")
	entry("paste_shortcut", q(cfg.Paste.Shortcut))

	section("Optional external typing command; transcript is piped to stdin")
	entry("type_cmd", q(cfg.TypeCmd.Raw))

	section("Desktop notifications on state changes")
	entry("notify", strconv.FormatBool(cfg.Notify))

	section("Dump captured audio as WAV files for debugging")
	b.WriteString(fmt.Sprintf("  %q: %s\n", "debug_audio_dump", strconv.FormatBool(cfg.Debug.AudioDump)))

	b.WriteString("}\n")
	return b.String()
}
