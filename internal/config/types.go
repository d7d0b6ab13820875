// Package config resolves, parses, validates, and persists vibemic settings.
package config

// Config is the fully materialized runtime configuration used by vibemic.
type Config struct {
	Hotkey       string
	CancelKey    string
	NoEnterKey   string
	Mode         string
	AfterAction  string
	WindowTarget string

	Model    string
	ModelDir string
	Language string

	Audio  AudioConfig
	Deafen string

	Paste   PasteConfig
	TypeCmd CommandConfig

	Notify bool
	Debug  DebugConfig
}

// AudioConfig controls preferred and fallback input-source selection.
type AudioConfig struct {
	Input    string
	Fallback string
}

// PasteConfig controls the clipboard injection path.
type PasteConfig struct {
	Shortcut string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// DebugConfig controls optional debug artifact output.
type DebugConfig struct {
	AudioDump bool
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

// Recording modes.
const (
	ModePush   = "push"
	ModeToggle = "toggle"
)

// Post-injection actions.
const (
	AfterEnter   = "enter"
	AfterNothing = "nothing"
)

// Injection targets.
const (
	TargetOriginal = "original"
	TargetActive   = "active"
)

// Deafen modes for system playback while recording.
const (
	DeafenOff  = "off"
	DeafenHalf = "half"
	DeafenOn   = "on"
)

// Models lists supported whisper model sizes, smallest first.
var Models = []string{"tiny", "base", "small", "medium", "large"}

// ValidModel reports whether name is a supported model size.
func ValidModel(name string) bool {
	for _, m := range Models {
		if m == name {
			return true
		}
	}
	return false
}
