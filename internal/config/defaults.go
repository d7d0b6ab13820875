package config

// Default returns the canonical runtime configuration used when no settings
// file is present.
func Default() Config {
	return Config{
		Hotkey:       "f2",
		CancelKey:    "f3",
		NoEnterKey:   "f4",
		Mode:         ModePush,
		AfterAction:  AfterEnter,
		WindowTarget: TargetOriginal,
		Model:        "small",
		ModelDir:     "",
		Language:     "en",
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Deafen: DeafenOff,
		Paste:  PasteConfig{Shortcut: "CTRL,V"},
		Notify: true,
		Debug:  DebugConfig{},
	}
}
