package config

import (
	"fmt"
	"strings"
)

// Validate enforces settings invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if strings.TrimSpace(cfg.Hotkey) == "" {
		return nil, fmt.Errorf("hotkey must not be empty")
	}

	switch cfg.Mode {
	case ModePush, ModeToggle:
	default:
		return nil, fmt.Errorf("mode must be one of: %s, %s", ModePush, ModeToggle)
	}

	switch cfg.AfterAction {
	case AfterEnter, AfterNothing:
	default:
		return nil, fmt.Errorf("after_action must be one of: %s, %s", AfterEnter, AfterNothing)
	}

	switch cfg.WindowTarget {
	case TargetOriginal, TargetActive:
	default:
		return nil, fmt.Errorf("window_target must be one of: %s, %s", TargetOriginal, TargetActive)
	}

	if !ValidModel(cfg.Model) {
		return nil, fmt.Errorf("model must be one of: %s", strings.Join(Models, ", "))
	}

	switch cfg.Deafen {
	case DeafenOff, DeafenHalf, DeafenOn:
	default:
		return nil, fmt.Errorf("deafen_while_recording must be one of: %s, %s, %s", DeafenOff, DeafenHalf, DeafenOn)
	}

	if strings.TrimSpace(cfg.Language) == "" {
		return nil, fmt.Errorf("language must not be empty")
	}

	if cfg.TypeCmd.Raw != "" && len(cfg.TypeCmd.Argv) == 0 {
		return nil, fmt.Errorf("type_cmd is configured but empty")
	}
	if len(cfg.TypeCmd.Argv) == 0 && strings.TrimSpace(cfg.Paste.Shortcut) == "" {
		return nil, fmt.Errorf("paste_shortcut must not be empty when type_cmd is unset")
	}

	if err := checkKeyClash(cfg); err != nil {
		return nil, err
	}

	if cfg.CancelKey == "" {
		warnings = append(warnings, Warning{Message: "cancel_key is empty; recordings cannot be discarded by key"})
	}
	if cfg.NoEnterKey == "" && cfg.AfterAction == AfterEnter {
		warnings = append(warnings, Warning{Message: "no_enter_key is empty; every injection will press Enter"})
	}

	return warnings, nil
}

// checkKeyClash rejects settings where two bindings share a key spec.
func checkKeyClash(cfg Config) error {
	seen := map[string]string{}
	for name, spec := range map[string]string{
		"hotkey":       cfg.Hotkey,
		"cancel_key":   cfg.CancelKey,
		"no_enter_key": cfg.NoEnterKey,
	} {
		spec = strings.ToLower(strings.TrimSpace(spec))
		if spec == "" {
			continue
		}
		if other, dup := seen[spec]; dup {
			// Map iteration order is random; normalize the pair for the message.
			first, second := other, name
			if first > second {
				first, second = second, first
			}
			return fmt.Errorf("%s and %s are both bound to %q", first, second, spec)
		}
		seen[spec] = name
	}
	return nil
}
