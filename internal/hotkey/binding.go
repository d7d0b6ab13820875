// Package hotkey parses key specs and listens for global hotkey events.
package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Binding is one parsed hotkey spec ready for registration.
type Binding struct {
	Raw  string
	Mods []hotkey.Modifier
	Key  hotkey.Key
}

// ParseBinding turns a spec like "f2" or "ctrl+shift+d" into a Binding.
func ParseBinding(spec string) (Binding, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Binding{}, fmt.Errorf("empty key spec")
	}

	parts := strings.Split(strings.ToLower(raw), "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Binding{}, fmt.Errorf("key spec %q has an empty part", spec)
		}
	}

	binding := Binding{Raw: raw}
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierNames[part]
		if !ok {
			return Binding{}, fmt.Errorf("unknown modifier %q in key spec %q", part, spec)
		}
		binding.Mods = append(binding.Mods, mod)
	}

	keyName := parts[len(parts)-1]
	key, ok := keyNames[keyName]
	if !ok {
		return Binding{}, fmt.Errorf("unknown key %q in key spec %q", keyName, spec)
	}
	binding.Key = key

	return binding, nil
}

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.Mod1,
	"super":   hotkey.Mod4,
	"win":     hotkey.Mod4,
	"meta":    hotkey.Mod4,
}

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,

	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"return": hotkey.KeyReturn,
	"esc":    hotkey.KeyEscape,
	"escape": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
}
