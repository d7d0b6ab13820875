package hypr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ActiveWindow contains the fields needed for injection targeting.
type ActiveWindow struct {
	Address string `json:"address"`
	Class   string `json:"class"`
	Title   string `json:"title"`
}

// QueryActiveWindow fetches and validates the active-window contract from hyprctl.
func QueryActiveWindow(ctx context.Context) (ActiveWindow, error) {
	output, err := runHyprctlOutput(ctx, "-j", "activewindow")
	if err != nil {
		return ActiveWindow{}, err
	}

	var window ActiveWindow
	if err := json.Unmarshal(output, &window); err != nil {
		return ActiveWindow{}, fmt.Errorf("decode hyprctl activewindow json: %w", err)
	}
	window.Address = strings.TrimSpace(window.Address)
	window.Class = strings.TrimSpace(window.Class)
	if window.Address == "" {
		return ActiveWindow{}, fmt.Errorf("hyprctl activewindow returned empty address")
	}
	return window, nil
}

// FocusWindow re-activates the window with the given address.
func FocusWindow(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("focuswindow requires a window address")
	}
	return runHyprctl(ctx, "--quiet", "dispatch", "focuswindow", "address:"+address)
}

// SendShortcut sends a shortcut to the window with the given address.
// The shortcut uses hyprctl MOD,KEY syntax; an empty address targets the
// currently focused window.
func SendShortcut(ctx context.Context, shortcut string, address string) error {
	shortcut = strings.TrimSpace(shortcut)
	if shortcut == "" {
		return fmt.Errorf("sendshortcut requires a non-empty shortcut")
	}

	payload := shortcut
	if address = strings.TrimSpace(address); address != "" {
		payload = fmt.Sprintf("%s,address:%s", shortcut, address)
	}
	return runHyprctl(ctx, "--quiet", "dispatch", "sendshortcut", payload)
}
