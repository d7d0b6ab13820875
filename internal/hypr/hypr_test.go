package hypr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryActiveWindowTrimsFields(t *testing.T) {
	installHyprctlStub(t, `
if [[ "${1:-}" == "-j" && "${2:-}" == "activewindow" ]]; then
  echo '{"address":" 0xabc ","class":" kitty ","title":"shell"}'
  exit 0
fi
`)

	window, err := QueryActiveWindow(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0xabc", window.Address)
	require.Equal(t, "kitty", window.Class)
	require.Equal(t, "shell", window.Title)
}

func TestQueryActiveWindowRejectsEmptyAddress(t *testing.T) {
	installHyprctlStub(t, `
if [[ "${1:-}" == "-j" && "${2:-}" == "activewindow" ]]; then
  echo '{"address":"","class":"kitty"}'
  exit 0
fi
`)

	_, err := QueryActiveWindow(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty address")
}

func TestSendShortcutRequiresNonEmptyShortcut(t *testing.T) {
	err := SendShortcut(context.Background(), " ", "0xabc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-empty shortcut")
}

func TestFocusWindowRequiresAddress(t *testing.T) {
	err := FocusWindow(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires a window address")
}

func TestDispatchPayloads(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "hypr-args.log")
	t.Setenv("HYPR_ARGS_FILE", argsFile)
	installHyprctlStub(t, `
printf '%s\n' "$*" >> "${HYPR_ARGS_FILE}"
`)

	require.NoError(t, SendShortcut(context.Background(), "CTRL,V", "0xabc"))
	require.NoError(t, SendShortcut(context.Background(), ",Return", ""))
	require.NoError(t, FocusWindow(context.Background(), "0xdef"))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "--quiet dispatch sendshortcut CTRL,V,address:0xabc", lines[0])
	require.Equal(t, "--quiet dispatch sendshortcut ,Return", lines[1])
	require.Equal(t, "--quiet dispatch focuswindow address:0xdef", lines[2])
}

func TestSendShortcutReturnsCombinedOutputOnFailure(t *testing.T) {
	installHyprctlStub(t, `
echo 'boom from hyprctl' >&2
exit 1
`)

	err := SendShortcut(context.Background(), "CTRL,V", "0xabc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom from hyprctl")
}

func installHyprctlStub(t *testing.T, body string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "hyprctl")
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}
