package output

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/0patrik/Vibe-code-mic/internal/hypr"
)

// hyprDispatcher routes dispatcher calls to hyprctl.
type hyprDispatcher struct{}

func (hyprDispatcher) ActiveWindow(ctx context.Context) (string, error) {
	window, err := hypr.QueryActiveWindow(ctx)
	if err != nil {
		return "", err
	}
	return window.Address, nil
}

func (hyprDispatcher) FocusWindow(ctx context.Context, address string) error {
	return hypr.FocusWindow(ctx, address)
}

func (hyprDispatcher) SendShortcut(ctx context.Context, shortcut string, address string) error {
	return hypr.SendShortcut(ctx, shortcut, address)
}

// systemClipboard routes clipboard calls to the platform clipboard
// (wl-copy/wl-paste on Wayland).
type systemClipboard struct{}

func (systemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

// runCommandWithInput executes argv and writes input to its stdin.
func runCommandWithInput(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return fmt.Errorf("command argv cannot be empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open stdin for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("start command %s: %w", argv[0], err)
	}

	if input != "" {
		if _, err := stdin.Write([]byte(input)); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return fmt.Errorf("write stdin for %s: %w", argv[0], err)
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait for %s: %w", argv[0], err)
	}
	return nil
}
