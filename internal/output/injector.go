// Package output injects transcripts into the target window, restoring
// focus and clipboard state around the injection.
package output

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/0patrik/Vibe-code-mic/internal/config"
)

// Dispatcher abstracts the compositor operations injection needs.
type Dispatcher interface {
	ActiveWindow(ctx context.Context) (string, error)
	FocusWindow(ctx context.Context, address string) error
	SendShortcut(ctx context.Context, shortcut string, address string) error
}

// Clipboard abstracts system clipboard access.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// enterShortcut is a bare Return press in hyprctl MOD,KEY syntax.
const enterShortcut = ",Return"

// Injector applies transcript commit side effects.
type Injector struct {
	cfg    config.Config
	logger *slog.Logger
	disp   Dispatcher
	clip   Clipboard

	// settleDelay gives the target application time to read the clipboard
	// before the previous contents are restored.
	settleDelay time.Duration
}

// NewInjector builds an injector wired to hyprctl and the system clipboard.
func NewInjector(cfg config.Config, logger *slog.Logger) *Injector {
	return &Injector{
		cfg:         cfg,
		logger:      logger,
		disp:        hyprDispatcher{},
		clip:        systemClipboard{},
		settleDelay: 150 * time.Millisecond,
	}
}

// Commit injects the transcript into the resolved target window and
// optionally presses Enter afterwards.
func (inj *Injector) Commit(ctx context.Context, transcript string, startAddress string, pressEnter bool) error {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}

	target, err := inj.resolveTarget(ctx, startAddress)
	if err != nil {
		return err
	}

	if len(inj.cfg.TypeCmd.Argv) > 0 {
		if err := runCommandWithInput(ctx, inj.cfg.TypeCmd.Argv, transcript); err != nil {
			return fmt.Errorf("type_cmd: %w", err)
		}
	} else {
		if err := inj.pasteViaClipboard(ctx, transcript, target); err != nil {
			return err
		}
	}

	if pressEnter {
		if err := inj.disp.SendShortcut(ctx, enterShortcut, target); err != nil {
			inj.logWarn("enter dispatch failed; text was injected", err)
		}
	}
	return nil
}

// resolveTarget picks the injection window per window_target policy and
// refocuses the recording-start window when focus has moved away from it.
func (inj *Injector) resolveTarget(ctx context.Context, startAddress string) (string, error) {
	current, queryErr := inj.activeWindowWithRetry(ctx, 5, 10*time.Millisecond)

	if inj.cfg.WindowTarget == config.TargetOriginal && startAddress != "" {
		if queryErr == nil && current == startAddress {
			return startAddress, nil
		}
		if err := inj.disp.FocusWindow(ctx, startAddress); err != nil {
			return "", fmt.Errorf("refocus original window %s: %w", startAddress, err)
		}
		return startAddress, nil
	}

	if queryErr != nil {
		return "", fmt.Errorf("resolve active window: %w", queryErr)
	}
	return current, nil
}

// pasteViaClipboard swaps the transcript into the clipboard, dispatches the
// paste shortcut, and restores the previous clipboard contents.
func (inj *Injector) pasteViaClipboard(ctx context.Context, transcript string, target string) error {
	previous, readErr := inj.clip.Read()
	if readErr != nil {
		inj.logWarn("clipboard read failed; previous contents will not be restored", readErr)
	}

	if err := inj.clip.Write(transcript); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}
	if readErr == nil {
		defer func() {
			if err := inj.clip.Write(previous); err != nil {
				inj.logWarn("clipboard restore failed", err)
			}
		}()
	}

	if err := inj.disp.SendShortcut(ctx, inj.cfg.Paste.Shortcut, target); err != nil {
		return fmt.Errorf("dispatch paste shortcut: %w", err)
	}

	inj.settle(ctx)
	return nil
}

func (inj *Injector) activeWindowWithRetry(ctx context.Context, attempts int, delay time.Duration) (string, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		address, err := inj.disp.ActiveWindow(ctx)
		if err == nil {
			return address, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", lastErr
}

func (inj *Injector) settle(ctx context.Context) {
	if inj.settleDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(inj.settleDelay):
	}
}

func (inj *Injector) logWarn(message string, err error) {
	if inj.logger == nil {
		return
	}
	inj.logger.Warn(message, "error", err.Error())
}
