// Package app dispatches CLI commands and hosts the dictation daemon.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/0patrik/Vibe-code-mic/internal/asr"
	"github.com/0patrik/Vibe-code-mic/internal/audio"
	"github.com/0patrik/Vibe-code-mic/internal/cli"
	"github.com/0patrik/Vibe-code-mic/internal/config"
	"github.com/0patrik/Vibe-code-mic/internal/doctor"
	"github.com/0patrik/Vibe-code-mic/internal/hotkey"
	"github.com/0patrik/Vibe-code-mic/internal/hypr"
	"github.com/0patrik/Vibe-code-mic/internal/ipc"
	"github.com/0patrik/Vibe-code-mic/internal/logging"
	"github.com/0patrik/Vibe-code-mic/internal/notify"
	"github.com/0patrik/Vibe-code-mic/internal/output"
	"github.com/0patrik/Vibe-code-mic/internal/pipeline"
	"github.com/0patrik/Vibe-code-mic/internal/session"
	"github.com/0patrik/Vibe-code-mic/internal/version"
)

const binaryName = "vibemic"

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText(binaryName))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText(binaryName))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.SettingsPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load settings failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("settings warning", "line", w.Line, "message", w.Message)
	}

	cfgLoaded, err = applyOverrides(cfgLoaded, parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("invalid settings override", "error", err.Error())
		return 1
	}

	logger.Info("command start",
		"command", parsed.Command,
		"settings", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandRun:
		return r.commandRun(ctx, cfgLoaded, logger)
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandStop:
		return r.forwardOrFail(ctx, "stop")
	case cli.CommandCancel:
		return r.forwardOrFail(ctx, "cancel")
	case cli.CommandToggle:
		return r.forwardOrFail(ctx, "toggle")
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// applyOverrides folds CLI flag overrides into loaded settings and re-validates.
func applyOverrides(loaded config.Loaded, parsed cli.Parsed) (config.Loaded, error) {
	cfg := loaded.Config
	if parsed.Model != "" {
		cfg.Model = parsed.Model
	}
	if parsed.Hotkey != "" {
		cfg.Hotkey = parsed.Hotkey
	}
	if parsed.Mode != "" {
		cfg.Mode = parsed.Mode
	}
	if parsed.Device != "" {
		cfg.Audio.Input = parsed.Device
	}

	warnings, err := config.Validate(cfg)
	if err != nil {
		return config.Loaded{}, err
	}
	loaded.Config = cfg
	loaded.Warnings = append(loaded.Warnings, warnings...)
	return loaded, nil
}

// commandRun hosts the long-running daemon: single-instance socket, whisper
// engine, global hotkeys, and the session loop.
func (r Runner) commandRun(ctx context.Context, cfgLoaded config.Loaded, logger *slog.Logger) int {
	cfg := cfgLoaded.Config

	if !cfgLoaded.Exists {
		if err := config.Save(cfgLoaded.Path, cfg); err != nil {
			logger.Warn("write default settings failed", "path", cfgLoaded.Path, "error", err.Error())
		} else {
			fmt.Fprintf(r.Stderr, "wrote default settings to %s\n", cfgLoaded.Path)
		}
	}

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: vibemic daemon already running")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	modelPath, err := cfg.ModelPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	engine, err := asr.LoadEngine(modelPath, cfg.Language)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		fmt.Fprintf(r.Stderr, "download models into %s or set model_dir in settings\n", modelDirHint(cfg))
		logger.Error("load whisper model failed", "path", modelPath, "error", err.Error())
		return 1
	}
	defer engine.Close()
	logger.Info("whisper model loaded", "path", modelPath, "model", cfg.Model)

	keys, err := registerHotkeys(cfg)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		fmt.Fprintln(r.Stderr, "check hotkey/cancel_key/no_enter_key in settings and that no other program grabs them")
		logger.Error("hotkey registration failed", "error", err.Error())
		return 1
	}
	defer keys.Close()

	transcriber := pipeline.NewTranscriber(cfg, engine, logger)
	injector := output.NewInjector(cfg, logger)
	notifier := notify.New(cfg.Notify, logger)
	focuser := session.FocusFunc(func(ctx context.Context) (string, error) {
		window, err := hypr.QueryActiveWindow(ctx)
		if err != nil {
			return "", err
		}
		return window.Address, nil
	})

	controller := session.NewController(logger, transcriber, injector, notifier, focuser, session.Options{
		PushMode:   cfg.Mode == config.ModePush,
		EnterAfter: cfg.AfterAction == config.AfterEnter,
	})

	daemonCtx, daemonCancel := context.WithCancel(ctx)
	defer daemonCancel()

	server := &ipc.Server{Handler: controller, Logger: logger}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Serve(daemonCtx, listener)
	}()
	go keys.Run(daemonCtx)
	go controller.Run(daemonCtx)

	logger.Info("daemon ready",
		"socket", socketPath,
		"hotkey", cfg.Hotkey,
		"mode", cfg.Mode,
		"model", cfg.Model,
	)
	fmt.Fprintf(r.Stdout, "vibemic listening on %s (press %s to dictate)\n", cfg.Hotkey, cfg.Hotkey)

	for {
		select {
		case <-ctx.Done():
			daemonCancel()
			if serverErr := <-serverErrCh; serverErr != nil {
				fmt.Fprintf(r.Stderr, "error: ipc server failed: %v\n", serverErr)
				return 1
			}
			logger.Info("daemon stopped")
			return 0
		case ev := <-keys.Events():
			switch ev.Kind {
			case hotkey.RecordDown:
				controller.Press()
			case hotkey.RecordUp:
				controller.Release()
			case hotkey.CancelTap:
				controller.CancelKey()
			case hotkey.NoEnterTap:
				controller.NoEnterKey()
			}
		}
	}
}

// registerHotkeys parses the configured key specs and grabs them globally.
func registerHotkeys(cfg config.Config) (*hotkey.Listener, error) {
	record, err := hotkey.ParseBinding(cfg.Hotkey)
	if err != nil {
		return nil, fmt.Errorf("hotkey: %w", err)
	}

	var cancel, noEnter *hotkey.Binding
	if cfg.CancelKey != "" {
		binding, err := hotkey.ParseBinding(cfg.CancelKey)
		if err != nil {
			return nil, fmt.Errorf("cancel_key: %w", err)
		}
		cancel = &binding
	}
	if cfg.NoEnterKey != "" {
		binding, err := hotkey.ParseBinding(cfg.NoEnterKey)
		if err != nil {
			return nil, fmt.Errorf("no_enter_key: %w", err)
		}
		noEnter = &binding
	}

	return hotkey.NewListener(record, cancel, noEnter)
}

func modelDirHint(cfg config.Config) string {
	dir, err := config.ResolveModelDir(cfg.ModelDir)
	if err != nil {
		return "$XDG_DATA_HOME/vibemic/models"
	}
	return dir
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "idle")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, "status")
	if handled {
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if resp.State == "" {
			resp.State = "idle"
		}
		fmt.Fprintln(r.Stdout, resp.State)
		return 0
	}

	fmt.Fprintln(r.Stdout, "idle")
	return 0
}

// forwardOrFail relays a control command to the running daemon.
func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, command)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: no running vibemic daemon (start one with: vibemic run)")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

// tryForward sends a command over the control socket. handled is false when
// no daemon owns the socket.
func tryForward(ctx context.Context, socketPath string, command string) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, 220*time.Millisecond)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if ipc.IsSocketMissing(err) || ipc.IsConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}

	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}
