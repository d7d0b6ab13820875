// Package session coordinates dictation lifecycle state, hotkey actions,
// and transcript commit flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/0patrik/Vibe-code-mic/internal/fsm"
	"github.com/0patrik/Vibe-code-mic/internal/ipc"
)

type action int

const (
	actionPress action = iota + 1
	actionRelease
	actionCancel
	actionNoEnter
	actionStop
	actionToggle
)

// Options carries the behavior knobs the controller needs from settings.
type Options struct {
	// PushMode records while the hotkey is held; otherwise presses toggle.
	PushMode bool
	// EnterAfter presses Enter after a normal stop's injection.
	EnterAfter bool
}

// Controller orchestrates session state transitions and side effects for a
// long-running daemon. All lifecycle work happens on the Run goroutine;
// hotkey and IPC callers only enqueue actions.
type Controller struct {
	logger     *slog.Logger
	transcribe Transcriber
	commit     Committer
	notify     Notifier
	focus      Focuser
	opts       Options

	mu           sync.RWMutex
	state        fsm.State
	startAddress string

	actions chan action
}

// NewController constructs a session controller with safe default fallbacks.
func NewController(
	logger *slog.Logger,
	transcriber Transcriber,
	committer Committer,
	notifier Notifier,
	focuser Focuser,
	opts Options,
) *Controller {
	if transcriber == nil {
		transcriber = PlaceholderTranscriber{}
	}
	if committer == nil {
		committer = CommitFunc(func(context.Context, string, string, bool) error { return nil })
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if focuser == nil {
		focuser = FocusFunc(func(context.Context) (string, error) { return "", nil })
	}

	return &Controller{
		logger:     logger,
		transcribe: transcriber,
		commit:     committer,
		notify:     notifier,
		focus:      focuser,
		opts:       opts,
		state:      fsm.StateIdle,
		actions:    make(chan action, 8),
	}
}

// State returns the current FSM state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Press enqueues a record-key press.
func (c *Controller) Press() { c.enqueue(actionPress) }

// Release enqueues a record-key release (meaningful in push mode).
func (c *Controller) Release() { c.enqueue(actionRelease) }

// CancelKey enqueues a cancel-key tap.
func (c *Controller) CancelKey() { c.enqueue(actionCancel) }

// NoEnterKey enqueues a stop-without-Enter tap.
func (c *Controller) NoEnterKey() { c.enqueue(actionNoEnter) }

func (c *Controller) enqueue(a action) {
	select {
	case c.actions <- a:
	default:
		c.logWarn("action queue full; dropping action", "action", int(a))
	}
}

// Run serves session lifecycles until ctx is done. An in-flight recording
// is cancelled on shutdown.
func (c *Controller) Run(ctx context.Context) {
	for {
		// The cap signal only matters while recording; a nil channel
		// blocks forever in the select below.
		var capCh <-chan struct{}
		if c.State() == fsm.StateRecording {
			capCh = c.transcribe.CapReached()
		}

		select {
		case <-ctx.Done():
			if c.State() == fsm.StateRecording {
				_ = c.transcribe.Cancel(context.Background())
				_ = c.transition(fsm.EventCancel)
			}
			return
		case <-capCh:
			c.logInfo("recording cap reached; stopping")
			c.finish(ctx, c.opts.EnterAfter)
		case a := <-c.actions:
			c.dispatch(ctx, a)
		}
	}
}

func (c *Controller) dispatch(ctx context.Context, a action) {
	state := c.State()

	switch a {
	case actionPress:
		switch state {
		case fsm.StateIdle:
			c.begin(ctx)
		case fsm.StateRecording:
			if !c.opts.PushMode {
				c.finish(ctx, c.opts.EnterAfter)
			}
		case fsm.StateTranscribing:
			// Presses while transcribing are ignored rather than queued.
		}
	case actionRelease:
		if c.opts.PushMode && state == fsm.StateRecording {
			c.finish(ctx, c.opts.EnterAfter)
		}
	case actionToggle:
		switch state {
		case fsm.StateIdle:
			c.begin(ctx)
		case fsm.StateRecording:
			c.finish(ctx, c.opts.EnterAfter)
		}
	case actionStop:
		if state == fsm.StateRecording {
			c.finish(ctx, c.opts.EnterAfter)
		}
	case actionCancel:
		if state == fsm.StateRecording {
			c.cancelActive(ctx)
		}
	case actionNoEnter:
		if state == fsm.StateRecording {
			c.finish(ctx, false)
		}
	}
}

// begin captures the focused window and starts audio capture.
func (c *Controller) begin(ctx context.Context) {
	address, err := c.focus.ActiveWindowAddress(ctx)
	if err != nil {
		c.logWarn("active window query failed; will inject into focused window", "error", err.Error())
		address = ""
	}

	if err := c.transition(fsm.EventStart); err != nil {
		c.logError("start transition rejected", err)
		return
	}

	if err := c.transcribe.Start(ctx); err != nil {
		c.notify.Failed("Unable to start recording")
		_ = c.transition(fsm.EventAbort)
		c.logError("recording start failed", err)
		return
	}

	c.setStartAddress(address)
	c.notify.Recording()
	c.logInfo("recording started", "window", address)
}

// finish stops capture, transcribes, and commits the result.
func (c *Controller) finish(ctx context.Context, pressEnter bool) {
	if err := c.transition(fsm.EventStop); err != nil {
		c.logError("stop transition rejected", err)
		return
	}
	c.notify.Transcribing()

	stopResult, err := c.transcribe.StopAndTranscribe(ctx)
	if err != nil {
		c.notify.Failed(failureMessage(err))
		_ = c.transition(fsm.EventAbort)
		c.logSessionError(err, stopResult)
		return
	}

	if strings.TrimSpace(stopResult.Transcript) == "" {
		c.notify.Failed("No speech detected")
		_ = c.transition(fsm.EventAbort)
		c.logSessionError(ErrEmptyTranscript, stopResult)
		return
	}

	if err := c.commit.Commit(ctx, stopResult.Transcript, c.StartAddress(), pressEnter); err != nil {
		c.notify.Failed("Injection failed")
		_ = c.transition(fsm.EventAbort)
		c.logSessionError(fmt.Errorf("commit transcript: %w", err), stopResult)
		return
	}

	c.notify.Committed(stopResult.Transcript)
	_ = c.transition(fsm.EventCommit)
	c.logInfo("session complete",
		"audio_device", stopResult.AudioDevice,
		"bytes_captured", stopResult.BytesCaptured,
		"transcript_length", len(stopResult.Transcript),
		"inference_ms", stopResult.InferenceLatency.Milliseconds(),
		"press_enter", pressEnter,
	)
}

// cancelActive discards the in-flight recording.
func (c *Controller) cancelActive(ctx context.Context) {
	_ = c.transcribe.Cancel(ctx)
	_ = c.transition(fsm.EventCancel)
	c.notify.Cancelled()
	c.logInfo("recording cancelled")
}

// Handle serves IPC commands against the live controller.
func (c *Controller) Handle(_ context.Context, req ipc.Request) ipc.Response {
	state := c.State()

	switch req.Command {
	case "status":
		return ipc.Response{OK: true, State: string(state), Message: "status"}
	case "toggle":
		if state == fsm.StateTranscribing {
			return ipc.Response{OK: false, State: string(state), Error: "busy transcribing"}
		}
		return c.respondEnqueue(actionToggle, state, "toggle requested")
	case "stop":
		if state != fsm.StateRecording {
			return ipc.Response{OK: false, State: string(state), Error: fmt.Sprintf("cannot stop from state %s", state)}
		}
		return c.respondEnqueue(actionStop, state, "stop requested")
	case "cancel":
		if state != fsm.StateRecording {
			return ipc.Response{OK: false, State: string(state), Error: fmt.Sprintf("cannot cancel from state %s", state)}
		}
		return c.respondEnqueue(actionCancel, state, "cancel requested")
	default:
		return ipc.Response{OK: false, State: string(state), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

func (c *Controller) respondEnqueue(a action, state fsm.State, message string) ipc.Response {
	select {
	case c.actions <- a:
		return ipc.Response{OK: true, State: string(state), Message: message}
	default:
		return ipc.Response{OK: true, State: string(state), Message: message + " (queued earlier)"}
	}
}

// transition applies one FSM event to the controller state.
func (c *Controller) transition(event fsm.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fsm.Transition(c.state, event)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// StartAddress returns the window captured at recording start.
func (c *Controller) StartAddress() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startAddress
}

func (c *Controller) setStartAddress(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startAddress = address
}

// failureMessage maps pipeline errors to user-facing notification text.
func failureMessage(err error) string {
	if errors.Is(err, ErrClipTooShort) {
		return "Recording too short"
	}
	return "Speech recognition failed"
}

func (c *Controller) logInfo(message string, args ...any) {
	if c.logger != nil {
		c.logger.Info(message, args...)
	}
}

func (c *Controller) logWarn(message string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(message, args...)
	}
}

func (c *Controller) logError(message string, err error) {
	if c.logger != nil {
		c.logger.Error(message, "error", err.Error())
	}
}

func (c *Controller) logSessionError(err error, stopResult StopResult) {
	if c.logger == nil {
		return
	}
	c.logger.Error("session failed",
		"error", err.Error(),
		"audio_device", stopResult.AudioDevice,
		"bytes_captured", stopResult.BytesCaptured,
		"inference_ms", stopResult.InferenceLatency.Milliseconds(),
	)
}
