// Package pipeline owns the capture -> whisper -> transcript flow for one
// recording at a time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/0patrik/Vibe-code-mic/internal/asr"
	"github.com/0patrik/Vibe-code-mic/internal/audio"
	"github.com/0patrik/Vibe-code-mic/internal/config"
	"github.com/0patrik/Vibe-code-mic/internal/deafen"
	"github.com/0patrik/Vibe-code-mic/internal/session"
	"github.com/0patrik/Vibe-code-mic/internal/transcript"
)

// Transcriber implements session.Transcriber on top of Pulse capture and a
// loaded whisper engine.
type Transcriber struct {
	cfg    config.Config
	logger *slog.Logger
	engine *asr.Engine

	mu        sync.Mutex
	started   bool
	selection audio.Selection
	capture   *audio.Capture
	guard     *deafen.Guard
}

// NewTranscriber constructs a pipeline transcriber around a loaded engine.
func NewTranscriber(cfg config.Config, engine *asr.Engine, logger *slog.Logger) *Transcriber {
	return &Transcriber{cfg: cfg, logger: logger, engine: engine}
}

// Start resolves device selection, engages deafen, and begins capped capture.
func (t *Transcriber) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return fmt.Errorf("transcriber already started")
	}

	selection, err := audio.SelectDevice(ctx, t.cfg.Audio.Input, t.cfg.Audio.Fallback)
	if err != nil {
		return err
	}
	t.selection = selection
	if selection.Warning != "" {
		t.logWarn(selection.Warning)
	}

	guard, err := deafen.Engage(ctx, t.cfg.Deafen)
	if err != nil {
		// Deafen is best effort; recording proceeds with playback audible.
		t.logWarn(fmt.Sprintf("deafen failed: %v", err))
	}
	t.guard = guard

	capture, err := audio.StartCapture(ctx, selection.Device, audio.MaxClipBytes)
	if err != nil {
		_ = guard.Release(ctx)
		t.guard = nil
		return err
	}
	t.capture = capture

	t.started = true
	return nil
}

// CapReached exposes the active capture's cap signal.
func (t *Transcriber) CapReached() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.capture == nil {
		return nil
	}
	return t.capture.CapReached()
}

// StopAndTranscribe stops capture, restores the sink, and runs inference.
func (t *Transcriber) StopAndTranscribe(ctx context.Context) (session.StopResult, error) {
	t.mu.Lock()
	started := t.started
	capture := t.capture
	guard := t.guard
	selection := t.selection
	t.started = false
	t.capture = nil
	t.guard = nil
	t.mu.Unlock()

	if !started || capture == nil {
		return session.StopResult{}, session.ErrPipelineUnavailable
	}

	_ = capture.Stop()
	if err := guard.Release(ctx); err != nil {
		t.logWarn(fmt.Sprintf("restore sink failed: %v", err))
	}

	result := session.StopResult{
		AudioDevice:   describeDevice(selection.Device),
		BytesCaptured: capture.BytesCaptured(),
	}

	pcm := capture.PCM()
	t.dumpDebugAudio(pcm)

	if len(pcm) < audio.MinClipBytes {
		return result, session.ErrClipTooShort
	}

	segments, latency, err := t.engine.Transcribe(ctx, asr.Samples(pcm))
	result.InferenceLatency = latency
	if err != nil {
		return result, fmt.Errorf("transcribe clip: %w", err)
	}

	result.Transcript = transcript.Assemble(segments, transcript.Options{})
	return result, nil
}

// Cancel stops capture and restores the sink without transcribing.
func (t *Transcriber) Cancel(ctx context.Context) error {
	t.mu.Lock()
	capture := t.capture
	guard := t.guard
	t.started = false
	t.capture = nil
	t.guard = nil
	t.mu.Unlock()

	if capture != nil {
		_ = capture.Stop()
		t.dumpDebugAudio(capture.PCM())
	}
	if err := guard.Release(ctx); err != nil {
		t.logWarn(fmt.Sprintf("restore sink failed: %v", err))
	}
	return nil
}

// describeDevice formats device metadata for logs/session results.
func describeDevice(device audio.Device) string {
	description := strings.TrimSpace(device.Description)
	id := strings.TrimSpace(device.ID)
	if description == "" {
		return id
	}
	if id == "" {
		return description
	}
	return fmt.Sprintf("%s (%s)", description, id)
}

func (t *Transcriber) logWarn(message string) {
	if t.logger != nil {
		t.logger.Warn(message)
	}
}
