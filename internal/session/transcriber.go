package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPipelineUnavailable indicates runtime transcriber wiring is missing.
	ErrPipelineUnavailable = errors.New("audio capture and transcription pipeline not wired")
	// ErrEmptyTranscript indicates stop completed but no usable speech was recognized.
	ErrEmptyTranscript = errors.New("no speech recognized; check microphone input or mute state")
	// ErrClipTooShort indicates the captured clip was below the minimum duration.
	ErrClipTooShort = errors.New("recording too short to transcribe")
)

// StopResult is the transcriber output consumed by the session controller.
type StopResult struct {
	Transcript       string
	AudioDevice      string
	BytesCaptured    int64
	InferenceLatency time.Duration
}

// Transcriber abstracts capture and recognition for session orchestration.
// CapReached exposes the recording cap signal of the active capture; it may
// return nil when nothing is recording.
type Transcriber interface {
	Start(context.Context) error
	StopAndTranscribe(context.Context) (StopResult, error)
	Cancel(context.Context) error
	CapReached() <-chan struct{}
}

// PlaceholderTranscriber is a no-op placeholder used in tests/fallback wiring.
type PlaceholderTranscriber struct{}

func (PlaceholderTranscriber) Start(context.Context) error {
	return nil
}

func (PlaceholderTranscriber) StopAndTranscribe(context.Context) (StopResult, error) {
	return StopResult{}, ErrPipelineUnavailable
}

func (PlaceholderTranscriber) Cancel(context.Context) error {
	return nil
}

func (PlaceholderTranscriber) CapReached() <-chan struct{} {
	return nil
}
