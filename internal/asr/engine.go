// Package asr runs local speech recognition through whisper.cpp.
package asr

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Engine wraps one loaded whisper model. Inference is serialized because
// the cgo backend is not safe for concurrent Process calls.
type Engine struct {
	model    whisper.Model
	language string
	path     string

	mu sync.Mutex
}

// LoadEngine loads the ggml model file and prepares it for inference.
// A missing or unreadable model is a startup-fatal condition for callers.
func LoadEngine(modelPath string, language string) (*Engine, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file %q is not readable: %w", modelPath, err)
	}

	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %q: %w", modelPath, err)
	}

	language = strings.TrimSpace(strings.ToLower(language))
	if language == "" {
		language = "auto"
	}

	return &Engine{model: model, language: language, path: modelPath}, nil
}

// ModelPath reports the loaded model file for logs and diagnostics.
func (e *Engine) ModelPath() string {
	return e.path
}

// Transcribe runs one inference pass over 16kHz mono float32 samples and
// returns the recognized segments in order.
func (e *Engine) Transcribe(ctx context.Context, samples []float32) ([]string, time.Duration, error) {
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("no audio samples to transcribe")
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Close may race a session that is mid-stop during daemon shutdown.
	if e.model == nil {
		return nil, 0, fmt.Errorf("whisper engine is closed")
	}

	wctx, err := e.model.NewContext()
	if err != nil {
		return nil, 0, fmt.Errorf("create whisper context: %w", err)
	}
	if err := wctx.SetLanguage(e.language); err != nil {
		return nil, 0, fmt.Errorf("set language %q: %w", e.language, err)
	}
	wctx.SetTranslate(false)

	var segments []string
	started := time.Now()
	err = wctx.Process(samples, nil, func(segment whisper.Segment) {
		segments = append(segments, segment.Text)
	}, nil)
	latency := time.Since(started)
	if err != nil {
		return nil, latency, fmt.Errorf("whisper inference: %w", err)
	}

	return segments, latency, nil
}

// Close releases the loaded model.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.model == nil {
		return nil
	}
	err := e.model.Close()
	e.model = nil
	return err
}
