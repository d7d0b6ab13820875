package asr

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEngineMissingModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ggml-small.bin")
	_, err := LoadEngine(path, "en")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not readable")
}

func TestTranscribeRequiresSamples(t *testing.T) {
	e := &Engine{}
	_, _, err := e.Transcribe(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no audio samples")
}

func TestTranscribeAfterCloseFails(t *testing.T) {
	e := &Engine{}
	require.NoError(t, e.Close())

	_, _, err := e.Transcribe(context.Background(), []float32{0.1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "closed")
}

func TestCloseIsIdempotent(t *testing.T) {
	e := &Engine{}
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
}
