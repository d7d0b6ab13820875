// Package ipc provides the unix-socket control plane for a running daemon.
package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Request is one newline-delimited JSON command sent to the daemon.
type Request struct {
	Command string `json:"command"`
}

// Response is the daemon's JSON reply.
type Response struct {
	OK      bool   `json:"ok"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrAlreadyRunning reports another live daemon holding the socket.
var ErrAlreadyRunning = errors.New("vibemic daemon already running")

// RuntimeSocketPath resolves the per-user control socket location.
func RuntimeSocketPath() (string, error) {
	runtimeDir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR"))
	if runtimeDir == "" {
		return "", errors.New("XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(runtimeDir, "vibemic.sock"), nil
}
