// Package notify surfaces session state through desktop notifications.
package notify

import (
	"log/slog"
	"strings"

	"github.com/gen2brain/beeep"
)

const appTitle = "vibemic"

// Notifier sends desktop notifications when enabled; failures are logged
// and never interrupt the session.
type Notifier struct {
	enabled bool
	logger  *slog.Logger
}

func New(enabled bool, logger *slog.Logger) *Notifier {
	return &Notifier{enabled: enabled, logger: logger}
}

func (n *Notifier) Recording()    { n.send("Recording...") }
func (n *Notifier) Transcribing() { n.send("Transcribing...") }

func (n *Notifier) Committed(transcript string) {
	n.send(preview(transcript))
}

func (n *Notifier) Cancelled() {
	n.send("Recording cancelled")
}

func (n *Notifier) Failed(reason string) {
	n.send(reason)
}

func (n *Notifier) send(message string) {
	if n == nil || !n.enabled {
		return
	}
	if err := beeep.Notify(appTitle, message, ""); err != nil && n.logger != nil {
		n.logger.Warn("desktop notification failed", "error", err.Error())
	}
}

// preview shortens a transcript to a notification-sized excerpt, cutting on
// a rune boundary.
func preview(text string) string {
	text = strings.TrimSpace(text)
	const limit = 80
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
