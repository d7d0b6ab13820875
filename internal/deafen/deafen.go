// Package deafen lowers or mutes the default sink while recording so the
// microphone does not pick up system playback.
package deafen

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Modes, mirrored from the settings values.
const (
	ModeOff  = "off"
	ModeHalf = "half"
	ModeOn   = "on"
)

const defaultSink = "@DEFAULT_SINK@"

// Guard holds the sink state to restore when the recording window closes.
type Guard struct {
	mode      string
	wasMuted  bool
	volumePct int
	active    bool
}

// Engage applies the configured deafen mode and remembers the prior state.
// ModeOff returns an inert guard.
func Engage(ctx context.Context, mode string) (*Guard, error) {
	guard := &Guard{mode: mode}

	switch mode {
	case ModeOff, "":
		return guard, nil
	case ModeOn:
		muted, err := sinkMuted(ctx)
		if err != nil {
			return guard, err
		}
		guard.wasMuted = muted
		if !muted {
			if err := runPactl(ctx, "set-sink-mute", defaultSink, "1"); err != nil {
				return guard, err
			}
			guard.active = true
		}
		return guard, nil
	case ModeHalf:
		pct, err := sinkVolumePercent(ctx)
		if err != nil {
			return guard, err
		}
		guard.volumePct = pct
		if err := runPactl(ctx, "set-sink-volume", defaultSink, strconv.Itoa(pct/2)+"%"); err != nil {
			return guard, err
		}
		guard.active = true
		return guard, nil
	default:
		return guard, fmt.Errorf("unknown deafen mode %q", mode)
	}
}

// Release restores the sink to its pre-recording state.
func (g *Guard) Release(ctx context.Context) error {
	if g == nil || !g.active {
		return nil
	}
	g.active = false

	switch g.mode {
	case ModeOn:
		if g.wasMuted {
			return nil
		}
		return runPactl(ctx, "set-sink-mute", defaultSink, "0")
	case ModeHalf:
		return runPactl(ctx, "set-sink-volume", defaultSink, strconv.Itoa(g.volumePct)+"%")
	}
	return nil
}

func sinkMuted(ctx context.Context) (bool, error) {
	out, err := runPactlOutput(ctx, "get-sink-mute", defaultSink)
	if err != nil {
		return false, err
	}
	return parseMute(string(out))
}

func sinkVolumePercent(ctx context.Context) (int, error) {
	out, err := runPactlOutput(ctx, "get-sink-volume", defaultSink)
	if err != nil {
		return 0, err
	}
	return parseVolumePercent(string(out))
}

// parseMute reads pactl get-sink-mute output ("Mute: yes" / "Mute: no").
func parseMute(output string) (bool, error) {
	fields := strings.Fields(output)
	for i, field := range fields {
		if strings.EqualFold(strings.TrimSuffix(field, ":"), "mute") && i+1 < len(fields) {
			return strings.EqualFold(fields[i+1], "yes"), nil
		}
	}
	return false, fmt.Errorf("unexpected pactl mute output: %q", strings.TrimSpace(output))
}

// parseVolumePercent reads the first percentage token from pactl
// get-sink-volume output, e.g. "Volume: front-left: 42598 / 65% / ...".
func parseVolumePercent(output string) (int, error) {
	for _, field := range strings.Fields(output) {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		pct, err := strconv.Atoi(strings.TrimSuffix(field, "%"))
		if err != nil {
			continue
		}
		return pct, nil
	}
	return 0, fmt.Errorf("no volume percentage in pactl output: %q", strings.TrimSpace(output))
}

func runPactl(ctx context.Context, args ...string) error {
	_, err := runPactlOutput(ctx, args...)
	return err
}

func runPactlOutput(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pactl", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return nil, fmt.Errorf("pactl %v failed: %w", args, err)
		}
		return nil, fmt.Errorf("pactl %v failed: %w (%s)", args, err, trimmed)
	}
	return out, nil
}
