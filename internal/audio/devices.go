// Package audio handles input-source discovery, selection, and capped PCM capture.
package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Device describes one Pulse input source surfaced to vibemic.
type Device struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

// Selection is the resolved capture source plus optional fallback warning context.
type Selection struct {
	Device   Device
	Warning  string
	Fallback bool
}

// ListDevices returns available Pulse input sources with default/availability metadata.
func ListDevices(_ context.Context) ([]Device, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("vibemic"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	defaultSource, err := client.DefaultSource()
	if err != nil {
		return nil, fmt.Errorf("read default source: %w", err)
	}
	defaultID := defaultSource.ID()

	var sourceInfos pulseproto.GetSourceInfoListReply
	if err := client.RawRequest(&pulseproto.GetSourceInfoList{}, &sourceInfos); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	devices := make([]Device, 0, len(sourceInfos))
	for _, source := range sourceInfos {
		if source == nil {
			continue
		}
		devices = append(devices, Device{
			ID:          source.SourceName,
			Description: source.Device,
			State:       sourceStateString(source.State),
			Available:   sourceAvailable(source),
			Muted:       source.Mute,
			Default:     source.SourceName == defaultID,
		})
	}
	return devices, nil
}

// SelectDevice resolves the preferred/fallback device names against live sources.
func SelectDevice(ctx context.Context, preferred string, fallback string) (Selection, error) {
	devices, err := ListDevices(ctx)
	if err != nil {
		return Selection{}, err
	}
	return selectFrom(devices, preferred, fallback)
}

// selectFrom applies selection policy to a pre-fetched device list.
func selectFrom(devices []Device, preferred string, fallback string) (Selection, error) {
	if len(devices) == 0 {
		return Selection{}, errors.New("no audio input devices found")
	}

	preferred = strings.TrimSpace(strings.ToLower(preferred))
	fallback = strings.TrimSpace(strings.ToLower(fallback))

	primary, err := resolveTerm(devices, preferred, "device_name")
	if err != nil {
		return Selection{}, err
	}
	if usable(primary) {
		return Selection{Device: *primary}, nil
	}

	reason := "unavailable"
	if primary.Muted {
		reason = "muted"
	}

	alternate, err := resolveTerm(devices, fallback, "audio_fallback")
	if err != nil {
		return Selection{}, fmt.Errorf("preferred input %q is %s and fallback failed: %w", primary.ID, reason, err)
	}
	if !usable(alternate) {
		return Selection{}, fmt.Errorf("preferred input %q is %s and fallback %q is not usable", primary.ID, reason, alternate.ID)
	}

	return Selection{
		Device:   *alternate,
		Warning:  fmt.Sprintf("input %q is %s; falling back to %q", primary.ID, reason, alternate.ID),
		Fallback: primary.ID != alternate.ID,
	}, nil
}

// resolveTerm maps a configured device term to a live device; "" and
// "default" both resolve to the server default source.
func resolveTerm(devices []Device, term string, key string) (*Device, error) {
	if term == "" || term == "default" {
		for i := range devices {
			if devices[i].Default {
				return &devices[i], nil
			}
		}
		return nil, errors.New("default audio source is unavailable")
	}

	for i := range devices {
		if deviceMatches(devices[i], term) {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("%s %q did not match any device", key, term)
}

func usable(device *Device) bool {
	return device != nil && device.Available && !device.Muted
}

// deviceMatches reports whether a search term matches a device id or description.
func deviceMatches(device Device, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(device.ID), term) ||
		strings.Contains(strings.ToLower(device.Description), term)
}

// sourceStateString maps Pulse source state constants to human-readable values.
func sourceStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sourceAvailable maps Pulse source port availability to a simple boolean.
func sourceAvailable(source *pulseproto.GetSourceInfoReply) bool {
	if source == nil {
		return false
	}
	if len(source.Ports) == 0 {
		return true
	}
	for _, port := range source.Ports {
		if port.Name != source.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}
