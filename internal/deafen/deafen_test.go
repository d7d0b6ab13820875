package deafen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMute(t *testing.T) {
	muted, err := parseMute("Mute: yes\n")
	require.NoError(t, err)
	assert.True(t, muted)

	muted, err = parseMute("Mute: no\n")
	require.NoError(t, err)
	assert.False(t, muted)

	_, err = parseMute("garbage")
	require.Error(t, err)
}

func TestParseVolumePercent(t *testing.T) {
	out := "Volume: front-left: 42598 /  65% / -11.23 dB,   front-right: 42598 /  65% / -11.23 dB\n"
	pct, err := parseVolumePercent(out)
	require.NoError(t, err)
	assert.Equal(t, 65, pct)

	_, err = parseVolumePercent("Volume: nothing useful")
	require.Error(t, err)
}

func TestEngageOffIsInert(t *testing.T) {
	guard, err := Engage(context.Background(), ModeOff)
	require.NoError(t, err)
	require.NoError(t, guard.Release(context.Background()))
}

func TestEngageUnknownMode(t *testing.T) {
	_, err := Engage(context.Background(), "loud")
	require.Error(t, err)
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *Guard
	require.NoError(t, guard.Release(context.Background()))
}
