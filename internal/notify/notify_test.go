package notify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewShortTextPassesThrough(t *testing.T) {
	assert.Equal(t, "hello world", preview("  hello world  "))
}

func TestPreviewTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := preview(long)
	assert.Equal(t, strings.Repeat("a", 80)+"...", got)
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200)
	got := preview(long)
	require.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 80)+"...", got)
}

func TestDisabledNotifierIsInert(t *testing.T) {
	n := New(false, nil)
	n.Recording()
	n.Transcribing()
	n.Committed("text")
	n.Cancelled()
	n.Failed("reason")
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Recording()
	n.Failed("reason")
}
