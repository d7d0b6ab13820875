// Package transcript assembles and normalizes recognized speech segments.
package transcript

import "strings"

// Options controls transcript assembly formatting behavior.
type Options struct {
	TrailingSpace bool
}

// Assemble joins recognized segments, drops non-speech markers, and
// collapses whitespace. It returns "" when nothing usable remains.
func Assemble(segments []string, opts Options) string {
	if len(segments) == 0 {
		return ""
	}

	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" || isNoiseMarker(segment) {
			continue
		}
		kept = append(kept, segment)
	}
	if len(kept) == 0 {
		return ""
	}

	normalized := strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
	if normalized == "" {
		return ""
	}

	if opts.TrailingSpace {
		return normalized + " "
	}
	return normalized
}

// isNoiseMarker reports whisper non-speech annotations such as
// [BLANK_AUDIO], [ Silence ], (music) and *laughs*.
func isNoiseMarker(segment string) bool {
	if len(segment) < 2 {
		return false
	}
	first := segment[0]
	last := segment[len(segment)-1]
	switch {
	case first == '[' && last == ']':
		return true
	case first == '(' && last == ')':
		return true
	case first == '*' && last == '*':
		return true
	}
	return false
}
