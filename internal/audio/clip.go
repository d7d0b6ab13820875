package audio

import "sync"

// PCM format constants for the capture stream.
const (
	SampleRate     = 16000
	bytesPerSample = 2
	BytesPerSecond = SampleRate * bytesPerSample

	// MaxClipBytes is the hard recording cap. Anything past it is dropped
	// and the clip is truncated to exactly this many bytes.
	MaxClipBytes = 30 * BytesPerSecond

	// MinClipBytes is the shortest clip worth transcribing (0.3s).
	MinClipBytes = 3 * BytesPerSecond / 10
)

// clipBuffer accumulates PCM up to a fixed byte limit and signals once full.
type clipBuffer struct {
	mu    sync.Mutex
	data  []byte
	limit int
	full  bool
	capCh chan struct{}
}

func newClipBuffer(limit int) *clipBuffer {
	if limit <= 0 {
		limit = MaxClipBytes
	}
	return &clipBuffer{
		data:  make([]byte, 0, limit),
		limit: limit,
		capCh: make(chan struct{}),
	}
}

// write appends p up to the remaining room. It returns the number of bytes
// accepted and whether the buffer is now full; excess bytes are discarded.
func (b *clipBuffer) write(p []byte) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.full {
		return 0, true
	}

	room := b.limit - len(b.data)
	n := len(p)
	if n > room {
		n = room
	}
	b.data = append(b.data, p[:n]...)

	if len(b.data) >= b.limit {
		b.full = true
		close(b.capCh)
	}
	return n, b.full
}

// bytes returns a snapshot of the accumulated PCM.
func (b *clipBuffer) bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// size returns the accumulated byte count.
func (b *clipBuffer) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// capReached is closed exactly once when the limit is hit.
func (b *clipBuffer) capReached() <-chan struct{} {
	return b.capCh
}
