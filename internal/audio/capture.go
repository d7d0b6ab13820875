package audio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Capture records one capped 16kHz mono s16 clip from a selected Pulse source.
type Capture struct {
	device Device

	client *pulse.Client
	stream *pulse.RecordStream

	buf *clipBuffer

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
}

// StartCapture opens a record stream that accumulates PCM until Stop is
// called or limit bytes have been captured, whichever comes first.
func StartCapture(ctx context.Context, selected Device, limit int) (*Capture, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("vibemic"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}

	source, err := client.SourceByID(selected.ID)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("resolve source %q: %w", selected.ID, err)
	}

	capture := &Capture{
		device: selected,
		client: client,
		buf:    newClipBuffer(limit),
		stopCh: make(chan struct{}),
	}

	writer := pulse.NewWriter(writerFunc(capture.onPCM), pulseproto.FormatInt16LE)
	stream, err := client.NewRecord(
		writer,
		pulse.RecordSource(source),
		pulse.RecordMono,
		pulse.RecordSampleRate(SampleRate),
		pulse.RecordMediaName("vibemic dictation"),
	)
	if err != nil {
		_ = capture.Stop()
		return nil, fmt.Errorf("create pulse record stream: %w", err)
	}

	capture.stream = stream
	stream.Start()

	go func() {
		<-ctx.Done()
		_ = capture.Stop()
	}()

	return capture, nil
}

// Device returns capture metadata for logging and diagnostics.
func (c *Capture) Device() Device {
	return c.device
}

// CapReached is closed when the byte limit is hit and capture stops accepting data.
func (c *Capture) CapReached() <-chan struct{} {
	return c.buf.capReached()
}

// BytesCaptured reports the accepted clip size, post truncation.
func (c *Capture) BytesCaptured() int64 {
	return int64(c.buf.size())
}

// PCM returns the captured clip, never longer than the configured limit.
func (c *Capture) PCM() []byte {
	return c.buf.bytes()
}

// Stop halts the stream exactly once. The captured clip stays readable.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	close(c.stopCh)
	c.mu.Unlock()

	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
	}
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

// onPCM receives raw Pulse frames and feeds the clip buffer.
func (c *Capture) onPCM(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}

	select {
	case <-c.stopCh:
		return 0, io.EOF
	default:
	}

	_, full := c.buf.write(buffer)
	if full {
		// Cap hit: refuse further frames. The session observes CapReached
		// and drives the stop.
		return len(buffer), io.EOF
	}
	return len(buffer), nil
}

// writerFunc adapts a function to io.Writer for pulse.NewWriter.
type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) {
	return f(b)
}
