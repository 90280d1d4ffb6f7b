package terminal

import (
	"time"
)

const (
	// readChunk is the size of a single raw read
	readChunk = 64

	// DefaultEscapeTimeout is how long a lone ESC waits for the rest of a
	// sequence before it is reported as the Escape key. Links that split
	// sequences with longer gaps need a larger value; the cost is a slower
	// Escape key
	DefaultEscapeTimeout = 100 * time.Millisecond
)

// ByteSource is a non-blocking raw input stream
type ByteSource interface {
	// Wait blocks until input may be readable or the timeout elapses
	Wait(timeout time.Duration) (ready bool, err error)

	// Read returns 0, nil when no data is currently available
	Read(p []byte) (int, error)
}

// SizeSource reports console resizes observed out of band
type SizeSource interface {
	// Pending consumes the resize flag
	Pending() bool

	// Size returns the current console dimensions
	Size() (width, height int)
}

// StreamReader turns a raw byte stream into events
// It drains the source in fixed chunks and feeds the whole drained batch to one
// parser, so a paste is judged as one run regardless of chunk boundaries
type StreamReader struct {
	src    ByteSource
	size   SizeSource
	parser *Parser
	buf    [readChunk]byte
	batch  []byte

	escTimeout time.Duration
}

// NewStreamReader creates a reader over src, size may be nil
func NewStreamReader(src ByteSource, size SizeSource) *StreamReader {
	return &StreamReader{
		src:        src,
		size:       size,
		parser:     NewParser(),
		escTimeout: DefaultEscapeTimeout,
	}
}

// SetEscapeTimeout sets how long a lone ESC waits for the rest of a sequence
// Non-positive values restore the default
func (r *StreamReader) SetEscapeTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultEscapeTimeout
	}
	r.escTimeout = d
}

// ReadEvents waits up to timeout for input and returns every event it completes
// An empty result with nil error means nothing happened within the timeout
func (r *StreamReader) ReadEvents(timeout time.Duration) ([]Event, error) {
	var events []Event
	if r.resizePending() {
		events = append(events, NewResizeEvent(r.size.Size()))
		timeout = 0
	}
	if r.parser.Pending() && timeout > r.escTimeout {
		timeout = r.escTimeout
	}

	ready, err := r.src.Wait(timeout)
	if err != nil {
		return events, err
	}

	// A resize may have woken the wait
	if len(events) == 0 && r.resizePending() {
		events = append(events, NewResizeEvent(r.size.Size()))
	}

	if !ready {
		return append(events, r.parser.Flush()...), nil
	}

	r.batch = r.batch[:0]
	for {
		n, err := r.src.Read(r.buf[:])
		if err != nil {
			return append(events, r.parser.Feed(r.batch)...), err
		}
		if n == 0 {
			break
		}
		r.batch = append(r.batch, r.buf[:n]...)
	}
	return append(events, r.parser.Feed(r.batch)...), nil
}

func (r *StreamReader) resizePending() bool {
	return r.size != nil && r.size.Pending()
}
