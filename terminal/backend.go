package terminal

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNotTerminal is returned by Init when stdin is not an interactive console
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Backend abstracts platform-specific console operations
type Backend interface {
	// Init switches the input to non-canonical, non-blocking mode
	Init() error

	// Fini restores the original console attributes. Safe to call multiple times
	Fini()

	// Size returns the console size, falling back to the last known size on error
	Size() (width, height int)

	// Write writes raw bytes to the console output
	Write(p []byte) error

	// ReadEvents blocks up to timeout and returns the decoded input events
	ReadEvents(timeout time.Duration) ([]Event, error)

	// Interrupt wakes a blocked ReadEvents
	Interrupt()
}
