package terminal

import (
	"fmt"
	"strconv"
)

// EventType distinguishes console event categories
type EventType uint8

const (
	EventNone   EventType = iota
	EventKey              // Key holds the payload
	EventMouse            // Mouse holds the payload
	EventResize           // Width/Height hold the new console size
	EventFocus            // Focused reports terminal focus in/out
	EventRaw              // Raw holds bytes that could not be parsed
)

// Event is a single normalized console event
// Exactly one payload field is meaningful, selected by Type
type Event struct {
	Type EventType

	Key   KeyEvent
	Mouse MouseEvent

	Width  int // EventResize
	Height int // EventResize

	Focused bool // EventFocus

	Raw []byte // EventRaw
}

// KeyEvent is a keyboard event in Windows KEY_EVENT_RECORD shape
// On POSIX both Char and Rune carry the input byte; on Windows Rune comes from UnicodeChar
type KeyEvent struct {
	KeyDown         bool
	RepeatCount     int // always >= 1
	VirtualKeyCode  VirtualKey
	VirtualScanCode uint16
	Char            byte
	Rune            rune
	ControlKeyState ControlKeys
}

// MouseEvent is a normalized mouse sample
// X/Y are 0-based layout coordinates; screen row 0 is reserved and never reported
// When Hover is true, Pressed reflects the current button mask rather than an edge
type MouseEvent struct {
	X, Y    int
	Button  Button
	Pressed bool
	Control ControlKeys
	Hover   bool
}

// NewResizeEvent builds a size change event
func NewResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// NewKeyEvent builds a key event
func NewKeyEvent(k KeyEvent) Event {
	return Event{Type: EventKey, Key: k}
}

// NewMouseEvent builds a mouse event
func NewMouseEvent(m MouseEvent) Event {
	return Event{Type: EventMouse, Mouse: m}
}

// NewRawEvent builds a raw fallback event, copying data
func NewRawEvent(data []byte) Event {
	raw := make([]byte, len(data))
	copy(raw, data)
	return Event{Type: EventRaw, Raw: raw}
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "Key"
	case EventMouse:
		return "Mouse"
	case EventResize:
		return "Resize"
	case EventFocus:
		return "Focus"
	case EventRaw:
		return "Raw"
	default:
		return "None"
	}
}

// String renders the event for logs and the status row
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		return fmt.Sprintf("key %s down=%t rep=%d char=%q mod=%s",
			e.Key.VirtualKeyCode, e.Key.KeyDown, e.Key.RepeatCount, e.Key.Rune, e.Key.ControlKeyState)
	case EventMouse:
		m := e.Mouse
		return fmt.Sprintf("mouse %s x=%d y=%d pressed=%t hover=%t mod=%s",
			m.Button, m.X, m.Y, m.Pressed, m.Hover, m.Control)
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case EventFocus:
		return "focus " + strconv.FormatBool(e.Focused)
	case EventRaw:
		return "raw " + strconv.Quote(string(e.Raw))
	default:
		return "none"
	}
}
