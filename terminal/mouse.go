package terminal

import "strings"

// Button identifies a mouse button, values follow the SGR button codes
type Button uint8

const (
	ButtonLeft      Button = 0
	ButtonMiddle    Button = 1
	ButtonRight     Button = 2
	ButtonWheelUp   Button = 64
	ButtonWheelDown Button = 65
)

// ControlKeys is the modifier bitmask, bit positions follow Windows dwControlKeyState
type ControlKeys uint32

const (
	ControlNone     ControlKeys = 0
	ControlAlt      ControlKeys = 0x2
	ControlLeftCtrl ControlKeys = 0x8
	ControlShift    ControlKeys = 0x10
)

// MouseMode controls which mouse events are reported (bitmask)
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // Press/release events
	MouseModeDrag   MouseMode = 1 << 1 // Drag events (button held + motion)
	MouseModeMotion MouseMode = 1 << 2 // All motion events, implies drag and click
)

// ParseMouseMode maps a config name to a mode
func ParseMouseMode(name string) (MouseMode, bool) {
	switch strings.ToLower(name) {
	case "none", "off":
		return MouseModeNone, true
	case "click":
		return MouseModeClick, true
	case "drag":
		return MouseModeClick | MouseModeDrag, true
	case "motion", "":
		return MouseModeClick | MouseModeDrag | MouseModeMotion, true
	}
	return MouseModeNone, false
}

// String returns human-readable button name
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "LMB"
	case ButtonMiddle:
		return "MIDDLE"
	case ButtonRight:
		return "RMB"
	case ButtonWheelUp:
		return "WHEEL_UP"
	case ButtonWheelDown:
		return "WHEEL_DOWN"
	default:
		return "UNKNOWN"
	}
}

// Has reports whether all bits of k are set
func (c ControlKeys) Has(k ControlKeys) bool {
	return c&k == k
}

// String lists the set modifiers joined by '+'
func (c ControlKeys) String() string {
	if c == ControlNone {
		return "none"
	}
	var parts []string
	if c&ControlLeftCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if c&ControlAlt != 0 {
		parts = append(parts, "alt")
	}
	if c&ControlShift != 0 {
		parts = append(parts, "shift")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}
