package terminal

// Windows console event flags (MOUSE_EVENT_RECORD.dwEventFlags)
const (
	mouseMoved        = 0x1
	mouseDoubleClick  = 0x2
	mouseWheeled      = 0x4
	mouseHWheeled     = 0x8
	wheelDirectionBit = 31
)

// Windows control key state bits (dwControlKeyState)
const (
	rightAltPressed  = 0x1
	leftAltPressed   = 0x2
	rightCtrlPressed = 0x4
	leftCtrlPressed  = 0x8
	shiftPressed     = 0x10
)

// MouseRecord mirrors the fields of a Windows MOUSE_EVENT_RECORD
type MouseRecord struct {
	X, Y            int16
	ButtonState     uint32
	ControlKeyState uint32
	EventFlags      uint32
}

// KeyRecord mirrors the fields of a Windows KEY_EVENT_RECORD
type KeyRecord struct {
	KeyDown         bool
	RepeatCount     uint16
	VirtualKeyCode  uint16
	VirtualScanCode uint16
	Char            uint16 // UTF-16 code unit
	ControlKeyState uint32
}

// trackedButtons lists mask bits in emission order
var trackedButtons = [...]struct {
	bit    uint32
	button Button
}{
	{0x1, ButtonLeft},
	{0x4, ButtonMiddle},
	{0x2, ButtonRight},
}

// MouseTranslator synthesizes press/release edges from absolute Windows button masks
// One translator belongs to one input stream for the lifetime of the run
type MouseTranslator struct {
	lastMask uint32
}

// NewMouseTranslator creates a translator with no buttons held
func NewMouseTranslator() *MouseTranslator {
	return &MouseTranslator{}
}

// Translate converts one mouse record into zero or more events, in button order
func (t *MouseTranslator) Translate(rec MouseRecord) []MouseEvent {
	// Row 0 is inaccessible
	if rec.Y == 0 {
		return nil
	}

	x, y := int(rec.X), int(rec.Y)-1
	ctl := controlKeys(rec.ControlKeyState)

	hover := false
	switch rec.EventFlags {
	case 0:
	case mouseMoved:
		hover = true
	case mouseWheeled:
		button := ButtonWheelUp
		if rec.ButtonState>>wheelDirectionBit&1 != 0 {
			button = ButtonWheelDown
		}
		return []MouseEvent{{X: x, Y: y, Button: button, Pressed: true, Control: ctl}}
	default:
		// mouseHWheeled, mouseDoubleClick and combinations are not modeled
		return nil
	}

	mask := rec.ButtonState
	changed := mask ^ t.lastMask
	if hover {
		changed = mask
	}
	if changed == 0 {
		return nil
	}
	t.lastMask = mask

	var events []MouseEvent
	for _, tb := range trackedButtons {
		if changed&tb.bit == 0 {
			continue
		}
		events = append(events, MouseEvent{
			X:       x,
			Y:       y,
			Button:  tb.button,
			Pressed: mask&tb.bit != 0,
			Control: ctl,
			Hover:   hover,
		})
	}
	return events
}

// TranslateKey converts a Windows key record, RepeatCount is clamped to at least 1
func TranslateKey(rec KeyRecord) KeyEvent {
	k := KeyEvent{
		KeyDown:         rec.KeyDown,
		RepeatCount:     int(rec.RepeatCount),
		VirtualKeyCode:  VirtualKey(rec.VirtualKeyCode),
		VirtualScanCode: rec.VirtualScanCode,
		Rune:            rune(rec.Char),
		ControlKeyState: controlKeys(rec.ControlKeyState),
	}
	if k.RepeatCount < 1 {
		k.RepeatCount = 1
	}
	if rec.Char < 0x80 {
		k.Char = byte(rec.Char)
	}
	return k
}

// controlKeys folds left/right variants into the normalized modifier set
func controlKeys(state uint32) ControlKeys {
	var c ControlKeys
	if state&(leftCtrlPressed|rightCtrlPressed) != 0 {
		c |= ControlLeftCtrl
	}
	if state&(leftAltPressed|rightAltPressed) != 0 {
		c |= ControlAlt
	}
	if state&shiftPressed != 0 {
		c |= ControlShift
	}
	return c
}
