// @focus: #terminal { input, parser }
package terminal

import (
	"unicode"
	"unicode/utf8"
)

// parserState is the escape sequence state machine position
type parserState uint8

const (
	stateDefault parserState = iota
	stateEscape              // ESC seen
	stateCSI                 // ESC [ seen, collecting parameter/intermediate bytes
	stateSS3                 // ESC O seen, one final byte expected
)

const (
	keyESC = 0x1b

	// maxSequenceLen bounds the accumulator, longer sequences are aborted as raw
	maxSequenceLen = 32
)

// Parser converts raw console bytes into events
// State and the partially accumulated sequence persist across Feed calls, so a
// sequence split by a read boundary resumes on the next read
type Parser struct {
	state  parserState
	seq    []byte // current escape sequence, starting with ESC
	run    []byte // plain bytes of the current batch
	events []Event
}

// NewParser creates a parser in the default state
func NewParser() *Parser {
	return &Parser{
		seq: make([]byte, 0, maxSequenceLen+1),
		run: make([]byte, 0, 64),
	}
}

// Feed consumes one read batch and returns the events it completed, in input order
func (p *Parser) Feed(data []byte) []Event {
	p.events = nil
	for _, b := range data {
		p.step(b)
	}

	// Hold back a trailing partial UTF-8 rune, the rest arrives with the next read
	if n := len(p.run); n > 0 && n < utf8.UTFMax && p.run[0] >= utf8.RuneSelf && !utf8.FullRune(p.run) {
		return p.events
	}
	p.flushRun()
	return p.events
}

// Flush resolves input that was held back waiting for more bytes
// Call when a read times out with no data: a lone ESC becomes the Escape key,
// an incomplete CSI sequence stays pending
func (p *Parser) Flush() []Event {
	p.events = nil
	if p.state == stateEscape && len(p.seq) == 1 {
		p.emitKey(VKEscape, ControlNone)
		p.reset()
	}
	p.flushRun()
	return p.events
}

// Pending reports whether the parser is inside an escape sequence
func (p *Parser) Pending() bool {
	return p.state != stateDefault
}

// step advances the state machine by one byte
func (p *Parser) step(b byte) {
	for {
		switch p.state {
		case stateDefault:
			if b == keyESC {
				p.flushRun()
				p.seq = append(p.seq[:0], b)
				p.state = stateEscape
				return
			}
			p.run = append(p.run, b)
			return

		case stateEscape:
			switch b {
			case '[':
				p.seq = append(p.seq, b)
				p.state = stateCSI
				return
			case 'O':
				p.seq = append(p.seq, b)
				p.state = stateSS3
				return
			}
			// Not a sequence we track, ESC is emitted raw and b starts over
			p.abort()

		case stateCSI:
			switch {
			case b >= 0x40 && b <= 0x7e:
				p.seq = append(p.seq, b)
				p.dispatchCSI()
				p.reset()
				return
			case b >= 0x20 && b <= 0x3f:
				p.seq = append(p.seq, b)
				if len(p.seq) > maxSequenceLen {
					p.abort()
				}
				return
			}
			p.abort()

		case stateSS3:
			if b >= 0x40 && b <= 0x7e {
				if vk, ok := ss3Keys[b]; ok {
					p.emitKey(vk, ControlNone)
				} else {
					p.seq = append(p.seq, b)
					p.emit(NewRawEvent(p.seq))
				}
				p.reset()
				return
			}
			p.abort()
		}
	}
}

// abort emits the accumulated sequence as raw fallback and returns to default
func (p *Parser) abort() {
	p.emit(NewRawEvent(p.seq))
	p.reset()
}

func (p *Parser) reset() {
	p.seq = p.seq[:0]
	p.state = stateDefault
}

func (p *Parser) emit(ev Event) {
	p.events = append(p.events, ev)
}

// emitKey emits a key-down for a virtual key decoded from a sequence
func (p *Parser) emitKey(vk VirtualKey, mods ControlKeys) {
	p.emit(NewKeyEvent(KeyEvent{
		KeyDown:         true,
		RepeatCount:     1,
		VirtualKeyCode:  vk,
		VirtualScanCode: uint16(vk),
		ControlKeyState: mods,
	}))
}

// flushRun converts buffered plain bytes: a single printable character becomes
// a key event, anything else (several bytes in one batch, control bytes) is raw
func (p *Parser) flushRun() {
	if len(p.run) == 0 {
		return
	}
	defer func() { p.run = p.run[:0] }()

	r, size := utf8.DecodeRune(p.run)
	if size != len(p.run) || r == utf8.RuneError || !unicode.IsPrint(r) {
		p.emit(NewRawEvent(p.run))
		return
	}

	k := KeyEvent{KeyDown: true, RepeatCount: 1, Rune: r}
	if r < utf8.RuneSelf {
		k.Char = byte(r)
		k.VirtualKeyCode = VirtualKeyFromASCII(byte(r))
	}
	if r <= 0xffff {
		k.VirtualScanCode = uint16(r)
	}
	p.emit(NewKeyEvent(k))
}

// dispatchCSI parses a complete "ESC [ ... final" sequence
func (p *Parser) dispatchCSI() {
	seq := p.seq
	final := seq[len(seq)-1]
	body := seq[2 : len(seq)-1]

	if len(body) > 0 && body[0] == '<' {
		ev, emit, ok := decodeSGRMouse(body[1:], final)
		switch {
		case !ok:
			p.emit(NewRawEvent(seq))
		case emit:
			p.emit(NewMouseEvent(ev))
		}
		return
	}

	params, ok := parseCSIParams(body)
	if !ok {
		p.emit(NewRawEvent(seq))
		return
	}

	switch {
	case final == 'I' && len(params) == 0:
		p.emit(Event{Type: EventFocus, Focused: true})
		return
	case final == 'O' && len(params) == 0:
		p.emit(Event{Type: EventFocus, Focused: false})
		return
	case final == '~' && len(params) >= 1 && len(params) <= 2:
		if vk, ok := tildeKeys[params[0]]; ok {
			p.emitKey(vk, csiModifiers(params))
			return
		}
	default:
		// "ESC [ A" or with modifiers "ESC [ 1 ; 5 A"
		vk, ok := finalKeys[final]
		if ok && (len(params) == 0 || (len(params) == 2 && params[0] == 1)) {
			p.emitKey(vk, csiModifiers(params))
			return
		}
	}

	p.emit(NewRawEvent(seq))
}

// parseCSIParams splits "n;m" into integers, rejecting private markers and intermediates
func parseCSIParams(body []byte) ([]int, bool) {
	if len(body) == 0 {
		return nil, true
	}
	params := make([]int, 0, 2)
	val := 0
	for _, b := range body {
		switch {
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return nil, false
			}
		case b == ';':
			params = append(params, val)
			val = 0
		default:
			return nil, false
		}
	}
	return append(params, val), true
}

// csiModifiers decodes the xterm modifier parameter (1 + shift|alt<<1|ctrl<<2)
func csiModifiers(params []int) ControlKeys {
	if len(params) < 2 || params[1] < 2 {
		return ControlNone
	}
	m := params[1] - 1
	var mods ControlKeys
	if m&1 != 0 {
		mods |= ControlShift
	}
	if m&2 != 0 {
		mods |= ControlAlt
	}
	if m&4 != 0 {
		mods |= ControlLeftCtrl
	}
	return mods
}

// decodeSGRMouse decodes "Pb;Px;Py" of an SGR mouse report terminated by final
// ok=false marks a malformed report; ok with emit=false marks a report that is
// valid but intentionally dropped
func decodeSGRMouse(params []byte, final byte) (ev MouseEvent, emit bool, ok bool) {
	if final != 'M' && final != 'm' {
		return MouseEvent{}, false, false
	}
	btn, px, py, ok := parseSGRParams(params)
	if !ok {
		return MouseEvent{}, false, false
	}

	motion := btn&0x20 != 0
	if motion && btn&0x0f == 0x03 {
		// Move without button held
		return MouseEvent{}, false, true
	}
	btn &^= 0x20

	var ctl ControlKeys
	if btn&0x10 != 0 {
		ctl |= ControlLeftCtrl
		btn &^= 0x10
	}
	if btn&0x08 != 0 {
		ctl |= ControlAlt
		btn &^= 0x08
	}
	if btn&0x04 != 0 {
		ctl |= ControlShift
		btn &^= 0x04
	}

	var button Button
	switch btn {
	case 0, 1, 2, 64, 65:
		button = Button(btn)
	case 3:
		if motion {
			return MouseEvent{}, false, true
		}
		return MouseEvent{}, false, false
	case 66, 67:
		// Horizontal wheel is not modeled
		return MouseEvent{}, false, true
	default:
		return MouseEvent{}, false, false
	}

	// Row 0 is the reserved status row
	if px < 1 || py < 2 {
		return MouseEvent{}, false, true
	}

	return MouseEvent{
		X:       px - 1,
		Y:       py - 2,
		Button:  button,
		Pressed: final == 'M',
		Control: ctl,
	}, true, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0
	digits := 0

	for _, b := range data {
		if b == ';' {
			if digits == 0 {
				return 0, 0, 0, false
			}
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			digits = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			digits++
			if val > 9999 {
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 || digits == 0 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
