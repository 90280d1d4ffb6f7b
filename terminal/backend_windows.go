//go:build windows

package terminal

import (
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// ReadConsoleInputW is not exposed by x/sys/windows
var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW = kernel32.NewProc("ReadConsoleInputW")
)

// inputRecord mirrors INPUT_RECORD, the union is decoded per event type
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [4]uint32
}

type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

type mouseEventRecord struct {
	x, y            int16
	buttonState     uint32
	controlKeyState uint32
	eventFlags      uint32
}

// maxRecords bounds one ReadConsoleInputW call
const maxRecords = 16

type windowsBackend struct {
	in  windows.Handle
	out windows.Handle

	oldInMode  uint32
	oldOutMode uint32
	saved      bool

	wake  windows.Handle
	mouse *MouseTranslator

	lastW, lastH int
	records      [maxRecords]inputRecord
}

func newBackend() Backend {
	return &windowsBackend{lastW: 80, lastH: 24}
}

// Init enables window and mouse input and disables quick-edit, which would
// otherwise swallow mouse events
func (b *windowsBackend) Init() error {
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return errors.Wrap(err, "get console input handle")
	}
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return errors.Wrap(err, "get console output handle")
	}
	if !term.IsTerminal(int(in)) {
		return ErrNotTerminal
	}

	var inMode, outMode uint32
	if err := windows.GetConsoleMode(in, &inMode); err != nil {
		return errors.Wrap(err, "get console input mode")
	}
	if err := windows.GetConsoleMode(out, &outMode); err != nil {
		return errors.Wrap(err, "get console output mode")
	}

	wake, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return errors.Wrap(err, "create wake event")
	}

	mode := inMode
	mode &^= windows.ENABLE_QUICK_EDIT_MODE | windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT
	mode |= windows.ENABLE_WINDOW_INPUT | windows.ENABLE_MOUSE_INPUT | windows.ENABLE_EXTENDED_FLAGS
	if err := windows.SetConsoleMode(in, mode); err != nil {
		windows.CloseHandle(wake)
		return errors.Wrap(err, "set console input mode")
	}
	// VT output is best-effort, legacy consoles still get input events
	windows.SetConsoleMode(out, outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)

	b.in, b.out = in, out
	b.oldInMode, b.oldOutMode = inMode, outMode
	b.saved = true
	b.wake = wake
	b.mouse = NewMouseTranslator()
	return nil
}

func (b *windowsBackend) Fini() {
	if !b.saved {
		return
	}
	windows.SetConsoleMode(b.in, b.oldInMode)
	windows.SetConsoleMode(b.out, b.oldOutMode)
	windows.CloseHandle(b.wake)
	b.saved = false
}

func (b *windowsBackend) Size() (int, int) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.out, &info); err != nil {
		return b.lastW, b.lastH
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	if w > 0 && h > 0 {
		b.lastW, b.lastH = w, h
	}
	return b.lastW, b.lastH
}

func (b *windowsBackend) Write(p []byte) error {
	for len(p) > 0 {
		var n uint32
		if err := windows.WriteFile(b.out, p, &n, nil); err != nil {
			return errors.Wrap(err, "write console")
		}
		p = p[n:]
	}
	return nil
}

func (b *windowsBackend) Interrupt() {
	if b.saved {
		windows.SetEvent(b.wake)
	}
}

// ReadEvents waits on the input handle, then reads only as many records as
// are pending so the read itself never blocks
func (b *windowsBackend) ReadEvents(timeout time.Duration) ([]Event, error) {
	if !b.saved {
		return nil, errors.New("console not initialized")
	}

	ev, err := windows.WaitForMultipleObjects([]windows.Handle{b.in, b.wake}, false, uint32(timeout/time.Millisecond))
	if err != nil {
		return nil, errors.Wrap(err, "wait for console input")
	}
	if ev != windows.WAIT_OBJECT_0 {
		// Timeout or wake
		return nil, nil
	}

	var pending uint32
	if err := windows.GetNumberOfConsoleInputEvents(b.in, &pending); err != nil {
		return nil, errors.Wrap(err, "count console input events")
	}
	if pending == 0 {
		return nil, nil
	}
	if pending > maxRecords {
		pending = maxRecords
	}

	var read uint32
	r1, _, callErr := procReadConsoleInputW.Call(
		uintptr(b.in),
		uintptr(unsafe.Pointer(&b.records[0])),
		uintptr(pending),
		uintptr(unsafe.Pointer(&read)),
	)
	if r1 == 0 {
		return nil, errors.Wrap(callErr, "read console input")
	}

	var events []Event
	for i := uint32(0); i < read; i++ {
		events = b.appendRecord(events, &b.records[i])
	}
	return events, nil
}

// appendRecord decodes one INPUT_RECORD, preserving sub-event order
func (b *windowsBackend) appendRecord(events []Event, rec *inputRecord) []Event {
	switch rec.eventType {
	case windows.KEY_EVENT:
		k := (*keyEventRecord)(unsafe.Pointer(&rec.event[0]))
		return append(events, NewKeyEvent(TranslateKey(KeyRecord{
			KeyDown:         k.keyDown != 0,
			RepeatCount:     k.repeatCount,
			VirtualKeyCode:  k.virtualKeyCode,
			VirtualScanCode: k.virtualScanCode,
			Char:            k.unicodeChar,
			ControlKeyState: k.controlKeyState,
		})))
	case windows.MOUSE_EVENT:
		m := (*mouseEventRecord)(unsafe.Pointer(&rec.event[0]))
		for _, me := range b.mouse.Translate(MouseRecord{
			X:               m.x,
			Y:               m.y,
			ButtonState:     m.buttonState,
			ControlKeyState: m.controlKeyState,
			EventFlags:      m.eventFlags,
		}) {
			events = append(events, NewMouseEvent(me))
		}
		return events
	case windows.WINDOW_BUFFER_SIZE_EVENT:
		w, h := b.Size()
		return append(events, NewResizeEvent(w, h))
	}
	return events
}
