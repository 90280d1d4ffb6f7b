package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Console is the interactive console: raw input events in, cell frames out
type Console interface {
	// Init enters non-canonical mode, the alternate screen, enables mouse and
	// focus reporting and hides the cursor
	Init() error

	// Fini restores the console. Safe to call multiple times
	Fini()

	// Size returns current console dimensions
	Size() (width, height int)

	// ColorMode returns the color capability used for output
	ColorMode() ColorMode

	// ReadEvents blocks up to timeout for the next batch of input events
	// An empty batch with nil error means no input arrived
	ReadEvents(timeout time.Duration) ([]Event, error)

	// Interrupt wakes a blocked ReadEvents from another goroutine
	Interrupt()

	// Flush writes a full-screen cell buffer, cells are row-major: cells[y*width+x]
	Flush(cells []Cell, width, height int)

	// Clear fills screen with specified background color
	Clear(bg RGB)

	// Sync forces the next Flush to repaint every cell
	Sync()

	// SetCursorVisible shows/hides cursor
	SetCursorVisible(visible bool)

	// MoveCursor positions cursor (0-indexed)
	MoveCursor(x, y int)

	// SetTitle sets the terminal window title
	SetTitle(title string)

	// SetMouseMode enables/disables mouse event reporting
	SetMouseMode(mode MouseMode) error

	// SetEscapeTimeout sets how long a lone ESC waits for the rest of an
	// escape sequence. Backends that receive whole key records ignore it
	SetEscapeTimeout(d time.Duration)
}

// escapeTimeoutSetter is implemented by backends that decode a byte stream
type escapeTimeoutSetter interface {
	SetEscapeTimeout(d time.Duration)
}

// consoleImpl implements Console over a platform Backend
type consoleImpl struct {
	backend Backend
	output  *outputBuffer

	cursorVisible atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode
	initMouse   MouseMode
}

// New creates a console for the process stdin/stdout
// Color mode defaults to environment detection, mouse mode to full motion reporting
func New(colorMode ...ColorMode) Console {
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return NewWithBackend(newBackend(), c)
}

// NewWithBackend creates a console over an explicit backend
func NewWithBackend(b Backend, colorMode ColorMode) Console {
	return &consoleImpl{
		backend:   b,
		output:    newOutputBuffer(backendWriter{b}, colorMode),
		initMouse: MouseModeClick | MouseModeDrag | MouseModeMotion,
	}
}

// Init switches the console into interactive mode
// If the backend fails nothing has been changed and the error is returned as is
func (t *consoleImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return err
	}

	w, h := t.backend.Size()
	t.output.resize(w, h)

	out := t.output.writer
	out.Write(csiAltScreenEnter)
	out.Write(csiCursorHide)
	out.Write(csiAutoWrapOff)
	out.Write(csiFocusOn)
	out.Flush()
	t.cursorVisible.Store(false)

	t.initialized = true
	t.applyMouseMode(t.initMouse)
	t.output.clear(RGBBlack)
	return nil
}

// Fini disables reporting and restores the original console attributes
func (t *consoleImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	writeMouseOff(w)
	w.Write(csiFocusOff)
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Flush()

	t.backend.Fini()
	t.finalized = true
}

func (t *consoleImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *consoleImpl) ColorMode() ColorMode {
	return t.output.colorMode
}

func (t *consoleImpl) ReadEvents(timeout time.Duration) ([]Event, error) {
	return t.backend.ReadEvents(timeout)
}

func (t *consoleImpl) Interrupt() {
	t.backend.Interrupt()
}

func (t *consoleImpl) SetEscapeTimeout(d time.Duration) {
	if s, ok := t.backend.(escapeTimeoutSetter); ok {
		s.SetEscapeTimeout(d)
	}
}

// Flush writes the cell buffer
// A frame whose size no longer matches the console is dropped, a resize event follows
func (t *consoleImpl) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	if currW, currH := t.backend.Size(); currW != width || currH != height {
		return
	}
	t.output.flush(cells, width, height)
}

func (t *consoleImpl) Clear(bg RGB) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.clear(bg)
}

func (t *consoleImpl) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.forceFullRedraw()
}

func (t *consoleImpl) SetCursorVisible(visible bool) {
	if t.cursorVisible.Swap(visible) == visible {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	w := t.output.writer
	if visible {
		w.Write(csiCursorShow)
	} else {
		w.Write(csiCursorHide)
	}
	w.Flush()
}

func (t *consoleImpl) MoveCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.invalidateCursor()

	w, h := t.backend.Size()
	x = max(0, min(x, w-1))
	y = max(0, min(y, h-1))

	out := t.output.writer
	writeCursorPos(out, x, y)
	out.Flush()
}

func (t *consoleImpl) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	w := t.output.writer
	writeTitle(w, title)
	w.Flush()
}

// SetMouseMode changes mouse reporting; before Init it selects the mode Init enables
func (t *consoleImpl) SetMouseMode(mode MouseMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		t.initMouse = mode
		return nil
	}
	if t.finalized {
		return nil
	}
	t.applyMouseMode(mode)
	return nil
}

// applyMouseMode writes the enable/disable sequences for the mode delta
func (t *consoleImpl) applyMouseMode(mode MouseMode) {
	old := t.mouseMode
	t.mouseMode = mode
	w := t.output.writer

	if old&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		w.Write(csiMouseMotionOff)
	}
	if old&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		w.Write(csiMouseDragOff)
	}
	if old&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		w.Write(csiMouseClickOff)
	}
	if mode == MouseModeNone && old != MouseModeNone {
		w.Write(csiMouseSGROff)
	}

	if mode&MouseModeClick != 0 && old&MouseModeClick == 0 {
		w.Write(csiMouseClickOn)
	}
	if mode&MouseModeDrag != 0 && old&MouseModeDrag == 0 {
		w.Write(csiMouseDragOn)
	}
	if mode&MouseModeMotion != 0 && old&MouseModeMotion == 0 {
		w.Write(csiMouseMotionOn)
	}
	if mode != MouseModeNone && old == MouseModeNone {
		w.Write(csiMouseSGROn)
	}
	w.Flush()
}

// writeMouseOff disables every mouse reporting mode and encoding
func writeMouseOff(w io.Writer) {
	w.Write(csiMouseSGROff)
	w.Write(csiMouseURXVTOff)
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	bw := bufio.NewWriter(w)
	writeMouseOff(bw)
	bw.Write(csiFocusOff)
	bw.Write(csiCursorShow)
	bw.Write(csiAltScreenExit)
	bw.Write(csiSGR0)
	bw.Write(csiAutoWrapOn)
	bw.Write(csiRIS)
	bw.Flush()

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort in crash context
	resetTerminalMode()
}
