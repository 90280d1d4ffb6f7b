package terminal

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records everything written to the console
type fakeBackend struct {
	out        bytes.Buffer
	w, h       int
	initErr    error
	inits      int
	finis      int
	events     []Event
	interrupts int
}

func (b *fakeBackend) Init() error {
	b.inits++
	return b.initErr
}

func (b *fakeBackend) Fini()            { b.finis++ }
func (b *fakeBackend) Size() (int, int) { return b.w, b.h }
func (b *fakeBackend) Interrupt()       { b.interrupts++ }

func (b *fakeBackend) Write(p []byte) error {
	b.out.Write(p)
	return nil
}

func (b *fakeBackend) ReadEvents(time.Duration) ([]Event, error) {
	ev := b.events
	b.events = nil
	return ev, nil
}

func newTestConsole(w, h int) (*fakeBackend, Console) {
	b := &fakeBackend{w: w, h: h}
	return b, NewWithBackend(b, ColorModeTrueColor)
}

func TestConsoleInitFini(t *testing.T) {
	b, c := newTestConsole(10, 4)
	require.NoError(t, c.Init())
	require.NoError(t, c.Init())
	assert.Equal(t, 1, b.inits)

	out := b.out.String()
	for _, seq := range []string{"\x1b[?1049h", "\x1b[?25l", "\x1b[?7l", "\x1b[?1004h", "\x1b[?1000h", "\x1b[?1002h", "\x1b[?1003h", "\x1b[?1006h", "\x1b[2J"} {
		assert.Contains(t, out, seq)
	}

	b.out.Reset()
	c.Fini()
	c.Fini()
	assert.Equal(t, 1, b.finis)

	out = b.out.String()
	for _, seq := range []string{"\x1b[?1006l", "\x1b[?1003l", "\x1b[?1000l", "\x1b[?1004l", "\x1b[?25h", "\x1b[?1049l", "\x1b[?7h"} {
		assert.Contains(t, out, seq)
	}
}

func TestConsoleInitFailure(t *testing.T) {
	b := &fakeBackend{w: 10, h: 4, initErr: ErrNotTerminal}
	c := NewWithBackend(b, ColorMode256)

	err := c.Init()
	assert.True(t, errors.Is(err, ErrNotTerminal))
	assert.Zero(t, b.out.Len())

	c.Fini()
	assert.Equal(t, 0, b.finis)
}

func TestConsoleMouseModeBeforeInit(t *testing.T) {
	b, c := newTestConsole(10, 4)
	require.NoError(t, c.SetMouseMode(MouseModeClick))
	require.NoError(t, c.Init())

	out := b.out.String()
	assert.Contains(t, out, "\x1b[?1000h")
	assert.NotContains(t, out, "\x1b[?1003h")

	b.out.Reset()
	require.NoError(t, c.SetMouseMode(MouseModeNone))
	assert.Contains(t, b.out.String(), "\x1b[?1000l")
	assert.Contains(t, b.out.String(), "\x1b[?1006l")
}

func TestConsoleFlushDiff(t *testing.T) {
	b, c := newTestConsole(3, 2)
	require.NoError(t, c.Init())

	white := RGB{255, 255, 255}
	cells := make([]Cell, 6)
	for i := range cells {
		cells[i] = Cell{Rune: ' ', Bg: RGBBlack}
	}
	cells[4] = Cell{Rune: 'x', Fg: white, Bg: RGBBlack, Attrs: AttrBold}

	b.out.Reset()
	c.Flush(cells, 3, 2)
	out := b.out.String()
	assert.Contains(t, out, "\x1b[2;2H")
	assert.Contains(t, out, "\x1b[0;1;38;2;255;255;255;48;2;0;0;0mx")

	// Unchanged frame writes only the trailing reset
	b.out.Reset()
	c.Flush(cells, 3, 2)
	assert.Equal(t, "\x1b[0m", b.out.String())

	// Stale size is dropped
	b.out.Reset()
	c.Flush(cells[:4], 2, 2)
	assert.Zero(t, b.out.Len())

	// Sync repaints every cell
	c.Sync()
	b.out.Reset()
	c.Flush(cells, 3, 2)
	assert.Contains(t, b.out.String(), "\x1b[1;1H")
	assert.Contains(t, b.out.String(), "x")
}

func TestConsole256Color(t *testing.T) {
	b := &fakeBackend{w: 1, h: 1}
	c := NewWithBackend(b, ColorMode256)
	require.NoError(t, c.Init())

	b.out.Reset()
	c.Flush([]Cell{{Rune: 'a', Fg: RGB{255, 0, 0}, Bg: RGB{0, 0, 0}}}, 1, 1)
	assert.Contains(t, b.out.String(), "38;5;196")
	assert.Contains(t, b.out.String(), "48;5;16")
}

func TestConsoleCursorAndTitle(t *testing.T) {
	b, c := newTestConsole(10, 5)
	require.NoError(t, c.Init())

	b.out.Reset()
	c.MoveCursor(3, 2)
	assert.Equal(t, "\x1b[3;4H", b.out.String())

	b.out.Reset()
	c.MoveCursor(50, 50)
	assert.Equal(t, "\x1b[5;10H", b.out.String())

	b.out.Reset()
	c.SetCursorVisible(true)
	c.SetCursorVisible(true)
	assert.Equal(t, "\x1b[?25h", b.out.String())

	b.out.Reset()
	c.SetTitle("demo\x07\x1b]x")
	assert.Equal(t, "\x1b]0;demo]x\x07", b.out.String())
}

func TestConsoleDelegates(t *testing.T) {
	b, c := newTestConsole(10, 5)
	b.events = []Event{NewResizeEvent(10, 5)}

	events, err := c.ReadEvents(time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []Event{NewResizeEvent(10, 5)}, events)

	c.Interrupt()
	assert.Equal(t, 1, b.interrupts)

	w, h := c.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 5, h)
	assert.Equal(t, ColorModeTrueColor, c.ColorMode())

	// The fake backend decodes no byte stream, the setting is dropped
	c.SetEscapeTimeout(time.Second)
}

// streamBackend is a fakeBackend that accepts an escape timeout
type streamBackend struct {
	fakeBackend
	escTimeout time.Duration
}

func (b *streamBackend) SetEscapeTimeout(d time.Duration) { b.escTimeout = d }

func TestConsoleEscapeTimeout(t *testing.T) {
	b := &streamBackend{fakeBackend: fakeBackend{w: 10, h: 5}}
	c := NewWithBackend(b, ColorModeTrueColor)
	c.SetEscapeTimeout(300 * time.Millisecond)
	assert.Equal(t, 300*time.Millisecond, b.escTimeout)
}
