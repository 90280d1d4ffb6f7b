// @focus: #terminal { output }
package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFg256     Attr = 1 << 6 // Fg.R is a 256-color palette index
	AttrBg256     Attr = 1 << 7 // Bg.R is a 256-color palette index
)

// AttrStyle masks only the style bits (excludes color mode flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// sgrAttrs pairs style bits with their SGR parameter
var sgrAttrs = [...]struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
}

// Cell represents a single character cell, Rune 0 renders as a space
// The cell right of a double-width rune is covered by it and never written
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// outputBuffer keeps the last flushed frame and writes only changed cells
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// backendWriter adapts Backend.Write to io.Writer
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 64*1024),
		colorMode: colorMode,
	}
}

// resize reallocates the front buffer; every cell becomes dirty
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

// flush writes cells (row-major, cells[y*width+x]) diffed against the previous frame
func (o *outputBuffer) flush(cells []Cell, width, height int) {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return
	}

	w := o.writer
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			idx := row + x
			c := cells[idx]
			if x > 0 && isWide(cells[idx-1].Rune) {
				o.front[idx] = c
				continue
			}
			if c == o.front[idx] {
				continue
			}
			// Uncovering the right half of a wide rune forces a repaint there
			if isWide(o.front[idx].Rune) && x+1 < width {
				o.front[idx+1] = Cell{Rune: -1}
			}

			if !o.cursorValid || y != o.cursorY || x != o.cursorX {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX, o.cursorY = x, y
				o.cursorValid = true
			}

			o.writeStyle(w, c.Fg, c.Bg, c.Attrs)
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			if r < 0x80 {
				w.WriteByte(byte(r))
			} else {
				w.WriteRune(r)
			}
			o.front[idx] = c
			o.cursorX++
			if isWide(r) {
				o.cursorX++
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false
	w.Flush()
}

// isWide reports a double-width rune; everything below U+1100 is narrow
func isWide(r rune) bool {
	return r >= 0x1100 && runewidth.RuneWidth(r) == 2
}

// writeStyle emits one combined SGR sequence when the style differs from the last cell written
func (o *outputBuffer) writeStyle(w *bufio.Writer, fg, bg RGB, attr Attr) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg && attr == o.lastAttr {
		return
	}

	w.Write(csi)
	if !o.lastValid || attr&AttrStyle != o.lastAttr&AttrStyle {
		// Attributes cannot be turned off individually portably, reset then set
		w.WriteByte('0')
		for _, a := range sgrAttrs {
			if attr&a.attr != 0 {
				w.WriteByte(';')
				w.WriteByte(a.code)
			}
		}
		w.WriteByte(';')
		o.writeColor(w, '3', fg, attr&AttrFg256 != 0)
		w.WriteByte(';')
		o.writeColor(w, '4', bg, attr&AttrBg256 != 0)
	} else {
		fgChanged := fg != o.lastFg || attr&AttrFg256 != o.lastAttr&AttrFg256
		bgChanged := bg != o.lastBg || attr&AttrBg256 != o.lastAttr&AttrBg256
		if fgChanged {
			o.writeColor(w, '3', fg, attr&AttrFg256 != 0)
		}
		if fgChanged && bgChanged {
			w.WriteByte(';')
		}
		if bgChanged {
			o.writeColor(w, '4', bg, attr&AttrBg256 != 0)
		}
	}
	w.WriteByte('m')

	o.lastFg, o.lastBg, o.lastAttr = fg, bg, attr
	o.lastValid = true
}

// writeColor writes "38;5;n" / "38;2;r;g;b" (or 48 for background, selected by plane)
func (o *outputBuffer) writeColor(w *bufio.Writer, plane byte, c RGB, indexed bool) {
	w.WriteByte(plane)
	switch {
	case indexed:
		w.WriteString("8;5;")
		writeInt(w, int(c.R))
	case o.colorMode == ColorModeTrueColor:
		w.WriteString("8;2;")
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
	default:
		w.WriteString("8;5;")
		writeInt(w, int(RGBTo256(c)))
	}
}

// forceFullRedraw invalidates the front buffer so the next flush repaints everything
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Rune: -1}
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear erases the screen with bg
func (o *outputBuffer) clear(bg RGB) {
	w := o.writer
	w.Write(csiSGR0)
	if o.colorMode == ColorModeTrueColor {
		w.Write(csiBgRGB)
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
	} else {
		w.Write(csiBg256)
		writeInt(w, int(RGBTo256(bg)))
	}
	w.WriteByte('m')
	w.Write(csiClearScreen)
	w.Write(csiHome)
	w.Flush()

	o.lastValid = false
	o.cursorValid = false
	for i := range o.front {
		o.front[i] = Cell{Rune: ' ', Bg: bg}
	}
}

// invalidateCursor marks cursor position as unknown
func (o *outputBuffer) invalidateCursor() {
	o.cursorValid = false
}
