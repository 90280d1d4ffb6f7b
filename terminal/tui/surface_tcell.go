package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/retui/terminal"
)

// TcellSurface paints retui cell buffers into a tcell screen
// It lets a resolved widget tree be hosted inside a tcell application
type TcellSurface struct {
	screen tcell.Screen
}

// NewTcellSurface wraps an initialized screen
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{screen: screen}
}

// Size returns the screen dimensions
func (s *TcellSurface) Size() (int, int) {
	return s.screen.Size()
}

// Flush copies a row-major cell buffer and shows it
// Cells beyond the screen are ignored
func (s *TcellSurface) Flush(cells []terminal.Cell, width, height int) {
	sw, sh := s.screen.Size()
	w, h := min(width, sw), min(height, sh)
	for y := 0; y < h; y++ {
		row := y * width
		for x := 0; x < w; x++ {
			if row+x >= len(cells) {
				break
			}
			c := cells[row+x]
			if c.Rune == 0 && x > 0 && runeIsWide(cells[row+x-1].Rune) {
				// covered by the wide rune to the left
				continue
			}
			r := c.Rune
			if r <= 0 {
				r = ' '
			}
			s.screen.SetContent(x, y, r, nil, TcellStyle(c))
		}
	}
	s.screen.Show()
}

// Paint flushes the region's backing buffer
func (s *TcellSurface) Paint(r Region) {
	if r.TotalW <= 0 {
		return
	}
	s.Flush(r.Cells, r.TotalW, len(r.Cells)/r.TotalW)
}

// TcellStyle converts cell colors and attributes to a tcell style
func TcellStyle(c terminal.Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(c.Fg, c.Attrs&terminal.AttrFg256 != 0)).
		Background(tcellColor(c.Bg, c.Attrs&terminal.AttrBg256 != 0))
	return st.
		Bold(c.Attrs&terminal.AttrBold != 0).
		Dim(c.Attrs&terminal.AttrDim != 0).
		Italic(c.Attrs&terminal.AttrItalic != 0).
		Underline(c.Attrs&terminal.AttrUnderline != 0).
		Blink(c.Attrs&terminal.AttrBlink != 0).
		Reverse(c.Attrs&terminal.AttrReverse != 0)
}

// tcellColor maps an RGB, or a palette index stored in R when indexed
func tcellColor(c terminal.RGB, indexed bool) tcell.Color {
	if indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
