package tui

import "fmt"

// Rectangle is an absolute cell area in layout coordinates
type Rectangle struct {
	Column int
	Row    int
	Width  int
	Height int
}

// Contains reports whether the cell lies inside, edges are half-open
func (r Rectangle) Contains(col, row int) bool {
	return col >= r.Column && col < r.Column+r.Width &&
		row >= r.Row && row < r.Row+r.Height
}

// Update replaces all four fields
func (r *Rectangle) Update(col, row, width, height int) {
	r.Column, r.Row, r.Width, r.Height = col, row, width, height
}

// Inset shrinks the rectangle by n cells on every side
func (r Rectangle) Inset(n int) Rectangle {
	return Rectangle{
		Column: r.Column + n,
		Row:    r.Row + n,
		Width:  max(0, r.Width-2*n),
		Height: max(0, r.Height-2*n),
	}
}

// Empty reports a zero-area rectangle
func (r Rectangle) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Column, r.Row, r.Width, r.Height)
}
