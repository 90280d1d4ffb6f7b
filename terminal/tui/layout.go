package tui

// Declared is the geometry a widget asks for
// X and Y are offsets from the anchor edge; for a centered axis they displace from center
type Declared struct {
	X, Y          int
	Width, Height int
	Alignment     Alignment
	Dimensions    Dimensions
}

// Container is anything that lays out children inside an inner area
type Container interface {
	// InnerRect is the reference frame for children's position and size
	InnerRect() Rectangle

	// ParentContainer returns nil for the root
	ParentContainer() Container
}

// Invalidator is implemented by a root container that can schedule a redraw
type Invalidator interface {
	Invalidate()
}

// Resolve computes an absolute rectangle from declared geometry
// Sizes resolve against parent; position resolves against parent, or root for Float
// Pure: equal inputs give equal rectangles
func Resolve(d Declared, parent, root Rectangle) Rectangle {
	w := resolveSize(d.Width, parent.Width,
		d.Dimensions.Has(DimRelativeWidth), d.Dimensions.Has(DimFillWidth))
	h := resolveSize(d.Height, parent.Height,
		d.Dimensions.Has(DimRelativeHeight), d.Dimensions.Has(DimFillHeight))

	frame := parent
	if d.Alignment.Has(AlignFloat) {
		frame = root
	}

	return Rectangle{
		Column: place(frame.Column, frame.Width, w, d.X,
			d.Alignment.Has(AlignLeft), d.Alignment.Has(AlignRight)),
		Row: place(frame.Row, frame.Height, h, d.Y,
			d.Alignment.Has(AlignTop), d.Alignment.Has(AlignBottom)),
		Width:  w,
		Height: h,
	}
}

// resolveSize applies one axis of the dimension flags, truncating percentages
func resolveSize(value, inner int, relative, fill bool) int {
	var n int
	switch {
	case fill:
		n = inner
	case relative:
		n = value * inner / 100
	default:
		n = value
	}
	return max(0, n)
}

// place positions one axis; start wins when both edges are set
func place(origin, inner, size, offset int, start, end bool) int {
	switch {
	case start:
		return origin + offset
	case end:
		return origin + inner - size - offset
	default:
		return origin + (inner-size)/2 + offset
	}
}

// Layout is the declared and resolved geometry shared by every widget
type Layout struct {
	Declared

	// TabIndex >= 0 makes the widget focusable
	TabIndex int

	// Last is the rectangle from the most recent UpdateDimensions
	Last Rectangle

	parent  Container
	focused bool
}

// UpdateDimensions resolves Last against the current parent
// Without a parent both frames are empty
func (l *Layout) UpdateDimensions() {
	var parent, root Rectangle
	if l.parent != nil {
		parent = l.parent.InnerRect()
		root = RootRect(l.parent)
	}
	l.Last = Resolve(l.Declared, parent, root)
}

// Place sets the declared geometry in one call
func (l *Layout) Place(d Declared) {
	l.Declared = d
}

// Parent returns the container the widget was added to
func (l *Layout) Parent() Container { return l.parent }

// SetParent is called by the container on add; it does not own the parent
func (l *Layout) SetParent(c Container) { l.parent = c }

// Focusable reports a non-negative TabIndex
func (l *Layout) Focusable() bool { return l.TabIndex >= 0 }

// Focused reports whether the widget holds keyboard focus
func (l *Layout) Focused() bool { return l.focused }

// SetFocused is called by the focus owner
func (l *Layout) SetFocused(focused bool) { l.focused = focused }

// Root walks up to the top-level container
func Root(c Container) Container {
	if c == nil {
		return nil
	}
	for p := c.ParentContainer(); p != nil; p = c.ParentContainer() {
		c = p
	}
	return c
}

// RootRect returns the inner rectangle of the top-level container
func RootRect(c Container) Rectangle {
	if r := Root(c); r != nil {
		return r.InnerRect()
	}
	return Rectangle{}
}

// Invalidate asks the root of c, if it can, to redraw
func Invalidate(c Container) {
	if inv, ok := Root(c).(Invalidator); ok {
		inv.Invalidate()
	}
}
