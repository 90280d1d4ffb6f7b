package tui

import "github.com/lixenwraith/retui/terminal"

// Widget is a node of the retained widget tree
// Draw receives the layout viewport; widgets paint at their absolute Last rectangle
type Widget interface {
	Layout() *Layout
	UpdateDimensions()
	Draw(r Region)
	WidgetAt(col, row int) Widget
	Handle(ev terminal.Event) error
}

// BorderWidget is a themed box, the base of every other widget
type BorderWidget struct {
	layout Layout

	Title      string
	Borderless bool
	Line       LineType
	Theme      Theme
}

// NewBorderWidget creates a non-focusable bordered box
func NewBorderWidget(title string) *BorderWidget {
	b := &BorderWidget{}
	b.init(title)
	return b
}

func (b *BorderWidget) init(title string) {
	b.Title = title
	b.Theme = DefaultTheme
	b.layout.TabIndex = -1
}

func (b *BorderWidget) Layout() *Layout { return &b.layout }

func (b *BorderWidget) UpdateDimensions() { b.layout.UpdateDimensions() }

// InnerRect is the area inside the border
func (b *BorderWidget) InnerRect() Rectangle {
	if b.Borderless {
		return b.layout.Last
	}
	return b.layout.Last.Inset(1)
}

func (b *BorderWidget) ParentContainer() Container { return b.layout.parent }

// Draw paints background, border and title
func (b *BorderWidget) Draw(r Region) {
	area := r.Rect(b.layout.Last)
	if b.Borderless {
		area.Fill(b.Theme.Background)
		return
	}
	border := b.Theme.Border
	if b.layout.focused {
		border = b.Theme.Accent
	}
	area.BoxFilled(b.Line, border, b.Theme.Background)
	area.BorderTitle(b.Title, border, b.Theme.Background)
}

func (b *BorderWidget) WidgetAt(col, row int) Widget {
	if b.layout.Last.Contains(col, row) {
		return b
	}
	return nil
}

// Handle ignores every event
func (b *BorderWidget) Handle(terminal.Event) error { return nil }
