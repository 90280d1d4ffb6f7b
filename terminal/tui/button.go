package tui

import "github.com/lixenwraith/retui/terminal"

// Button is a focusable text box with a centered label
type Button struct {
	TextBox

	// OnClick runs on a left click or Return/Space while focused
	OnClick func(b *Button) error
}

// NewButton creates a focusable button
func NewButton(label string, onClick func(*Button) error) *Button {
	b := &Button{OnClick: onClick}
	b.init("")
	b.text = label
	b.layout.TabIndex = 0
	return b
}

// Label returns the button text
func (b *Button) Label() string { return b.text }

func (b *Button) Draw(r Region) {
	b.BorderWidget.Draw(r)
	inner := b.InnerRect()
	b.drawLines(r, []string{Truncate(b.text, inner.Width)}, true)
}

func (b *Button) WidgetAt(col, row int) Widget {
	if b.layout.Last.Contains(col, row) {
		return b
	}
	return nil
}

// Handle fires OnClick and returns its error
func (b *Button) Handle(ev terminal.Event) error {
	if !b.activates(ev) || b.OnClick == nil {
		return nil
	}
	return b.OnClick(b)
}

func (b *Button) activates(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventMouse:
		m := ev.Mouse
		return m.Button == terminal.ButtonLeft && m.Pressed && !m.Hover
	case terminal.EventKey:
		k := ev.Key
		return k.KeyDown && (k.VirtualKeyCode == terminal.VKReturn || k.VirtualKeyCode == terminal.VKSpace)
	}
	return false
}
