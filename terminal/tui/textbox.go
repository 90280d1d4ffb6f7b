package tui

import "github.com/lixenwraith/retui/terminal"

// TextBox is a bordered box of word-wrapped text
type TextBox struct {
	BorderWidget

	text string
}

// NewTextBox creates a non-focusable text box
func NewTextBox(title, text string) *TextBox {
	t := &TextBox{text: text}
	t.init(title)
	return t
}

// Text returns the current content
func (t *TextBox) Text() string { return t.text }

// SetText replaces the content and asks the root to redraw
func (t *TextBox) SetText(text string) {
	if text == t.text {
		return
	}
	t.text = text
	Invalidate(t)
}

// Lines returns the text as it will be drawn into the current inner rectangle
// When the text does not fit, the last visible line ends with …
func (t *TextBox) Lines() []string {
	inner := t.InnerRect()
	if inner.Empty() {
		return nil
	}
	lines := WrapText(t.text, inner.Width)
	if len(lines) > inner.Height {
		lines = lines[:inner.Height]
		last := len(lines) - 1
		lines[last] = TruncateLine(lines[last], inner.Width)
	}
	return lines
}

func (t *TextBox) Draw(r Region) {
	t.BorderWidget.Draw(r)
	t.drawLines(r, t.Lines(), false)
}

// drawLines paints lines into the inner rectangle, optionally centered on both axes
func (t *TextBox) drawLines(r Region, lines []string, center bool) {
	inner := r.Rect(t.InnerRect())
	style := t.Theme.TextStyle()
	if t.layout.focused && t.layout.Focusable() {
		style = t.Theme.FocusStyle()
		inner.Fill(style.Bg)
	}

	top := 0
	if center {
		top = (inner.H - len(lines)) / 2
	}
	for i, line := range lines {
		if center {
			inner.TextCenter(top+i, line, style.Fg, style.Bg, style.Attr)
		} else {
			inner.TextStyled(0, top+i, line, style)
		}
	}
}

func (t *TextBox) WidgetAt(col, row int) Widget {
	if t.layout.Last.Contains(col, row) {
		return t
	}
	return nil
}

// Handle ignores every event
func (t *TextBox) Handle(terminal.Event) error { return nil }
