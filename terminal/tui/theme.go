package tui

import "github.com/lixenwraith/retui/terminal"

// Style bundles foreground, background, and attributes for text rendering
type Style struct {
	Fg   terminal.RGB
	Bg   terminal.RGB
	Attr terminal.Attr
}

// Theme defines the semantic colors widgets paint with
type Theme struct {
	Border     terminal.RGB
	Text       terminal.RGB
	Background terminal.RGB
	Accent     terminal.RGB // focused and active elements
	Status     terminal.RGB // status row background
}

// DefaultTheme provides reasonable defaults
var DefaultTheme = Theme{
	Border:     terminal.RGB{R: 60, G: 80, B: 100},
	Text:       terminal.RGB{R: 200, G: 200, B: 200},
	Background: terminal.RGB{R: 20, G: 20, B: 30},
	Accent:     terminal.RGB{R: 80, G: 160, B: 220},
	Status:     terminal.RGB{R: 40, G: 60, B: 90},
}

// TextStyle is plain text on the background
func (t Theme) TextStyle() Style {
	return Style{Fg: t.Text, Bg: t.Background}
}

// FocusStyle is text on the accent color
func (t Theme) FocusStyle() Style {
	return Style{Fg: t.Background, Bg: t.Accent, Attr: terminal.AttrBold}
}

// StatusStyle is text on the status row
func (t Theme) StatusStyle() Style {
	return Style{Fg: t.Text, Bg: t.Status}
}
