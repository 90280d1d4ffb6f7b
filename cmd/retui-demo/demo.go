package main

import (
	"fmt"

	"github.com/lixenwraith/retui/terminal/tui"
)

const aboutText = "Widgets declare an offset, a size and an alignment; " +
	"the layout resolves them against the parent on every redraw. " +
	"Click a button, or press Tab to move focus and Space to press it."

// demo is the widget tree shown by the command
type demo struct {
	pane   *tui.Pane
	about  *tui.TextBox
	count  *tui.Button
	quit   *tui.Button
	badge  *tui.TextBox
	clicks int
}

func newDemo(theme tui.Theme, stop func()) *demo {
	d := &demo{}

	d.pane = tui.NewPane("retui")
	d.pane.Layout().Place(tui.Declared{Width: 70, Height: 80, Dimensions: tui.DimRelative, Alignment: tui.AlignCenter})

	d.about = tui.NewTextBox("About", aboutText)
	d.about.Layout().Place(tui.Declared{Height: 60, Dimensions: tui.DimFillWidthRelativeHeight, Alignment: tui.AlignTopLeft})

	d.count = tui.NewButton("Count 0", func(b *tui.Button) error {
		d.clicks++
		b.SetText(fmt.Sprintf("Count %d", d.clicks))
		return nil
	})
	d.count.Layout().Place(tui.Declared{X: 2, Width: 14, Height: 3, Alignment: tui.AlignBottomLeft})

	d.quit = tui.NewButton("Quit", func(*tui.Button) error {
		stop()
		return nil
	})
	d.quit.Layout().Place(tui.Declared{X: 2, Width: 10, Height: 3, Alignment: tui.AlignBottomRight})

	d.badge = tui.NewTextBox("", " retui ")
	d.badge.Borderless = true
	d.badge.Layout().Place(tui.Declared{X: 1, Width: 7, Height: 1, Alignment: tui.AlignFloatBottomRight})

	for _, w := range []*tui.BorderWidget{&d.pane.BorderWidget, &d.about.BorderWidget, &d.count.BorderWidget, &d.quit.BorderWidget, &d.badge.BorderWidget} {
		w.Theme = theme
	}
	d.badge.Theme.Background = theme.Accent
	d.badge.Theme.Text = theme.Background

	d.pane.Add(d.about)
	d.pane.Add(d.count)
	d.pane.Add(d.quit)
	d.pane.Add(d.badge)
	return d
}
