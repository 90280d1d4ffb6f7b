package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/retui/terminal"
)

// BarSection represents one segment of a status bar
type BarSection struct {
	Label    string
	Value    string
	Priority int // Higher = survives truncation
}

// BarAlign specifies where sections are packed
type BarAlign uint8

const (
	BarAlignLeft  BarAlign = iota // Pack sections from left
	BarAlignRight                 // Pack sections from right
)

// BarOpts configures status bar rendering
type BarOpts struct {
	Separator string // Between sections, default " │ "
	Style     Style  // Label and fill
	Value     Style  // Value foreground and attributes, background comes from Style
	Align     BarAlign
	Padding   int // Left/right padding, default 1
}

func (s BarSection) width() int {
	return runewidth.StringWidth(s.Label) + runewidth.StringWidth(s.Value)
}

// StatusBar fills row y and renders sections separated by opts.Separator
// Lowest priority sections are dropped until the rest fit; a lone section that
// still does not fit is truncated with …
func (r Region) StatusBar(y int, sections []BarSection, opts BarOpts) {
	if y < 0 || y >= r.H {
		return
	}
	if opts.Separator == "" {
		opts.Separator = " │ "
	}
	if opts.Padding == 0 {
		opts.Padding = 1
	}

	bg := opts.Style.Bg
	for x := 0; x < r.W; x++ {
		r.Cell(x, y, ' ', opts.Style.Fg, bg, terminal.AttrNone)
	}

	availW := r.W - opts.Padding*2
	if availW <= 0 || len(sections) == 0 {
		return
	}

	sepW := runewidth.StringWidth(opts.Separator)
	sections = fitSections(sections, sepW, availW)

	totalW := 0
	for i, sec := range sections {
		totalW += sec.width()
		if i > 0 {
			totalW += sepW
		}
	}

	x := opts.Padding
	if opts.Align == BarAlignRight && totalW < availW {
		x = r.W - opts.Padding - totalW
	}

	row := r.Sub(0, y, r.W-opts.Padding, 1)
	for i, sec := range sections {
		if i > 0 {
			x += row.Text(x, 0, opts.Separator, opts.Style.Fg, bg, opts.Style.Attr)
		}
		if totalW > availW {
			// Only one section is left here
			line := runewidth.Truncate(sec.Label+sec.Value, availW, "…")
			row.Text(x, 0, line, opts.Style.Fg, bg, opts.Style.Attr)
			return
		}
		x += row.Text(x, 0, sec.Label, opts.Style.Fg, bg, opts.Style.Attr)
		x += row.Text(x, 0, sec.Value, opts.Value.Fg, bg, opts.Value.Attr)
	}
}

// fitSections removes lowest priority sections until the rest fit, keeping order
func fitSections(sections []BarSection, sepW, availW int) []BarSection {
	secs := make([]BarSection, len(sections))
	copy(secs, sections)

	for len(secs) > 1 {
		total := 0
		for i, sec := range secs {
			total += sec.width()
			if i > 0 {
				total += sepW
			}
		}
		if total <= availW {
			break
		}

		minIdx := 0
		for i, sec := range secs {
			if sec.Priority < secs[minIdx].Priority {
				minIdx = i
			}
		}
		secs = append(secs[:minIdx], secs[minIdx+1:]...)
	}
	return secs
}
