package tui

import (
	"slices"

	"github.com/lixenwraith/retui/terminal"
)

// Pane is a bordered container; children are kept in paint order, the last is topmost
type Pane struct {
	BorderWidget

	children []Widget
}

// NewPane creates a non-focusable container
func NewPane(title string) *Pane {
	p := &Pane{}
	p.init(title)
	return p
}

// Children returns the children in paint order
func (p *Pane) Children() []Widget { return p.children }

// Add appends w on top of the existing children
func (p *Pane) Add(w Widget) {
	p.insert(len(p.children), w)
}

// AddBefore inserts w just below ref, returns false without adding if ref is not a child
func (p *Pane) AddBefore(w, ref Widget) bool {
	i := slices.Index(p.children, ref)
	if i < 0 {
		return false
	}
	p.insert(i, w)
	return true
}

// AddAfter inserts w just above ref, returns false without adding if ref is not a child
func (p *Pane) AddAfter(w, ref Widget) bool {
	i := slices.Index(p.children, ref)
	if i < 0 {
		return false
	}
	p.insert(i+1, w)
	return true
}

// Remove detaches w, returns false if it is not a child
func (p *Pane) Remove(w Widget) bool {
	i := slices.Index(p.children, w)
	if i < 0 {
		return false
	}
	p.children = slices.Delete(p.children, i, i+1)
	w.Layout().SetParent(nil)
	Invalidate(p)
	return true
}

func (p *Pane) insert(i int, w Widget) {
	w.Layout().SetParent(p)
	p.children = slices.Insert(p.children, i, w)
	Invalidate(p)
}

// UpdateDimensions resolves the pane, then its children against the new inner rectangle
func (p *Pane) UpdateDimensions() {
	p.layout.UpdateDimensions()
	for _, c := range p.children {
		c.UpdateDimensions()
	}
}

func (p *Pane) Draw(r Region) {
	p.BorderWidget.Draw(r)
	for _, c := range p.children {
		c.Draw(r)
	}
}

// WidgetAt checks children topmost first, then the pane itself
// Floating children may lie outside the pane, so they are asked regardless
func (p *Pane) WidgetAt(col, row int) Widget {
	for _, c := range slices.Backward(p.children) {
		if w := c.WidgetAt(col, row); w != nil {
			return w
		}
	}
	if p.layout.Last.Contains(col, row) {
		return p
	}
	return nil
}

// Handle ignores every event
func (p *Pane) Handle(terminal.Event) error { return nil }
