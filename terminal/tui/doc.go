// Package tui provides the declarative layout and widget tree on top of the terminal package.
//
// Widgets declare their geometry (Declared: offset, size, Alignment, Dimensions) and
// Resolve turns it into an absolute Rectangle against the parent's inner rectangle.
// Float widgets position against the root viewport instead. Resolution is pure, so
// re-resolving an unchanged tree gives identical rectangles.
//
// Painting goes through Region, a clipped view of a row-major cell buffer. Widgets
// receive the layout viewport and paint at their resolved rectangle.
//
// Usage pattern:
//
//	pane := tui.NewPane("Demo")
//	pane.Layout().Place(tui.Declared{Width: 60, Height: 80, Dimensions: tui.DimRelativeHeight})
//	pane.Add(tui.NewButton("Quit", func(*tui.Button) error { app.Stop(); return nil }))
//
//	app.AddWidget(pane) // resolves, hit-tests and dispatches events
package tui
