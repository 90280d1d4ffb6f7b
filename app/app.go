package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"slices"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/retui/terminal"
	"github.com/lixenwraith/retui/terminal/tui"
)

// DefaultReadTimeout bounds a single blocking read so the loop re-checks its stop conditions
const DefaultReadTimeout = time.Second

// ErrAlreadyRun is returned by a second Run, an App is not restartable
var ErrAlreadyRun = errors.New("app already run")

// State is the App lifecycle stage
type State uint32

const (
	StateNotRunning State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "NotRunning"
	}
}

// App owns the console, the top-level widgets and the event loop
// It is the root Container of every widget it holds; its inner rectangle
// excludes the status row and the last screen row
type App struct {
	console terminal.Console
	logger  *slog.Logger
	theme   tui.Theme

	title        string
	readTimeout  time.Duration
	demo         time.Duration
	handleSIGINT bool
	quitKeys     []terminal.VirtualKey

	state        atomic.Uint32
	running      atomic.Bool
	requiresDraw atomic.Bool

	widgets []tui.Widget
	focused tui.Widget

	// Point hit-test cache, emptied when layout is redrawn; nil results are cached too
	hits map[[2]int]tui.Widget

	cols, rows int
	cells      []terminal.Cell

	// lastEvent is shown in the status row, which repaints alone when it changes
	lastEvent   string
	statusDirty bool
}

// Option configures an App
type Option func(*App)

// WithLogger sets the logger, default slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithReadTimeout sets the blocking read bound, default DefaultReadTimeout
func WithReadTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.readTimeout = d
		}
	}
}

// WithTheme sets the theme used for the background and the status row
func WithTheme(t tui.Theme) Option {
	return func(a *App) { a.theme = t }
}

// WithTitle sets the window title and the first status row section
func WithTitle(title string) Option {
	return func(a *App) { a.title = title }
}

// WithDemo stops the loop after d, zero disables it
func WithDemo(d time.Duration) Option {
	return func(a *App) { a.demo = d }
}

// WithSIGINT controls whether SIGINT stops the loop, enabled by default
func WithSIGINT(enabled bool) Option {
	return func(a *App) { a.handleSIGINT = enabled }
}

// WithQuitKeys makes the listed keys stop the loop before focus routing
func WithQuitKeys(keys ...terminal.VirtualKey) Option {
	return func(a *App) { a.quitKeys = keys }
}

// New creates an App over an initialized console
func New(console terminal.Console, opts ...Option) *App {
	a := &App{
		console:      console,
		logger:       slog.Default(),
		theme:        tui.DefaultTheme,
		readTimeout:  DefaultReadTimeout,
		handleSIGINT: true,
		hits:         make(map[[2]int]tui.Widget),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.requiresDraw.Store(true)
	return a
}

// State reports the lifecycle stage
func (a *App) State() State { return State(a.state.Load()) }

// Running reports whether the loop is active
func (a *App) Running() bool { return a.running.Load() }

// InnerRect is the layout viewport: screen rows 1..rows-2 in layout coordinates
func (a *App) InnerRect() tui.Rectangle {
	return tui.Rectangle{Width: a.cols, Height: max(a.rows-2, 0)}
}

// ParentContainer returns nil, the App is the root
func (a *App) ParentContainer() tui.Container { return nil }

// Invalidate schedules a redraw before the next read
func (a *App) Invalidate() { a.requiresDraw.Store(true) }

// Widgets returns the top-level widgets bottom first
func (a *App) Widgets() []tui.Widget { return a.widgets }

// Focused returns the focused widget or nil
func (a *App) Focused() tui.Widget { return a.focused }

// AddWidget adds w on top of the existing widgets
func (a *App) AddWidget(w tui.Widget) {
	a.insert(len(a.widgets), w)
}

// AddWidgetBefore adds w just below ref
// Nothing is added and false is returned when ref is not a top-level widget
func (a *App) AddWidgetBefore(w, ref tui.Widget) bool {
	i := slices.Index(a.widgets, ref)
	if i < 0 {
		return false
	}
	a.insert(i, w)
	return true
}

// AddWidgetAfter adds w just above ref
// Nothing is added and false is returned when ref is not a top-level widget
func (a *App) AddWidgetAfter(w, ref tui.Widget) bool {
	i := slices.Index(a.widgets, ref)
	if i < 0 {
		return false
	}
	a.insert(i+1, w)
	return true
}

func (a *App) insert(i int, w tui.Widget) {
	w.Layout().SetParent(a)
	a.widgets = slices.Insert(a.widgets, i, w)
	a.Invalidate()
}

// Focus moves keyboard focus to w, nil clears it
func (a *App) Focus(w tui.Widget) {
	if a.focused == w {
		return
	}
	if a.focused != nil {
		a.focused.Layout().SetFocused(false)
	}
	a.focused = w
	if w != nil {
		w.Layout().SetFocused(true)
	}
	a.Invalidate()
}

// SetTitle updates the window title and the status row
func (a *App) SetTitle(title string) {
	a.title = title
	a.console.SetTitle(title)
	a.Invalidate()
}

// Stop ends the loop after the current batch; safe from any goroutine
func (a *App) Stop() {
	a.running.Store(false)
	a.console.Interrupt()
}

// Run drives the loop until Stop, SIGINT, the demo timer, a read error or ctx ends it
func (a *App) Run(ctx context.Context) error {
	if !a.state.CompareAndSwap(uint32(StateNotRunning), uint32(StateRunning)) {
		return ErrAlreadyRun
	}
	defer a.state.Store(uint32(StateStopped))

	a.running.Store(true)
	defer a.running.Store(false)

	a.cols, a.rows = a.console.Size()
	a.resizeBuffer()
	if a.title != "" {
		a.console.SetTitle(a.title)
	}

	if a.handleSIGINT {
		stopSignals := a.watchSIGINT()
		defer stopSignals()
	}
	if a.demo > 0 {
		timer := time.AfterFunc(a.demo, func() {
			a.logger.Info("demo time elapsed", "after", a.demo)
			a.Stop()
		})
		defer timer.Stop()
	}
	stopCtx := context.AfterFunc(ctx, a.console.Interrupt)
	defer stopCtx()

	a.logger.Info("loop started", "cols", a.cols, "rows", a.rows)
	for a.running.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if a.requiresDraw.Swap(false) {
			a.draw()
		} else if a.statusDirty {
			a.redrawStatus()
		}

		events, err := a.console.ReadEvents(a.readTimeout)
		if err != nil {
			a.running.Store(false)
			return errors.Wrap(err, "read events")
		}
		for _, ev := range events {
			a.dispatch(ev)
		}
	}
	a.logger.Info("loop stopped")
	return nil
}

// watchSIGINT stops the loop on SIGINT until the returned func is called
func (a *App) watchSIGINT() func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		select {
		case <-sigCh:
			a.logger.Info("interrupt received")
			a.Stop()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func (a *App) resizeBuffer() {
	n := max(a.cols, 0) * max(a.rows, 0)
	if cap(a.cells) >= n {
		a.cells = a.cells[:n]
		return
	}
	a.cells = make([]terminal.Cell, n)
}

// draw resolves and paints every widget into a full-screen frame
// Layout may move widgets, so the hit cache starts over
func (a *App) draw() {
	clear(a.hits)
	a.statusDirty = false
	for _, w := range a.widgets {
		w.UpdateDimensions()
	}

	screen := tui.NewRegion(a.cells, a.cols, 0, 0, a.cols, a.rows)
	screen.Fill(a.theme.Background)
	a.drawStatus(screen)

	inner := a.InnerRect()
	viewport := tui.NewRegion(a.cells, a.cols, 0, 1, inner.Width, inner.Height)
	for _, w := range a.widgets {
		w.Draw(viewport)
	}

	a.console.Flush(a.cells, a.cols, a.rows)
}

// redrawStatus repaints only the status row of the last frame
func (a *App) redrawStatus() {
	a.statusDirty = false
	if a.rows < 1 {
		return
	}
	a.drawStatus(tui.NewRegion(a.cells, a.cols, 0, 0, a.cols, 1))
	a.console.Flush(a.cells, a.cols, a.rows)
}

func (a *App) drawStatus(screen tui.Region) {
	sections := []tui.BarSection{
		{Label: a.title, Priority: 10},
		{Label: "size ", Value: fmt.Sprintf("%dx%d", a.cols, a.rows), Priority: 1},
	}
	if a.title == "" {
		sections = sections[1:]
	}
	if a.lastEvent != "" {
		sections = append(sections, tui.BarSection{Label: "last ", Value: a.lastEvent, Priority: 5})
	}
	status := a.theme.StatusStyle()
	screen.StatusBar(0, sections, tui.BarOpts{
		Style: status,
		Value: tui.Style{Fg: a.theme.Accent, Attr: terminal.AttrBold},
	})
}

// WidgetAt returns the topmost widget under a layout point, through the hit cache
func (a *App) WidgetAt(col, row int) tui.Widget {
	key := [2]int{col, row}
	if w, ok := a.hits[key]; ok {
		return w
	}
	var hit tui.Widget
	for _, w := range slices.Backward(a.widgets) {
		if hit = w.WidgetAt(col, row); hit != nil {
			break
		}
	}
	a.hits[key] = hit
	return hit
}

func (a *App) dispatch(ev terminal.Event) {
	if s := ev.String(); s != a.lastEvent {
		a.lastEvent = s
		a.statusDirty = true
	}

	switch ev.Type {
	case terminal.EventResize:
		a.cols, a.rows = a.console.Size()
		a.resizeBuffer()
		a.console.Sync()
		a.Invalidate()
		a.logger.Debug("resized", "cols", a.cols, "rows", a.rows)

	case terminal.EventMouse:
		m := ev.Mouse
		w := a.WidgetAt(m.X, m.Y)
		if w == nil {
			a.logger.Debug("mouse miss", "event", a.lastEvent)
			return
		}
		if m.Button == terminal.ButtonLeft && m.Pressed && !m.Hover && w.Layout().Focusable() {
			a.Focus(w)
		}
		a.handle(w, ev)

	case terminal.EventKey:
		if ev.Key.KeyDown && slices.Contains(a.quitKeys, ev.Key.VirtualKeyCode) {
			a.logger.Info("quit key", "key", ev.Key.VirtualKeyCode.String())
			a.Stop()
			return
		}
		if ev.Key.KeyDown && ev.Key.VirtualKeyCode == terminal.VKTab {
			a.cycleFocus(ev.Key.ControlKeyState.Has(terminal.ControlShift))
			return
		}
		if a.focused == nil {
			a.logger.Debug("key without focus", "event", a.lastEvent)
			return
		}
		a.handle(a.focused, ev)

	case terminal.EventFocus:
		a.logger.Info("console focus", "focused", ev.Focused)

	case terminal.EventRaw:
		// POSIX delivers Tab as a raw control byte
		if string(ev.Raw) == "\t" {
			a.cycleFocus(false)
			return
		}
		a.logger.Debug("raw input", "data", fmt.Sprintf("%q", ev.Raw))
	}
}

// handle isolates widget failures from the loop
func (a *App) handle(w tui.Widget, ev terminal.Event) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("widget handler panicked",
				"widget", fmt.Sprintf("%T", w),
				"event", ev.String(),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := w.Handle(ev); err != nil {
		a.logger.Warn("widget handler failed",
			"widget", fmt.Sprintf("%T", w),
			"event", ev.String(),
			"error", err.Error())
	}
}

// focusables lists focusable widgets in tab order, tree order breaking ties
func (a *App) focusables() []tui.Widget {
	var out []tui.Widget
	var walk func(ws []tui.Widget)
	walk = func(ws []tui.Widget) {
		for _, w := range ws {
			if w.Layout().Focusable() {
				out = append(out, w)
			}
			if p, ok := w.(interface{ Children() []tui.Widget }); ok {
				walk(p.Children())
			}
		}
	}
	walk(a.widgets)

	slices.SortStableFunc(out, func(x, y tui.Widget) int {
		return x.Layout().TabIndex - y.Layout().TabIndex
	})
	return out
}

func (a *App) cycleFocus(reverse bool) {
	order := a.focusables()
	if len(order) == 0 {
		return
	}
	i := slices.Index(order, a.focused)
	switch {
	case i < 0 && reverse:
		i = len(order) - 1
	case i < 0:
		i = 0
	case reverse:
		i = (i - 1 + len(order)) % len(order)
	default:
		i = (i + 1) % len(order)
	}
	a.Focus(order[i])
}
