//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// sizeMonitor watches SIGWINCH
// The signal goroutine only raises a flag and pokes the wake pipe; the
// resize event itself is built by the reader on the main loop
type sizeMonitor struct {
	fd    int
	wakeW int

	pending atomic.Bool

	mu         sync.Mutex
	lastW      int
	lastH      int
	sigCh      chan os.Signal
	stopCh     chan struct{}
	doneCh     chan struct{}
	notifyOnce sync.Once
}

// newSizeMonitor creates a monitor for the given fd, wakeW may be -1
func newSizeMonitor(fd, wakeW int) *sizeMonitor {
	return &sizeMonitor{
		fd:     fd,
		wakeW:  wakeW,
		lastW:  80,
		lastH:  24,
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// start begins listening for SIGWINCH
func (m *sizeMonitor) start() {
	m.notifyOnce.Do(func() {
		signal.Notify(m.sigCh, syscall.SIGWINCH)
		go m.watchLoop()
	})
}

// stop stops the monitor
func (m *sizeMonitor) stop() {
	signal.Stop(m.sigCh)
	close(m.stopCh)
	<-m.doneCh
}

func (m *sizeMonitor) watchLoop() {
	defer close(m.doneCh)
	for {
		select {
		case <-m.stopCh:
			return
		case <-m.sigCh:
			m.pending.Store(true)
			if m.wakeW >= 0 {
				unix.Write(m.wakeW, []byte{1})
			}
		}
	}
}

// Pending consumes the resize flag
func (m *sizeMonitor) Pending() bool {
	return m.pending.Swap(false)
}

// Size queries the console, falling back to the last known size on error
func (m *sizeMonitor) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, err := unix.IoctlGetWinsize(m.fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return m.lastW, m.lastH
	}
	m.lastW, m.lastH = int(ws.Col), int(ws.Row)
	return m.lastW, m.lastH
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w == 0 || h == 0 {
		return 80, 24 // Fallback
	}
	return w, h
}
