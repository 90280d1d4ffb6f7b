//go:build unix

package terminal

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	inFd  int
	outFd int

	oldTermios *unix.Termios
	oldFlags   int
	flagsSaved bool

	// wake pipe lets resize and Interrupt cut a poll short
	wakeR, wakeW int

	resize     *sizeMonitor
	reader     *StreamReader
	escTimeout time.Duration

	// stdinReady is set by Wait when stdin itself reported readiness
	stdinReady bool
}

func newBackend() Backend {
	return &unixBackend{
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
		wakeR: -1,
		wakeW: -1,
	}
}

// Init puts stdin into non-canonical, non-echo, non-blocking mode
// On error the console is left untouched
func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return ErrNotTerminal
	}

	old, err := unix.IoctlGetTermios(b.inFd, ioctlReadTermios)
	if err != nil {
		return errors.Wrap(err, "get termios")
	}

	flags, err := unix.FcntlInt(uintptr(b.inFd), unix.F_GETFL, 0)
	if err != nil {
		return errors.Wrap(err, "get stdin flags")
	}

	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return errors.Wrap(err, "create wake pipe")
	}
	for _, fd := range p {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return errors.Wrap(err, "set wake pipe non-blocking")
		}
	}

	raw := *old
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(b.inFd, ioctlWriteTermios, &raw); err != nil {
		unix.Close(p[0])
		unix.Close(p[1])
		return errors.Wrap(err, "set termios")
	}
	b.oldTermios = old

	if _, err := unix.FcntlInt(uintptr(b.inFd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		unix.IoctlSetTermios(b.inFd, ioctlWriteTermios, old)
		b.oldTermios = nil
		unix.Close(p[0])
		unix.Close(p[1])
		return errors.Wrap(err, "set stdin non-blocking")
	}
	b.oldFlags = flags
	b.flagsSaved = true

	b.wakeR, b.wakeW = p[0], p[1]
	b.resize = newSizeMonitor(b.outFd, b.wakeW)
	b.resize.start()
	b.reader = NewStreamReader(b, b.resize)
	b.reader.SetEscapeTimeout(b.escTimeout)

	// Ctrl-Z would suspend with the console in raw mode
	signal.Ignore(syscall.SIGTSTP)
	return nil
}

// SetEscapeTimeout applies now and to readers created by later Init calls
func (b *unixBackend) SetEscapeTimeout(d time.Duration) {
	b.escTimeout = d
	if b.reader != nil {
		b.reader.SetEscapeTimeout(d)
	}
}

// Fini restores termios and file status flags
func (b *unixBackend) Fini() {
	if b.resize != nil {
		b.resize.stop()
		b.resize = nil
	}
	signal.Reset(syscall.SIGTSTP)

	if b.flagsSaved {
		unix.FcntlInt(uintptr(b.inFd), unix.F_SETFL, b.oldFlags)
		b.flagsSaved = false
	}
	if b.oldTermios != nil {
		unix.IoctlSetTermios(b.inFd, ioctlWriteTermios, b.oldTermios)
		b.oldTermios = nil
	}
	if b.wakeR >= 0 {
		unix.Close(b.wakeR)
		unix.Close(b.wakeW)
		b.wakeR, b.wakeW = -1, -1
	}
}

func (b *unixBackend) Size() (int, int) {
	if b.resize != nil {
		return b.resize.Size()
	}
	return getTerminalSize(b.outFd)
}

// Write writes all of p; stdout usually shares the tty file description with
// stdin, so O_NONBLOCK applies to it as well and EAGAIN waits for POLLOUT
func (b *unixBackend) Write(p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(b.outFd, p)
		if n > 0 {
			p = p[n:]
		}
		switch err {
		case nil:
		case unix.EAGAIN:
			fds := []unix.PollFd{{Fd: int32(b.outFd), Events: unix.POLLOUT}}
			if _, err := unix.Poll(fds, 100); err != nil && err != unix.EINTR {
				return errors.Wrap(err, "poll stdout")
			}
		case unix.EINTR:
		default:
			return errors.Wrap(err, "write stdout")
		}
	}
	return nil
}

func (b *unixBackend) ReadEvents(timeout time.Duration) ([]Event, error) {
	if b.reader == nil {
		return nil, errors.New("console not initialized")
	}
	return b.reader.ReadEvents(timeout)
}

// Interrupt wakes a pending Wait through the wake pipe
func (b *unixBackend) Interrupt() {
	if b.wakeW >= 0 {
		unix.Write(b.wakeW, []byte{0})
	}
}

// Wait polls stdin and the wake pipe
func (b *unixBackend) Wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
		{Fd: int32(b.wakeR), Events: unix.POLLIN},
	}
	b.stdinReady = false

	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, errors.Wrap(err, "poll stdin")
	}
	if n == 0 {
		return false, nil
	}

	if fds[1].Revents&unix.POLLIN != 0 {
		b.drainWake()
	}
	if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
		return false, errors.New("stdin poll error")
	}
	b.stdinReady = fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0
	return b.stdinReady, nil
}

// Read performs one non-blocking read, no data yields 0, nil
func (b *unixBackend) Read(p []byte) (int, error) {
	first := b.stdinReady
	b.stdinReady = false

	n, err := unix.Read(b.inFd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EINTR {
			return 0, nil
		}
		return 0, errors.Wrap(err, "read stdin")
	}
	// Readiness reported but nothing to read means the other end hung up
	if n == 0 && first {
		return 0, io.EOF
	}
	return n, nil
}

func (b *unixBackend) drainWake() {
	var buf [16]byte
	for {
		n, err := unix.Read(b.wakeR, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}
