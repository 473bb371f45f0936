//go:build linux || darwin

package ttycat

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	gobug "go.bug.st/serial"
	"go.uber.org/atomic"
	"golang.org/x/sys/unix"
)

// allow tests to override external dependencies
var (
	openDevice   = unix.Open
	isTerminal   = isatty.IsTerminal
	getPortsList = gobug.GetPortsList
)

// openFlags opens the device read/write with synchronous writes and without
// making it the controlling terminal. O_NONBLOCK keeps open from waiting on
// carrier detect and lets os.NewFile hand the descriptor to the runtime
// poller, which is what makes read deadlines work.
const openFlags = unix.O_RDWR | unix.O_NOCTTY | unix.O_SYNC | unix.O_NONBLOCK | unix.O_CLOEXEC

// Port is an open tty configured for raw reads. It is the only owner of the
// underlying descriptor.
type Port struct {
	file   *os.File
	fd     int
	path   string
	speed  Speed
	saved  *unix.Termios
	closed atomic.Bool
}

// Open opens path, checks that it is a terminal and switches it to raw 8N1
// at speed with VMIN=1 and VTIME=1. Errors carry the diagnostic text for the
// failing step and wrap the underlying system error.
func Open(path string, speed Speed) (*Port, error) {
	fd, err := openDevice(path, openFlags, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot open: %s: %w", path, err)
	}

	if !isTerminal(uintptr(fd)) {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %s", ErrNotTTY, path)
	}

	saved, err := configure(fd, path, speed)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	return &Port{
		file:  os.NewFile(uintptr(fd), path),
		fd:    fd,
		path:  path,
		speed: speed,
		saved: saved,
	}, nil
}

// Read reads up to len(b) bytes. It returns os.ErrDeadlineExceeded (wrapped)
// when the deadline set by SetReadDeadline passes with nothing queued.
func (p *Port) Read(b []byte) (int, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	return p.file.Read(b)
}

// SetReadDeadline bounds the pending and future Read calls.
func (p *Port) SetReadDeadline(t time.Time) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.file.SetReadDeadline(t)
}

// Close restores the line settings found by Open and releases the
// descriptor. It is safe to call multiple times.
func (p *Port) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	if p.saved != nil {
		_ = unix.IoctlSetTermios(p.fd, ioctlSetTermios, p.saved)
	}
	return p.file.Close()
}

// Path returns the device path given to Open.
func (p *Port) Path() string {
	return p.path
}

// Speed returns the speed code the device was configured with.
func (p *Port) Speed() Speed {
	return p.speed
}

// Fd returns the underlying descriptor. The caller must not close it or
// change its blocking mode; (*os.File).Fd would do the latter.
func (p *Port) Fd() int {
	return p.fd
}

// AvailablePorts lists the serial ports the system reports.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}
	return ports, nil
}
