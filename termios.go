//go:build linux || darwin

package ttycat

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	// readMinBytes and readTimeoutDeciseconds make a read return as soon as
	// one byte is queued, or a tenth of a second after the last byte.
	readMinBytes           = 1
	readTimeoutDeciseconds = 1
)

// makeRaw applies cfmakeraw(3) semantics to termios.
func makeRaw(termios *unix.Termios) {
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8
}

// rawTermios derives the bridge's line settings from the device's current ones.
func rawTermios(current *unix.Termios, speed Speed) (*unix.Termios, error) {
	termios := *current
	makeRaw(&termios)

	termios.Cc[unix.VMIN] = readMinBytes
	termios.Cc[unix.VTIME] = readTimeoutDeciseconds

	if err := setSpeed(&termios, speed); err != nil {
		return nil, fmt.Errorf("setspeed %d: %w", speed, err)
	}
	return &termios, nil
}

// configure reads the attributes of fd, switches them to raw mode at speed
// and applies the result. It returns the attributes found on the device.
func configure(fd int, path string, speed Speed) (*unix.Termios, error) {
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr %s: %w", path, err)
	}

	termios, err := rawTermios(saved, speed)
	if err != nil {
		return nil, err
	}

	if err = unix.IoctlSetTermios(fd, ioctlSetTermios, termios); err != nil {
		return nil, fmt.Errorf("tcsetattr: %w", err)
	}
	return saved, nil
}
