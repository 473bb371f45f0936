//go:build linux

package ttycat

import "golang.org/x/sys/unix"

// setSpeed stores speed as both input and output speed. The kernel takes the
// rate from the CBAUD bits of Cflag; Ispeed/Ospeed mirror it for readers.
func setSpeed(termios *unix.Termios, speed Speed) error {
	if uint32(speed)&^unix.CBAUD != 0 {
		return unix.EINVAL
	}
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= uint32(speed)
	termios.Ispeed = uint32(speed)
	termios.Ospeed = uint32(speed)
	return nil
}

func getSpeed(termios *unix.Termios) Speed {
	return Speed(termios.Cflag & unix.CBAUD)
}
