//go:build darwin

package ttycat

import "golang.org/x/sys/unix"

// setSpeed stores speed as both input and output speed. Darwin speed codes
// are the literal rates.
func setSpeed(termios *unix.Termios, speed Speed) error {
	if speed == 0 {
		return unix.EINVAL
	}
	termios.Ispeed = uint64(speed)
	termios.Ospeed = uint64(speed)
	return nil
}

func getSpeed(termios *unix.Termios) Speed {
	return Speed(termios.Ospeed)
}
