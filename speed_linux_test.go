//go:build linux

package ttycat

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSetSpeed_SetsCflagAndSpeedFields(t *testing.T) {
	var termios unix.Termios
	termios.Cflag = unix.CS8 | unix.B50

	if err := setSpeed(&termios, unix.B57600); err != nil {
		t.Fatalf("setSpeed: %v", err)
	}
	if termios.Cflag&unix.CBAUD != unix.B57600 {
		t.Fatalf("CBAUD bits = %#x, want %#x", termios.Cflag&unix.CBAUD, unix.B57600)
	}
	if termios.Cflag&unix.CSIZE != unix.CS8 {
		t.Fatal("setSpeed disturbed the character size")
	}
	if termios.Ispeed != unix.B57600 || termios.Ospeed != unix.B57600 {
		t.Fatalf("Ispeed/Ospeed = %#x/%#x", termios.Ispeed, termios.Ospeed)
	}
}

func TestRawTermios_RejectsInvalidSpeedCode(t *testing.T) {
	_, err := rawTermios(cookedTermios(), Speed(0x80000000))
	if err == nil {
		t.Fatal("expected error for a code outside CBAUD")
	}
	if !errors.Is(err, unix.EINVAL) {
		t.Fatalf("expected EINVAL, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "setspeed ") {
		t.Fatalf("unexpected message: %v", err)
	}
}
