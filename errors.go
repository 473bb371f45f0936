package ttycat

import "errors"

var (
	ErrUnsupportedBaudRate = errors.New("unsupported baud rate")
	ErrNotTTY              = errors.New("not a tty")
	ErrDisconnected        = errors.New("device disconnected")
	ErrClosed              = errors.New("ttycat: port closed")
	ErrInvalidConfig       = errors.New("ttycat: invalid configuration")
)

var (
	ErrMsgNilDevice = "device is nil"
	ErrMsgNilOutput = "output is nil"
)
