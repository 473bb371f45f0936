package ttycat

import (
	"io"
	"time"
)

// Device is the read side of an open serial line. *Port implements it.
type Device interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

// flusher is implemented by buffered outputs such as *bufio.Writer.
type flusher interface {
	Flush() error
}
