//go:build linux || darwin

package ttycat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Bridge copies bytes from a Device to an output, one chunk per read, until
// its context is cancelled or a fatal error occurs.
type Bridge struct {
	dev     Device
	out     io.Writer
	name    string
	cfg     Config
	logger  zerolog.Logger
	metrics *Metrics

	// buf is the only read buffer; it lives as long as the Bridge.
	buf []byte
}

// Option customises a Bridge.
type Option func(*Bridge)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(b *Bridge) { b.cfg = cfg }
}

// WithLogger sets the logger used for lifecycle and trace events.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithMetrics records loop activity into m instead of a private Metrics.
func WithMetrics(m *Metrics) Option {
	return func(b *Bridge) { b.metrics = m }
}

// NewBridge validates the configuration and allocates the read buffer.
func NewBridge(dev Device, out io.Writer, opts ...Option) (*Bridge, error) {
	if dev == nil {
		return nil, errors.New(ErrMsgNilDevice)
	}
	if out == nil {
		return nil, errors.New(ErrMsgNilOutput)
	}

	b := &Bridge{
		dev:    dev,
		out:    out,
		name:   "device",
		cfg:    DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := ValidateConfig(b.cfg); err != nil {
		return nil, err
	}
	if b.metrics == nil {
		b.metrics = &Metrics{}
	}
	if p, ok := dev.(interface{ Path() string }); ok {
		b.name = p.Path()
	}
	b.buf = make([]byte, b.cfg.BufferSize)
	return b, nil
}

// Metrics returns the counters the Bridge records into.
func (b *Bridge) Metrics() *Metrics {
	return b.metrics
}

// Run forwards device bytes to the output. It returns nil once ctx is
// cancelled and a non-nil error for a failed read, write or flush. A hangup
// is a failed read and is reported as ErrDisconnected. Reads that produce
// nothing are retried after Config.IdleSleep.
func (b *Bridge) Run(ctx context.Context) error {
	b.metrics.StartTime.Store(time.Now().UnixNano())

	// Unblock a pending read as soon as ctx is cancelled.
	stop := context.AfterFunc(ctx, func() {
		_ = b.dev.SetReadDeadline(time.Now())
	})
	defer stop()

	b.logger.Debug().
		Str("device", b.name).
		Int("buffer", len(b.buf)).
		Dur("read_timeout", b.cfg.ReadTimeout).
		Msg("bridge running")

	for {
		if ctx.Err() != nil {
			b.logger.Debug().Str("device", b.name).Msg("bridge stopped")
			return nil
		}

		if err := b.dev.SetReadDeadline(time.Now().Add(b.cfg.ReadTimeout)); err != nil {
			return fmt.Errorf("set read deadline %s: %w", b.name, err)
		}
		// a cancel that fired before the deadline was armed was overwritten by it
		if ctx.Err() != nil {
			continue
		}

		n, err := b.dev.Read(b.buf)
		b.metrics.recordRead(n)
		if n > 0 {
			if werr := b.forward(b.buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil && !isTransientReadError(err) {
			b.metrics.ReadErrors.Inc()
			return b.readError(err)
		}
		if n == 0 {
			b.idle(ctx)
		}
	}
}

// forward writes chunk unmodified and flushes buffered outputs immediately.
func (b *Bridge) forward(chunk []byte) (err error) {
	defer func() { b.metrics.recordWrite(len(chunk), err) }()

	n, err := b.out.Write(chunk)
	if err == nil && n < len(chunk) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if f, ok := b.out.(flusher); ok {
		if err = f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}

	b.logger.Trace().Int("bytes", n).Msg("forwarded")
	return nil
}

// readError names the device once. *os.PathError already carries the path.
func (b *Bridge) readError(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", b.name, ErrDisconnected)
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return err
	}
	return fmt.Errorf("read %s: %w", b.name, err)
}

func (b *Bridge) idle(ctx context.Context) {
	if b.cfg.IdleSleep <= 0 {
		return
	}
	t := time.NewTimer(b.cfg.IdleSleep)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// isTransientReadError reports whether err only means "no data yet". The
// poller absorbs "would block", so EOF from a tty means the line hung up.
func isTransientReadError(err error) bool {
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded),
		errors.Is(err, unix.EAGAIN),
		errors.Is(err, unix.EINTR):
		return true
	}
	return false
}
