//go:build linux || darwin

package ttycat

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func TestHexWriter_RendersEveryByte(t *testing.T) {
	var out bytes.Buffer
	h := NewHexWriter(&out)

	n, err := h.Write([]byte{0x41, 0x00, 0xff, '\n'})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 4 {
		t.Fatalf("Write returned %d, want 4", n)
	}
	if _, err := h.Write([]byte{0x0a}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got, want := out.String(), "41 00 ff 0a 0a "; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestHexWriter_EmptyWrite(t *testing.T) {
	var out bytes.Buffer
	n, err := NewHexWriter(&out).Write(nil)
	if err != nil || n != 0 {
		t.Fatalf("Write(nil) = %d, %v", n, err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestHexWriter_PropagatesWriteError(t *testing.T) {
	h := NewHexWriter(failingWriter{err: io.ErrClosedPipe})
	if _, err := h.Write([]byte("x")); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected ErrClosedPipe, got %v", err)
	}
}

func TestHexWriter_FlushesUnderlyingWriter(t *testing.T) {
	var out bytes.Buffer
	bw := bufio.NewWriter(&out)
	h := NewHexWriter(bw)

	if _, err := h.Write([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("bufio.Writer flushed early: %q", out.String())
	}
	if err := h.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "01 02 " {
		t.Fatalf("output = %q, want %q", got, "01 02 ")
	}

	if err := NewHexWriter(&out).Flush(); err != nil {
		t.Fatalf("Flush on unbuffered writer: %v", err)
	}
}

func TestBridge_HexOutput(t *testing.T) {
	dev := newMockDevice(
		readResult{data: []byte{0x41, 0x42}},
		readResult{data: []byte{0x43}},
	)
	out := &syncBuffer{}

	b, err := NewBridge(dev, NewHexWriter(out))
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}
	stop := startBridge(t, b)

	waitFor(t, time.Second, func() bool { return len(out.Bytes()) == 9 })
	if err := stop(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := string(out.Bytes()); got != "41 42 43 " {
		t.Fatalf("output = %q, want %q", got, "41 42 43 ")
	}
	if _, flushes := out.counts(); flushes != 2 {
		t.Fatalf("flushes = %d, want 2", flushes)
	}
	if got := b.Metrics().BytesForwarded.Load(); got != 3 {
		t.Fatalf("BytesForwarded = %d, want 3", got)
	}
}
