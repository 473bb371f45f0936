package ttycat

import (
	"encoding/hex"
	"io"
)

// HexWriter renders every byte written to it as two lowercase hex digits and
// a space, for watching a line whose traffic is not printable.
type HexWriter struct {
	w   io.Writer
	buf []byte
}

// NewHexWriter returns a HexWriter writing its rendering to w.
func NewHexWriter(w io.Writer) *HexWriter {
	return &HexWriter{w: w}
}

// Write renders p in one write to the underlying writer and reports len(p)
// on success.
func (h *HexWriter) Write(p []byte) (int, error) {
	h.buf = h.buf[:0]
	for i := range p {
		h.buf = hex.AppendEncode(h.buf, p[i:i+1])
		h.buf = append(h.buf, ' ')
	}

	n, err := h.w.Write(h.buf)
	if err == nil && n < len(h.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return n / 3, err
	}
	return len(p), nil
}

// Flush flushes the underlying writer when it buffers.
func (h *HexWriter) Flush() error {
	if f, ok := h.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
