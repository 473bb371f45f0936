package ttycat

import "time"

const (
	// DefaultBufferSize is the read chunk size of the bridge loop.
	DefaultBufferSize = 2048

	// MaxBufferSize bounds the read buffer. 64KB is above any tty driver's
	// input queue, so larger buffers never fill.
	MaxBufferSize = 64 * 1024

	DefaultReadTimeout = 100 * time.Millisecond
	DefaultIdleSleep   = time.Millisecond
)

// Config holds the tunables of the read/forward loop.
type Config struct {
	// ReadTimeout bounds each read. Expiry is treated as "no data yet".
	ReadTimeout time.Duration `validate:"gte=1ms,lte=25.5s"`

	// IdleSleep is the pause after a read that produced no bytes.
	IdleSleep time.Duration `validate:"gte=0,lte=1s"`

	// BufferSize is the capacity of the single reusable read buffer.
	BufferSize int `validate:"gte=1,lte=65536"`
}

// DefaultConfig returns the settings matching the device configuration
// applied by Open: a tenth of a second per read and a 2KB chunk.
func DefaultConfig() Config {
	return Config{
		ReadTimeout: DefaultReadTimeout,
		IdleSleep:   DefaultIdleSleep,
		BufferSize:  DefaultBufferSize,
	}
}
