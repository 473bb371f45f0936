package ttycat

import (
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks the activity of a bridge loop. All fields are safe to read
// while the loop runs.
type Metrics struct {
	// Read side
	ReadOperations atomic.Int64 // Total read attempts
	EmptyReads     atomic.Int64 // Reads that produced no bytes (timeout, EOF, would-block)
	ReadErrors     atomic.Int64 // Fatal read errors
	LastReadTime   atomic.Int64 // Unix nanoseconds of the last read that produced bytes

	// Output side
	BytesForwarded atomic.Int64 // Bytes written to the output
	Writes         atomic.Int64 // Successful output writes
	WriteErrors    atomic.Int64 // Failed output writes or flushes

	StartTime atomic.Int64 // Unix nanoseconds when Run began
}

// MetricsSnapshot is a point-in-time copy of Metrics with derived values.
type MetricsSnapshot struct {
	Timestamp      time.Time
	ReadOperations int64
	EmptyReads     int64
	ReadErrors     int64
	BytesForwarded int64
	Writes         int64
	WriteErrors    int64
	LastRead       time.Time
	Uptime         time.Duration
	BytesPerSecond float64
}

// Snapshot copies the counters and computes throughput since Run began.
func (m *Metrics) Snapshot() MetricsSnapshot {
	now := time.Now()
	snap := MetricsSnapshot{
		Timestamp:      now,
		ReadOperations: m.ReadOperations.Load(),
		EmptyReads:     m.EmptyReads.Load(),
		ReadErrors:     m.ReadErrors.Load(),
		BytesForwarded: m.BytesForwarded.Load(),
		Writes:         m.Writes.Load(),
		WriteErrors:    m.WriteErrors.Load(),
	}
	if last := m.LastReadTime.Load(); last > 0 {
		snap.LastRead = time.Unix(0, last)
	}
	snap.Uptime = m.calculateUptime(now)
	snap.BytesPerSecond = m.calculateThroughput(snap.BytesForwarded, snap.Uptime)
	return snap
}

func (m *Metrics) calculateUptime(now time.Time) time.Duration {
	start := m.StartTime.Load()
	if start == 0 {
		return 0
	}
	d := now.UnixNano() - start
	if d <= 0 {
		return 0
	}
	return time.Duration(d)
}

func (m *Metrics) calculateThroughput(bytes int64, uptime time.Duration) float64 {
	if uptime <= 0 {
		return 0.0
	}
	return float64(bytes) / uptime.Seconds()
}

func (m *Metrics) recordRead(n int) {
	m.ReadOperations.Inc()
	if n == 0 {
		m.EmptyReads.Inc()
		return
	}
	m.LastReadTime.Store(time.Now().UnixNano())
}

func (m *Metrics) recordWrite(n int, err error) {
	if err != nil {
		m.WriteErrors.Inc()
		return
	}
	m.Writes.Inc()
	m.BytesForwarded.Add(int64(n))
}
