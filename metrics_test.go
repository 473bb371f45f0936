package ttycat

import (
	"errors"
	"testing"
	"time"
)

func TestMetrics_SnapshotBeforeStart(t *testing.T) {
	var m Metrics
	snap := m.Snapshot()

	if snap.Uptime != 0 {
		t.Fatalf("expected zero uptime, got %v", snap.Uptime)
	}
	if snap.BytesPerSecond != 0 {
		t.Fatalf("expected zero throughput, got %v", snap.BytesPerSecond)
	}
	if !snap.LastRead.IsZero() {
		t.Fatalf("expected zero LastRead, got %v", snap.LastRead)
	}
}

func TestMetrics_RecordRead(t *testing.T) {
	var m Metrics
	m.recordRead(0)
	m.recordRead(5)
	m.recordRead(0)

	if got := m.ReadOperations.Load(); got != 3 {
		t.Fatalf("ReadOperations = %d, want 3", got)
	}
	if got := m.EmptyReads.Load(); got != 2 {
		t.Fatalf("EmptyReads = %d, want 2", got)
	}
	if m.LastReadTime.Load() == 0 {
		t.Fatal("LastReadTime not recorded for a non-empty read")
	}
}

func TestMetrics_RecordWrite(t *testing.T) {
	var m Metrics
	m.recordWrite(10, nil)
	m.recordWrite(4, nil)
	m.recordWrite(3, errors.New("broken pipe"))

	if got := m.Writes.Load(); got != 2 {
		t.Fatalf("Writes = %d, want 2", got)
	}
	if got := m.BytesForwarded.Load(); got != 14 {
		t.Fatalf("BytesForwarded = %d, want 14", got)
	}
	if got := m.WriteErrors.Load(); got != 1 {
		t.Fatalf("WriteErrors = %d, want 1", got)
	}
}

func TestMetrics_Throughput(t *testing.T) {
	var m Metrics
	m.StartTime.Store(time.Now().Add(-2 * time.Second).UnixNano())
	m.BytesForwarded.Store(2000)

	snap := m.Snapshot()
	if snap.Uptime < 2*time.Second {
		t.Fatalf("Uptime = %v, want >= 2s", snap.Uptime)
	}
	if snap.BytesPerSecond <= 0 || snap.BytesPerSecond > 1000 {
		t.Fatalf("BytesPerSecond = %v, want in (0, 1000]", snap.BytesPerSecond)
	}
}
