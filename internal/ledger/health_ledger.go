package ledger

import (
	"sync"

	"moltbench/domain/bench"
	"moltbench/domain/core"
)

// DefaultHealthCapacity bounds the health snapshot history
const DefaultHealthCapacity = 200

// HealthLedger is the chronological history of benchmark-wide health
// snapshots, a separate stream from per-agent scores.
type HealthLedger struct {
	mu        sync.RWMutex
	snapshots []bench.HealthSnapshot
	capacity  int
}

// NewHealthLedger creates a ledger with the given capacity
// (DefaultHealthCapacity when <= 0).
func NewHealthLedger(capacity int) *HealthLedger {
	if capacity <= 0 {
		capacity = DefaultHealthCapacity
	}
	return &HealthLedger{
		snapshots: make([]bench.HealthSnapshot, 0, capacity),
		capacity:  capacity,
	}
}

// Record appends a snapshot, stamping it if the caller did not, and evicts
// the oldest snapshot once capacity is exceeded.
func (l *HealthLedger) Record(s bench.HealthSnapshot) bench.HealthSnapshot {
	if s.Timestamp.IsZero() {
		s.Timestamp = core.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshots = append(l.snapshots, s)
	if len(l.snapshots) > l.capacity {
		l.snapshots = l.snapshots[len(l.snapshots)-l.capacity:]
	}
	return s
}

// All returns a chronological copy of every retained snapshot
func (l *HealthLedger) All() []bench.HealthSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]bench.HealthSnapshot, len(l.snapshots))
	copy(out, l.snapshots)
	return out
}

// Tail returns a chronological copy of the most recent n snapshots
func (l *HealthLedger) Tail(n int) []bench.HealthSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.snapshots) {
		n = len(l.snapshots)
	}
	out := make([]bench.HealthSnapshot, n)
	copy(out, l.snapshots[len(l.snapshots)-n:])
	return out
}

// Slice returns a chronological copy of snapshots at tail offsets
// [start, end), where offsets count back from the newest snapshot:
// Slice(30, 10) is the 20-snapshot window preceding the last 10.
func (l *HealthLedger) Slice(start, end int) []bench.HealthSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.snapshots)
	lo := n - start
	hi := n - end
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	out := make([]bench.HealthSnapshot, hi-lo)
	copy(out, l.snapshots[lo:hi])
	return out
}

// History returns snapshots newest-first, truncated to limit when > 0
func (l *HealthLedger) History(limit int) []bench.HealthSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]bench.HealthSnapshot, 0, len(l.snapshots))
	for i := len(l.snapshots) - 1; i >= 0; i-- {
		out = append(out, l.snapshots[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Latest returns the newest snapshot, if any
func (l *HealthLedger) Latest() (bench.HealthSnapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.snapshots) == 0 {
		return bench.HealthSnapshot{}, false
	}
	return l.snapshots[len(l.snapshots)-1], true
}

// Len returns the number of retained snapshots
func (l *HealthLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.snapshots)
}

// Capacity returns the retention bound
func (l *HealthLedger) Capacity() int {
	return l.capacity
}
