// Package ledger holds the two append-only, bounded-capacity histories the
// integrity engine analyzes: per-round agent scores and benchmark-wide
// health snapshots. The streams are independent; nothing writes across them.
package ledger

import (
	"sort"
	"sync"

	"github.com/montanaflynn/stats"

	"moltbench/domain/bench"
	"moltbench/domain/core"
)

// DefaultScoreCapacity bounds the score history; oldest entries are
// evicted FIFO past this point.
const DefaultScoreCapacity = 5000

// ScoreLedger is the chronological history of per-round agent scores.
// Entries are immutable after insert. The mutex guards the append path so
// that insertion order stays chronological under concurrent writers; the
// windowed algorithms downstream depend on that invariant.
type ScoreLedger struct {
	mu       sync.RWMutex
	entries  []bench.ScoreEntry
	capacity int
}

// NewScoreLedger creates a ledger with the given capacity
// (DefaultScoreCapacity when <= 0).
func NewScoreLedger(capacity int) *ScoreLedger {
	if capacity <= 0 {
		capacity = DefaultScoreCapacity
	}
	return &ScoreLedger{
		entries:  make([]bench.ScoreEntry, 0, capacity),
		capacity: capacity,
	}
}

// Record computes the composite for the given metrics and appends the
// entry, evicting the oldest entry once capacity is exceeded. Inputs are
// assumed pre-validated by the caller; out-of-range metrics pass through
// unclamped.
func (l *ScoreLedger) Record(agentID core.AgentID, roundID core.RoundID, m bench.ScoreMetrics) bench.ScoreEntry {
	entry := bench.ScoreEntry{
		AgentID:   agentID,
		RoundID:   roundID,
		Metrics:   m,
		Composite: bench.ComputeComposite(m),
		Timestamp: core.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
	return entry
}

// ScoreQuery filters ledger reads. Zero-value fields match everything.
type ScoreQuery struct {
	AgentID core.AgentID
	RoundID core.RoundID
	Limit   int
}

// Query returns matching entries newest-first, truncated to Limit when
// Limit > 0.
func (l *ScoreLedger) Query(q ScoreQuery) []bench.ScoreEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := make([]bench.ScoreEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if q.AgentID != "" && e.AgentID != q.AgentID {
			continue
		}
		if q.RoundID != "" && e.RoundID != q.RoundID {
			continue
		}
		matched = append(matched, e)
		if q.Limit > 0 && len(matched) >= q.Limit {
			break
		}
	}
	return matched
}

// AgentEntries returns one agent's entries in chronological order
func (l *ScoreLedger) AgentEntries(agentID core.AgentID) []bench.ScoreEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]bench.ScoreEntry, 0, 16)
	for _, e := range l.entries {
		if e.AgentID == agentID {
			out = append(out, e)
		}
	}
	return out
}

// AgentComposites returns one agent's composite scores in chronological order
func (l *ScoreLedger) AgentComposites(agentID core.AgentID) []float64 {
	entries := l.AgentEntries(agentID)
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Composite
	}
	return out
}

// AgentMetric returns one named metric stream for an agent, chronological
func (l *ScoreLedger) AgentMetric(agentID core.AgentID, metric string) []float64 {
	entries := l.AgentEntries(agentID)
	out := make([]float64, len(entries))
	for i, e := range entries {
		switch metric {
		case bench.MetricCoherence:
			out[i] = e.Metrics.Coherence
		case bench.MetricDepth:
			out[i] = e.Metrics.Depth
		case bench.MetricHallucinationRate:
			out[i] = e.Metrics.HallucinationRate
		default:
			out[i] = e.Composite
		}
	}
	return out
}

// Agents returns the distinct agents in the ledger, sorted for
// deterministic iteration order.
func (l *ScoreLedger) Agents() []core.AgentID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[core.AgentID]bool)
	for _, e := range l.entries {
		seen[e.AgentID] = true
	}
	out := make([]core.AgentID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DistinctRounds counts the distinct round IDs recorded
func (l *ScoreLedger) DistinctRounds() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[core.RoundID]bool)
	for _, e := range l.entries {
		seen[e.RoundID] = true
	}
	return len(seen)
}

// Len returns the number of retained entries
func (l *ScoreLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the retention bound
func (l *ScoreLedger) Capacity() int {
	return l.capacity
}

// Stats summarizes the ledger for dashboard consumers
func (l *ScoreLedger) Stats() bench.BenchmarkStats {
	l.mu.RLock()
	entries := make([]bench.ScoreEntry, len(l.entries))
	copy(entries, l.entries)
	l.mu.RUnlock()

	agentScores := make(map[core.AgentID][]float64)
	rounds := make(map[core.RoundID]bool)
	var last core.Timestamp
	for _, e := range entries {
		agentScores[e.AgentID] = append(agentScores[e.AgentID], e.Composite)
		rounds[e.RoundID] = true
		last = e.Timestamp
	}

	composites := make(map[core.AgentID]float64, len(agentScores))
	for id, scores := range agentScores {
		mean, err := stats.Mean(scores)
		if err != nil {
			continue
		}
		composites[id] = mean
	}

	return bench.BenchmarkStats{
		TotalEntries:    len(entries),
		AgentCount:      len(agentScores),
		RoundCount:      len(rounds),
		AgentComposites: composites,
		LedgerCapacity:  l.capacity,
		LastRecordedAt:  last,
	}
}
