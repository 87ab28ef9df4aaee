package comparator

import (
	"context"
	"math"

	"golang.org/x/sync/semaphore"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal/ledger"
)

// MaxConcurrentComparisons is the default bound on the pairwise fan-out
// in CompareAll.
const MaxConcurrentComparisons = 4

// Comparator runs statistical comparisons over the score ledger
type Comparator struct {
	scores      *ledger.ScoreLedger
	maxInFlight int64
}

// NewComparator creates a comparator reading from the given ledger
func NewComparator(scores *ledger.ScoreLedger) *Comparator {
	return NewComparatorWithConcurrency(scores, MaxConcurrentComparisons)
}

// NewComparatorWithConcurrency creates a comparator with an explicit
// fan-out bound (MaxConcurrentComparisons when <= 0).
func NewComparatorWithConcurrency(scores *ledger.ScoreLedger, maxInFlight int) *Comparator {
	if maxInFlight <= 0 {
		maxInFlight = MaxConcurrentComparisons
	}
	return &Comparator{scores: scores, maxInFlight: int64(maxInFlight)}
}

// comparedMetrics are the four streams tested per agent pair
var comparedMetrics = []string{
	bench.MetricCoherence,
	bench.MetricDepth,
	bench.MetricHallucinationRate,
	bench.MetricComposite,
}

// CompareAgents tests the four metric streams between two agents and
// declares a winner only when the composite test is significant.
func (c *Comparator) CompareAgents(agentA, agentB core.AgentID) bench.AgentComparison {
	comparison := bench.AgentComparison{
		AgentA:     agentA,
		AgentB:     agentB,
		Tests:      make(map[string]bench.StatisticalTest, len(comparedMetrics)),
		ComparedAt: core.Now(),
	}

	for _, metric := range comparedMetrics {
		samplesA := c.scores.AgentMetric(agentA, metric)
		samplesB := c.scores.AgentMetric(agentB, metric)
		comparison.Tests[metric] = WelchTTest(samplesA, samplesB)
	}

	composite := comparison.Tests[bench.MetricComposite]
	comparison.Confidence = 1 - composite.PValue
	comparison.Margin = math.Abs(composite.MeanA - composite.MeanB)

	if composite.Significant {
		comparison.Decisive = true
		if composite.MeanA >= composite.MeanB {
			comparison.Winner = agentA
		} else {
			comparison.Winner = agentB
		}
	}

	return comparison
}

// CompareAll runs CompareAgents for every unordered pair of agents in the
// ledger, with a bounded concurrent fan-out. Each comparison is pure over
// ledger snapshots, so results are deterministic and index-assigned to
// keep output order stable.
func (c *Comparator) CompareAll(ctx context.Context) []bench.AgentComparison {
	agents := c.scores.Agents()
	if len(agents) < 2 {
		return nil
	}

	type pair struct{ a, b core.AgentID }
	pairs := make([]pair, 0, len(agents)*(len(agents)-1)/2)
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			pairs = append(pairs, pair{agents[i], agents[j]})
		}
	}

	results := make([]bench.AgentComparison, len(pairs))
	sem := semaphore.NewWeighted(c.maxInFlight)
	done := make(chan int, len(pairs))

	for idx, p := range pairs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: finish what was started, skip the rest.
			results[idx] = bench.AgentComparison{AgentA: p.a, AgentB: p.b}
			done <- idx
			continue
		}
		go func(idx int, p pair) {
			defer sem.Release(1)
			results[idx] = c.CompareAgents(p.a, p.b)
			done <- idx
		}(idx, p)
	}

	for range pairs {
		<-done
	}
	return results
}
