// Package stability assesses whether each agent's short-term average score
// is itself drifting, and whether the benchmark as a whole has collected
// enough stable data to publish rankings.
package stability

import (
	"github.com/montanaflynn/stats"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal/ledger"
)

const (
	// MaxWindowSize caps the rolling window over an agent's composites
	MaxWindowSize = 10
	// VarianceThreshold is the window-mean variance below which an agent
	// counts as stable
	VarianceThreshold = 0.01
	// MinSamples is the floor below which an agent is unstable by
	// convention (variance pinned to 1)
	MinSamples = 3
	// MinRoundsPerAgent is the empirical volume floor for publication
	MinRoundsPerAgent = 20
	// StabilityFloor is the stable-agent fraction required for publication
	StabilityFloor = 0.8
)

// Assessor computes rolling-window stability over the score ledger
type Assessor struct {
	scores *ledger.ScoreLedger
}

// NewAssessor creates an assessor reading from the given ledger
func NewAssessor(scores *ledger.ScoreLedger) *Assessor {
	return &Assessor{scores: scores}
}

// AssessAgent computes one agent's stability verdict. Fewer than
// MinSamples composite scores pins variance to 1 (maximally unstable by
// convention) regardless of the score values.
func (a *Assessor) AssessAgent(agentID core.AgentID) bench.AgentStability {
	composites := a.scores.AgentComposites(agentID)
	n := len(composites)

	if n < MinSamples {
		return bench.AgentStability{
			AgentID:       agentID,
			SampleSize:    n,
			ScoreVariance: 1,
			IsStable:      false,
		}
	}

	windowSize := MaxWindowSize
	if n < windowSize {
		windowSize = n
	}

	// Slide the window across the sequence and collect its mean at each
	// position; the variance of those means - not of the raw scores -
	// measures whether the agent's short-term average is drifting.
	windowMeans := make([]float64, 0, n-windowSize+1)
	for i := 0; i+windowSize <= n; i++ {
		mean, err := stats.Mean(composites[i : i+windowSize])
		if err != nil {
			continue
		}
		windowMeans = append(windowMeans, mean)
	}

	variance, err := stats.Variance(windowMeans)
	if err != nil {
		variance = 0
	}

	return bench.AgentStability{
		AgentID:       agentID,
		SampleSize:    n,
		WindowSize:    windowSize,
		ScoreVariance: variance,
		IsStable:      variance < VarianceThreshold,
	}
}

// Assess produces the aggregate stability report and the publication
// readiness verdict across every agent in the ledger.
func (a *Assessor) Assess() bench.StabilityReport {
	agents := a.scores.Agents()

	report := bench.StabilityReport{
		Agents:      make([]bench.AgentStability, 0, len(agents)),
		TotalAgents: len(agents),
		TotalRounds: a.scores.DistinctRounds(),
		AssessedAt:  core.Now(),
	}

	for _, id := range agents {
		verdict := a.AssessAgent(id)
		report.Agents = append(report.Agents, verdict)
		if verdict.IsStable {
			report.StableAgents++
		}
	}

	if report.TotalAgents > 0 {
		report.OverallStability = float64(report.StableAgents) / float64(report.TotalAgents)
	}
	report.PublicationReady = report.OverallStability >= StabilityFloor &&
		report.TotalRounds >= report.TotalAgents*MinRoundsPerAgent

	return report
}
