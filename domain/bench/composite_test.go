package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moltbench/domain/core"
)

func TestComputeComposite_KnownValue(t *testing.T) {
	m := ScoreMetrics{
		Coherence:         0.80,
		Depth:             0.70,
		HallucinationRate: 0.10,
		Discipline:        0.60,
		Confidence:        0.50,
	}

	// 0.25*0.8 + 0.20*0.7 + 0.20*0.9 + 0.15*0.6 + 0.10*0.5 + 0.10*0.5 = 0.71
	assert.Equal(t, 0.71, ComputeComposite(m))
}

func TestComputeComposite_IsPure(t *testing.T) {
	m := ScoreMetrics{Coherence: 0.73, Depth: 0.61, HallucinationRate: 0.17, Discipline: 0.55, Confidence: 0.48}

	assert.Equal(t, ComputeComposite(m), ComputeComposite(m))
}

func TestComputeComposite_ZeroMetricsKeepBaseline(t *testing.T) {
	// All-zero metrics still earn the full accuracy term and the baseline.
	assert.Equal(t, 0.25, ComputeComposite(ScoreMetrics{}))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.68, Round2(0.676))
	assert.Equal(t, 0.67, Round2(0.674))
	assert.Equal(t, -0.68, Round2(-0.676))
}

func TestAvgAgentScore(t *testing.T) {
	s := HealthSnapshot{AgentScores: map[core.AgentID]float64{
		"grok-momentum": 0.70,
		"claude-value":  0.50,
	}}

	assert.Equal(t, 0.60, s.AvgAgentScore())
	assert.Zero(t, HealthSnapshot{}.AvgAgentScore())
}
