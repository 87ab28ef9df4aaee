package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moltbench/internal/ledger"
)

func TestPopulateScores_Deterministic(t *testing.T) {
	config := DefaultScenarioConfig()

	first := ledger.NewScoreLedger(0)
	NewGenerator(config).PopulateScores(first)
	second := ledger.NewScoreLedger(0)
	NewGenerator(config).PopulateScores(second)

	require.Equal(t, first.Len(), second.Len())
	statsA := first.Stats()
	statsB := second.Stats()
	assert.Equal(t, statsA.AgentComposites, statsB.AgentComposites, "same seed must reproduce the ledger exactly")
}

func TestPopulateScores_AgentsAreSeparated(t *testing.T) {
	config := DefaultScenarioConfig()
	scores := ledger.NewScoreLedger(0)
	NewGenerator(config).PopulateScores(scores)

	stats := scores.Stats()
	require.Equal(t, len(config.Agents), stats.AgentCount)
	require.Equal(t, config.Rounds, stats.RoundCount)

	// Agent skill rises with index, so mean composites should too.
	for i := 1; i < len(config.Agents); i++ {
		assert.Greater(t,
			stats.AgentComposites[config.Agents[i]],
			stats.AgentComposites[config.Agents[i-1]],
			"agent %s should outscore %s", config.Agents[i], config.Agents[i-1])
	}
}

func TestSnapshot_InRange(t *testing.T) {
	g := NewGenerator(DefaultScenarioConfig())

	s := g.Snapshot()

	assert.Len(t, s.AgentScores, 4)
	assert.GreaterOrEqual(t, s.CoherenceAvg, 0.0)
	assert.LessOrEqual(t, s.CoherenceAvg, 1.0)
	assert.Greater(t, s.AgentScoreSpread, 0.0)
	assert.Greater(t, s.AvgReasoningLength, 0.0)
}
