package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal/health"
	"moltbench/internal/testkit"
)

// metricsFor builds uniform metrics whose composite rounds to the target
func metricsFor(composite float64) bench.ScoreMetrics {
	x := (composite - 0.05) / 0.9
	return bench.ScoreMetrics{
		Coherence:         x,
		Depth:             x,
		HallucinationRate: 1 - x,
		Discipline:        x,
		Confidence:        x,
	}
}

func recordComposites(e *Engine, agent core.AgentID, composites ...float64) {
	for i, c := range composites {
		e.RecordBenchmarkScore(agent, core.RoundID(fmt.Sprintf("round-%03d", i)), metricsFor(c))
	}
}

func steadySnapshot(composite float64) bench.HealthSnapshot {
	return bench.HealthSnapshot{
		AgentScores: map[core.AgentID]float64{
			"grok-momentum": composite + 0.05,
			"claude-value":  composite - 0.05,
		},
		PillarAverages: map[string]float64{
			"returns": 0.62,
			"risk":    0.58,
			"process": 0.60,
		},
		CoherenceAvg:       0.70,
		HallucinationRate:  0.10,
		AvgReasoningLength: 100,
		AgentScoreSpread:   0.15,
		CalibrationAvg:     0.70,
	}
}

func TestEngine_EndToEndComparison(t *testing.T) {
	e := NewEngine(nil, nil)
	recordComposites(e, "grok-momentum", 0.70, 0.71, 0.69, 0.72, 0.70)
	recordComposites(e, "claude-value", 0.40, 0.42, 0.39, 0.41, 0.40)

	result := e.CompareAgents("grok-momentum", "claude-value")

	composite := result.Tests[bench.MetricComposite]
	require.True(t, composite.Significant)
	assert.Equal(t, bench.EffectLarge, composite.EffectInterpretation)
	assert.Equal(t, core.AgentID("grok-momentum"), result.Winner)

	all := e.CompareAllAgents(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, result.Winner, all[0].Winner)

	history := e.AgentScoreHistory("grok-momentum", 2)
	require.Len(t, history, 2)
	assert.Equal(t, core.RoundID("round-004"), history[0].RoundID, "newest first")

	stats := e.BenchmarkStats()
	assert.Equal(t, 10, stats.TotalEntries)
	assert.Equal(t, 2, stats.AgentCount)
}

func TestEngine_BootstrapIsReproducible(t *testing.T) {
	e := NewEngine(nil, nil)
	recordComposites(e, "grok-momentum", 0.70, 0.71, 0.69, 0.72, 0.70)

	first := e.AgentBootstrapCI("grok-momentum")
	second := e.AgentBootstrapCI("grok-momentum")

	require.Greater(t, first.Iterations, 0)
	assert.Equal(t, first, second, "data-derived seed makes intervals bit-identical")
}

func TestEngine_ProofLifecycle(t *testing.T) {
	e := NewEngine(nil, nil)
	recordComposites(e, "claude-value", 0.60, 0.61, 0.62)

	pf := e.GenerateReproducibilityProof("claude-value")
	require.True(t, pf.Verifiable)

	assert.True(t, e.VerifyProof("claude-value", pf.InputHash).Verified)

	// Any write after issuance invalidates the old hash.
	e.RecordBenchmarkScore("claude-value", "round-late", metricsFor(0.30))
	res := e.VerifyProof("claude-value", pf.InputHash)
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "mismatch")
}

func TestEngine_HealthFlowRaisesAndDegrades(t *testing.T) {
	e := NewEngine(nil, nil)
	for i := 0; i < 20; i++ {
		_, fired := e.RecordBenchmarkHealthSnapshot(steadySnapshot(0.50))
		assert.Empty(t, fired, "steady stream must stay silent")
	}

	var fired []bench.RegressionAlert
	for i := 0; i < 10; i++ {
		_, fired = e.RecordBenchmarkHealthSnapshot(steadySnapshot(0.80))
	}

	require.NotEmpty(t, fired, "sustained composite drift must raise an alert")
	assert.Equal(t, bench.AlertScoringDrift, fired[0].Type)
	assert.NotEmpty(t, e.ActiveAlerts())
	assert.NotEmpty(t, e.AlertHistory(0))

	report := e.BenchmarkHealthReport()
	assert.Equal(t, bench.StatusDegraded, report.Status)
	assert.Equal(t, 30, report.SnapshotCount)

	snapshots := e.HealthSnapshotHistory(5)
	require.Len(t, snapshots, 5)
}

func TestEngine_DefaultsBeforeData(t *testing.T) {
	e := NewEngine(nil, nil)

	report := e.BenchmarkHealthReport()
	assert.Equal(t, health.DefaultHealth, report.OverallHealth)
	assert.Equal(t, health.DefaultHealth, e.BenchmarkHealthPillarScore())

	assert.Nil(t, e.CompareAllAgents(context.Background()))
	assert.False(t, e.AssessBenchmarkStability().PublicationReady)
	assert.Zero(t, e.AgentBootstrapCI("ghost-agent").Iterations)
	assert.Empty(t, e.ActiveAlerts())
}

func TestEngine_InstancesAreIsolated(t *testing.T) {
	a := NewEngine(nil, nil)
	b := NewEngine(nil, nil)
	recordComposites(a, "grok-momentum", 0.70, 0.71)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, a.BenchmarkStats().TotalEntries)
	assert.Zero(t, b.BenchmarkStats().TotalEntries, "engines must not share ledgers")
}

func TestEngine_GeneratedScenarioPublishes(t *testing.T) {
	e := NewEngine(nil, nil)
	gen := testkit.NewGenerator(testkit.DefaultScenarioConfig())
	for round := 0; round < gen.Config().Rounds; round++ {
		roundID := core.RoundID(fmt.Sprintf("round-%04d", round))
		for i, agent := range gen.Config().Agents {
			e.RecordBenchmarkScore(agent, roundID, gen.MetricsFor(i))
		}
	}

	report := e.AssessBenchmarkStability()

	require.Equal(t, 4, report.TotalAgents)
	assert.Equal(t, 100, report.TotalRounds)
	assert.True(t, report.PublicationReady, "a long steady scenario should clear both publication gates")

	best := e.CompareAgents("gemini-swing", "grok-momentum")
	assert.Equal(t, core.AgentID("gemini-swing"), best.Winner, "highest-skill agent wins its pairing")
}
