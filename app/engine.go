// Package app wires the ledgers and analyzers into the benchmark
// statistical integrity engine. Each Engine instance owns its own state,
// so tests and embedded hosts can run isolated engines side by side.
package app

import (
	"context"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal"
	"moltbench/internal/bootstrap"
	"moltbench/internal/comparator"
	"moltbench/internal/config"
	"moltbench/internal/health"
	"moltbench/internal/ledger"
	"moltbench/internal/proof"
	"moltbench/internal/regression"
	"moltbench/internal/stability"
	"moltbench/ports"
)

// Engine is the benchmark statistical integrity engine: two bounded
// ledgers plus the analyzers that read them. All methods are safe for
// concurrent use; writes serialize on the ledger append paths.
type Engine struct {
	id        core.EngineID
	config    *config.Config
	logger    *internal.Logger
	scores    *ledger.ScoreLedger
	snapshots *ledger.HealthLedger
	compare   *comparator.Comparator
	assessor  *stability.Assessor
	prover    *proof.Prover
	detector  *regression.Detector
	reporter  *health.Reporter
}

var _ ports.BenchmarkEnginePort = (*Engine)(nil)

// NewEngine constructs an engine with the given configuration
// (config.Default() when nil).
func NewEngine(cfg *config.Config, logger *internal.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	scores := ledger.NewScoreLedger(cfg.ScoreLedgerCapacity)
	snapshots := ledger.NewHealthLedger(cfg.HealthLedgerCapacity)
	alerts := regression.NewAlertLog(cfg.AlertLogCapacity)

	e := &Engine{
		id:        core.NewEngineID(),
		config:    cfg,
		logger:    logger,
		scores:    scores,
		snapshots: snapshots,
		compare:   comparator.NewComparatorWithConcurrency(scores, cfg.MaxConcurrentComparisons),
		assessor:  stability.NewAssessor(scores),
		prover:    proof.NewProver(scores, logger),
		detector:  regression.NewDetector(snapshots, alerts, logger),
		reporter:  health.NewReporter(snapshots, alerts),
	}
	logger.Info("benchmark integrity engine %s initialized (score capacity %d, snapshot capacity %d)",
		e.id, cfg.ScoreLedgerCapacity, cfg.HealthLedgerCapacity)
	return e
}

// ID returns the engine instance identifier
func (e *Engine) ID() core.EngineID {
	return e.id
}

// RecordBenchmarkScore scores one agent's round and appends it to the
// score ledger.
func (e *Engine) RecordBenchmarkScore(agentID core.AgentID, roundID core.RoundID, metrics bench.ScoreMetrics) bench.ScoreEntry {
	entry := e.scores.Record(agentID, roundID, metrics)
	e.logger.Debug("recorded score for agent %s round %s: composite %.2f", agentID, roundID, entry.Composite)
	return entry
}

// RecordBenchmarkHealthSnapshot appends a benchmark-wide snapshot and
// immediately runs regression detection over the updated history,
// returning any alerts that fired.
func (e *Engine) RecordBenchmarkHealthSnapshot(snapshot bench.HealthSnapshot) (bench.HealthSnapshot, []bench.RegressionAlert) {
	recorded := e.snapshots.Record(snapshot)
	fired := e.detector.Detect()
	return recorded, fired
}

// CompareAgents runs the four-stream statistical comparison between two
// agents.
func (e *Engine) CompareAgents(agentA, agentB core.AgentID) bench.AgentComparison {
	return e.compare.CompareAgents(agentA, agentB)
}

// CompareAllAgents compares every unordered agent pair in the ledger
func (e *Engine) CompareAllAgents(ctx context.Context) []bench.AgentComparison {
	return e.compare.CompareAll(ctx)
}

// AssessBenchmarkStability reports per-agent stability and publication
// readiness.
func (e *Engine) AssessBenchmarkStability() bench.StabilityReport {
	return e.assessor.Assess()
}

// AgentBootstrapCI resamples an agent's composite scores into confidence
// intervals.
func (e *Engine) AgentBootstrapCI(agentID core.AgentID) bench.BootstrapResult {
	return bootstrap.CIWithIterations(e.scores.AgentComposites(agentID), e.config.BootstrapIterations)
}

// AgentScoreHistory returns an agent's recorded entries newest-first,
// truncated to limit when limit > 0.
func (e *Engine) AgentScoreHistory(agentID core.AgentID, limit int) []bench.ScoreEntry {
	return e.scores.Query(ledger.ScoreQuery{AgentID: agentID, Limit: limit})
}

// BenchmarkStats summarizes the score ledger
func (e *Engine) BenchmarkStats() bench.BenchmarkStats {
	return e.scores.Stats()
}

// GenerateReproducibilityProof issues a proof over the agent's current
// ledger slice.
func (e *Engine) GenerateReproducibilityProof(agentID core.AgentID) bench.ReproducibilityProof {
	return e.prover.Generate(agentID)
}

// VerifyProof checks a stored proof against the current ledger contents
func (e *Engine) VerifyProof(agentID core.AgentID, inputHash core.InputHash) bench.VerificationResult {
	return e.prover.Verify(agentID, inputHash)
}

// BenchmarkHealthReport builds the current weighted health report
func (e *Engine) BenchmarkHealthReport() bench.HealthReport {
	return e.reporter.Report()
}

// BenchmarkHealthPillarScore returns the 0-1 scalar summarizing overall
// benchmark health.
func (e *Engine) BenchmarkHealthPillarScore() float64 {
	return e.reporter.PillarScore()
}

// ActiveAlerts returns regression alerts raised within the active window,
// newest-first.
func (e *Engine) ActiveAlerts() []bench.RegressionAlert {
	return e.detector.Alerts().Active(core.Now())
}

// AlertHistory returns retained alerts newest-first, truncated to limit
// when limit > 0.
func (e *Engine) AlertHistory(limit int) []bench.RegressionAlert {
	return e.detector.Alerts().History(limit)
}

// HealthSnapshotHistory returns snapshots newest-first, truncated to
// limit when limit > 0.
func (e *Engine) HealthSnapshotHistory(limit int) []bench.HealthSnapshot {
	return e.snapshots.History(limit)
}
