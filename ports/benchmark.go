package ports

import (
	"context"

	"moltbench/domain/bench"
	"moltbench/domain/core"
)

// BenchmarkRecorderPort is the inbound surface consumed by the upstream
// trade-scoring pipeline. Writes are append-only; entries are never
// mutated once recorded.
type BenchmarkRecorderPort interface {
	RecordBenchmarkScore(agentID core.AgentID, roundID core.RoundID, metrics bench.ScoreMetrics) bench.ScoreEntry
	RecordBenchmarkHealthSnapshot(snapshot bench.HealthSnapshot) (bench.HealthSnapshot, []bench.RegressionAlert)
}

// BenchmarkAnalysisPort is the outbound query surface for statistical
// results. All methods are pure reads over ledger state.
type BenchmarkAnalysisPort interface {
	CompareAgents(agentA, agentB core.AgentID) bench.AgentComparison
	CompareAllAgents(ctx context.Context) []bench.AgentComparison
	AssessBenchmarkStability() bench.StabilityReport
	AgentBootstrapCI(agentID core.AgentID) bench.BootstrapResult
	AgentScoreHistory(agentID core.AgentID, limit int) []bench.ScoreEntry
	BenchmarkStats() bench.BenchmarkStats
}

// IntegrityProofPort covers proof issuance and verification
type IntegrityProofPort interface {
	GenerateReproducibilityProof(agentID core.AgentID) bench.ReproducibilityProof
	VerifyProof(agentID core.AgentID, inputHash core.InputHash) bench.VerificationResult
}

// HealthMonitorPort is the outbound query surface for benchmark health
type HealthMonitorPort interface {
	BenchmarkHealthReport() bench.HealthReport
	BenchmarkHealthPillarScore() float64
	ActiveAlerts() []bench.RegressionAlert
	AlertHistory(limit int) []bench.RegressionAlert
	HealthSnapshotHistory(limit int) []bench.HealthSnapshot
}

// BenchmarkEnginePort is the full engine surface
type BenchmarkEnginePort interface {
	BenchmarkRecorderPort
	BenchmarkAnalysisPort
	IntegrityProofPort
	HealthMonitorPort
}
