package bench

import (
	"moltbench/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// ScoreMetrics are the per-round qualitative inputs produced by the upstream
// trade-scoring pipeline. Documented range is [0,1] but values are passed
// through unclamped: range enforcement is the upstream scorer's contract,
// and clamping here would break input-hash parity with issued proofs.
type ScoreMetrics struct {
	Coherence         float64 `json:"coherence"`
	Depth             float64 `json:"depth"`
	HallucinationRate float64 `json:"hallucination_rate"`
	Discipline        float64 `json:"discipline"`
	Confidence        float64 `json:"confidence"`
}

// ScoreEntry is one agent's scored round. Immutable after insert.
// INVARIANTS:
// - Composite is a pure function of the five metrics plus fixed weights
// - Never mutated post-insert; evicted FIFO past ledger capacity
type ScoreEntry struct {
	AgentID   core.AgentID   `json:"agent_id"`
	RoundID   core.RoundID   `json:"round_id"`
	Metrics   ScoreMetrics   `json:"metrics"`
	Composite float64        `json:"composite"`
	Timestamp core.Timestamp `json:"timestamp"`
}

// HealthSnapshot is a point-in-time summary of benchmark-wide metrics,
// a distinct stream from any single agent's scores.
type HealthSnapshot struct {
	Timestamp          core.Timestamp           `json:"timestamp"`
	AgentScores        map[core.AgentID]float64 `json:"agent_scores"`
	PillarAverages     map[string]float64       `json:"pillar_averages"`
	CoherenceAvg       float64                  `json:"coherence_avg"`
	HallucinationRate  float64                  `json:"hallucination_rate"`
	AvgReasoningLength float64                  `json:"avg_reasoning_length"`
	AgentScoreSpread   float64                  `json:"agent_score_spread"`
	CalibrationAvg     float64                  `json:"calibration_avg"`
}

// AvgAgentScore returns the mean of the snapshot's per-agent scores
func (s HealthSnapshot) AvgAgentScore() float64 {
	if len(s.AgentScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, score := range s.AgentScores {
		sum += score
	}
	return sum / float64(len(s.AgentScores))
}

// ============================================================================
// STATISTICAL RESULTS
// ============================================================================

// EffectInterpretation classifies Cohen's d magnitude
type EffectInterpretation string

const (
	EffectNegligible EffectInterpretation = "negligible" // |d| < 0.2
	EffectSmall      EffectInterpretation = "small"      // |d| < 0.5
	EffectMedium     EffectInterpretation = "medium"     // |d| < 0.8
	EffectLarge      EffectInterpretation = "large"      // |d| >= 0.8
)

// StatisticalTest is the outcome of one Welch's t-test between two samples.
// Underpowered or degenerate input yields the neutral result
// (statistic=0, p=1, not significant) rather than an error.
type StatisticalTest struct {
	Statistic            float64              `json:"statistic"`
	PValue               float64              `json:"p_value"`
	DegreesOfFreedom     float64              `json:"degrees_of_freedom"`
	Significant          bool                 `json:"significant"`
	EffectSize           float64              `json:"effect_size"` // |Cohen's d|
	EffectInterpretation EffectInterpretation `json:"effect_interpretation"`
	MeanA                float64              `json:"mean_a"`
	MeanB                float64              `json:"mean_b"`
	CI95                 [2]float64           `json:"ci_95"` // for the mean difference
	SampleSizeA          int                  `json:"sample_size_a"`
	SampleSizeB          int                  `json:"sample_size_b"`
}

// Metric stream names used by agent comparisons
const (
	MetricCoherence         = "coherence"
	MetricDepth             = "depth"
	MetricHallucinationRate = "hallucination_rate"
	MetricComposite         = "composite"
)

// AgentComparison is the full result of comparing two agents across the
// four tested metric streams. A winner is declared only when the composite
// test is significant.
type AgentComparison struct {
	AgentA     core.AgentID               `json:"agent_a"`
	AgentB     core.AgentID               `json:"agent_b"`
	Tests      map[string]StatisticalTest `json:"tests"`
	Winner     core.AgentID               `json:"winner,omitempty"`
	Decisive   bool                       `json:"decisive"`
	Confidence float64                    `json:"confidence"` // 1 - composite p-value
	Margin     float64                    `json:"margin"`     // |mean composite difference|
	ComparedAt core.Timestamp             `json:"compared_at"`
}

// BootstrapResult holds resampled confidence intervals for one agent's
// score distribution. The seed is derived from the data so identical
// samples always produce bit-identical intervals.
type BootstrapResult struct {
	Mean       float64    `json:"mean"` // observed mean, not resampled
	StdError   float64    `json:"std_error"`
	CI95       [2]float64 `json:"ci_95"`
	CI99       [2]float64 `json:"ci_99"`
	Iterations int        `json:"iterations"`
	SampleSize int        `json:"sample_size"`
	Seed       int64      `json:"seed"`
}

// AgentStability is one agent's rolling-window variance verdict
type AgentStability struct {
	AgentID       core.AgentID `json:"agent_id"`
	SampleSize    int          `json:"sample_size"`
	WindowSize    int          `json:"window_size"`
	ScoreVariance float64      `json:"score_variance"` // variance of window means
	IsStable      bool         `json:"is_stable"`
}

// StabilityReport aggregates per-agent stability into the publication
// readiness verdict.
type StabilityReport struct {
	Agents           []AgentStability `json:"agents"`
	StableAgents     int              `json:"stable_agents"`
	TotalAgents      int              `json:"total_agents"`
	TotalRounds      int              `json:"total_rounds"`
	OverallStability float64          `json:"overall_stability"`
	PublicationReady bool             `json:"publication_ready"`
	AssessedAt       core.Timestamp   `json:"assessed_at"`
}

// ============================================================================
// REPRODUCIBILITY PROOFS
// ============================================================================

// ProofInputSummary describes the ledger slice a proof was computed over
type ProofInputSummary struct {
	AgentID    core.AgentID   `json:"agent_id"`
	TradeCount int            `json:"trade_count"`
	RoundCount int            `json:"round_count"`
	DateRange  core.DateRange `json:"date_range"`
}

// ReproducibilityProof binds a set of score inputs to the composites they
// produced. Immutable once stored; regenerating against changed ledger
// contents yields a new proof under a different input hash.
type ReproducibilityProof struct {
	InputHash          core.InputHash    `json:"input_hash"`
	OutputHash         core.OutputHash   `json:"output_hash"`
	ComputedAt         core.Timestamp    `json:"computed_at"`
	MethodologyVersion string            `json:"methodology_version"`
	Verifiable         bool              `json:"verifiable"`
	InputSummary       ProofInputSummary `json:"input_summary"`
}

// VerificationResult is the outcome of checking a stored proof against the
// current ledger contents. Verified=false with a stored proof present means
// the underlying data changed after issuance - a data-integrity incident,
// not a hashing failure.
type VerificationResult struct {
	Verified     bool            `json:"verified"`
	Message      string          `json:"message"`
	StoredHash   core.InputHash  `json:"stored_hash,omitempty"`
	ComputedHash core.InputHash  `json:"computed_hash,omitempty"`
	VerifiedAt   core.Timestamp  `json:"verified_at"`
}

// ============================================================================
// REGRESSION ALERTS
// ============================================================================

// AlertType enumerates the seven regression rules
type AlertType string

const (
	AlertScoringDrift         AlertType = "scoring_drift"
	AlertAgentConvergence     AlertType = "agent_convergence"
	AlertCoherenceInflation   AlertType = "coherence_inflation"
	AlertHallucinationSpike   AlertType = "hallucination_spike"
	AlertReasoningLengthDrift AlertType = "reasoning_length_drift"
	AlertCalibrationDecay     AlertType = "calibration_decay"
	AlertPillarImbalance      AlertType = "pillar_imbalance"
)

// Severity grades a regression alert
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsElevated reports whether the severity is high or critical
func (s Severity) IsElevated() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// RegressionAlert is a flagged deviation of a benchmark-health metric
// outside its expected range. Appended to a bounded FIFO log, never
// mutated or deleted individually.
type RegressionAlert struct {
	ID             core.AlertID   `json:"id"`
	Type           AlertType      `json:"type"`
	Severity       Severity       `json:"severity"`
	Description    string         `json:"description"`
	Metric         string         `json:"metric"`
	ExpectedRange  [2]float64     `json:"expected_range"`
	ActualValue    float64        `json:"actual_value"`
	Recommendation string         `json:"recommendation"`
	Timestamp      core.Timestamp `json:"timestamp"`
}

// ============================================================================
// HEALTH REPORTING
// ============================================================================

// HealthStatus classifies overall benchmark health
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "healthy"
	StatusWarning  HealthStatus = "warning"
	StatusDegraded HealthStatus = "degraded"
	StatusCritical HealthStatus = "critical"
)

// HealthTrend compares early vs late coherence across retained snapshots
type HealthTrend string

const (
	TrendImproving HealthTrend = "improving"
	TrendDeclining HealthTrend = "declining"
	TrendStable    HealthTrend = "stable"
)

// HealthReport combines windowed statistics over the health snapshot ledger
// into a single weighted score with status, trend, and recommendations.
type HealthReport struct {
	OverallHealth      float64        `json:"overall_health"`
	Status             HealthStatus   `json:"status"`
	ScoringStability   float64        `json:"scoring_stability"`
	PillarBalance      float64        `json:"pillar_balance"`
	AgentDiversity     float64        `json:"agent_diversity"`
	DataFreshness      float64        `json:"data_freshness"`
	CalibrationQuality float64        `json:"calibration_quality"`
	Trend              HealthTrend    `json:"trend"`
	Recommendations    []string       `json:"recommendations"`
	SnapshotCount      int            `json:"snapshot_count"`
	ActiveAlertCount   int            `json:"active_alert_count"`
	GeneratedAt        core.Timestamp `json:"generated_at"`
}

// BenchmarkStats summarizes the score ledger for dashboard consumers
type BenchmarkStats struct {
	TotalEntries    int                      `json:"total_entries"`
	AgentCount      int                      `json:"agent_count"`
	RoundCount      int                      `json:"round_count"`
	AgentComposites map[core.AgentID]float64 `json:"agent_composites"`
	LedgerCapacity  int                      `json:"ledger_capacity"`
	LastRecordedAt  core.Timestamp           `json:"last_recorded_at"`
}
