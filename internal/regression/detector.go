// Package regression watches the health snapshot stream for drift and
// anomaly patterns that would silently undermine ranking validity, and
// raises severity-graded alerts with remediation guidance.
package regression

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal"
	"moltbench/internal/ledger"
)

const (
	// MinSnapshots gates detection entirely
	MinSnapshots = 5
	// RecentWindow is the size of the "now" comparison window
	RecentWindow = 10
	// OlderWindowStart is the tail offset where the baseline window begins
	OlderWindowStart = 30
	// MinOlderWindow is the baseline size below which no rule runs
	MinOlderWindow = 5
	// MinPillarsForImbalance gates the pillar spread rule
	MinPillarsForImbalance = 3
)

// Rule thresholds. Each trigger compares a recent-window average against
// the older baseline or an absolute bound.
const (
	scoringDriftThreshold       = 0.15
	scoringDriftCriticalDrift   = 0.25
	convergenceSpreadThreshold  = 0.03
	convergenceSpreadCritical   = 0.01
	coherenceInflationDelta     = 0.15
	coherenceInflationAbsolute  = 0.85
	hallucinationSpikeDelta     = 0.10
	hallucinationSpikeCritical  = 0.30
	reasoningLengthShrinkFactor = 0.6
	calibrationDecayDelta       = 0.10
	calibrationDecayAbsolute    = 0.50
	calibrationDecayCritical    = 0.30
	pillarImbalanceStdDev       = 0.25
)

// Detector runs the seven regression rules over the health ledger and
// appends firing alerts to the alert log.
type Detector struct {
	health *ledger.HealthLedger
	alerts *AlertLog
	logger *internal.Logger
}

// NewDetector creates a detector over the given health ledger and alert log
func NewDetector(health *ledger.HealthLedger, alerts *AlertLog, logger *internal.Logger) *Detector {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Detector{health: health, alerts: alerts, logger: logger}
}

// Alerts exposes the underlying alert log
func (d *Detector) Alerts() *AlertLog {
	return d.alerts
}

// Detect evaluates every rule against the current ledger state and
// returns the alerts that fired. Rules are independent, so one snapshot
// can raise several. Too little history (under MinSnapshots total, or a
// baseline window under MinOlderWindow) disables detection rather than
// erroring.
func (d *Detector) Detect() []bench.RegressionAlert {
	if d.health.Len() < MinSnapshots {
		return nil
	}

	recent := d.health.Tail(RecentWindow)
	older := d.health.Slice(OlderWindowStart, RecentWindow)
	if len(older) < MinOlderWindow {
		return nil
	}

	latest, ok := d.health.Latest()
	if !ok {
		return nil
	}

	var fired []bench.RegressionAlert
	fired = appendAlert(fired, d.checkScoringDrift(recent, older))
	fired = appendAlert(fired, d.checkAgentConvergence(recent))
	fired = appendAlert(fired, d.checkCoherenceInflation(recent, older))
	fired = appendAlert(fired, d.checkHallucinationSpike(recent, older))
	fired = appendAlert(fired, d.checkReasoningLengthDrift(recent, older))
	fired = appendAlert(fired, d.checkCalibrationDecay(recent, older))
	fired = appendAlert(fired, d.checkPillarImbalance(latest))

	for i := range fired {
		fired[i].ID = core.NewAlertID()
		fired[i].Timestamp = core.Now()
		d.alerts.Append(fired[i])

		if fired[i].Severity.IsElevated() {
			d.logger.Error("regression alert [%s/%s]: %s", fired[i].Type, fired[i].Severity, fired[i].Description)
		} else {
			d.logger.Warn("regression alert [%s/%s]: %s", fired[i].Type, fired[i].Severity, fired[i].Description)
		}
	}
	return fired
}

func appendAlert(alerts []bench.RegressionAlert, a *bench.RegressionAlert) []bench.RegressionAlert {
	if a == nil {
		return alerts
	}
	return append(alerts, *a)
}

func (d *Detector) checkScoringDrift(recent, older []bench.HealthSnapshot) *bench.RegressionAlert {
	recentAvg := avgOf(recent, bench.HealthSnapshot.AvgAgentScore)
	olderAvg := avgOf(older, bench.HealthSnapshot.AvgAgentScore)

	drift := recentAvg - olderAvg
	if drift < 0 {
		drift = -drift
	}
	if drift <= scoringDriftThreshold {
		return nil
	}

	severity := bench.SeverityMedium
	if drift > scoringDriftCriticalDrift {
		severity = bench.SeverityHigh
	}
	return &bench.RegressionAlert{
		Type:     bench.AlertScoringDrift,
		Severity: severity,
		Description: fmt.Sprintf("average composite moved from %.3f to %.3f (drift %.3f)",
			olderAvg, recentAvg, drift),
		Metric:         "composite",
		ExpectedRange:  [2]float64{olderAvg - scoringDriftThreshold, olderAvg + scoringDriftThreshold},
		ActualValue:    recentAvg,
		Recommendation: "review recent scorer or prompt changes before trusting ranking movement",
	}
}

func (d *Detector) checkAgentConvergence(recent []bench.HealthSnapshot) *bench.RegressionAlert {
	spread := avgOf(recent, func(s bench.HealthSnapshot) float64 { return s.AgentScoreSpread })
	if spread >= convergenceSpreadThreshold {
		return nil
	}

	severity := bench.SeverityMedium
	if spread < convergenceSpreadCritical {
		severity = bench.SeverityHigh
	}
	return &bench.RegressionAlert{
		Type:           bench.AlertAgentConvergence,
		Severity:       severity,
		Description:    fmt.Sprintf("agent score spread collapsed to %.3f across the recent window", spread),
		Metric:         "agent_score_spread",
		ExpectedRange:  [2]float64{convergenceSpreadThreshold, 1},
		ActualValue:    spread,
		Recommendation: "check whether the scoring rubric still discriminates between agents",
	}
}

func (d *Detector) checkCoherenceInflation(recent, older []bench.HealthSnapshot) *bench.RegressionAlert {
	recentCoherence := avgOf(recent, func(s bench.HealthSnapshot) float64 { return s.CoherenceAvg })
	olderCoherence := avgOf(older, func(s bench.HealthSnapshot) float64 { return s.CoherenceAvg })

	if recentCoherence <= olderCoherence+coherenceInflationDelta ||
		recentCoherence <= coherenceInflationAbsolute {
		return nil
	}

	return &bench.RegressionAlert{
		Type:     bench.AlertCoherenceInflation,
		Severity: bench.SeverityMedium,
		Description: fmt.Sprintf("coherence rose from %.3f to %.3f, suspiciously near the ceiling",
			olderCoherence, recentCoherence),
		Metric:         "coherence_avg",
		ExpectedRange:  [2]float64{0, olderCoherence + coherenceInflationDelta},
		ActualValue:    recentCoherence,
		Recommendation: "audit the coherence rubric for grade inflation",
	}
}

func (d *Detector) checkHallucinationSpike(recent, older []bench.HealthSnapshot) *bench.RegressionAlert {
	recentRate := avgOf(recent, func(s bench.HealthSnapshot) float64 { return s.HallucinationRate })
	olderRate := avgOf(older, func(s bench.HealthSnapshot) float64 { return s.HallucinationRate })

	if recentRate <= olderRate+hallucinationSpikeDelta {
		return nil
	}

	severity := bench.SeverityHigh
	if recentRate > hallucinationSpikeCritical {
		severity = bench.SeverityCritical
	}
	return &bench.RegressionAlert{
		Type:     bench.AlertHallucinationSpike,
		Severity: severity,
		Description: fmt.Sprintf("hallucination rate jumped from %.3f to %.3f",
			olderRate, recentRate),
		Metric:         "hallucination_rate",
		ExpectedRange:  [2]float64{0, olderRate + hallucinationSpikeDelta},
		ActualValue:    recentRate,
		Recommendation: "inspect recent rounds for fabricated reasoning and tighten fact checks",
	}
}

func (d *Detector) checkReasoningLengthDrift(recent, older []bench.HealthSnapshot) *bench.RegressionAlert {
	recentLength := avgOf(recent, func(s bench.HealthSnapshot) float64 { return s.AvgReasoningLength })
	olderLength := avgOf(older, func(s bench.HealthSnapshot) float64 { return s.AvgReasoningLength })

	if recentLength >= olderLength*reasoningLengthShrinkFactor {
		return nil
	}

	return &bench.RegressionAlert{
		Type:     bench.AlertReasoningLengthDrift,
		Severity: bench.SeverityMedium,
		Description: fmt.Sprintf("average reasoning length fell from %.1f to %.1f",
			olderLength, recentLength),
		Metric:         "avg_reasoning_length",
		ExpectedRange:  [2]float64{olderLength * reasoningLengthShrinkFactor, olderLength},
		ActualValue:    recentLength,
		Recommendation: "verify agents are not truncating their reasoning output",
	}
}

func (d *Detector) checkCalibrationDecay(recent, older []bench.HealthSnapshot) *bench.RegressionAlert {
	recentCalib := avgOf(recent, func(s bench.HealthSnapshot) float64 { return s.CalibrationAvg })
	olderCalib := avgOf(older, func(s bench.HealthSnapshot) float64 { return s.CalibrationAvg })

	if recentCalib >= olderCalib-calibrationDecayDelta || recentCalib >= calibrationDecayAbsolute {
		return nil
	}

	severity := bench.SeverityHigh
	if recentCalib < calibrationDecayCritical {
		severity = bench.SeverityCritical
	}
	return &bench.RegressionAlert{
		Type:     bench.AlertCalibrationDecay,
		Severity: severity,
		Description: fmt.Sprintf("calibration fell from %.3f to %.3f",
			olderCalib, recentCalib),
		Metric:         "calibration_avg",
		ExpectedRange:  [2]float64{olderCalib - calibrationDecayDelta, 1},
		ActualValue:    recentCalib,
		Recommendation: "recalibrate confidence scoring against realized outcomes",
	}
}

func (d *Detector) checkPillarImbalance(latest bench.HealthSnapshot) *bench.RegressionAlert {
	if len(latest.PillarAverages) < MinPillarsForImbalance {
		return nil
	}

	values := make([]float64, 0, len(latest.PillarAverages))
	for _, v := range latest.PillarAverages {
		values = append(values, v)
	}
	sd, err := stats.StandardDeviation(values)
	if err != nil || sd <= pillarImbalanceStdDev {
		return nil
	}

	return &bench.RegressionAlert{
		Type:           bench.AlertPillarImbalance,
		Severity:       bench.SeverityLow,
		Description:    fmt.Sprintf("pillar averages diverge with standard deviation %.3f", sd),
		Metric:         "pillar_averages",
		ExpectedRange:  [2]float64{0, pillarImbalanceStdDev},
		ActualValue:    sd,
		Recommendation: "rebalance pillar weighting or investigate the weakest pillar",
	}
}

func avgOf(snaps []bench.HealthSnapshot, f func(bench.HealthSnapshot) float64) float64 {
	if len(snaps) == 0 {
		return 0
	}
	values := make([]float64, len(snaps))
	for i, s := range snaps {
		values[i] = f(s)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}
