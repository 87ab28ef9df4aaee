// Package health condenses the snapshot history and the active alert
// state into a single weighted benchmark-health score with status, trend,
// and operator recommendations.
package health

import (
	"github.com/montanaflynn/stats"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal/ledger"
	"moltbench/internal/regression"
)

const (
	// MinSnapshots below which the optimistic default report is returned
	MinSnapshots = 3
	// ReportWindow is how many recent snapshots feed the windowed dimensions
	ReportWindow = 10
	// DefaultHealth is the optimistic score reported before enough history exists
	DefaultHealth = 0.8
)

// Dimension weights. They sum to 1 and are part of the scoring contract.
const (
	weightStability   = 0.25
	weightBalance     = 0.20
	weightDiversity   = 0.25
	weightFreshness   = 0.15
	weightCalibration = 0.15
)

// Dimension scaling factors and thresholds
const (
	stabilityDriftFactor = 5    // drift of 0.2 between snapshots zeroes stability
	pillarSpreadFactor   = 3    // pillar std dev of 0.33 zeroes balance
	diversityFactor      = 10   // spread of 0.1 saturates diversity
	freshnessTarget      = 80.0 // reasoning length at which freshness saturates
	trendBand            = 0.05 // coherence shift needed to leave "stable"

	recommendDiversityBelow   = 0.3
	recommendStabilityBelow   = 0.5
	recommendFreshnessBelow   = 0.5
	recommendCalibrationBelow = 0.4
)

// Status escalation thresholds over active alerts
const (
	criticalElevatedAlerts = 3
	warningTotalAlerts     = 3
)

// Reporter builds health reports from the snapshot ledger and alert log
type Reporter struct {
	health *ledger.HealthLedger
	alerts *regression.AlertLog
}

// NewReporter creates a reporter over the given ledger and alert log
func NewReporter(health *ledger.HealthLedger, alerts *regression.AlertLog) *Reporter {
	return &Reporter{health: health, alerts: alerts}
}

// Report computes the current health report. Fewer than MinSnapshots
// yields the optimistic default rather than an error: a young benchmark
// is presumed healthy until the data says otherwise.
func (r *Reporter) Report() bench.HealthReport {
	now := core.Now()
	all := r.health.All()

	if len(all) < MinSnapshots {
		return bench.HealthReport{
			OverallHealth:   DefaultHealth,
			Status:          bench.StatusHealthy,
			Trend:           bench.TrendStable,
			Recommendations: []string{"collect more health snapshots for a full assessment"},
			SnapshotCount:   len(all),
			GeneratedAt:     now,
		}
	}

	window := r.health.Tail(ReportWindow)
	latest := all[len(all)-1]

	scoringStability := stabilityScore(window)
	pillarBalance := balanceScore(latest)
	agentDiversity := clamp01(latest.AgentScoreSpread * diversityFactor)
	dataFreshness := clamp01(windowAvg(window, func(s bench.HealthSnapshot) float64 {
		return s.AvgReasoningLength
	}) / freshnessTarget)
	calibrationQuality := windowAvg(window, func(s bench.HealthSnapshot) float64 {
		return s.CalibrationAvg
	})

	overall := weightStability*scoringStability +
		weightBalance*pillarBalance +
		weightDiversity*agentDiversity +
		weightFreshness*dataFreshness +
		weightCalibration*calibrationQuality

	active := r.alerts.Active(now)

	report := bench.HealthReport{
		OverallHealth:      overall,
		Status:             statusFor(active),
		ScoringStability:   scoringStability,
		PillarBalance:      pillarBalance,
		AgentDiversity:     agentDiversity,
		DataFreshness:      dataFreshness,
		CalibrationQuality: calibrationQuality,
		Trend:              trendFor(all),
		SnapshotCount:      len(all),
		ActiveAlertCount:   len(active),
		GeneratedAt:        now,
	}
	report.Recommendations = recommendationsFor(report)
	return report
}

// PillarScore returns the single 0-1 scalar summarizing overall health,
// for use as one input pillar in an upstream composite.
func (r *Reporter) PillarScore() float64 {
	return r.Report().OverallHealth
}

// stabilityScore penalizes average absolute drift between consecutive
// snapshot-level mean agent scores.
func stabilityScore(window []bench.HealthSnapshot) float64 {
	if len(window) < 2 {
		return 1
	}
	totalDrift := 0.0
	for i := 1; i < len(window); i++ {
		drift := window[i].AvgAgentScore() - window[i-1].AvgAgentScore()
		if drift < 0 {
			drift = -drift
		}
		totalDrift += drift
	}
	avgDrift := totalDrift / float64(len(window)-1)
	return clampFloor(1 - avgDrift*stabilityDriftFactor)
}

// balanceScore penalizes spread across the latest snapshot's pillar averages
func balanceScore(latest bench.HealthSnapshot) float64 {
	if len(latest.PillarAverages) == 0 {
		return 1
	}
	values := make([]float64, 0, len(latest.PillarAverages))
	for _, v := range latest.PillarAverages {
		values = append(values, v)
	}
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return 1
	}
	return clampFloor(1 - sd*pillarSpreadFactor)
}

func statusFor(active []bench.RegressionAlert) bench.HealthStatus {
	elevated := 0
	for _, a := range active {
		if a.Severity.IsElevated() {
			elevated++
		}
	}
	switch {
	case elevated >= criticalElevatedAlerts:
		return bench.StatusCritical
	case elevated >= 1:
		return bench.StatusDegraded
	case len(active) > warningTotalAlerts:
		return bench.StatusWarning
	default:
		return bench.StatusHealthy
	}
}

// trendFor compares average coherence across the first and second halves
// of the full retained history.
func trendFor(all []bench.HealthSnapshot) bench.HealthTrend {
	if len(all) < 2 {
		return bench.TrendStable
	}
	mid := len(all) / 2
	early := windowAvg(all[:mid], func(s bench.HealthSnapshot) float64 { return s.CoherenceAvg })
	late := windowAvg(all[mid:], func(s bench.HealthSnapshot) float64 { return s.CoherenceAvg })

	switch {
	case late > early+trendBand:
		return bench.TrendImproving
	case late < early-trendBand:
		return bench.TrendDeclining
	default:
		return bench.TrendStable
	}
}

func recommendationsFor(report bench.HealthReport) []string {
	var recs []string
	if report.AgentDiversity < recommendDiversityBelow {
		recs = append(recs, "agent scores are converging; verify the rubric still discriminates between strategies")
	}
	if report.ScoringStability < recommendStabilityBelow {
		recs = append(recs, "scores are swinging between snapshots; investigate scorer or prompt instability")
	}
	if report.DataFreshness < recommendFreshnessBelow {
		recs = append(recs, "reasoning output is thin; check that agents still produce full rationales")
	}
	if report.CalibrationQuality < recommendCalibrationBelow {
		recs = append(recs, "confidence is poorly calibrated; retrain or reweight the calibration pillar")
	}
	if len(recs) == 0 {
		recs = []string{"benchmark is operating within normal parameters"}
	}
	return recs
}

func windowAvg(snaps []bench.HealthSnapshot, f func(bench.HealthSnapshot) float64) float64 {
	if len(snaps) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range snaps {
		sum += f(s)
	}
	return sum / float64(len(snaps))
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func clampFloor(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
