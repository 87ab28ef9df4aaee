package bench

import "math"

// Composite score weights. Fixed by contract: composite values feed output
// hashes in reproducibility proofs, so changing any weight invalidates
// every issued proof.
const (
	WeightCoherence  = 0.25
	WeightDepth      = 0.20
	WeightAccuracy   = 0.20 // applied to (1 - hallucination rate)
	WeightDiscipline = 0.15
	WeightConfidence = 0.10
	WeightBaseline   = 0.10 // fixed 0.5 baseline term
	BaselineScore    = 0.5
)

// Round2 rounds to two decimal places, the fixed precision of composites
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeComposite derives the composite score from the five input metrics.
// Pure function: identical metrics always yield the identical composite.
func ComputeComposite(m ScoreMetrics) float64 {
	raw := m.Coherence*WeightCoherence +
		m.Depth*WeightDepth +
		(1-m.HallucinationRate)*WeightAccuracy +
		m.Discipline*WeightDiscipline +
		m.Confidence*WeightConfidence +
		BaselineScore*WeightBaseline
	return Round2(raw)
}
