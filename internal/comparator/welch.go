// Package comparator decides whether differences between competing agents'
// scores are statistically real or noise, via Welch's t-test with the
// engine's hand-rolled numeric approximations.
package comparator

import (
	"math"

	"moltbench/domain/bench"
	"moltbench/internal/numerics"
)

// Alpha is the fixed significance level for all comparisons
const Alpha = 0.05

// pValueFloor clamps the small-df p-value approximation; the continued
// fraction loses precision in the extreme tail and values below this are
// not meaningfully distinguishable anyway.
const pValueFloor = 1e-4

// WelchTTest runs Welch's unequal-variance t-test between two samples.
// Underpowered input (fewer than 2 observations on either side) or a
// degenerate zero standard error yields the neutral result: the test is
// defined as "no evidence", not an error.
func WelchTTest(samplesA, samplesB []float64) bench.StatisticalTest {
	nA := len(samplesA)
	nB := len(samplesB)

	meanA := numerics.Mean(samplesA)
	meanB := numerics.Mean(samplesB)

	if nA < 2 || nB < 2 {
		return neutralTest(meanA, meanB, nA, nB)
	}

	varA := numerics.Variance(samplesA)
	varB := numerics.Variance(samplesB)

	seA := varA / float64(nA)
	seB := varB / float64(nB)
	se := math.Sqrt(seA + seB)
	if se == 0 {
		// Identical constant samples: no variance, no evidence.
		return neutralTest(meanA, meanB, nA, nB)
	}

	tStat := (meanA - meanB) / se

	// Welch-Satterthwaite degrees of freedom
	df := (seA + seB) * (seA + seB) /
		(seA*seA/float64(nA-1) + seB*seB/float64(nB-1))

	pValue := twoTailedPValue(tStat, df)

	// Cohen's d from the pooled standard deviation, reported as a
	// magnitude so the effect size is symmetric in argument order.
	pooledSD := math.Sqrt(((float64(nA)-1)*varA + (float64(nB)-1)*varB) / float64(nA+nB-2))
	effectSize := 0.0
	if pooledSD > 0 {
		effectSize = math.Abs(meanA-meanB) / pooledSD
	}

	tCrit := tCritical(df)
	diff := meanA - meanB

	return bench.StatisticalTest{
		Statistic:            tStat,
		PValue:               pValue,
		DegreesOfFreedom:     df,
		Significant:          pValue < Alpha,
		EffectSize:           effectSize,
		EffectInterpretation: interpretEffect(effectSize),
		MeanA:                meanA,
		MeanB:                meanB,
		CI95:                 [2]float64{diff - tCrit*se, diff + tCrit*se},
		SampleSizeA:          nA,
		SampleSizeB:          nB,
	}
}

// twoTailedPValue uses the normal approximation above 30 degrees of
// freedom and the incomplete-beta Student-t survival function below,
// clamped to [1e-4, 1].
func twoTailedPValue(tStat, df float64) float64 {
	absT := math.Abs(tStat)

	if df > 30 {
		p := 2 * numerics.NormalCDF(-absT)
		if p > 1 {
			p = 1
		}
		return p
	}

	// Two-tailed Student-t: p = I_{df/(df+t^2)}(df/2, 1/2)
	p := numerics.IncompleteBeta(df/2, 0.5, df/(df+absT*absT))
	if p < pValueFloor {
		p = pValueFloor
	}
	if p > 1 {
		p = 1
	}
	return p
}

// tCritical returns the 95% two-tailed critical value from a discrete
// df-bucket lookup. Deliberately not a continuous t-inverse: this table
// must be replicated exactly for bit-for-bit parity with intervals
// recorded alongside historical proofs.
func tCritical(df float64) float64 {
	switch {
	case df >= 120:
		return 1.96
	case df >= 60:
		return 2.0
	case df >= 30:
		return 2.042
	case df >= 20:
		return 2.086
	case df >= 10:
		return 2.228
	case df >= 5:
		return 2.571
	default:
		return 2.776
	}
}

// interpretEffect classifies Cohen's d magnitude
func interpretEffect(d float64) bench.EffectInterpretation {
	absD := math.Abs(d)
	switch {
	case absD < 0.2:
		return bench.EffectNegligible
	case absD < 0.5:
		return bench.EffectSmall
	case absD < 0.8:
		return bench.EffectMedium
	default:
		return bench.EffectLarge
	}
}

// neutralTest is the well-defined "no evidence" result for underpowered
// or degenerate input.
func neutralTest(meanA, meanB float64, nA, nB int) bench.StatisticalTest {
	return bench.StatisticalTest{
		Statistic:            0,
		PValue:               1,
		DegreesOfFreedom:     0,
		Significant:          false,
		EffectSize:           0,
		EffectInterpretation: bench.EffectNegligible,
		MeanA:                meanA,
		MeanB:                meanB,
		CI95:                 [2]float64{0, 0},
		SampleSizeA:          nA,
		SampleSizeB:          nB,
	}
}
