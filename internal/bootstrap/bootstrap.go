// Package bootstrap estimates confidence intervals for an agent's score
// distribution by seeded resampling. The seed is itself a deterministic
// function of the data, so the same samples always produce bit-identical
// intervals across runs and across reimplementations.
package bootstrap

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"moltbench/domain/bench"
	"moltbench/internal/numerics"
)

// DefaultIterations is the resampling round count
const DefaultIterations = 1000

// baseSeed anchors the data-derived seed formula
const baseSeed = 42

// SeedFromSamples derives the LCG seed as 42 + the sum of each sample
// rounded to millesimal integers. Part of the reproducibility contract.
func SeedFromSamples(samples []float64) int64 {
	seed := int64(baseSeed)
	for _, v := range samples {
		seed += int64(math.Round(v * 1000))
	}
	return seed
}

// CI computes bootstrap confidence intervals over the samples using
// DefaultIterations rounds. Empty input returns the all-zero result.
func CI(samples []float64) bench.BootstrapResult {
	return CIWithIterations(samples, DefaultIterations)
}

// CIWithIterations is CI with an explicit iteration count
func CIWithIterations(samples []float64, iterations int) bench.BootstrapResult {
	n := len(samples)
	if n == 0 || iterations <= 0 {
		return bench.BootstrapResult{}
	}

	seed := SeedFromSamples(samples)
	seq := numerics.NewDeterministicSequence(seed)

	resampledMeans := make([]float64, iterations)
	for i := 0; i < iterations; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += samples[seq.Intn(n)]
		}
		resampledMeans[i] = sum / float64(n)
	}

	sort.Float64s(resampledMeans)

	// Percentile positions are read off by index, not interpolated:
	// positional reads are what the parity contract pins down.
	ci95 := [2]float64{
		resampledMeans[int(float64(iterations)*0.025)],
		resampledMeans[int(float64(iterations)*0.975)],
	}
	ci99 := [2]float64{
		resampledMeans[int(float64(iterations)*0.005)],
		resampledMeans[int(float64(iterations)*0.995)],
	}

	stdError, err := stats.StandardDeviation(resampledMeans)
	if err != nil {
		stdError = 0
	}

	return bench.BootstrapResult{
		Mean:       numerics.Mean(samples),
		StdError:   stdError,
		CI95:       ci95,
		CI99:       ci99,
		Iterations: iterations,
		SampleSize: n,
		Seed:       seed,
	}
}
