// Package numerics holds the hand-rolled approximations the integrity
// engine depends on. Every function here is pure and deterministic for
// identical floating-point inputs; the exact coefficients are part of the
// reproducibility contract and must not be swapped for library routines
// (doing so changes p-values and composite-derived hashes, invalidating
// every issued proof).
package numerics

import "math"

// NormalCDF computes the standard normal cumulative distribution function
// using the Abramowitz-Stegun 26.2.17 rational approximation.
// Absolute error is bounded by ~1.5e-7.
func NormalCDF(x float64) float64 {
	t := 1.0 / (1.0 + 0.2316419*math.Abs(x))
	d := 0.3989422804014327 * math.Exp(-x*x/2)
	p := d * t * (0.319381530 + t*(-0.356563782+t*(1.781477937+t*(-1.821255978+t*1.330274429))))
	if x > 0 {
		return 1 - p
	}
	return p
}

// lanczosCoefficients for the log-gamma approximation (g=5, n=6)
var lanczosCoefficients = [6]float64{
	76.18009172947146,
	-86.50532032941677,
	24.01409824083091,
	-1.231739572450155,
	0.1208650973866179e-2,
	-0.5395239384953e-5,
}

// LogGamma computes ln(Gamma(x)) for x > 0 via the Lanczos approximation.
// Only positive arguments occur in the beta-function context this engine
// uses it for; behavior for x <= 0 is undefined.
func LogGamma(x float64) float64 {
	y := x
	tmp := x + 5.5
	tmp -= (x + 0.5) * math.Log(tmp)
	ser := 1.000000000190015
	for _, c := range lanczosCoefficients {
		y++
		ser += c / y
	}
	return -tmp + math.Log(2.5066282746310005*ser/x)
}

const (
	betaMaxIterations = 100
	betaTolerance     = 1e-8
	betaTiny          = 1e-30
)

// IncompleteBeta computes the regularized incomplete beta function
// I_x(a, b) with a modified Lentz continued fraction, capped at 100
// iterations with an early-exit tolerance of 1e-8.
// Returns 0 for x <= 0 and 1 for x >= 1.
func IncompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	// The continued fraction converges rapidly only for
	// x < (a+1)/(a+b+2); otherwise evaluate via the symmetry relation.
	if x > (a+1)/(a+b+2) {
		return 1 - IncompleteBeta(b, a, 1-x)
	}

	lbeta := LogGamma(a+b) - LogGamma(a) - LogGamma(b) +
		a*math.Log(x) + b*math.Log(1-x)
	front := math.Exp(lbeta) / a

	f, c, d := 1.0, 1.0, 0.0
	for i := 0; i <= betaMaxIterations; i++ {
		m := float64(i / 2)

		var numerator float64
		switch {
		case i == 0:
			numerator = 1
		case i%2 == 0:
			numerator = m * (b - m) * x / ((a + 2*m - 1) * (a + 2*m))
		default:
			numerator = -(a + m) * (a + b + m) * x / ((a + 2*m) * (a + 2*m + 1))
		}

		d = 1 + numerator*d
		if math.Abs(d) < betaTiny {
			d = betaTiny
		}
		d = 1 / d

		c = 1 + numerator/c
		if math.Abs(c) < betaTiny {
			c = betaTiny
		}

		f *= c * d
		if math.Abs(1-c*d) < betaTolerance {
			break
		}
	}

	return front * (f - 1)
}

// Mean computes the arithmetic mean; 0 for empty input
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Variance computes the unbiased sample variance; 0 below 2 observations
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	mean := Mean(data)
	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(data)-1)
}

// StdDev computes the unbiased sample standard deviation
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}
