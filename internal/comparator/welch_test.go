package comparator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"moltbench/domain/bench"
)

func TestWelchTTest_Antisymmetry(t *testing.T) {
	a := []float64{0.70, 0.71, 0.69, 0.72, 0.70}
	b := []float64{0.40, 0.42, 0.39, 0.41, 0.40}

	ab := WelchTTest(a, b)
	ba := WelchTTest(b, a)

	if ab.Statistic != -ba.Statistic {
		t.Errorf("statistic not antisymmetric: %v vs %v", ab.Statistic, ba.Statistic)
	}
	if ab.EffectSize != ba.EffectSize {
		t.Errorf("effect size not symmetric: %v vs %v", ab.EffectSize, ba.EffectSize)
	}
	if ab.PValue != ba.PValue {
		t.Errorf("p-value not symmetric: %v vs %v", ab.PValue, ba.PValue)
	}
}

func TestWelchTTest_UnderpoweredInputIsNeutral(t *testing.T) {
	res := WelchTTest([]float64{1.0}, []float64{1.0, 2.0})

	if res.Significant {
		t.Error("underpowered test reported significant")
	}
	if res.PValue != 1 {
		t.Errorf("p-value = %v, want 1", res.PValue)
	}
	if res.Statistic != 0 || res.EffectSize != 0 {
		t.Errorf("expected zeroed statistic and effect, got t=%v d=%v", res.Statistic, res.EffectSize)
	}
}

func TestWelchTTest_DegenerateConstantSamples(t *testing.T) {
	res := WelchTTest([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5})

	if res.Significant || res.PValue != 1 || res.Statistic != 0 {
		t.Errorf("constant samples should be neutral, got t=%v p=%v", res.Statistic, res.PValue)
	}
}

func TestWelchTTest_SeparatedSamplesAreSignificant(t *testing.T) {
	a := []float64{0.70, 0.71, 0.69, 0.72, 0.70}
	b := []float64{0.40, 0.42, 0.39, 0.41, 0.40}

	res := WelchTTest(a, b)

	if !res.Significant {
		t.Fatalf("expected significance, got p=%v", res.PValue)
	}
	if res.EffectInterpretation != bench.EffectLarge {
		t.Errorf("effect interpretation = %s, want large (d=%v)", res.EffectInterpretation, res.EffectSize)
	}
	if res.Statistic <= 0 {
		t.Errorf("expected positive t for higher first mean, got %v", res.Statistic)
	}
	if res.CI95[0] >= res.CI95[1] {
		t.Errorf("malformed CI: %v", res.CI95)
	}
	// A gap this wide should pin the p-value to the approximation floor.
	if res.PValue != 1e-4 {
		t.Errorf("p-value = %v, want clamp at 1e-4", res.PValue)
	}
}

// Small-df p-values come from the incomplete-beta survival function;
// check a moderate case against gonum's StudentsT as oracle.
func TestWelchTTest_SmallDFAgainstOracle(t *testing.T) {
	a := []float64{0.52, 0.58, 0.55, 0.61, 0.49, 0.57}
	b := []float64{0.50, 0.47, 0.53, 0.51, 0.46, 0.52}

	res := WelchTTest(a, b)
	if res.DegreesOfFreedom > 30 {
		t.Fatalf("fixture should exercise the small-df branch, df=%v", res.DegreesOfFreedom)
	}

	oracle := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: res.DegreesOfFreedom}
	want := 2 * (1 - oracle.CDF(math.Abs(res.Statistic)))
	if math.Abs(res.PValue-want) > 1e-6 {
		t.Errorf("p-value %v, oracle %v", res.PValue, want)
	}
}

func TestWelchTTest_NormalApproximationAboveDF30(t *testing.T) {
	// Two large samples with slightly different means: df well above 30.
	a := make([]float64, 40)
	b := make([]float64, 40)
	for i := range a {
		a[i] = 0.5 + 0.01*float64(i%7)
		b[i] = 0.48 + 0.01*float64(i%5)
	}

	res := WelchTTest(a, b)
	if res.DegreesOfFreedom <= 30 {
		t.Fatalf("fixture should exercise the normal branch, df=%v", res.DegreesOfFreedom)
	}
	if res.PValue < 0 || res.PValue > 1 {
		t.Errorf("p-value out of range: %v", res.PValue)
	}
}

func TestTCritical_Buckets(t *testing.T) {
	cases := []struct {
		df   float64
		want float64
	}{
		{150, 1.96},
		{120, 1.96},
		{80, 2.0},
		{45, 2.042},
		{25, 2.086},
		{12, 2.228},
		{7, 2.571},
		{3, 2.776},
	}
	for _, tc := range cases {
		if got := tCritical(tc.df); got != tc.want {
			t.Errorf("tCritical(%v) = %v, want %v", tc.df, got, tc.want)
		}
	}
}

func TestInterpretEffect_Thresholds(t *testing.T) {
	cases := []struct {
		d    float64
		want bench.EffectInterpretation
	}{
		{0.1, bench.EffectNegligible},
		{0.2, bench.EffectSmall},
		{0.49, bench.EffectSmall},
		{0.5, bench.EffectMedium},
		{0.79, bench.EffectMedium},
		{0.8, bench.EffectLarge},
		{3.2, bench.EffectLarge},
	}
	for _, tc := range cases {
		if got := interpretEffect(tc.d); got != tc.want {
			t.Errorf("interpretEffect(%v) = %s, want %s", tc.d, got, tc.want)
		}
	}
}
