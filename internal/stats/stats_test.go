package stats

import (
	"errors"
	"math"
	"testing"
)

func approx(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Fatalf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

func TestRegIncBetaKnownValues(t *testing.T) {
	// I_x(0.5, 0.5) = (2/pi) * asin(sqrt(x)).
	approx(t, regIncBeta(0.5, 0.5, 0.5), 0.5, 1e-12)
	approx(t, regIncBeta(0.5, 0.5, 0.25), 2/math.Pi*math.Asin(0.5), 1e-12)
	// I_x(1, 1) is the identity.
	approx(t, regIncBeta(1, 1, 0.3), 0.3, 1e-12)
	if regIncBeta(2, 3, 0) != 0 || regIncBeta(2, 3, 1) != 1 {
		t.Fatal("boundary values must be exact")
	}
}

func TestStudentTCDFMatchesCauchy(t *testing.T) {
	// With one degree of freedom the t distribution is Cauchy, so
	// CDF(x) = 1/2 + atan(x)/pi.
	for _, x := range []float64{-3, -1, 0, 1, 3} {
		approx(t, studentTCDF(x, 1), 0.5+math.Atan(x)/math.Pi, 1e-10)
	}
}

func TestWelchTTestSeparatedSamples(t *testing.T) {
	a := []float64{1, 2, 1, 2, 1, 2, 1, 2}
	b := []float64{8, 9, 8, 9, 8, 9, 8, 9}

	res, err := WelchTTest(a, b, 0.05, TwoTailed)
	if err != nil {
		t.Fatalf("welch: %v", err)
	}
	if !res.Significant() {
		t.Fatalf("p = %v, expected a significant difference", res.P)
	}
	if res.P <= 0 || res.P >= 0.001 {
		t.Fatalf("p = %v outside the expected range", res.P)
	}

	// The test is symmetric in its arguments.
	flipped, err := WelchTTest(b, a, 0.05, TwoTailed)
	if err != nil {
		t.Fatalf("welch flipped: %v", err)
	}
	approx(t, flipped.P, res.P, 1e-12)
}

func TestWelchTTestIdenticalSamples(t *testing.T) {
	a := []float64{3, 4, 5, 4, 3}

	res, err := WelchTTest(a, a, 0.05, TwoTailed)
	if err != nil {
		t.Fatalf("welch: %v", err)
	}
	if res.Significant() {
		t.Fatalf("p = %v, identical samples must not differ", res.P)
	}
	approx(t, res.P, 1, 1e-9)
}

func TestWelchTTestDegenerateInput(t *testing.T) {
	if _, err := WelchTTest([]float64{1}, []float64{1, 2}, 0.05, TwoTailed); !errors.Is(err, ErrDegenerateSample) {
		t.Fatalf("short sample: err = %v", err)
	}
	if _, err := WelchTTest([]float64{2, 2}, []float64{3, 3}, 0.05, TwoTailed); !errors.Is(err, ErrDegenerateSample) {
		t.Fatalf("zero variance with distinct means: err = %v", err)
	}
	if _, err := WelchTTest([]float64{1, 2}, []float64{3, 4}, 1.5, TwoTailed); err == nil {
		t.Fatal("alpha outside (0, 1) must be rejected")
	}
}

func TestFisherExactKnownTable(t *testing.T) {
	// Classic tea-tasting style table [[1 9], [11 3]].
	p, err := FisherExact(1, 9, 11, 3)
	if err != nil {
		t.Fatalf("fisher: %v", err)
	}
	approx(t, p, 0.002759, 1e-5)
}

func TestFisherExactBalancedTable(t *testing.T) {
	p, err := FisherExact(5, 5, 5, 5)
	if err != nil {
		t.Fatalf("fisher: %v", err)
	}
	approx(t, p, 1, 1e-12)
}

func TestFisherExactRejectsBadInput(t *testing.T) {
	if _, err := FisherExact(-1, 2, 3, 4); err == nil {
		t.Fatal("negative cell must be rejected")
	}
	if _, err := FisherExact(0, 0, 0, 0); !errors.Is(err, ErrDegenerateSample) {
		t.Fatalf("empty table: err = %v", err)
	}
}
