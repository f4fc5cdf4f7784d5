// Package stats provides the pure significance tests used to compare
// strategy performance: Welch's two-sample t-test and Fisher's exact test.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateSample indicates the provided data cannot support the test.
var ErrDegenerateSample = errors.New("cannot run stats on this data")

// Tails selects a one- or two-tailed test.
type Tails int

const (
	// OneTailed tests a directional hypothesis.
	OneTailed Tails = 1

	// TwoTailed tests for any difference.
	TwoTailed Tails = 2
)

// TTestResult holds the outcome of a Welch's t-test.
type TTestResult struct {
	P     float64
	Alpha float64
	Tails Tails
}

// Significant reports whether the p-value clears the configured alpha.
func (r TTestResult) Significant() bool {
	return r.P < r.Alpha
}

type sample struct {
	mean float64
	vari float64
	n    float64
}

func describe(values []float64) (sample, error) {
	if len(values) < 2 {
		return sample{}, ErrDegenerateSample
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	n := float64(len(values))
	mean := sum / n
	vari := 0.0
	for _, v := range values {
		vari += (v - mean) * (v - mean)
	}
	vari /= n - 1
	return sample{mean: mean, vari: vari, n: n}, nil
}

// WelchTTest runs Welch's unequal-variance t-test on two samples.
//
// Alpha must sit in (0, 1). Samples need at least two elements each and at
// least one must have nonzero variance, otherwise ErrDegenerateSample is
// returned.
func WelchTTest(a, b []float64, alpha float64, tails Tails) (TTestResult, error) {
	if alpha <= 0 || alpha >= 1 {
		return TTestResult{}, fmt.Errorf("alpha %v outside (0, 1)", alpha)
	}

	sa, err := describe(a)
	if err != nil {
		return TTestResult{}, err
	}
	sb, err := describe(b)
	if err != nil {
		return TTestResult{}, err
	}
	if sa.vari == 0 && sb.vari == 0 {
		if sa.mean == sb.mean {
			// No variance and no difference: nothing to reject.
			return TTestResult{P: 1, Alpha: alpha, Tails: tails}, nil
		}
		return TTestResult{}, ErrDegenerateSample
	}

	se := sa.vari/sa.n + sb.vari/sb.n
	t := math.Abs(sa.mean-sb.mean) / math.Sqrt(se)

	// Welch-Satterthwaite degrees of freedom.
	df := se * se / (sa.vari*sa.vari/(sa.n*sa.n*(sa.n-1)) + sb.vari*sb.vari/(sb.n*sb.n*(sb.n-1)))

	p := float64(tails) * studentTCDF(-t, df)
	if p > 1 {
		p = 1
	}
	return TTestResult{P: p, Alpha: alpha, Tails: tails}, nil
}

// studentTCDF evaluates the CDF of Student's t distribution with df degrees
// of freedom at t.
func studentTCDF(t, df float64) float64 {
	x := df / (df + t*t)
	half := 0.5 * regIncBeta(0.5*df, 0.5, x)
	if t <= 0 {
		return half
	}
	return 1 - half
}

// FisherExact runs the two-tailed Fisher's exact test on a 2x2 contingency
// table laid out as [[a b], [c d]].
//
// The p-value sums the probabilities of every table, with the same margins,
// that is no more likely than the observed one.
func FisherExact(a, b, c, d int) (float64, error) {
	if a < 0 || b < 0 || c < 0 || d < 0 {
		return 0, fmt.Errorf("table cells must be non-negative")
	}
	n := a + b + c + d
	if n == 0 {
		return 0, ErrDegenerateSample
	}

	row := a + b
	col := a + c

	lo := 0
	if row+col-n > 0 {
		lo = row + col - n
	}
	hi := row
	if col < hi {
		hi = col
	}

	observed := hyperLogProb(a, row, col, n)
	const slack = 1e-7

	p := 0.0
	for x := lo; x <= hi; x++ {
		lp := hyperLogProb(x, row, col, n)
		if lp <= observed+slack {
			p += math.Exp(lp)
		}
	}
	if p > 1 {
		p = 1
	}
	return p, nil
}

// hyperLogProb returns the log-probability of seeing x in the top-left cell
// of a 2x2 table with the given first-row, first-column, and grand totals.
func hyperLogProb(x, row, col, n int) float64 {
	return logChoose(row, x) + logChoose(n-row, col-x) - logChoose(n, col)
}

func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	return logFactorial(n) - logFactorial(k) - logFactorial(n-k)
}

func logFactorial(n int) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

// regIncBeta computes the regularized incomplete beta function I_x(a, b)
// with the continued-fraction expansion from Numerical Recipes.
func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	la, _ := math.Lgamma(a + b)
	lb, _ := math.Lgamma(a)
	lc, _ := math.Lgamma(b)
	front := math.Exp(la - lb - lc + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betaCF(a, b, x) / a
	}
	return 1 - front*betaCF(b, a, 1-x)/b
}

func betaCF(a, b, x float64) float64 {
	const (
		maxIterations = 300
		epsilon       = 1e-14
		tiny          = 1e-30
	)

	qab := a + b
	qap := a + 1
	qam := a - 1

	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < tiny {
		d = tiny
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIterations; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + aa/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		delta := d * c
		h *= delta

		if math.Abs(delta-1) < epsilon {
			break
		}
	}

	return h
}
