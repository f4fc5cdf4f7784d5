// Package perf records how strategies perform across puzzles and reduces
// those records into summaries and statistical comparisons.
package perf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/stats"
	"github.com/louisbranch/wordlebench/internal/strategy"
	"github.com/louisbranch/wordlebench/internal/words"
)

// ErrSelfComparison indicates a summary was compared against itself.
var ErrSelfComparison = errors.New("cannot compare a summary to itself")

// Try is the outcome of a single puzzle attempt.
type Try struct {
	Word     words.Word
	Attempts *puzzle.Attempts
}

// Perf accumulates the per-puzzle outcomes of one strategy during a run.
type Perf struct {
	name  string
	tries []Try
}

// New creates an empty performance record for the given strategy.
func New(s strategy.Strategy) *Perf {
	return &Perf{name: fmt.Sprintf("%s v%s", s, s.Version())}
}

// StrategyName returns the display name of the recorded strategy,
// including its version.
func (p *Perf) StrategyName() string {
	return p.name
}

// Add appends the outcome of one puzzle.
func (p *Perf) Add(word words.Word, attempts *puzzle.Attempts) {
	p.tries = append(p.tries, Try{Word: word, Attempts: attempts})
}

// Tries returns every recorded outcome, in insertion order.
func (p *Perf) Tries() []Try {
	return p.tries
}

// NumTried returns the number of puzzles attempted.
func (p *Perf) NumTried() int {
	return len(p.tries)
}

// NumSolved returns the number of puzzles solved. Always at most NumTried.
func (p *Perf) NumSolved() int {
	n := 0
	for _, try := range p.tries {
		if try.Attempts.Solved(try.Word) {
			n++
		}
	}
	return n
}

// CumulativeGuesses returns the guess count across all attempts, solved
// or not.
func (p *Perf) CumulativeGuesses() int {
	n := 0
	for _, try := range p.tries {
		n += len(try.Attempts.Words())
	}
	return n
}

// Summary reduces the record to its aggregate form.
func (p *Perf) Summary() Summary {
	s := Summary{
		Strategy:          p.name,
		Tried:             p.NumTried(),
		CumulativeGuesses: p.CumulativeGuesses(),
	}
	for _, try := range p.tries {
		if !try.Attempts.Solved(try.Word) {
			continue
		}
		s.Solved++
		s.Histogram[len(try.Attempts.Words())-1]++
	}
	return s
}

// Histogram counts solved puzzles by the number of guesses they took.
// Bin i holds the puzzles solved in i+1 guesses.
type Histogram [puzzle.MaxGuesses]int

// Summary is the aggregate performance of one strategy over a run. The
// histogram bins always sum to Solved.
type Summary struct {
	Strategy          string
	Tried             int
	Solved            int
	CumulativeGuesses int
	Histogram         Histogram
}

// NumMissed returns the number of unsolved puzzles.
func (s Summary) NumMissed() int {
	return s.Tried - s.Solved
}

// FracSolved returns the solved fraction of attempted puzzles.
func (s Summary) FracSolved() float64 {
	if s.Tried == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Tried)
}

// FracMissed returns the unsolved fraction of attempted puzzles.
func (s Summary) FracMissed() float64 {
	if s.Tried == 0 {
		return 0
	}
	return float64(s.NumMissed()) / float64(s.Tried)
}

// CumulativeGuessesSolved returns the guess count across solved puzzles.
func (s Summary) CumulativeGuessesSolved() int {
	n := 0
	for i, bin := range s.Histogram {
		n += (i + 1) * bin
	}
	return n
}

// MeanGuesses returns the average guesses per solved puzzle. Guesses spent
// on unsolved puzzles are not included.
func (s Summary) MeanGuesses() float64 {
	if s.Solved == 0 {
		return 0
	}
	return float64(s.CumulativeGuessesSolved()) / float64(s.Solved)
}

// guessSamples expands the histogram back into one guess count per solved
// puzzle, for the difference-of-means test.
func (s Summary) guessSamples() []float64 {
	samples := make([]float64, 0, s.Solved)
	for i, bin := range s.Histogram {
		for j := 0; j < bin; j++ {
			samples = append(samples, float64(i+1))
		}
	}
	return samples
}

// Comparison relates a summary to a baseline summary.
type Comparison struct {
	This     Summary
	Baseline Summary

	// Guesses is Welch's t-test over per-solve guess counts.
	Guesses stats.TTestResult

	// SolvedP is the two-tailed Fisher's exact p-value on the
	// solved/missed contingency table.
	SolvedP float64
}

// Compare runs the significance tests of s against baseline.
//
// Comparing a summary against a structurally identical one returns
// ErrSelfComparison. Stats failures surface as wrapped
// stats.ErrDegenerateSample.
func (s Summary) Compare(baseline Summary) (Comparison, error) {
	if s == baseline {
		return Comparison{}, ErrSelfComparison
	}

	guesses, err := stats.WelchTTest(s.guessSamples(), baseline.guessSamples(), 0.05, stats.TwoTailed)
	if err != nil {
		return Comparison{}, fmt.Errorf("guess distribution test: %w", err)
	}

	solvedP, err := stats.FisherExact(s.Solved, baseline.Solved, s.NumMissed(), baseline.NumMissed())
	if err != nil {
		return Comparison{}, fmt.Errorf("solved rate test: %w", err)
	}

	return Comparison{This: s, Baseline: baseline, Guesses: guesses, SolvedP: solvedP}, nil
}

// FracSolvedDiff returns the solved-rate difference against the baseline.
func (c Comparison) FracSolvedDiff() float64 {
	return c.This.FracSolved() - c.Baseline.FracSolved()
}

// MeanGuessesDiff returns the mean-guess difference against the baseline.
func (c Comparison) MeanGuessesDiff() float64 {
	return c.This.MeanGuesses() - c.Baseline.MeanGuesses()
}

const reportWidth = 80

// centered pads text to the report width with the given rune on both sides.
func centered(text string, width int, pad byte) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(string(pad), left) + text + strings.Repeat(string(pad), right)
}

// WriteReport renders the summary as a plain text block. The header may
// carry an annotation line, or be empty for the default rule.
func (s Summary) WriteReport(w io.Writer, annotation string) error {
	if annotation != "" {
		if _, err := fmt.Fprintf(w, "Baseline%s\n%s\n", centered(s.Strategy, reportWidth-8, '-'), annotation); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s\n", centered(s.Strategy, reportWidth, '-')); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Ran %d words\n", s.Tried); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Guessed %d correctly, or %.1f%%, and %d incorrectly\n",
		s.Solved, s.FracSolved()*100, s.NumMissed()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct guesses took %.2f attempts on average\n", s.MeanGuesses()); err != nil {
		return err
	}
	return s.Histogram.Write(w)
}

// WriteReport renders the comparison as a plain text block.
func (c Comparison) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", centered(c.This.Strategy, reportWidth, '-')); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ran %d words against %s on %d words\n",
		c.This.Tried, c.Baseline.Strategy, c.Baseline.Tried); err != nil {
		return err
	}

	solvedVerdict := "not a sig. diff."
	if c.SolvedP < c.Guesses.Alpha {
		solvedVerdict = "a sig. diff."
	}
	if _, err := fmt.Fprintf(w, "Guessed %d correctly, or %.1f%% (%+.1f%%), and %d incorrectly, %s\n",
		c.This.Solved, c.This.FracSolved()*100, c.FracSolvedDiff()*100,
		c.This.NumMissed(), solvedVerdict); err != nil {
		return err
	}

	guessVerdict := "not a sig. diff."
	if c.Guesses.Significant() {
		guessVerdict = "a sig. diff."
	}
	if _, err := fmt.Fprintf(w, "Correct guesses took %.2f (%+.2f) attempts on average, %s\n",
		c.This.MeanGuesses(), c.MeanGuessesDiff(), guessVerdict); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "P-value: %v\n", c.Guesses.P); err != nil {
		return err
	}
	return c.This.Histogram.Write(w)
}

// Write renders the histogram as one bar per guess count, capped to the
// report width.
func (h Histogram) Write(w io.Writer) error {
	max := 0
	for _, bin := range h {
		if bin > max {
			max = bin
		}
	}
	digits := 1
	for n := max; n >= 10; n /= 10 {
		digits++
	}
	countPerMark := float64(max) / float64(reportWidth-digits-6)
	if countPerMark < 1 {
		countPerMark = 1
	}

	for i, bin := range h {
		marks := int(float64(bin) / countPerMark)
		if _, err := fmt.Fprintf(w, "%d |%s (%d)\n", i+1, strings.Repeat("■", marks), bin); err != nil {
			return err
		}
	}
	return nil
}
