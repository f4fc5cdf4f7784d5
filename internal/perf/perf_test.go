package perf

import (
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/strategy"
	"github.com/louisbranch/wordlebench/internal/words"
)

// playOut runs the given guesses against answer on a fresh puzzle and
// returns the resulting ledger.
func playOut(t *testing.T, answer words.Word, guesses ...words.Word) *puzzle.Attempts {
	t.Helper()
	p := puzzle.New(answer)
	ledger := puzzle.Cheat(false)
	for _, guess := range guesses {
		if _, _, err := p.Check(guess, ledger); err != nil {
			t.Fatalf("guess %q: %v", guess, err)
		}
	}
	return ledger
}

func word(t *testing.T, index int) words.Word {
	t.Helper()
	w, err := words.FromIndex(index)
	if err != nil {
		t.Fatalf("word %d: %v", index, err)
	}
	return w
}

func TestPerfSummarizesOutcomes(t *testing.T) {
	p := New(strategy.Stupid{})
	if !strings.HasPrefix(p.StrategyName(), "strategy.Stupid v") {
		t.Fatalf("name = %q", p.StrategyName())
	}

	a0, a1, a2 := word(t, 0), word(t, 1), word(t, 2)
	w3, w4, w5 := word(t, 3), word(t, 4), word(t, 5)

	// Solved in one, solved in three, and a six-guess miss.
	p.Add(a0, playOut(t, a0, a0))
	p.Add(a1, playOut(t, a1, w3, w4, a1))
	p.Add(a2, playOut(t, a2, w3, w4, w5, w3, w4, w5))

	if p.NumTried() != 3 || p.NumSolved() != 2 {
		t.Fatalf("tried/solved = %d/%d, want 3/2", p.NumTried(), p.NumSolved())
	}
	if p.CumulativeGuesses() != 10 {
		t.Fatalf("cumulative guesses = %d, want 10", p.CumulativeGuesses())
	}

	s := p.Summary()
	if s.Tried != 3 || s.Solved != 2 || s.NumMissed() != 1 {
		t.Fatalf("summary counters = %+v", s)
	}
	if s.Histogram != (Histogram{1, 0, 1, 0, 0, 0}) {
		t.Fatalf("histogram = %v", s.Histogram)
	}

	total := 0
	for _, bin := range s.Histogram {
		total += bin
	}
	if total != s.Solved {
		t.Fatalf("histogram sums to %d, want %d", total, s.Solved)
	}
	if s.CumulativeGuessesSolved() != 4 {
		t.Fatalf("solved guesses = %d, want 4", s.CumulativeGuessesSolved())
	}
	if s.MeanGuesses() != 2 {
		t.Fatalf("mean guesses = %v, want 2", s.MeanGuesses())
	}
}

func TestCompareRejectsSelf(t *testing.T) {
	s := Summary{Strategy: "strategy.Basic v0.1.1", Tried: 5, Solved: 5,
		CumulativeGuesses: 15, Histogram: Histogram{0, 2, 2, 1, 0, 0}}

	if _, err := s.Compare(s); !errors.Is(err, ErrSelfComparison) {
		t.Fatalf("err = %v, want ErrSelfComparison", err)
	}
}

func TestCompareRunsSignificanceTests(t *testing.T) {
	a := Summary{Strategy: "strategy.Common v0.1.1", Tried: 10, Solved: 8,
		CumulativeGuesses: 40, Histogram: Histogram{0, 2, 3, 2, 1, 0}}
	b := Summary{Strategy: "strategy.Stupid v0.10", Tried: 10, Solved: 4,
		CumulativeGuesses: 55, Histogram: Histogram{0, 0, 1, 1, 1, 1}}

	c, err := a.Compare(b)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if c.SolvedP <= 0 || c.SolvedP > 1 {
		t.Fatalf("fisher p = %v", c.SolvedP)
	}
	if c.Guesses.P <= 0 || c.Guesses.P > 1 {
		t.Fatalf("welch p = %v", c.Guesses.P)
	}
	if diff := c.FracSolvedDiff(); diff != 0.4 {
		t.Fatalf("solved diff = %v, want 0.4", diff)
	}
	if diff := c.MeanGuessesDiff(); diff >= 0 {
		t.Fatalf("mean diff = %v, want negative", diff)
	}
}

func TestSummaryReportFormat(t *testing.T) {
	s := Summary{Strategy: "strategy.Basic v0.1.1", Tried: 4, Solved: 3,
		CumulativeGuesses: 14, Histogram: Histogram{1, 1, 1, 0, 0, 0}}

	var buf strings.Builder
	if err := s.WriteReport(&buf, ""); err != nil {
		t.Fatalf("report: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "strategy.Basic v0.1.1") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Ran 4 words") {
		t.Fatalf("missing tried line:\n%s", out)
	}
	if !strings.Contains(out, "Guessed 3 correctly, or 75.0%, and 1 incorrectly") {
		t.Fatalf("missing solved line:\n%s", out)
	}
	if !strings.Contains(out, "Correct guesses took 2.00 attempts on average") {
		t.Fatalf("missing mean line:\n%s", out)
	}

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if n := len([]rune(line)); n > 80 {
			t.Fatalf("line exceeds 80 columns (%d): %q", n, line)
		}
	}
}

func TestBaselineAnnotationHeader(t *testing.T) {
	s := Summary{Strategy: "strategy.Stupid v0.10", Tried: 1, Solved: 1,
		CumulativeGuesses: 1, Histogram: Histogram{1, 0, 0, 0, 0, 0}}

	var buf strings.Builder
	if err := s.WriteReport(&buf, "Used as baseline and not saved"); err != nil {
		t.Fatalf("report: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "Baseline") || len([]rune(lines[0])) != 80 {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Used as baseline and not saved" {
		t.Fatalf("annotation = %q", lines[1])
	}
}

func TestHistogramBarsStayInWidth(t *testing.T) {
	h := Histogram{1000, 250, 10, 0, 3, 1}
	var buf strings.Builder
	if err := h.Write(&buf); err != nil {
		t.Fatalf("histogram: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != puzzle.MaxGuesses {
		t.Fatalf("got %d lines, want %d", len(lines), puzzle.MaxGuesses)
	}
	for _, line := range lines {
		if n := len([]rune(line)); n > 80 {
			t.Fatalf("line exceeds 80 columns (%d): %q", n, line)
		}
	}
}
