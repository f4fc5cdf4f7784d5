// Package harness runs strategy lineups against many puzzles and collects
// their performance records.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/wordlebench/internal/perf"
	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/strategy"
	"github.com/louisbranch/wordlebench/internal/words"
)

var (
	// ErrNoStrategiesAdded indicates a run was started with an empty lineup.
	ErrNoStrategiesAdded = errors.New("no strategies added to the harness")

	// ErrBaselineAlreadySet indicates a second baseline was configured.
	ErrBaselineAlreadySet = errors.New("baseline already set")

	// ErrNoWordsSelected indicates the word selection came up empty.
	ErrNoWordsSelected = errors.New("no words selected for the run")

	// ErrNoStore indicates persistence was requested without a store.
	ErrNoStore = errors.New("no summary store configured")
)

// CheatError aborts a run when a strategy poisons a puzzle by grading
// guesses outside its sanctioned ledger.
type CheatError struct {
	Strategy string
}

func (e CheatError) Error() string {
	return fmt.Sprintf("strategy %s cheated", e.Strategy)
}

// SummaryStore persists run summaries under a save name.
type SummaryStore interface {
	SaveSummary(ctx context.Context, name string, summary perf.Summary, overwrite bool) error
	LoadSummary(ctx context.Context, name string) (perf.Summary, error)
}

type baselineKind int

const (
	baselineNone baselineKind = iota
	baselineRun
	baselineSaved
)

// Harness runs every added strategy against a shared selection of answer
// words. Configure it with the chained methods, then call Run or DebugRun.
type Harness struct {
	strategies []strategy.Strategy
	saveNames  []string
	verbose    bool
	numWords   int // negative tests every answer
	overwrite  bool

	baseline      baselineKind
	baselineIndex int
	baselineName  string

	store SummaryStore
	rng   *rand.Rand
}

// New creates a harness that tests no strategies, stays quiet, and samples
// 100 random answers.
func New() *Harness {
	return &Harness{
		numWords: 100,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddStrategy adds a strategy to the lineup.
func (h *Harness) AddStrategy(s strategy.Strategy) *Harness {
	return h.AddStrategyPersisted(s, "")
}

// AddStrategyPersisted adds a strategy whose summary is saved under name
// after the run. An empty name skips persistence.
func (h *Harness) AddStrategyPersisted(s strategy.Strategy, name string) *Harness {
	h.strategies = append(h.strategies, s)
	h.saveNames = append(h.saveNames, name)
	return h
}

// Verbose enables progress logging during the run.
func (h *Harness) Verbose() *Harness {
	h.verbose = true
	return h
}

// Quiet disables progress logging.
func (h *Harness) Quiet() *Harness {
	h.verbose = false
	return h
}

// TestNum samples n random answers per run, clamped to the answer list.
func (h *Harness) TestNum(n int) *Harness {
	if n < 0 {
		n = 0
	}
	if n > words.AnswerCount() {
		n = words.AnswerCount()
	}
	h.numWords = n
	return h
}

// TestAll tests every answer in the list.
func (h *Harness) TestAll() *Harness {
	h.numWords = -1
	return h
}

// Seed makes the answer sampling deterministic.
func (h *Harness) Seed(seed int64) *Harness {
	h.rng = rand.New(rand.NewSource(seed))
	return h
}

// WithStore attaches the store used for persisted summaries and loaded
// baselines.
func (h *Harness) WithStore(store SummaryStore) *Harness {
	h.store = store
	return h
}

// Overwrite allows persisted summaries to replace existing saves.
func (h *Harness) Overwrite(overwrite bool) *Harness {
	h.overwrite = overwrite
	return h
}

// UseBaseline marks the i-th added strategy as the run's baseline.
func (h *Harness) UseBaseline(i int) error {
	if h.baseline != baselineNone {
		return ErrBaselineAlreadySet
	}
	if i < 0 || i >= len(h.strategies) {
		return fmt.Errorf("baseline index %d out of range", i)
	}
	h.baseline = baselineRun
	h.baselineIndex = i
	return nil
}

// LoadBaseline compares the run against a summary saved under name.
func (h *Harness) LoadBaseline(name string) error {
	if h.baseline != baselineNone {
		return ErrBaselineAlreadySet
	}
	if name == "" {
		return fmt.Errorf("baseline name must not be empty")
	}
	h.baseline = baselineSaved
	h.baselineName = name
	return nil
}

// selectWords samples answer-list indexes for one run, sorted ascending.
func (h *Harness) selectWords() ([]int, error) {
	if h.numWords == 0 {
		return nil, ErrNoWordsSelected
	}

	total := words.AnswerCount()
	if h.numWords < 0 || h.numWords >= total {
		indexes := make([]int, total)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	indexes := h.rng.Perm(total)[:h.numWords]
	sort.Ints(indexes)
	return indexes, nil
}

func (h *Harness) prepare() ([]*perf.Perf, []int, error) {
	if len(h.strategies) == 0 {
		return nil, nil, ErrNoStrategiesAdded
	}
	indexes, err := h.selectWords()
	if err != nil {
		return nil, nil, err
	}

	perfs := make([]*perf.Perf, len(h.strategies))
	for i, s := range h.strategies {
		perfs[i] = perf.New(s)
	}
	return perfs, indexes, nil
}

// trial runs the full lineup against one answer word. Appends are guarded
// by mu; a poisoned puzzle aborts the whole run.
func (h *Harness) trial(answerIndex int, perfs []*perf.Perf, mu *sync.Mutex) error {
	word, err := words.Answer(answerIndex)
	if err != nil {
		return fmt.Errorf("answer %d: %w", answerIndex, err)
	}

	for i, s := range h.strategies {
		p := puzzle.New(word)
		attempts := s.Solve(p, puzzle.NewKey(s.Hardmode()))

		mu.Lock()
		perfs[i].Add(word, attempts)
		mu.Unlock()

		if p.Poisoned() {
			return CheatError{Strategy: s.String()}
		}
	}
	return nil
}

// Run tests every strategy against the selected words in parallel and
// returns the collected records.
//
// Perfs come back in the order the strategies were added; the order of
// outcomes within each Perf is unspecified. A cheating strategy aborts the
// run with a CheatError.
func (h *Harness) Run(ctx context.Context) (*Record, error) {
	perfs, indexes, err := h.prepare()
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("wordlebench/harness").Start(ctx, "harness.run")
	span.SetAttributes(
		attribute.Int("harness.strategies", len(h.strategies)),
		attribute.Int("harness.words", len(indexes)),
	)
	defer span.End()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var progress int
	for _, idx := range indexes {
		idx := idx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := h.trial(idx, perfs, &mu); err != nil {
				return err
			}
			if h.verbose {
				mu.Lock()
				progress++
				if progress%100 == 0 || progress == len(indexes) {
					log.Printf("tested %d/%d words", progress, len(indexes))
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return h.finish(ctx, perfs)
}

// DebugRun tests every strategy sequentially, in deterministic order, and
// recovers panicking strategies instead of crashing the run. The panicking
// trial is logged and skipped.
func (h *Harness) DebugRun(ctx context.Context) (*Record, error) {
	perfs, indexes, err := h.prepare()
	if err != nil {
		return nil, err
	}

	for _, idx := range indexes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		word, err := words.Answer(idx)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", idx, err)
		}

		for i, s := range h.strategies {
			attempts, poisoned := h.debugTrial(word, s)
			if attempts == nil {
				continue
			}
			perfs[i].Add(word, attempts)
			if poisoned {
				return nil, CheatError{Strategy: s.String()}
			}
		}
	}

	return h.finish(ctx, perfs)
}

// debugTrial runs one strategy on one word, converting a panic into a
// skipped trial.
func (h *Harness) debugTrial(word words.Word, s strategy.Strategy) (attempts *puzzle.Attempts, poisoned bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("strategy %s panicked on %q: %v", s, word, r)
			attempts = nil
		}
	}()

	p := puzzle.New(word)
	attempts = s.Solve(p, puzzle.NewKey(s.Hardmode()))
	return attempts, p.Poisoned()
}

// finish resolves the baseline and persists configured summaries.
func (h *Harness) finish(ctx context.Context, perfs []*perf.Perf) (*Record, error) {
	record := &Record{Perfs: perfs, baselineIndex: -1}

	switch h.baseline {
	case baselineRun:
		summary := perfs[h.baselineIndex].Summary()
		record.Baseline = &summary
		record.baselineIndex = h.baselineIndex
		record.annotation = "Used as baseline and not saved"
		if name := h.saveNames[h.baselineIndex]; name != "" {
			record.annotation = fmt.Sprintf("Used as baseline and saved as %s", name)
		}
	case baselineSaved:
		if h.store == nil {
			return nil, ErrNoStore
		}
		summary, err := h.store.LoadSummary(ctx, h.baselineName)
		if err != nil {
			return nil, fmt.Errorf("load baseline %q: %w", h.baselineName, err)
		}
		record.Baseline = &summary
	}

	for i, name := range h.saveNames {
		if name == "" {
			continue
		}
		if h.store == nil {
			return nil, ErrNoStore
		}
		if err := h.store.SaveSummary(ctx, name, perfs[i].Summary(), h.overwrite); err != nil {
			return nil, fmt.Errorf("save summary %q: %w", name, err)
		}
	}

	return record, nil
}

// Record holds the outcome of one harness run.
type Record struct {
	Perfs    []*perf.Perf
	Baseline *perf.Summary

	baselineIndex int
	annotation    string
}

// PrintReport writes one summary block per strategy, comparing each against
// the baseline when one was resolved.
func (r *Record) PrintReport(w io.Writer) error {
	for i, p := range r.Perfs {
		summary := p.Summary()

		if r.Baseline == nil {
			if err := summary.WriteReport(w, ""); err != nil {
				return err
			}
			continue
		}
		if i == r.baselineIndex {
			if err := summary.WriteReport(w, r.annotation); err != nil {
				return err
			}
			continue
		}

		comparison, err := summary.Compare(*r.Baseline)
		if err != nil {
			// Identical or degenerate records still get a plain block.
			if err := summary.WriteReport(w, ""); err != nil {
				return err
			}
			continue
		}
		if err := comparison.WriteReport(w); err != nil {
			return err
		}
	}
	return nil
}
