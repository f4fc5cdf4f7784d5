package puzzle

import (
	"strings"

	"github.com/louisbranch/wordlebench/internal/words"
)

// Attempts is the append-only record of guesses made against one puzzle.
//
// The hard and cheat flags are fixed at construction. Only Puzzle.Check
// mutates the ledger, so a strategy cannot inflate its performance by
// recording guesses on the side.
type Attempts struct {
	words []words.Word
	hard  bool
	cheat bool
}

func newAttempts(hard, cheat bool) *Attempts {
	return &Attempts{hard: hard, cheat: cheat}
}

// Cheat creates a provenance-marked ledger for use outside a sanctioned
// strategy run. Passing it to Puzzle.Check poisons that puzzle.
func Cheat(hard bool) *Attempts {
	return newAttempts(hard, true)
}

func (a *Attempts) push(word words.Word) error {
	if len(a.words) >= MaxGuesses {
		return ErrOutOfGuesses
	}
	a.words = append(a.words, word)
	return nil
}

// Words returns the recorded guesses in order.
func (a *Attempts) Words() []words.Word {
	return a.words
}

// Hard reports whether hardmode rules are enforced against this ledger.
func (a *Attempts) Hard() bool {
	return a.hard
}

// Finished reports whether the ledger holds six guesses.
func (a *Attempts) Finished() bool {
	return len(a.words) >= MaxGuesses
}

// Solved reports whether the final guess matches answer.
func (a *Attempts) Solved(answer words.Word) bool {
	if len(a.words) == 0 {
		return false
	}
	return a.words[len(a.words)-1] == answer
}

func (a *Attempts) String() string {
	texts := make([]string, len(a.words))
	for i, w := range a.words {
		texts[i] = w.String()
	}
	return strings.Join(texts, "\n")
}

// Key authorizes the construction of one sanctioned Attempts ledger.
//
// The harness hands a fresh key to each Strategy.Solve invocation. The
// first Unlock yields the ledger the strategy must return; any further
// unlock, and any ledger made through Cheat or NewCheatKey, carries the
// cheat provenance marker that poisons puzzles it touches.
type Key struct {
	hard  bool
	cheat bool
	used  bool
}

// NewKey creates a sanctioned single-use key for a strategy run.
func NewKey(hard bool) *Key {
	return &Key{hard: hard}
}

// NewCheatKey creates a key whose ledgers carry the cheat marker. It exists
// for tests and debugging outside the harness.
func NewCheatKey(hard bool) *Key {
	return &Key{hard: hard, cheat: true}
}

// Unlock consumes the key and returns a fresh ledger. A key unlocked more
// than once only yields cheat-marked ledgers.
func (k *Key) Unlock() *Attempts {
	if k.used {
		return newAttempts(k.hard, true)
	}
	k.used = true
	return newAttempts(k.hard, k.cheat)
}
