package strategy

import (
	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

// Stupid guesses the first six words of the guess list, in order. It exists
// as the minimal example of a Strategy and as a floor for comparisons.
type Stupid struct{}

func (Stupid) Solve(p *puzzle.Puzzle, key *puzzle.Key) *puzzle.Attempts {
	attempts := key.Unlock()

	for i := 0; i < puzzle.MaxGuesses; i++ {
		word, err := words.FromIndex(i)
		if err != nil {
			break
		}
		_, solved, err := p.Check(word, attempts)
		if err != nil || solved {
			break
		}
	}

	return attempts
}

func (Stupid) Version() string {
	return "0.10"
}

func (Stupid) Hardmode() bool {
	return false
}

func (Stupid) String() string {
	return "strategy.Stupid"
}
