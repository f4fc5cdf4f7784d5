package strategy

import (
	"fmt"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

// Mock plays a fixed sequence of guesses. It exists for harness and
// reporting tests that need fully predictable ledgers.
type Mock struct {
	guesses []string
}

// NewMock creates a mock strategy. With no guesses it plays a default
// six-word sequence.
func NewMock(guesses ...string) *Mock {
	return &Mock{guesses: guesses}
}

func (m *Mock) Solve(p *puzzle.Puzzle, key *puzzle.Key) *puzzle.Attempts {
	attempts := key.Unlock()

	guesses := m.guesses
	if len(guesses) == 0 {
		guesses = []string{"nerds", "tithe", "doubt", "point", "parka", "sword"}
	}

	for _, text := range guesses {
		word, err := words.FromText(text)
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

func (m *Mock) Version() string {
	return "1.2.4"
}

func (m *Mock) Hardmode() bool {
	return false
}

func (m *Mock) String() string {
	if len(m.guesses) == 0 {
		return "strategy.Mock"
	}
	return fmt.Sprintf("strategy.Mock(%v)", m.guesses)
}
