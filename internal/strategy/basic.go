package strategy

import (
	"fmt"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

// Basic is a hardmode strategy that guesses the first word in the guess
// list consistent with everything revealed so far. An optional fixed first
// word lets runs compare opening words against each other.
type Basic struct {
	firstWord *words.Word
}

// NewBasic creates a Basic strategy with no fixed opening word.
func NewBasic() *Basic {
	return &Basic{}
}

// WithFirstWord fixes the strategy's opening guess.
func (b *Basic) WithFirstWord(word words.Word) *Basic {
	return &Basic{firstWord: &word}
}

func (b *Basic) Solve(p *puzzle.Puzzle, key *puzzle.Key) *puzzle.Attempts {
	attempts := key.Unlock()
	info := NewInformation()

	for !attempts.Finished() {
		var guess words.Word
		if b.firstWord != nil && len(attempts.Words()) == 0 {
			guess = *b.firstWord
		} else {
			candidate, ok := firstAllowed(info)
			if !ok {
				break
			}
			guess = candidate
		}

		grades, solved, err := p.Check(guess, attempts)
		if err != nil || solved {
			break
		}
		info.Update(guess, grades)
	}

	return attempts
}

func firstAllowed(info *Information) (words.Word, bool) {
	for i := 0; i < words.GuessCount(); i++ {
		if info.Allows(words.GuessText(i)) {
			word, err := words.FromIndex(i)
			if err != nil {
				return words.Word{}, false
			}
			return word, true
		}
	}
	return words.Word{}, false
}

func (b *Basic) Version() string {
	return "0.1.1"
}

func (b *Basic) Hardmode() bool {
	return true
}

func (b *Basic) String() string {
	if b.firstWord != nil {
		return fmt.Sprintf("strategy.Basic(%s)", b.firstWord)
	}
	return "strategy.Basic"
}
