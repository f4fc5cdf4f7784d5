package strategy

import (
	"sort"
	"sync"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

var commonOrderOnce struct {
	sync.Once
	indexes []int
}

// commonOrder returns guess-list indexes sorted so that words built from
// the most common distinct letters come first.
func commonOrder() []int {
	commonOrderOnce.Do(func() {
		scores := make([]int, words.GuessCount())
		indexes := make([]int, words.GuessCount())
		for i := range indexes {
			indexes[i] = i
			text := words.GuessText(i)
			var seen [26]bool
			for j := 0; j < len(text); j++ {
				c := text[j] - 'a'
				if seen[c] {
					continue
				}
				seen[c] = true
				scores[i] += Occurrences(text[j])
			}
		}
		sort.SliceStable(indexes, func(a, b int) bool {
			return scores[indexes[a]] > scores[indexes[b]]
		})
		commonOrderOnce.indexes = indexes
	})
	return commonOrderOnce.indexes
}

// Common is a hardmode strategy that guesses the consistent word whose
// distinct letters are most common across the guess list. It is Basic with
// a better candidate order.
type Common struct{}

func (Common) Solve(p *puzzle.Puzzle, key *puzzle.Key) *puzzle.Attempts {
	attempts := key.Unlock()
	info := NewInformation()

	for !attempts.Finished() {
		guess, ok := firstAllowedIn(commonOrder(), info)
		if !ok {
			break
		}
		grades, solved, err := p.Check(guess, attempts)
		if err != nil || solved {
			break
		}
		info.Update(guess, grades)
	}

	return attempts
}

func firstAllowedIn(order []int, info *Information) (words.Word, bool) {
	for _, i := range order {
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

func (Common) Version() string {
	return "0.1.1"
}

func (Common) Hardmode() bool {
	return true
}

func (Common) String() string {
	return "strategy.Common"
}
