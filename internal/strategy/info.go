package strategy

import (
	"sync"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

var occurrencesOnce struct {
	sync.Once
	counts [26]int
}

// Occurrences returns how many times a lowercase letter appears across the
// whole guess list. Strategies use it to prefer common letters.
func Occurrences(letter byte) int {
	occurrencesOnce.Do(func() {
		for i := 0; i < words.GuessCount(); i++ {
			text := words.GuessText(i)
			for j := 0; j < len(text); j++ {
				occurrencesOnce.counts[text[j]-'a']++
			}
		}
	})
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return occurrencesOnce.counts[letter-'a']
}

// Information accumulates the constraints revealed by graded guesses.
//
// It tracks pinned Correct letters, positions each letter is known not to
// occupy, per-letter minimum occurrence counts, and letters known absent.
// A word that satisfies every constraint is also a legal hardmode guess.
type Information struct {
	pinned   [words.Length]byte
	excluded [words.Length]uint32
	minCount [26]int
	absent   [26]bool
}

// NewInformation creates an empty constraint tracker.
func NewInformation() *Information {
	return &Information{}
}

// Update folds one graded guess into the accumulated constraints.
func (info *Information) Update(guess words.Word, grades puzzle.Grades) {
	text := guess.String()

	var credited [26]int
	for i := 0; i < words.Length; i++ {
		if grades[i] != puzzle.GradeIncorrect {
			credited[text[i]-'a']++
		}
	}

	for i := 0; i < words.Length; i++ {
		c := text[i] - 'a'
		switch grades[i] {
		case puzzle.GradeCorrect:
			info.pinned[i] = text[i]
		case puzzle.GradeAlmost:
			info.excluded[i] |= 1 << c
		case puzzle.GradeIncorrect:
			// An Incorrect duplicate still leaves the credited copies
			// required; only an uncredited letter is truly absent.
			if credited[c] == 0 && info.minCount[c] == 0 {
				info.absent[c] = true
			}
			info.excluded[i] |= 1 << c
		}
	}

	for c := 0; c < 26; c++ {
		if credited[c] > info.minCount[c] {
			info.minCount[c] = credited[c]
		}
	}
}

// Allows reports whether text is consistent with every accumulated constraint.
func (info *Information) Allows(text string) bool {
	for i := 0; i < words.Length; i++ {
		c := text[i] - 'a'
		if info.pinned[i] != 0 && text[i] != info.pinned[i] {
			return false
		}
		if info.pinned[i] == 0 && info.excluded[i]&(1<<c) != 0 {
			return false
		}
		if info.absent[c] {
			return false
		}
	}
	for c := 0; c < 26; c++ {
		if info.minCount[c] == 0 {
			continue
		}
		n := 0
		for i := 0; i < len(text); i++ {
			if int(text[i]-'a') == c {
				n++
			}
		}
		if n < info.minCount[c] {
			return false
		}
	}
	return true
}
