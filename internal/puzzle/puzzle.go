// Package puzzle implements the Wordle rules engine: guess grading,
// hardmode validation, and the bounded attempts ledger.
package puzzle

import (
	"errors"
	"fmt"

	"github.com/louisbranch/wordlebench/internal/words"
)

// MaxGuesses is the number of guesses a single puzzle allows.
const MaxGuesses = 6

// ErrOutOfGuesses indicates the attempts ledger already holds six guesses.
var ErrOutOfGuesses = errors.New("the puzzle has already evaluated six guesses")

// ErrInvalidHardmodeGuess indicates a guess that discards revealed information.
var ErrInvalidHardmodeGuess = errors.New("that guess does not follow hardmode rules")

// Grade describes the correctness of one letter in a guess.
type Grade int

const (
	// GradeIncorrect means the letter has no unconsumed occurrence in the answer.
	GradeIncorrect Grade = iota

	// GradeAlmost means the letter is in the answer but not at that position.
	GradeAlmost

	// GradeCorrect means the letter is in the correct position.
	GradeCorrect
)

func (g Grade) String() string {
	switch g {
	case GradeIncorrect:
		return "Incorrect"
	case GradeAlmost:
		return "Almost"
	case GradeCorrect:
		return "Correct"
	default:
		return "Unknown"
	}
}

// Grades holds one grade per letter position.
type Grades [words.Length]Grade

// Puzzle holds a hidden answer and grades guesses against it.
//
// A puzzle becomes poisoned the moment a cheat-provenance Attempts is used
// against it. The harness treats a poisoned puzzle as a fatal integrity
// violation for the strategy that produced it.
type Puzzle struct {
	answer   words.Word
	poisoned bool
}

// New creates a puzzle for the given answer word.
func New(answer words.Word) *Puzzle {
	return &Puzzle{answer: answer}
}

// Poisoned reports whether an unauthorized ledger was used on this puzzle.
func (p *Puzzle) Poisoned() bool {
	return p.poisoned
}

// Check grades a guess against the hidden answer and appends it to attempts.
//
// The returned bool reports a full solve. When the ledger enforces hardmode,
// Check re-derives the constraints revealed by every prior guess and rejects
// the new guess with ErrInvalidHardmodeGuess before recording it. A ledger
// at capacity fails with ErrOutOfGuesses and the guess is not recorded.
//
// Duplicate letters follow Wordle's accounting: Correct positions consume
// answer letters first regardless of position order, and remaining positions
// earn Almost only while unconsumed occurrences remain.
func (p *Puzzle) Check(guess words.Word, attempts *Attempts) (Grades, bool, error) {
	if attempts == nil {
		return Grades{}, false, fmt.Errorf("attempts ledger is required")
	}
	if attempts.cheat {
		p.poisoned = true
	}

	if attempts.hard {
		for _, previous := range attempts.words {
			previousGrades, _ := p.grade(previous.String())
			if err := hardmodeGuard(previous.String(), previousGrades, guess.String()); err != nil {
				return Grades{}, false, err
			}
		}
	}

	if err := attempts.push(guess); err != nil {
		return Grades{}, false, err
	}

	grades, solved := p.grade(guess.String())
	return grades, solved, nil
}

func (p *Puzzle) grade(guess string) (Grades, bool) {
	answer := p.answer.String()

	var grades Grades
	var have, consumed [26]int
	for i := 0; i < words.Length; i++ {
		have[answer[i]-'a']++
	}

	// Correct positions consume their answer letters before any Almost is
	// assigned, so a duplicated letter is never double-credited.
	solved := true
	for i := 0; i < words.Length; i++ {
		if guess[i] == answer[i] {
			grades[i] = GradeCorrect
			consumed[guess[i]-'a']++
		}
	}
	for i := 0; i < words.Length; i++ {
		if grades[i] == GradeCorrect {
			continue
		}
		solved = false
		c := guess[i] - 'a'
		if consumed[c] < have[c] {
			grades[i] = GradeAlmost
			consumed[c]++
		}
	}

	return grades, solved
}

// hardmodeGuard rejects a guess that fails to reuse the constraints revealed
// by one prior guess. Constraints are applied in grade-severity order:
// Correct pins the exact position, Almost accumulates a minimum occurrence
// count per letter, Incorrect adds nothing.
func hardmodeGuard(previous string, grades Grades, guess string) error {
	for i := 0; i < words.Length; i++ {
		if grades[i] == GradeCorrect && guess[i] != previous[i] {
			return ErrInvalidHardmodeGuess
		}
	}

	var required [26]int
	for i := 0; i < words.Length; i++ {
		if grades[i] != GradeAlmost {
			continue
		}
		c := previous[i] - 'a'
		required[c]++
		if countLetter(guess, previous[i]) < required[c] {
			return ErrInvalidHardmodeGuess
		}
	}
	return nil
}

func countLetter(text string, letter byte) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] == letter {
			n++
		}
	}
	return n
}
