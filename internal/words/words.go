// Package words provides the fixed Wordle wordlists and validated word handles.
package words

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed guesses.txt
var guessData string

//go:embed answers.txt
var answerData string

var (
	guesses []string
	// answers holds guess-list indexes for every possible answer.
	answers []int
)

func init() {
	guesses = splitList(guessData)
	for _, text := range splitList(answerData) {
		i := sort.SearchStrings(guesses, text)
		if i >= len(guesses) || guesses[i] != text {
			panic(fmt.Sprintf("words: answer %q missing from guess list", text))
		}
		answers = append(answers, i)
	}
}

func splitList(data string) []string {
	return strings.Fields(data)
}

// Validate checks the embedded wordlists for structural problems. It is
// intended to run once at command startup.
func Validate() error {
	if len(guesses) == 0 {
		return fmt.Errorf("guess list is empty")
	}
	if len(answers) == 0 {
		return fmt.Errorf("answer list is empty")
	}
	for i, text := range guesses {
		if len(text) != Length {
			return fmt.Errorf("guess %q is not %d letters", text, Length)
		}
		for j := 0; j < len(text); j++ {
			if text[j] < 'a' || text[j] > 'z' {
				return fmt.Errorf("guess %q contains %q", text, text[j])
			}
		}
		if i > 0 && guesses[i-1] >= text {
			return fmt.Errorf("guess list unsorted at %q", text)
		}
	}
	for i, idx := range answers {
		if idx < 0 || idx >= len(guesses) {
			return fmt.Errorf("answer index %d out of bounds", idx)
		}
		if i > 0 && answers[i-1] >= idx {
			return fmt.Errorf("answer list unsorted at %q", guesses[idx])
		}
	}
	return nil
}

// Length is the number of letters in every word.
const Length = 5

// InvalidIndexError indicates a word index outside the guess list.
type InvalidIndexError struct {
	Index int
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("the index %d does not correspond to a possible word", e.Index)
}

// NotInWordlistError indicates a string missing from the guess list.
type NotInWordlistError struct {
	Text string
}

func (e NotInWordlistError) Error() string {
	return fmt.Sprintf("the string %q is not in the wordlist", e.Text)
}

// Word is a validated handle into the guess list. The zero value is the
// first word in the list; construct instances with FromIndex or FromText.
type Word struct {
	index int
}

// FromIndex creates a Word from an index into the guess list.
func FromIndex(index int) (Word, error) {
	if index < 0 || index >= len(guesses) {
		return Word{}, InvalidIndexError{Index: index}
	}
	return Word{index: index}, nil
}

// FromText creates a Word from its five-letter text.
func FromText(text string) (Word, error) {
	i := sort.SearchStrings(guesses, text)
	if i >= len(guesses) || guesses[i] != text {
		return Word{}, NotInWordlistError{Text: text}
	}
	return Word{index: i}, nil
}

// Index returns the word's position in the guess list.
func (w Word) Index() int {
	return w.index
}

// String returns the word's text.
func (w Word) String() string {
	return guesses[w.index]
}

// Less orders words by guess-list index.
func (w Word) Less(other Word) bool {
	return w.index < other.index
}

// GuessCount returns the size of the guess list.
func GuessCount() int {
	return len(guesses)
}

// GuessText returns the text of the guess-list entry at index i without
// bounds validation. Callers must stay within [0, GuessCount).
func GuessText(i int) string {
	return guesses[i]
}

// AnswerCount returns the size of the answer list.
func AnswerCount() int {
	return len(answers)
}

// Answer returns the i-th possible answer as a guess-list Word.
func Answer(i int) (Word, error) {
	if i < 0 || i >= len(answers) {
		return Word{}, InvalidIndexError{Index: i}
	}
	return Word{index: answers[i]}, nil
}
