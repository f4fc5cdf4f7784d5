package strategy

import (
	"testing"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

func mustWord(t *testing.T, text string) words.Word {
	t.Helper()
	w, err := words.FromText(text)
	if err != nil {
		t.Fatalf("word %q: %v", text, err)
	}
	return w
}

func TestOccurrencesCountsGuessList(t *testing.T) {
	if Occurrences('e') == 0 {
		t.Fatal("expected 'e' to appear in the guess list")
	}
	if Occurrences('z') >= Occurrences('e') {
		t.Fatal("expected 'z' to be rarer than 'e'")
	}
	if Occurrences('!') != 0 {
		t.Fatal("expected zero for a non-letter")
	}
}

func TestInformationTracksGradedGuess(t *testing.T) {
	info := NewInformation()
	// Grading "apple" against an answer ending in 'e' with one 'a' and one
	// 'p' elsewhere.
	info.Update(mustWord(t, "apple"), puzzle.Grades{
		puzzle.GradeAlmost, puzzle.GradeAlmost, puzzle.GradeIncorrect,
		puzzle.GradeIncorrect, puzzle.GradeCorrect,
	})

	if info.Allows("eagle") {
		t.Fatal("'l' is absent, eagle must be rejected")
	}
	if info.Allows("agape") {
		t.Fatal("'a' cannot stay in position 0")
	}
	if !info.Allows("grape") {
		t.Fatal("grape satisfies every constraint")
	}
}

func TestInformationAccumulatesDuplicateAlmosts(t *testing.T) {
	info := NewInformation()
	// "alloy" graded against "spill": both l's are Almost.
	info.Update(mustWord(t, "alloy"), puzzle.Grades{
		puzzle.GradeIncorrect, puzzle.GradeAlmost, puzzle.GradeAlmost,
		puzzle.GradeIncorrect, puzzle.GradeIncorrect,
	})

	if info.Allows("limes") {
		t.Fatal("limes has one 'l', two are required")
	}
	if !info.Allows("level") {
		t.Fatal("level carries both required 'l's away from known positions")
	}
}

func TestStupidSolvesEarlyWords(t *testing.T) {
	answer, err := words.FromIndex(2)
	if err != nil {
		t.Fatalf("answer word: %v", err)
	}
	p := puzzle.New(answer)
	attempts := Stupid{}.Solve(p, puzzle.NewKey(false))

	if p.Poisoned() {
		t.Fatal("sanctioned key must not poison the puzzle")
	}
	if !attempts.Solved(answer) {
		t.Fatalf("expected %q solved, got %q", answer, attempts.Words())
	}
	if len(attempts.Words()) != 3 {
		t.Fatalf("guesses = %d, want 3", len(attempts.Words()))
	}
}

func TestBasicSolvesFirstListedWordImmediately(t *testing.T) {
	answer, err := words.FromIndex(0)
	if err != nil {
		t.Fatalf("answer word: %v", err)
	}
	p := puzzle.New(answer)
	attempts := NewBasic().Solve(p, puzzle.NewKey(true))

	if !attempts.Solved(answer) {
		t.Fatalf("expected %q solved, got %q", answer, attempts.Words())
	}
	if len(attempts.Words()) != 1 {
		t.Fatalf("guesses = %d, want 1", len(attempts.Words()))
	}
}

func TestBasicPlaysLegalHardmodeGuesses(t *testing.T) {
	answer := mustWord(t, "spill")
	p := puzzle.New(answer)
	attempts := NewBasic().WithFirstWord(mustWord(t, "alloy")).Solve(p, puzzle.NewKey(true))

	if p.Poisoned() {
		t.Fatal("sanctioned key must not poison the puzzle")
	}
	got := attempts.Words()
	if len(got) == 0 || len(got) > puzzle.MaxGuesses {
		t.Fatalf("unexpected ledger length %d", len(got))
	}
	if got[0] != mustWord(t, "alloy") {
		t.Fatalf("first guess = %q, want alloy", got[0])
	}
	// Replay the ledger against a fresh puzzle under hardmode; every guess
	// the strategy made must pass the validator.
	replay := puzzle.New(answer)
	ledger := puzzle.Cheat(true)
	for _, guess := range got {
		if _, _, err := replay.Check(guess, ledger); err != nil {
			t.Fatalf("guess %q violated hardmode: %v", guess, err)
		}
	}
}

func TestCommonPrefersCommonLetters(t *testing.T) {
	order := commonOrder()
	if len(order) != words.GuessCount() {
		t.Fatalf("order length = %d, want %d", len(order), words.GuessCount())
	}
	seen := make(map[int]bool, len(order))
	for _, i := range order {
		if seen[i] {
			t.Fatalf("index %d appears twice", i)
		}
		seen[i] = true
	}

	answer := mustWord(t, "earth")
	p := puzzle.New(answer)
	attempts := Common{}.Solve(p, puzzle.NewKey(true))
	if p.Poisoned() {
		t.Fatal("sanctioned key must not poison the puzzle")
	}
	if len(attempts.Words()) == 0 {
		t.Fatal("expected at least one guess")
	}
	first := attempts.Words()[0].String()
	if first != words.GuessText(order[0]) {
		t.Fatalf("opening guess = %q, want the top-ranked %q", first, words.GuessText(order[0]))
	}
}
