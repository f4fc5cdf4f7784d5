package words

import (
	"errors"
	"testing"
)

func TestValidateEmbeddedLists(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("validate wordlists: %v", err)
	}
}

func TestFromIndexBounds(t *testing.T) {
	w, err := FromIndex(0)
	if err != nil {
		t.Fatalf("from index 0: %v", err)
	}
	if w.String() != GuessText(0) {
		t.Fatalf("word text = %q, want %q", w.String(), GuessText(0))
	}

	_, err = FromIndex(GuessCount())
	var invalid InvalidIndexError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidIndexError, got %v", err)
	}
	if invalid.Index != GuessCount() {
		t.Fatalf("error index = %d, want %d", invalid.Index, GuessCount())
	}
	if _, err := FromIndex(-1); err == nil {
		t.Fatal("expected error for negative index")
	}
}

func TestFromTextLookup(t *testing.T) {
	w, err := FromText("earth")
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	if w.String() != "earth" {
		t.Fatalf("word text = %q, want %q", w.String(), "earth")
	}

	_, err = FromText("tlamp")
	var missing NotInWordlistError
	if !errors.As(err, &missing) {
		t.Fatalf("expected NotInWordlistError, got %v", err)
	}
	if missing.Text != "tlamp" {
		t.Fatalf("error text = %q, want %q", missing.Text, "tlamp")
	}
}

func TestWordIdentityIsIndexBased(t *testing.T) {
	a, err := FromText("sober")
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	b, err := FromText("sober")
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	if a != b {
		t.Fatal("expected identical words to compare equal")
	}
	c, err := FromText("spoon")
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	if !a.Less(c) {
		t.Fatalf("expected %q before %q", a, c)
	}
}

func TestAnswersAreGuessable(t *testing.T) {
	if AnswerCount() == 0 {
		t.Fatal("expected a non-empty answer list")
	}
	for i := 0; i < AnswerCount(); i++ {
		w, err := Answer(i)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if _, err := FromText(w.String()); err != nil {
			t.Fatalf("answer %q not guessable: %v", w, err)
		}
	}
	if _, err := Answer(AnswerCount()); err == nil {
		t.Fatal("expected out-of-bounds answer error")
	}
}
