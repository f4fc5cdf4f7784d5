// Package strategy defines the contract Wordle-solving strategies implement
// and ships the built-in reference strategies.
package strategy

import (
	"fmt"

	"github.com/louisbranch/wordlebench/internal/puzzle"
)

// Strategy is the capability the harness evaluates.
//
// Solve must obtain its ledger from the provided key, make between zero and
// six guesses through puzzle.Check, and return the ledger. Constructing a
// ledger any other way poisons the puzzle and fails the whole run. Version
// should change whenever the strategy's logic changes so persisted baselines
// stay meaningful. Hardmode declares, once per instance, whether the puzzle
// enforces hardmode rules against the strategy's guesses.
type Strategy interface {
	fmt.Stringer

	Solve(p *puzzle.Puzzle, key *puzzle.Key) *puzzle.Attempts
	Version() string
	Hardmode() bool
}
