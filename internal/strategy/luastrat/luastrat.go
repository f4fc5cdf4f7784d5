// Package luastrat runs strategies written as Lua scripts.
//
// A script defines a global solve() function and drives the puzzle through
// the guess() builtin. Scripts never touch the attempts ledger, so the
// single-use key discipline holds for them the same way it does for
// compiled strategies.
package luastrat

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/wordlebench/internal/puzzle"
	"github.com/louisbranch/wordlebench/internal/words"
)

// Strategy runs a Lua script against puzzles.
//
// The script environment exposes three globals:
//
//	guess(text)   grades one word; returns a pattern string of 'c', 'a',
//	              and 'i' plus a solved boolean, or nil and an error message
//	word_count()  returns the size of the playable word list
//	word_at(i)    returns the i-th playable word, 1-based
type Strategy struct {
	name     string
	source   string
	hardmode bool
	version  string
}

// New creates an easymode scripted strategy from Lua source text.
func New(name, source string) *Strategy {
	return &Strategy{name: name, source: source, version: "0.1.0"}
}

// FromFile loads a script from disk, naming the strategy after the file.
func FromFile(path string) (*Strategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lua script: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, string(source)), nil
}

// WithHardmode marks the script's ledgers as hardmode.
func (s *Strategy) WithHardmode() *Strategy {
	clone := *s
	clone.hardmode = true
	return &clone
}

func (s *Strategy) Solve(p *puzzle.Puzzle, key *puzzle.Key) *puzzle.Attempts {
	attempts := key.Unlock()

	state := lua.NewState()
	lua.OpenLibraries(state)
	s.register(state, p, attempts)

	if err := lua.LoadString(state, s.source); err != nil {
		log.Printf("script %s failed to load: %v", s, err)
		return attempts
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		log.Printf("script %s failed to run: %v", s, err)
		return attempts
	}

	state.Global("solve")
	if !state.IsFunction(-1) {
		state.Pop(1)
		log.Printf("script %s defines no solve()", s)
		return attempts
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		log.Printf("script %s solve() failed: %v", s, err)
	}

	return attempts
}

func (s *Strategy) register(state *lua.State, p *puzzle.Puzzle, attempts *puzzle.Attempts) {
	state.Register("guess", func(l *lua.State) int {
		text := lua.CheckString(l, 1)
		word, err := words.FromText(text)
		if err != nil {
			l.PushNil()
			l.PushString(err.Error())
			return 2
		}
		grades, solved, err := p.Check(word, attempts)
		if err != nil {
			l.PushNil()
			l.PushString(err.Error())
			return 2
		}
		l.PushString(gradesPattern(grades))
		l.PushBoolean(solved)
		return 2
	})

	state.Register("word_count", func(l *lua.State) int {
		l.PushInteger(words.GuessCount())
		return 1
	})

	state.Register("word_at", func(l *lua.State) int {
		i := lua.CheckInteger(l, 1)
		if i < 1 || i > words.GuessCount() {
			l.PushNil()
			return 1
		}
		l.PushString(words.GuessText(i - 1))
		return 1
	})
}

func gradesPattern(grades puzzle.Grades) string {
	var b strings.Builder
	for _, g := range grades {
		switch g {
		case puzzle.GradeCorrect:
			b.WriteByte('c')
		case puzzle.GradeAlmost:
			b.WriteByte('a')
		default:
			b.WriteByte('i')
		}
	}
	return b.String()
}

func (s *Strategy) Version() string {
	return s.version
}

func (s *Strategy) Hardmode() bool {
	return s.hardmode
}

func (s *Strategy) String() string {
	return fmt.Sprintf("luastrat.Strategy(%s)", s.name)
}
