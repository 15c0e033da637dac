// Package puzzle implements the word-guessing gate that guards item pickups
// at some locations. It never touches world or engine state; callers only
// learn whether the player passed.
package puzzle

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zyedidia/generic/mapset"
)

// DefaultMaxMisses is the number of wrong letters allowed per word.
const DefaultMaxMisses = 10

const mask = '*'

// Outcome classifies a single guess.
type Outcome int

const (
	Invalid         Outcome = iota // not exactly one letter; no penalty
	Revealed                       // new letter present in the word
	AlreadyRevealed                // letter present and already shown
	Miss                           // new letter absent from the word; costs a try
	AlreadyMissed                  // absent letter guessed before; free
)

func (o Outcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case Revealed:
		return "revealed"
	case AlreadyRevealed:
		return "already revealed"
	case Miss:
		return "miss"
	case AlreadyMissed:
		return "already missed"
	default:
		return "unknown"
	}
}

// Round is one attempt at one word.
type Round struct {
	word      []rune
	shown     []rune
	missed    mapset.Set[rune]
	misses    int
	maxMisses int
}

// NewRound starts a round for word. Characters that are not letters are
// shown from the start.
func NewRound(word string, maxMisses int) *Round {
	if maxMisses <= 0 {
		maxMisses = DefaultMaxMisses
	}
	r := &Round{
		word:      []rune(strings.ToLower(word)),
		missed:    mapset.New[rune](),
		maxMisses: maxMisses,
	}
	r.shown = make([]rune, len(r.word))
	for i, c := range r.word {
		if unicode.IsLetter(c) {
			r.shown[i] = mask
		} else {
			r.shown[i] = c
		}
	}
	return r
}

// Guess applies one line of player input.
func (r *Round) Guess(input string) Outcome {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) != 1 {
		return Invalid
	}
	c, _ := utf8.DecodeRuneInString(input)
	if !unicode.IsLetter(c) {
		return Invalid
	}
	c = unicode.ToLower(c)

	found, fresh := false, false
	for i, w := range r.word {
		if w != c {
			continue
		}
		found = true
		if r.shown[i] == mask {
			r.shown[i] = c
			fresh = true
		}
	}
	switch {
	case fresh:
		return Revealed
	case found:
		return AlreadyRevealed
	case r.missed.Has(c):
		return AlreadyMissed
	default:
		r.missed.Put(c)
		r.misses++
		return Miss
	}
}

// Masked returns the word with unrevealed letters hidden.
func (r *Round) Masked() string { return string(r.shown) }

// Word returns the hidden word.
func (r *Round) Word() string { return string(r.word) }

func (r *Round) Misses() int { return r.misses }

// Remaining is the number of misses left before the round fails.
func (r *Round) Remaining() int { return max(r.maxMisses-r.misses, 0) }

// Solved reports whether every letter is revealed.
func (r *Round) Solved() bool {
	for _, c := range r.shown {
		if c == mask {
			return false
		}
	}
	return true
}

// Failed reports whether the round ran out of tries with letters still hidden.
func (r *Round) Failed() bool {
	return !r.Solved() && r.misses >= r.maxMisses
}
