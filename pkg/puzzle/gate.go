package puzzle

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Status is the state of a gate invocation.
type Status int

const (
	Pending Status = iota
	Passed
	Abandoned
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Passed:
		return "passed"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Picker chooses the word for a round.
type Picker interface {
	Pick(words []string) string
}

// RandomPicker picks uniformly at random.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker returns a picker seeded with seed, or with the clock when seed is 0.
func NewRandomPicker(seed uint64) *RandomPicker {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (p *RandomPicker) Pick(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[p.rng.IntN(len(words))]
}

// FixedPicker always picks Word. Tests and scripted runs use it.
type FixedPicker struct {
	Word string
}

func (p FixedPicker) Pick([]string) string { return p.Word }

// Gate is one invocation of the puzzle in front of a take. It is fed one line
// of input at a time and keeps retrying with fresh words until the player
// solves one or declines to retry.
type Gate struct {
	words     []string
	picker    Picker
	maxMisses int

	round         *Round
	awaitingRetry bool
	status        Status
}

// NewGate starts a gate over the given candidate words.
func NewGate(words []string, maxMisses int, picker Picker) *Gate {
	if maxMisses <= 0 {
		maxMisses = DefaultMaxMisses
	}
	g := &Gate{
		words:     words,
		picker:    picker,
		maxMisses: maxMisses,
	}
	g.newRound()
	return g
}

func (g *Gate) newRound() {
	g.round = NewRound(g.picker.Pick(g.words), g.maxMisses)
	g.awaitingRetry = false
	if g.round.Solved() {
		g.status = Passed
	}
}

// Intro explains the gate to the player.
func (g *Gate) Intro() string {
	return fmt.Sprintf("You must complete the puzzle to obtain the item.\n"+
		"Guess the word related to the location you're in, one letter at a time. You have %d tries.", g.maxMisses)
}

// Prompt is the line to show before reading the next input.
func (g *Gate) Prompt() string {
	if g.awaitingRetry {
		return "Would you like to try again? Enter y or n: "
	}
	return fmt.Sprintf("(Guess) Enter a letter in word %s: ", g.round.Masked())
}

func (g *Gate) Status() Status { return g.status }

// Round exposes the active round.
func (g *Gate) Round() *Round { return g.round }

// Input consumes one line and returns the feedback to show with the new status.
func (g *Gate) Input(line string) (string, Status) {
	if g.status != Pending {
		return "", g.status
	}
	line = strings.ToLower(strings.TrimSpace(line))

	if g.awaitingRetry {
		switch line {
		case "y", "yes":
			g.newRound()
			return "New word chosen.", g.status
		case "n", "no":
			g.status = Abandoned
			return "Puzzle Over", g.status
		default:
			return "Invalid input", g.status
		}
	}

	var msg string
	switch g.round.Guess(line) {
	case Invalid:
		return "Please enter 1 letter", g.status
	case Revealed:
		msg = fmt.Sprintf("    %s is in the word", line)
	case AlreadyRevealed:
		msg = fmt.Sprintf("    %s is already in the word", line)
	case Miss:
		msg = fmt.Sprintf("    %s is not in the word (%d tries left)", line, g.round.Remaining())
	case AlreadyMissed:
		msg = fmt.Sprintf("    you already tried %s", line)
	}

	switch {
	case g.round.Solved():
		g.status = Passed
		msg += fmt.Sprintf("\nYou've completed the puzzle! The word is %s. You missed %d time(s)",
			g.round.Word(), g.round.Misses())
	case g.round.Failed():
		g.awaitingRetry = true
		msg += fmt.Sprintf("\nYou have failed the puzzle, the word was %s", g.round.Word())
	}
	return msg, g.status
}
