// Package simulation replays a scripted list of commands against a fresh world
// and reports the resulting location-id log.
package simulation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/text-adventure/pkg/eventlog"
	"github.com/jwebster45206/text-adventure/pkg/game"
	"github.com/jwebster45206/text-adventure/pkg/session"
	"github.com/jwebster45206/text-adventure/pkg/world"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrGameOver       = errors.New("game ended before the last command")
	ErrLogMismatch    = errors.New("id log mismatch")
)

// Result is the outcome of one replay.
type Result struct {
	Log        []int
	Events     []eventlog.Event
	Transcript []string // session output per command
	Moves      int
	Score      int
	Won        bool
	Lost       bool
}

// Run plays commands from start on w. Puzzles are bypassed and undo is
// unlimited. The world is mutated, so pass a freshly loaded one per run.
func Run(w *world.World, start, maxMoves int, commands []string, logger *slog.Logger) (*Result, error) {
	g, err := game.New(w, start)
	if err != nil {
		return nil, err
	}
	s := session.New(g, session.Options{
		StartLocation: start,
		MaxMoves:      maxMoves,
		UndoChances:   -1,
	}, logger)

	res := &Result{Transcript: make([]string, 0, len(commands))}
	for i, cmd := range commands {
		if !s.Ongoing() {
			return nil, fmt.Errorf("%w: command #%d %q", ErrGameOver, i, cmd)
		}
		if !s.Valid(cmd) {
			return nil, fmt.Errorf("%w: command #%d %q at location %d", ErrInvalidCommand, i, cmd, g.CurrentLocationID)
		}
		res.Transcript = append(res.Transcript, s.Handle(cmd))
	}

	res.Log = s.Log().IDSequence()
	res.Events = s.Log().Entries()
	res.Moves = g.Moves
	res.Score = g.Score
	res.Won = s.Won()
	res.Lost = s.Lost()
	return res, nil
}

// Narrate renders the play history: each description followed by the command chosen there.
func (r *Result) Narrate() string {
	var b strings.Builder
	for _, e := range r.Events {
		b.WriteString(e.Description)
		b.WriteByte('\n')
		if e.NextCommand != "" {
			fmt.Fprintf(&b, "You choose: %s\n", e.NextCommand)
		}
	}
	return b.String()
}

// Walkthrough is a named command script with the id log it must produce.
type Walkthrough struct {
	Name        string   `yaml:"name"`
	Commands    []string `yaml:"commands"`
	ExpectedLog []int    `yaml:"expected_log"`
}

// Check compares a result's id log with the expected one.
func (wt Walkthrough) Check(r *Result) error {
	if slices.Equal(wt.ExpectedLog, r.Log) {
		return nil
	}
	return fmt.Errorf("%w: %s: expected %v, got %v", ErrLogMismatch, wt.Name, wt.ExpectedLog, r.Log)
}

// LoadWalkthroughs reads a YAML list of walkthroughs.
func LoadWalkthroughs(path string) ([]Walkthrough, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read walkthroughs %s: %w", path, err)
	}
	var wts []Walkthrough
	if err := yaml.Unmarshal(data, &wts); err != nil {
		return nil, fmt.Errorf("failed to parse walkthroughs %s: %w", path, err)
	}
	for i, wt := range wts {
		if wt.Name == "" || len(wt.Commands) == 0 {
			return nil, fmt.Errorf("walkthrough #%d in %s needs a name and at least one command", i, path)
		}
	}
	return wts, nil
}
