// Package session runs the command cycle of one play-through: it normalises
// input, drives the engine, keeps the event log, routes input to a pending
// puzzle gate and applies the win, loss and undo-budget rules.
package session

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/text-adventure/pkg/eventlog"
	"github.com/jwebster45206/text-adventure/pkg/game"
	"github.com/jwebster45206/text-adventure/pkg/puzzle"
	"github.com/jwebster45206/text-adventure/pkg/world"
)

const (
	InvalidMessage = "That was an invalid option; try again."
	ActionPrompt   = "Enter action: "
	separator      = "========"
)

// Options are the scenario rules layered over the engine.
type Options struct {
	StartLocation  int
	MaxMoves       int      // 0 or less disables the move limit
	UndoChances    int      // negative means unlimited
	RequiredItems  []string // nil falls back to the world's required set
	PuzzlesEnabled bool
	MaxMisses      int
	Picker         puzzle.Picker
}

// Status is a snapshot for front-ends.
type Status struct {
	LocationID int
	Moves      int
	MaxMoves   int
	Score      int
	UndoLeft   int // negative means unlimited
	Inventory  []string
	InPuzzle   bool
}

type Session struct {
	ID     uuid.UUID
	game   *game.AdventureGame
	log    *eventlog.Log
	opts   Options
	logger *slog.Logger
	lower  cases.Caser

	undoLeft int
	gate     *puzzle.Gate
	gateItem string

	won, lost, quit bool
}

// New starts a session on g and logs the starting location.
func New(g *game.AdventureGame, opts Options, logger *slog.Logger) *Session {
	if opts.MaxMisses <= 0 {
		opts.MaxMisses = puzzle.DefaultMaxMisses
	}
	if opts.Picker == nil {
		opts.Picker = puzzle.NewRandomPicker(0)
	}
	if opts.RequiredItems == nil {
		opts.RequiredItems = g.World().Required(opts.StartLocation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		ID:       uuid.New(),
		game:     g,
		log:      eventlog.New(),
		opts:     opts,
		lower:    cases.Lower(language.Und),
		undoLeft: opts.UndoChances,
	}
	s.logger = logger.With("session_id", s.ID.String())

	loc := g.CurrentLocation()
	s.log.Append(eventlog.NewEvent(loc.ID, loc.LongDescription), "")
	s.logger.Info("session started",
		"location_id", loc.ID,
		"max_moves", opts.MaxMoves,
		"undo_chances", opts.UndoChances,
		"required_items", opts.RequiredItems)
	return s
}

// Intro returns the opening screen.
func (s *Session) Intro() string {
	return s.Screen()
}

// Prompt is the line to show before the next input.
func (s *Session) Prompt() string {
	if s.gate != nil {
		return s.gate.Prompt()
	}
	return ActionPrompt
}

// Handle runs one command cycle and returns everything to show the player.
func (s *Session) Handle(input string) string {
	var b strings.Builder
	switch {
	case !s.Ongoing():
		b.WriteString("The game is over.\n")
	case s.gate != nil:
		s.handleGate(&b, input)
	default:
		s.handleCommand(&b, s.normalize(input))
	}
	return b.String()
}

// Valid reports whether input would be accepted as a command right now.
func (s *Session) Valid(input string) bool {
	return s.game.IsValidChoice(s.normalize(input), s.game.CurrentLocation(), game.MenuCommands)
}

func (s *Session) normalize(input string) string {
	return s.lower.String(strings.Join(strings.Fields(input), " "))
}

func (s *Session) handleCommand(b *strings.Builder, cmd string) {
	loc := s.game.CurrentLocation()
	if !s.game.IsValidChoice(cmd, loc, game.MenuCommands) {
		s.logger.Debug("invalid command", "command", cmd, "location_id", loc.ID)
		fmt.Fprintln(b, InvalidMessage)
		return
	}

	fmt.Fprintln(b, separator)
	fmt.Fprintf(b, "You decided to: %s\n", cmd)

	switch {
	case cmd == "undo":
		s.undo(b)
	case game.IsMenuCommand(cmd):
		s.menu(b, cmd, loc)
		s.record(cmd)
	case isMovement(loc, cmd):
		s.move(cmd)
	case strings.HasPrefix(cmd, game.TakePrefix):
		name := strings.TrimPrefix(cmd, game.TakePrefix)
		if s.opts.PuzzlesEnabled && loc.Gated() {
			s.gate = puzzle.NewGate(loc.PuzzleWords, s.opts.MaxMisses, s.opts.Picker)
			s.gateItem = name
			s.logger.Debug("puzzle started", "location_id", loc.ID, "item", name)
			fmt.Fprintln(b, s.gate.Intro())
			s.resolveGate(b, s.gate.Status())
			return
		}
		s.take(b, name)
	case strings.HasPrefix(cmd, game.DepositPrefix):
		s.deposit(b, strings.TrimPrefix(cmd, game.DepositPrefix))
	}
	s.afterAction(b)
}

// isMovement reports whether cmd is one of loc's exits. Exits win over the
// take and deposit prefixes, the same order undo resolves them in.
func isMovement(loc *world.Location, cmd string) bool {
	_, ok := loc.Destination(cmd)
	return ok
}

func (s *Session) handleGate(b *strings.Builder, input string) {
	msg, status := s.gate.Input(input)
	if msg != "" {
		fmt.Fprintln(b, msg)
	}
	s.resolveGate(b, status)
}

func (s *Session) resolveGate(b *strings.Builder, status puzzle.Status) {
	switch status {
	case puzzle.Passed:
		name := s.gateItem
		s.gate, s.gateItem = nil, ""
		s.logger.Info("puzzle passed", "item", name)
		if s.opts.UndoChances >= 0 {
			s.undoLeft = s.opts.UndoChances
			fmt.Fprintf(b, "Your undo chances are restored to %d.\n", s.undoLeft)
		}
		s.take(b, name)
		s.afterAction(b)
	case puzzle.Abandoned:
		s.logger.Info("puzzle abandoned", "item", s.gateItem)
		s.gate, s.gateItem = nil, ""
		fmt.Fprintln(b, "Cannot take item because puzzle failed")
		fmt.Fprintf(b, "\n%s", s.Screen())
	}
}

func (s *Session) move(cmd string) {
	from := s.game.CurrentLocationID
	if s.game.Move(cmd) {
		s.logger.Debug("moved", "from", from, "to", s.game.CurrentLocationID, "command", cmd)
		s.record(cmd)
	}
}

func (s *Session) take(b *strings.Builder, name string) {
	if !s.game.TakeItem(s.game.CurrentLocationID, name) {
		fmt.Fprintf(b, "You cannot take the %s here.\n", name)
		return
	}
	s.game.Moves++
	s.record(game.TakePrefix + name)
	if item, err := s.game.Item(name); err == nil {
		fmt.Fprintf(b, "You picked up the %s. %s\n", name, item.Description)
	}
}

func (s *Session) deposit(b *strings.Builder, name string) {
	if !s.game.DepositItem(s.game.CurrentLocationID, name) {
		fmt.Fprintf(b, "You cannot deposit the %s here.\n", name)
		return
	}
	s.game.Moves++
	s.record(game.DepositPrefix + name)
	if item, err := s.game.Item(name); err == nil {
		fmt.Fprintf(b, "You deposited the %s. +%d points.\n", name, item.TargetPoints)
	}
}

func (s *Session) undo(b *strings.Builder) {
	limited := s.opts.UndoChances >= 0
	switch {
	case s.game.Moves >= 1 && (!limited || s.undoLeft > 0):
		if !s.game.UndoAction(s.log) {
			fmt.Fprintln(b, s.undoRefusal())
			return
		}
		s.logger.Debug("undo", "location_id", s.game.CurrentLocationID, "moves", s.game.Moves)
		if limited {
			s.undoLeft--
			fmt.Fprintf(b, "You have undone your move. %d more remaining undo chances.\n", s.undoLeft)
		} else {
			fmt.Fprintln(b, "You have undone your move.")
		}
	case limited && s.undoLeft <= 0:
		fmt.Fprintln(b, "Cannot undo. You have run out of undo chances.")
		fmt.Fprintln(b, "Complete a puzzle for more undo chances.")
	default:
		fmt.Fprintln(b, "Cannot undo. You have not made any move yet.")
	}
}

func (s *Session) undoRefusal() string {
	if prev, ok := s.log.Penultimate(); ok && game.IsMenuCommand(prev.NextCommand) {
		return "Cannot undo. Previous command is from menu"
	}
	return "Cannot undo. The previous action can no longer be reversed."
}

func (s *Session) menu(b *strings.Builder, cmd string, loc *world.Location) {
	switch cmd {
	case "log":
		b.WriteString(s.log.String())
	case "look":
		fmt.Fprintf(b, "LOCATION %d\n%s\n", loc.ID, loc.LongDescription)
	case "inventory":
		fmt.Fprintln(b, "You are carrying: ")
		for _, name := range s.game.InventoryNames() {
			fmt.Fprintf(b, "- %s\n", name)
		}
	case "score":
		fmt.Fprintf(b, "Current score: %d\n", s.game.Score)
	case "quit":
		fmt.Fprintln(b, "YOU QUITTED")
		s.quit = true
		s.game.Ongoing = false
		s.logger.Info("session quit", "moves", s.game.Moves, "score", s.game.Score)
	}
}

// record logs the resulting location paired with the command that led there.
func (s *Session) record(cmd string) {
	loc := s.game.CurrentLocation()
	e := eventlog.NewEvent(loc.ID, loc.LongDescription)
	s.log.Append(e, cmd)
	s.logger.Debug("event logged", "event_id", e.ID.String(), "location_id", loc.ID, "command", cmd)
}

func (s *Session) afterAction(b *strings.Builder) {
	switch {
	case s.hasWon():
		s.won = true
		s.game.Ongoing = false
		fmt.Fprintln(b, "YOU WIN!!!")
		fmt.Fprintln(b, "With all your items recovered, you made it back just in time.")
		s.finalScore(b)
		s.logger.Info("session won", "moves", s.game.Moves, "score", s.game.Score)
	case s.opts.MaxMoves > 0 && s.game.Moves >= s.opts.MaxMoves:
		s.lost = true
		s.game.Ongoing = false
		fmt.Fprintln(b, "GAME OVER")
		fmt.Fprintln(b, "Time's up. You ran out of moves.")
		s.finalScore(b)
		s.logger.Info("session lost", "moves", s.game.Moves, "score", s.game.Score)
	case s.game.Ongoing:
		fmt.Fprintf(b, "\n%s", s.Screen())
	}
}

func (s *Session) finalScore(b *strings.Builder) {
	fmt.Fprintf(b, "Final Score: %d\n", s.game.Score)
	fmt.Fprintf(b, "moves taken: %d\n", s.game.Moves)
}

func (s *Session) hasWon() bool {
	if len(s.opts.RequiredItems) == 0 || s.game.CurrentLocationID != s.opts.StartLocation {
		return false
	}
	home := s.game.CurrentLocation()
	for _, name := range s.opts.RequiredItems {
		if !home.HasItem(name) {
			return false
		}
	}
	return true
}

// Screen renders the current location with every action available there and
// marks the location visited.
func (s *Session) Screen() string {
	var b strings.Builder
	loc := s.game.CurrentLocation()

	fmt.Fprintf(&b, "LOCATION %d      (Moves %d)\n%s\n", loc.ID, s.game.Moves, loc.Description())
	loc.Visited = true

	fmt.Fprintf(&b, "What to do? Choose from: %s\n", strings.Join(game.MenuCommands, ", "))
	b.WriteString("At this location, you can also:\n")
	for _, action := range s.Actions() {
		fmt.Fprintf(&b, "- %s\n", action)
	}
	return b.String()
}

// Actions lists the movement, take and deposit commands valid here.
func (s *Session) Actions() []string {
	loc := s.game.CurrentLocation()
	actions := loc.Commands()
	for _, name := range loc.Items {
		if item, err := s.game.Item(name); err == nil && !item.Deposited {
			actions = append(actions, game.TakePrefix+name)
		}
	}
	for _, item := range s.game.Inventory {
		if item.TargetPosition == loc.ID {
			actions = append(actions, game.DepositPrefix+item.Name)
		}
	}
	return actions
}

func (s *Session) Ongoing() bool { return s.game.Ongoing }
func (s *Session) Won() bool     { return s.won }
func (s *Session) Lost() bool    { return s.lost }
func (s *Session) Quit() bool    { return s.quit }
func (s *Session) InPuzzle() bool {
	return s.gate != nil
}

// Game exposes the engine.
func (s *Session) Game() *game.AdventureGame { return s.game }

// Log exposes the event log.
func (s *Session) Log() *eventlog.Log { return s.log }

// LogText renders the event log the way the log command shows it.
func (s *Session) LogText() string { return s.log.String() }

// UndoLeft returns the remaining undo chances; negative means unlimited.
func (s *Session) UndoLeft() int { return s.undoLeft }

func (s *Session) Status() Status {
	return Status{
		LocationID: s.game.CurrentLocationID,
		Moves:      s.game.Moves,
		MaxMoves:   s.opts.MaxMoves,
		Score:      s.game.Score,
		UndoLeft:   s.undoLeft,
		Inventory:  s.game.InventoryNames(),
		InPuzzle:   s.gate != nil,
	}
}
