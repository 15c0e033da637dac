// Package game is the adventure state engine: current location, inventory,
// score and move counter, with command validation, take/deposit and undo.
package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jwebster45206/text-adventure/pkg/eventlog"
	"github.com/jwebster45206/text-adventure/pkg/world"
)

const (
	TakePrefix    = "take "
	DepositPrefix = "deposit "
)

// MenuCommands are accepted everywhere and never change engine state.
var MenuCommands = []string{"look", "inventory", "score", "log", "quit", "undo"}

// IsMenuCommand reports whether command is one of MenuCommands.
func IsMenuCommand(command string) bool {
	return slices.Contains(MenuCommands, command)
}

// AdventureGame holds the mutable state of one play session.
// It owns the World; other components read it through the accessors.
type AdventureGame struct {
	world *world.World

	CurrentLocationID int
	Inventory         []*world.Item
	Score             int
	Moves             int
	Ongoing           bool
}

// New starts a game at the given location.
func New(w *world.World, startID int) (*AdventureGame, error) {
	if _, err := w.LocationByID(startID); err != nil {
		return nil, fmt.Errorf("start location: %w", err)
	}
	return &AdventureGame{
		world:             w,
		CurrentLocationID: startID,
		Inventory:         make([]*world.Item, 0),
		Score:             w.DepositedPoints(),
		Ongoing:           true,
	}, nil
}

// IsValidChoice reports whether command is acceptable at loc. It is a pure
// predicate: menu commands, the location's movement commands, take of an
// undeposited item listed here, or deposit of a held item that targets here.
func (g *AdventureGame) IsValidChoice(command string, loc *world.Location, menu []string) bool {
	if slices.Contains(menu, command) {
		return true
	}
	if _, ok := loc.Destination(command); ok {
		return true
	}
	if name, ok := strings.CutPrefix(command, TakePrefix); ok {
		if !loc.HasItem(name) {
			return false
		}
		item, err := g.world.ItemByName(name)
		return err == nil && !item.Deposited
	}
	if name, ok := strings.CutPrefix(command, DepositPrefix); ok {
		item := g.held(name)
		return item != nil && item.TargetPosition == loc.ID
	}
	return false
}

// Move follows a movement command from the current location and counts one move.
func (g *AdventureGame) Move(command string) bool {
	dest, ok := g.CurrentLocation().Destination(command)
	if !ok {
		return false
	}
	g.mustLocation(dest)
	g.CurrentLocationID = dest
	g.Moves++
	return true
}

// TakeItem moves the named item from location locID into the inventory.
// It does not count a move.
func (g *AdventureGame) TakeItem(locID int, name string) bool {
	loc := g.mustLocation(locID)
	if !loc.HasItem(name) {
		return false
	}
	item, err := g.world.ItemByName(name)
	if err != nil {
		return false
	}
	loc.RemoveItem(name)
	if item.Deposited {
		item.Deposited = false
		g.Score -= item.TargetPoints
	}
	g.Inventory = append(g.Inventory, item)
	return true
}

// DepositItem drops a held item at its target, which must be the current
// location, and awards its points. It does not count a move.
func (g *AdventureGame) DepositItem(locID int, name string) bool {
	if locID != g.CurrentLocationID {
		return false
	}
	item := g.held(name)
	if item == nil || item.TargetPosition != locID {
		return false
	}
	g.dropFromInventory(name)
	item.Deposited = true
	g.Score += item.TargetPoints
	g.mustLocation(locID).AddItem(name)
	return true
}

// UndoAction reverts the most recent movement, take or deposit recorded in log
// and pops its event. It performs one step per call and leaves everything
// unchanged when the last command cannot be undone.
func (g *AdventureGame) UndoAction(log *eventlog.Log) bool {
	prev, ok := log.Penultimate()
	if !ok {
		return false
	}
	command := prev.NextCommand
	if command == "" || IsMenuCommand(command) {
		return false
	}
	prior := g.mustLocation(prev.LocationID)

	if _, ok := prior.Destination(command); ok {
		g.CurrentLocationID = prior.ID
		g.popMove(log)
		return true
	}

	if name, ok := strings.CutPrefix(command, TakePrefix); ok {
		if g.held(name) == nil {
			return false
		}
		g.dropFromInventory(name)
		prior.AddItem(name)
		g.popMove(log)
		return true
	}

	if name, ok := strings.CutPrefix(command, DepositPrefix); ok {
		item, err := g.world.ItemByName(name)
		if err != nil || !prior.HasItem(name) || item.TargetPosition != prior.ID || !item.Deposited {
			return false
		}
		prior.RemoveItem(name)
		item.Deposited = false
		g.Score -= item.TargetPoints
		g.Inventory = append(g.Inventory, item)
		g.popMove(log)
		return true
	}

	return false
}

func (g *AdventureGame) popMove(log *eventlog.Log) {
	log.RemoveLast()
	if g.Moves > 0 {
		g.Moves--
	}
}

// World returns the world this game plays in.
func (g *AdventureGame) World() *world.World { return g.world }

// CurrentLocation returns the location the player stands in.
func (g *AdventureGame) CurrentLocation() *world.Location {
	return g.mustLocation(g.CurrentLocationID)
}

// Location returns a location the caller knows to exist. It panics otherwise.
func (g *AdventureGame) Location(id int) *world.Location {
	return g.mustLocation(id)
}

// Item returns the canonical record of the named item.
func (g *AdventureGame) Item(name string) (*world.Item, error) {
	return g.world.ItemByName(name)
}

// Items returns the world's item table.
func (g *AdventureGame) Items() []*world.Item { return g.world.Items }

// HasInInventory reports whether the named item is held.
func (g *AdventureGame) HasInInventory(name string) bool {
	return g.held(name) != nil
}

// InventoryNames returns the held item names in pickup order.
func (g *AdventureGame) InventoryNames() []string {
	names := make([]string, 0, len(g.Inventory))
	for _, item := range g.Inventory {
		names = append(names, item.Name)
	}
	return names
}

func (g *AdventureGame) held(name string) *world.Item {
	for _, item := range g.Inventory {
		if item.Name == name {
			return item
		}
	}
	return nil
}

func (g *AdventureGame) dropFromInventory(name string) {
	g.Inventory = slices.DeleteFunc(g.Inventory, func(item *world.Item) bool {
		return item.Name == name
	})
}

// mustLocation looks up an id the engine holds as valid. A miss means the
// world was changed under the engine.
func (g *AdventureGame) mustLocation(id int) *world.Location {
	loc, err := g.world.LocationByID(id)
	if err != nil {
		panic(fmt.Errorf("game: invariant violated: %w", err))
	}
	return loc
}
