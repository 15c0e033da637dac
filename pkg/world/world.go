// Package world holds the static adventure map: locations joined by named
// commands, and the canonical table of collectible items.
package world

import (
	"errors"
	"slices"

	"github.com/samber/oops"
)

var (
	// ErrNotFound is returned when a location id or item name is not part of the world.
	ErrNotFound = errors.New("not found")
	// ErrInvalidWorld is wrapped by every load and validation failure.
	ErrInvalidWorld = errors.New("invalid world")
)

// Item is a collectible object with an origin and a scoring target.
type Item struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description"`         // shown on pickup
	StartPosition  int    `json:"start_position" yaml:"start_position"`   // location id
	TargetPosition int    `json:"target_position" yaml:"target_position"` // location id that scores it
	TargetPoints   int    `json:"target_points" yaml:"target_points"`     // awarded on deposit
	Deposited      bool   `json:"deposited" yaml:"deposited"`             // true while it sits at its target
}

// World owns every Location and Item of a game.
type World struct {
	Locations     map[int]*Location
	Items         []*Item
	RequiredItems []string // items needed at the start location to win; may be empty
}

// New builds a World from loose parts. It does not validate; call Validate.
func New(locations []*Location, items []*Item) *World {
	w := &World{
		Locations: make(map[int]*Location, len(locations)),
		Items:     items,
	}
	for _, loc := range locations {
		w.Locations[loc.ID] = loc
	}
	return w
}

// LocationByID returns the location with the given id.
func (w *World) LocationByID(id int) (*Location, error) {
	loc, ok := w.Locations[id]
	if !ok {
		return nil, oops.In("world").With("location_id", id).Wrapf(ErrNotFound, "location %d", id)
	}
	return loc, nil
}

// ItemByName returns the canonical record of the named item.
func (w *World) ItemByName(name string) (*Item, error) {
	for _, item := range w.Items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, oops.In("world").With("item", name).Wrapf(ErrNotFound, "item %q", name)
}

// LocationIDs returns every location id in ascending order.
func (w *World) LocationIDs() []int {
	ids := make([]int, 0, len(w.Locations))
	for id := range w.Locations {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Required returns the item names needed at home to win. When the world file
// names none, every item scored at home is required.
func (w *World) Required(home int) []string {
	if len(w.RequiredItems) > 0 {
		return slices.Clone(w.RequiredItems)
	}
	var names []string
	for _, item := range w.Items {
		if item.TargetPosition == home {
			names = append(names, item.Name)
		}
	}
	return names
}

// DepositedPoints sums target points over every deposited item.
func (w *World) DepositedPoints() int {
	total := 0
	for _, item := range w.Items {
		if item.Deposited {
			total += item.TargetPoints
		}
	}
	return total
}
