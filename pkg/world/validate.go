package world

import (
	"errors"
	"strings"

	"github.com/samber/oops"
	"github.com/zyedidia/generic/mapset"
)

// Validate checks every data-model invariant and returns all violations joined.
func (w *World) Validate() error {
	var errs []error
	fail := func(b oops.OopsErrorBuilder, format string, args ...any) {
		errs = append(errs, b.Wrapf(ErrInvalidWorld, format, args...))
	}

	if len(w.Locations) == 0 {
		fail(oops.In("world"), "no locations defined")
	}

	itemNames := mapset.New[string]()
	for _, item := range w.Items {
		b := oops.In("world").With("item", item.Name)
		if item.Name == "" {
			fail(b, "item with empty name")
			continue
		}
		if itemNames.Has(item.Name) {
			fail(b, "duplicate item name %q", item.Name)
		}
		itemNames.Put(item.Name)
		if item.Description == "" {
			fail(b, "item %q has an empty description", item.Name)
		}
		if _, ok := w.Locations[item.StartPosition]; !ok {
			fail(b, "item %q starts at unknown location %d", item.Name, item.StartPosition)
		}
		if _, ok := w.Locations[item.TargetPosition]; !ok {
			fail(b, "item %q targets unknown location %d", item.Name, item.TargetPosition)
		}
		if item.TargetPoints < 0 {
			fail(b, "item %q has negative target points %d", item.Name, item.TargetPoints)
		}
	}

	placed := mapset.New[string]()
	for _, id := range w.LocationIDs() {
		loc := w.Locations[id]
		b := oops.In("world").With("location_id", id)
		if id < 0 {
			fail(b, "location id %d is negative", id)
		}
		if strings.TrimSpace(loc.BriefDescription) == "" {
			fail(b, "location %d has an empty brief description", id)
		}
		if strings.TrimSpace(loc.LongDescription) == "" {
			fail(b, "location %d has an empty long description", id)
		}
		for _, cmd := range loc.Commands() {
			if strings.TrimSpace(cmd) == "" {
				fail(b, "location %d has an empty command", id)
				continue
			}
			if dest := loc.AvailableCommands[cmd]; w.Locations[dest] == nil {
				fail(b.With("command", cmd), "location %d command %q leads to unknown location %d", id, cmd, dest)
			}
		}
		here := mapset.New[string]()
		for _, name := range loc.Items {
			if here.Has(name) {
				fail(b, "location %d lists item %q twice", id, name)
				continue
			}
			here.Put(name)
			if !itemNames.Has(name) {
				fail(b, "location %d lists unknown item %q", id, name)
			}
			if placed.Has(name) {
				fail(b, "item %q is listed at more than one location", name)
			}
			placed.Put(name)
		}
		for _, word := range loc.PuzzleWords {
			if strings.TrimSpace(word) == "" {
				fail(b, "location %d has an empty puzzle word", id)
			}
		}
	}

	for _, name := range w.RequiredItems {
		if !itemNames.Has(name) {
			fail(oops.In("world").With("item", name), "required item %q is not defined", name)
		}
	}

	return errors.Join(errs...)
}
