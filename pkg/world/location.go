package world

import (
	"slices"
)

// Location is a node of the world graph.
type Location struct {
	ID                int            `json:"id" yaml:"id"`
	BriefDescription  string         `json:"brief_description" yaml:"brief_description"`
	LongDescription   string         `json:"long_description" yaml:"long_description"`
	AvailableCommands map[string]int `json:"available_commands" yaml:"available_commands"` // command → destination id
	Items             []string       `json:"items" yaml:"items"`                           // names of items currently here
	PuzzleWords       []string       `json:"puzzle_words,omitempty" yaml:"puzzle_words,omitempty"`
	Visited           bool           `json:"-" yaml:"-"`
}

// HasItem reports whether the named item is listed here.
func (l *Location) HasItem(name string) bool {
	return slices.Contains(l.Items, name)
}

// AddItem lists the named item here. Names stay unique within a location.
func (l *Location) AddItem(name string) {
	if l.HasItem(name) {
		return
	}
	l.Items = append(l.Items, name)
}

// RemoveItem drops the named item from this location and reports whether it was present.
func (l *Location) RemoveItem(name string) bool {
	i := slices.Index(l.Items, name)
	if i < 0 {
		return false
	}
	l.Items = slices.Delete(l.Items, i, i+1)
	return true
}

// Gated reports whether taking items here requires solving the word puzzle.
func (l *Location) Gated() bool {
	return len(l.PuzzleWords) > 0
}

// Destination returns the location a movement command leads to.
func (l *Location) Destination(command string) (int, bool) {
	id, ok := l.AvailableCommands[command]
	return id, ok
}

// Commands returns the movement commands available here in a stable order.
func (l *Location) Commands() []string {
	cmds := make([]string, 0, len(l.AvailableCommands))
	for cmd := range l.AvailableCommands {
		cmds = append(cmds, cmd)
	}
	slices.Sort(cmds)
	return cmds
}

// Description returns the text to show on arrival: long on the first visit, brief after.
func (l *Location) Description() string {
	if l.Visited {
		return l.BriefDescription
	}
	return l.LongDescription
}
