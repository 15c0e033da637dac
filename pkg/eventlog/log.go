// Package eventlog records the chronological play history of a session.
//
// Each Event pairs a visited location with the command that led from it to the
// next event, so the tail can be undone in O(1) while the penultimate event
// still tells the caller what kind of action produced the tail.
package eventlog

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/zyedidia/generic/list"
)

// Event is one visited-location node of the history.
type Event struct {
	ID          ulid.ULID
	LocationID  int
	Description string
	NextCommand string // command that led to the next event; empty for the tail
}

// NewEvent stamps a fresh event for the given location.
func NewEvent(locationID int, description string) Event {
	return Event{
		ID:          ulid.Make(),
		LocationID:  locationID,
		Description: description,
	}
}

// Log is an append/pop-last chain of events.
type Log struct {
	events *list.List[Event]
	size   int
}

// New returns an empty log.
func New() *Log {
	return &Log{events: list.New[Event]()}
}

// Append adds e as the new tail. When the log is not empty, command is recorded
// on the current tail as the command that led to e.
func (l *Log) Append(e Event, command string) {
	e.NextCommand = ""
	if tail := l.events.Back; tail != nil {
		tail.Value.NextCommand = command
	}
	l.events.PushBack(e)
	l.size++
}

// RemoveLast drops the tail and clears the outgoing command of the new tail.
// It reports whether anything was removed.
func (l *Log) RemoveLast() bool {
	tail := l.events.Back
	if tail == nil {
		return false
	}
	l.events.Remove(tail)
	l.size--
	if prev := l.events.Back; prev != nil {
		prev.Value.NextCommand = ""
		prev.Next = nil
	}
	return true
}

// IDSequence returns every event's location id from head to tail.
func (l *Log) IDSequence() []int {
	ids := make([]int, 0, l.size)
	for n := l.events.Front; n != nil; n = n.Next {
		ids = append(ids, n.Value.LocationID)
	}
	return ids
}

// Last returns the tail event.
func (l *Log) Last() (Event, bool) {
	if l.events.Back == nil {
		return Event{}, false
	}
	return l.events.Back.Value, true
}

// Penultimate returns the event before the tail, whose NextCommand is the most
// recent logged command.
func (l *Log) Penultimate() (Event, bool) {
	if l.events.Back == nil || l.events.Back.Prev == nil {
		return Event{}, false
	}
	return l.events.Back.Prev.Value, true
}

func (l *Log) Len() int    { return l.size }
func (l *Log) Empty() bool { return l.events.Front == nil }

// Entries returns a copy of the events from head to tail.
func (l *Log) Entries() []Event {
	out := make([]Event, 0, l.size)
	for n := l.events.Front; n != nil; n = n.Next {
		out = append(out, n.Value)
	}
	return out
}

// String renders one "Location: <id>, Command: <command>" line per event.
func (l *Log) String() string {
	var b strings.Builder
	for n := l.events.Front; n != nil; n = n.Next {
		cmd := n.Value.NextCommand
		if cmd == "" {
			cmd = "none"
		}
		fmt.Fprintf(&b, "Location: %d, Command: %s\n", n.Value.LocationID, cmd)
	}
	return b.String()
}
