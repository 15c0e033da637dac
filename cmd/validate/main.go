package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/jwebster45206/text-adventure/pkg/world"
)

func main() {
	start := flag.Int("start", 1, "start location id used for reachability checks")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-start id] <world.json|world.yaml>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	filename := flag.Arg(0)
	validator := &WorldValidator{start: *start}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

type WorldValidator struct {
	start  int
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if _, err := world.FormatFromPath(filename); err != nil {
		return fmt.Errorf("world file must have a .json, .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., game_data.json, not game-data.json or GameData.json)", baseName)
	}

	v.errors = nil

	w, err := world.Load(filename)
	if err != nil {
		for _, e := range unjoin(err) {
			v.addError(e.Error())
		}
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	v.validateWorld(w)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *WorldValidator) validateWorld(w *world.World) {
	if _, err := w.LocationByID(v.start); err != nil {
		v.addError(fmt.Sprintf("start location %d does not exist", v.start))
		return
	}

	reachable := reachableFrom(w, v.start)
	for _, id := range w.LocationIDs() {
		if !reachable.Has(id) {
			v.addError(fmt.Sprintf("location %d is not reachable from start location %d", id, v.start))
		}
	}

	for _, item := range w.Items {
		if !reachable.Has(item.StartPosition) {
			v.addError(fmt.Sprintf("item '%s' starts at unreachable location %d", item.Name, item.StartPosition))
		}
		if !reachable.Has(item.TargetPosition) {
			v.addError(fmt.Sprintf("item '%s' targets unreachable location %d", item.Name, item.TargetPosition))
		}
	}

	for _, id := range w.LocationIDs() {
		for _, word := range w.Locations[id].PuzzleWords {
			if !isValidPuzzleWord(word) {
				v.addError(fmt.Sprintf("location %d puzzle word '%s' should be lowercase letters only", id, word))
			}
		}
	}

	if len(w.Required(v.start)) == 0 {
		v.addError(fmt.Sprintf("no item targets start location %d and required_items is empty, so the game cannot be won", v.start))
	}
}

// reachableFrom walks movement commands breadth-first.
func reachableFrom(w *world.World, start int) mapset.Set[int] {
	seen := mapset.New[int]()
	seen.Put(start)
	queue := []int{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		loc, err := w.LocationByID(id)
		if err != nil {
			continue
		}
		for _, cmd := range loc.Commands() {
			dest := loc.AvailableCommands[cmd]
			if !seen.Has(dest) {
				seen.Put(dest)
				queue = append(queue, dest)
			}
		}
	}
	return seen
}

func unjoin(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validPuzzleWordRegex = regexp.MustCompile(`^[a-z]+$`)
	validFilenameRegex   = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidPuzzleWord(word string) bool {
	return validPuzzleWordRegex.MatchString(word)
}

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
