package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a world file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", oops.In("world").With("path", path).
			Wrapf(ErrInvalidWorld, "unsupported world file extension %q", filepath.Ext(path))
	}
}

// document mirrors the file layout. Pointers mark keys that must be present.
type document struct {
	Locations     []locationDoc `json:"locations" yaml:"locations"`
	Items         []itemDoc     `json:"items" yaml:"items"`
	RequiredItems []string      `json:"required_items,omitempty" yaml:"required_items,omitempty"`
}

type locationDoc struct {
	ID                *int           `json:"id" yaml:"id"`
	BriefDescription  *string        `json:"brief_description" yaml:"brief_description"`
	LongDescription   *string        `json:"long_description" yaml:"long_description"`
	AvailableCommands map[string]int `json:"available_commands" yaml:"available_commands"`
	Items             []string       `json:"items" yaml:"items"`
	PuzzleWords       []string       `json:"puzzle_words" yaml:"puzzle_words"`
}

type itemDoc struct {
	Name           *string `json:"name" yaml:"name"`
	Description    *string `json:"description" yaml:"description"`
	StartPosition  *int    `json:"start_position" yaml:"start_position"`
	TargetPosition *int    `json:"target_position" yaml:"target_position"`
	TargetPoints   *int    `json:"target_points" yaml:"target_points"`
	Deposited      bool    `json:"deposited" yaml:"deposited"`
}

// Load reads, decodes and validates the world file at path.
func Load(path string) (*World, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file %s: %w", path, err)
	}
	w, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("world file %s: %w", path, err)
	}
	return w, nil
}

// Parse decodes a world document and validates it.
func Parse(data []byte, format Format) (*World, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	w, err := doc.build()
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func decode(data []byte, format Format) (*document, error) {
	var doc document
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, oops.In("world").Wrapf(ErrInvalidWorld, "malformed JSON")
		}
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return nil, oops.In("world").Wrapf(ErrInvalidWorld, "strict JSON decoding failed: %v", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return nil, oops.In("world").Wrapf(ErrInvalidWorld, "strict YAML decoding failed: %v", err)
		}
	default:
		return nil, oops.In("world").Wrapf(ErrInvalidWorld, "unknown format %q", format)
	}
	return &doc, nil
}

func (d *document) build() (*World, error) {
	if len(d.Locations) == 0 {
		return nil, oops.In("world").Wrapf(ErrInvalidWorld, "no locations defined")
	}

	locations := make([]*Location, 0, len(d.Locations))
	for i, ld := range d.Locations {
		if ld.ID == nil || ld.BriefDescription == nil || ld.LongDescription == nil || ld.AvailableCommands == nil {
			return nil, oops.In("world").With("index", i).
				Wrapf(ErrInvalidWorld, "location #%d is missing a required key (id, brief_description, long_description, available_commands)", i)
		}
		locations = append(locations, &Location{
			ID:                *ld.ID,
			BriefDescription:  *ld.BriefDescription,
			LongDescription:   *ld.LongDescription,
			AvailableCommands: ld.AvailableCommands,
			Items:             append([]string{}, ld.Items...),
			PuzzleWords:       ld.PuzzleWords,
		})
	}

	items := make([]*Item, 0, len(d.Items))
	for i, id := range d.Items {
		if id.Name == nil || id.Description == nil || id.StartPosition == nil || id.TargetPosition == nil || id.TargetPoints == nil {
			return nil, oops.In("world").With("index", i).
				Wrapf(ErrInvalidWorld, "item #%d is missing a required key (name, description, start_position, target_position, target_points)", i)
		}
		items = append(items, &Item{
			Name:           *id.Name,
			Description:    *id.Description,
			StartPosition:  *id.StartPosition,
			TargetPosition: *id.TargetPosition,
			TargetPoints:   *id.TargetPoints,
			Deposited:      id.Deposited,
		})
	}

	w := New(locations, items)
	if len(w.Locations) != len(locations) {
		return nil, oops.In("world").Wrapf(ErrInvalidWorld, "duplicate location ids")
	}
	w.RequiredItems = d.RequiredItems
	return w, nil
}
