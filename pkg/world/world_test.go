package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallWorld = `{
  "locations": [
    {"id": 1, "brief_description": "Home.", "long_description": "Your home.",
     "available_commands": {"go east": 2}, "items": [], "puzzle_words": []},
    {"id": 2, "brief_description": "Yard.", "long_description": "A yard.",
     "available_commands": {"go west": 1}, "items": ["key"], "puzzle_words": ["garden"]}
  ],
  "items": [
    {"name": "key", "description": "A brass key.", "start_position": 2,
     "target_position": 1, "target_points": 4, "deposited": false}
  ]
}`

func TestParse_JSON(t *testing.T) {
	w, err := Parse([]byte(smallWorld), FormatJSON)
	require.NoError(t, err)

	assert.Len(t, w.Locations, 2)
	yard, err := w.LocationByID(2)
	require.NoError(t, err)
	assert.Equal(t, "A yard.", yard.LongDescription)
	assert.Equal(t, []string{"key"}, yard.Items)
	assert.True(t, yard.Gated())

	dest, ok := yard.Destination("go west")
	assert.True(t, ok)
	assert.Equal(t, 1, dest)

	key, err := w.ItemByName("key")
	require.NoError(t, err)
	assert.Equal(t, 4, key.TargetPoints)
	assert.Equal(t, []string{"key"}, w.Required(1), "items scored at home are required by default")
}

func TestParse_YAML(t *testing.T) {
	doc := `
locations:
  - id: 0
    brief_description: Cave.
    long_description: A damp cave.
    available_commands: {}
    items: [lamp]
items:
  - name: lamp
    description: An oil lamp.
    start_position: 0
    target_position: 0
    target_points: 0
required_items: [lamp]
`
	w, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)

	cave, err := w.LocationByID(0)
	require.NoError(t, err)
	assert.False(t, cave.Gated())
	assert.Equal(t, []string{"lamp"}, w.Required(0))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "malformed json",
			doc:  `{"locations": [`,
		},
		{
			name: "unknown field",
			doc: `{"locations": [{"id": 1, "brief_description": "a", "long_description": "b",
				"available_commands": {}, "colour": "red"}], "items": []}`,
		},
		{
			name: "missing id",
			doc: `{"locations": [{"brief_description": "a", "long_description": "b",
				"available_commands": {}}], "items": []}`,
		},
		{
			name: "missing item points",
			doc: `{"locations": [{"id": 1, "brief_description": "a", "long_description": "b",
				"available_commands": {}}],
				"items": [{"name": "x", "description": "y", "start_position": 1, "target_position": 1}]}`,
		},
		{
			name: "dangling destination",
			doc: `{"locations": [{"id": 1, "brief_description": "a", "long_description": "b",
				"available_commands": {"go north": 9}}], "items": []}`,
		},
		{
			name: "duplicate location id",
			doc: `{"locations": [
				{"id": 1, "brief_description": "a", "long_description": "b", "available_commands": {}},
				{"id": 1, "brief_description": "c", "long_description": "d", "available_commands": {}}],
				"items": []}`,
		},
		{
			name: "unknown item at location",
			doc: `{"locations": [{"id": 1, "brief_description": "a", "long_description": "b",
				"available_commands": {}, "items": ["ghost"]}], "items": []}`,
		},
		{
			name: "no locations",
			doc:  `{"locations": [], "items": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWorld), "expected ErrInvalidWorld, got %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *World)
		wantErr bool
	}{
		{name: "valid", mutate: func(w *World) {}},
		{
			name:    "empty brief description",
			mutate:  func(w *World) { w.Locations[1].BriefDescription = "  " },
			wantErr: true,
		},
		{
			name:    "empty command",
			mutate:  func(w *World) { w.Locations[1].AvailableCommands[""] = 2 },
			wantErr: true,
		},
		{
			name:    "duplicate item in location",
			mutate:  func(w *World) { w.Locations[2].Items = []string{"key", "key"} },
			wantErr: true,
		},
		{
			name:    "item listed at two locations",
			mutate:  func(w *World) { w.Locations[1].Items = []string{"key"} },
			wantErr: true,
		},
		{
			name:    "negative points",
			mutate:  func(w *World) { w.Items[0].TargetPoints = -1 },
			wantErr: true,
		},
		{
			name:    "target outside world",
			mutate:  func(w *World) { w.Items[0].TargetPosition = 42 },
			wantErr: true,
		},
		{
			name: "duplicate item name",
			mutate: func(w *World) {
				w.Items = append(w.Items, &Item{Name: "key", Description: "Another.", StartPosition: 1, TargetPosition: 1})
			},
			wantErr: true,
		},
		{
			name:    "unknown required item",
			mutate:  func(w *World) { w.RequiredItems = []string{"crown"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Parse([]byte(smallWorld), FormatJSON)
			require.NoError(t, err)
			tt.mutate(w)

			err = w.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWorld)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLookups_NotFound(t *testing.T) {
	w, err := Parse([]byte(smallWorld), FormatJSON)
	require.NoError(t, err)

	_, err = w.LocationByID(99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = w.ItemByName("sword")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocation_ItemHelpers(t *testing.T) {
	loc := &Location{ID: 3, Items: []string{"apple"}}

	loc.AddItem("pear")
	loc.AddItem("apple")
	assert.Equal(t, []string{"apple", "pear"}, loc.Items)

	assert.True(t, loc.RemoveItem("apple"))
	assert.False(t, loc.RemoveItem("apple"))
	assert.Equal(t, []string{"pear"}, loc.Items)
	assert.False(t, loc.HasItem("apple"))
}

func TestLocation_Description(t *testing.T) {
	loc := &Location{BriefDescription: "short", LongDescription: "long"}
	assert.Equal(t, "long", loc.Description())
	loc.Visited = true
	assert.Equal(t, "short", loc.Description())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(smallWorld), 0o644))
	w, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, w.LocationIDs())

	_, err = Load(filepath.Join(dir, "world.txt"))
	assert.ErrorIs(t, err, ErrInvalidWorld)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoad_ShippedGameData(t *testing.T) {
	w, err := Load(filepath.Join("..", "..", "data", "game_data.json"))
	require.NoError(t, err)

	assert.Len(t, w.Locations, 8)
	assert.ElementsMatch(t, []string{"usb drive", "laptop charger", "lucky mug"}, w.Required(1))
	assert.Equal(t, 0, w.DepositedPoints())
}
