package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorld(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateFile_ShippedData(t *testing.T) {
	v := &WorldValidator{start: 1}
	assert.NoError(t, v.validateFile(filepath.Join("..", "..", "data", "game_data.json")))
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     string
		wantErr  string
	}{
		{
			name:     "bad extension",
			filename: "world.txt",
			body:     `{}`,
			wantErr:  "extension",
		},
		{
			name:     "bad filename",
			filename: "My-World.json",
			body:     `{}`,
			wantErr:  "snake_case",
		},
		{
			name:     "unreachable location",
			filename: "island.json",
			body: `{"locations": [
				{"id": 1, "brief_description": "a", "long_description": "b", "available_commands": {}},
				{"id": 2, "brief_description": "c", "long_description": "d", "available_commands": {"go back": 1}}],
				"items": [{"name": "shell", "description": "s", "start_position": 2, "target_position": 1, "target_points": 1}]}`,
			wantErr: "location 2 is not reachable",
		},
		{
			name:     "puzzle word with digits",
			filename: "digits.yaml",
			body: `
locations:
  - id: 1
    brief_description: a
    long_description: b
    available_commands: {}
    items: [coin]
    puzzle_words: [r2d2]
items:
  - name: coin
    description: c
    start_position: 1
    target_position: 1
    target_points: 1
`,
			wantErr: "puzzle word 'r2d2'",
		},
		{
			name:     "no way to win",
			filename: "pointless.json",
			body: `{"locations": [
				{"id": 1, "brief_description": "a", "long_description": "b", "available_commands": {}}],
				"items": []}`,
			wantErr: "cannot be won",
		},
		{
			name:     "data model violation is reported",
			filename: "dangling.json",
			body: `{"locations": [
				{"id": 1, "brief_description": "a", "long_description": "b", "available_commands": {"go up": 7}}],
				"items": []}`,
			wantErr: "unknown location 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &WorldValidator{start: 1}
			err := v.validateFile(writeWorld(t, tt.filename, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsValidWorldFilename(t *testing.T) {
	assert.True(t, isValidWorldFilename("game_data"))
	assert.True(t, isValidWorldFilename("x.draft_world"))
	assert.False(t, isValidWorldFilename("GameData"))
	assert.False(t, isValidWorldFilename("game-data"))
}
