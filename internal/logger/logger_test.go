package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/text-adventure/internal/config"
)

func TestSetup_Production(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithSession(log, "abc").Info("moved", "location_id", 4)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "moved", rec["msg"])
	assert.Equal(t, "abc", rec["session_id"])
	assert.EqualValues(t, 4, rec["location_id"])
}

func TestSetup_DevelopmentRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	WithError(log, errors.New("boom")).Warn("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "error=boom")
}
