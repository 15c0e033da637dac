package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every malformed setting.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Environment   string
	LogLevel      slog.Level
	LogFile       string // empty means the front-end picks the destination
	GameData      string
	StartLocation int
	MaxMoves      int // 0 or less disables the move limit
	UndoChances   int // negative means unlimited
	PuzzleTries   int
	Seed          uint64 // 0 seeds from the clock
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "warn")),
		LogFile:     getEnv("LOG_FILE", ""),
		GameData:    getEnv("GAME_DATA", "data/game_data.json"),
	}

	var err error
	if cfg.StartLocation, err = getEnvInt("START_LOCATION", 1); err != nil {
		return nil, err
	}
	if cfg.MaxMoves, err = getEnvInt("MAX_MOVES", 20); err != nil {
		return nil, err
	}
	if cfg.UndoChances, err = getEnvInt("UNDO_CHANCES", 3); err != nil {
		return nil, err
	}
	if cfg.PuzzleTries, err = getEnvInt("PUZZLE_TRIES", 10); err != nil {
		return nil, err
	}
	seed := getEnv("SEED", "0")
	if cfg.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: SEED=%q: %v", ErrInvalid, seed, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no game can run with.
func (c *Config) Validate() error {
	if c.GameData == "" {
		return fmt.Errorf("%w: game data path is empty", ErrInvalid)
	}
	if c.StartLocation < 0 {
		return fmt.Errorf("%w: start location %d is negative", ErrInvalid, c.StartLocation)
	}
	if c.PuzzleTries <= 0 {
		return fmt.Errorf("%w: puzzle tries must be positive, got %d", ErrInvalid, c.PuzzleTries)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, value)
	}
	return n, nil
}
