package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jwebster45206/text-adventure/internal/config"
	"github.com/jwebster45206/text-adventure/internal/logger"
	"github.com/jwebster45206/text-adventure/pkg/game"
	"github.com/jwebster45206/text-adventure/pkg/puzzle"
	"github.com/jwebster45206/text-adventure/pkg/session"
	"github.com/jwebster45206/text-adventure/pkg/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.GameData, "data", cfg.GameData, "world file, or a directory of world files")
	flag.IntVar(&cfg.StartLocation, "start", cfg.StartLocation, "start location id")
	flag.IntVar(&cfg.MaxMoves, "max-moves", cfg.MaxMoves, "moves allowed before the game is over (0 for no limit)")
	flag.IntVar(&cfg.UndoChances, "undo", cfg.UndoChances, "undo chances per session (negative for unlimited)")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "puzzle word seed (0 picks one from the clock)")
	plain := flag.Bool("plain", false, "line mode without the full-screen console")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	console := interactive && !*plain

	logOut, closeLog, err := logDestination(cfg, console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log := logger.Setup(cfg, logOut)

	worlds, err := listWorlds(cfg.GameData)
	if err != nil || len(worlds) == 0 {
		logger.WithError(log, fmt.Errorf("no world files: %w", err)).Error("startup failed", "path", cfg.GameData)
		fmt.Fprintf(os.Stderr, "Failed to list worlds in %s: %v\n", cfg.GameData, err)
		os.Exit(1)
	}

	if console {
		p := tea.NewProgram(NewConsoleUI(cfg, log, worlds),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
			os.Exit(1)
		}
		return
	}

	in := bufio.NewScanner(os.Stdin)
	path := worlds[0]
	if len(worlds) > 1 {
		if path, err = chooseWorld(in, os.Stdout, worlds); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	sess, err := newSession(path, cfg, log)
	if err != nil {
		logger.WithError(log, err).Error("failed to start session", "path", path)
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	if err := runPlain(sess, in, os.Stdout, plainOptions{color: interactive, width: width}); err != nil {
		fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
		os.Exit(1)
	}
}

// newSession loads a fresh world and starts a session on it.
func newSession(path string, cfg *config.Config, log *slog.Logger) (*session.Session, error) {
	w, err := world.Load(path)
	if err != nil {
		return nil, err
	}
	g, err := game.New(w, cfg.StartLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	return session.New(g, session.Options{
		StartLocation:  cfg.StartLocation,
		MaxMoves:       cfg.MaxMoves,
		UndoChances:    cfg.UndoChances,
		PuzzlesEnabled: true,
		MaxMisses:      cfg.PuzzleTries,
		Picker:         puzzle.NewRandomPicker(cfg.Seed),
	}, log), nil
}

// logDestination keeps log records off the full-screen console unless a log file is configured.
func logDestination(cfg *config.Config, console bool) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	if console {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

// listWorlds returns path itself for a file, or every world file in a directory sorted by name.
func listWorlds(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var worlds []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := world.FormatFromPath(e.Name()); err == nil {
			worlds = append(worlds, filepath.Join(path, e.Name()))
		}
	}
	slices.Sort(worlds)
	return worlds, nil
}

func worldName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func chooseWorld(in *bufio.Scanner, out io.Writer, worlds []string) (string, error) {
	fmt.Fprintln(out, "Available Worlds:")
	for i, path := range worlds {
		fmt.Fprintf(out, "  %d - %s (%s)\n", i+1, worldName(path), path)
	}
	fmt.Fprint(out, "\nSelect a world by number: ")

	if !in.Scan() {
		return "", errors.New("no world selected")
	}
	choice, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil || choice < 1 || choice > len(worlds) {
		return "", errors.New("invalid selection")
	}
	return worlds[choice-1], nil
}
