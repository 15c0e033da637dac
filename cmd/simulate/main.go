package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gookit/color"

	"github.com/jwebster45206/text-adventure/internal/config"
	"github.com/jwebster45206/text-adventure/internal/logger"
	"github.com/jwebster45206/text-adventure/pkg/simulation"
	"github.com/jwebster45206/text-adventure/pkg/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	verbose := flag.Bool("v", false, "print the narrated history of every walkthrough")
	flag.IntVar(&cfg.StartLocation, "start", cfg.StartLocation, "start location id")
	flag.IntVar(&cfg.MaxMoves, "max-moves", cfg.MaxMoves, "moves allowed before the game is over (0 for no limit)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] [-start id] [-max-moves n] <world.json|world.yaml> <walkthroughs.yaml>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	log := logger.Setup(cfg, os.Stderr)
	failed, err := run(flag.Arg(0), flag.Arg(1), cfg, *verbose, os.Stdout, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// run replays every walkthrough on a freshly loaded world and reports how many failed.
func run(worldPath, walkthroughPath string, cfg *config.Config, verbose bool, out io.Writer, log *slog.Logger) (int, error) {
	wts, err := simulation.LoadWalkthroughs(walkthroughPath)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, wt := range wts {
		w, err := world.Load(worldPath)
		if err != nil {
			return 0, err
		}

		res, err := simulation.Run(w, cfg.StartLocation, cfg.MaxMoves, wt.Commands, log)
		if err == nil {
			err = wt.Check(res)
		}
		if err != nil {
			failed++
			logger.WithError(log, err).Warn("walkthrough failed", "walkthrough", wt.Name)
			fmt.Fprintf(out, "%s %s: %v\n", color.Red.Sprint("FAIL"), wt.Name, err)
			continue
		}

		fmt.Fprintf(out, "%s %s: log %v, moves %d, score %d\n", color.Green.Sprint("PASS"), wt.Name, res.Log, res.Moves, res.Score)
		if verbose {
			fmt.Fprintln(out, res.Narrate())
		}
	}

	fmt.Fprintf(out, "%d/%d walkthroughs passed\n", len(wts)-failed, len(wts))
	return failed, nil
}
