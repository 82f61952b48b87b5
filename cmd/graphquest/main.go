// GraphQuest runs node-graph adventure scripts against a typed execution
// engine. Usage: graphquest [--version] [--plain] [--script <file>]
// [--config <file>] [--trace] <game_directory>
package main

import (
	"fmt"
	"os"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/cli"
	"github.com/nholm/graphquest/config"
	"github.com/nholm/graphquest/engine"
	"github.com/nholm/graphquest/engine/state"
	"github.com/nholm/graphquest/loader"
	"github.com/nholm/graphquest/peripheral"
	"github.com/nholm/graphquest/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var gameDir string
	var scriptFile string
	var configFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("graphquest %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--config requires a file path\n")
				os.Exit(1)
			}
			i++
			configFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: graphquest [--version] [--plain] [--script <file>] [--config <file>] [--trace] <game_directory>\n")
		os.Exit(1)
	}

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cat := catalog.New()

	// Load and compile authored content.
	bundle, err := loader.Load(gameDir, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	store := state.NewStore()
	bundle.Apply(store)

	eng := engine.New(engine.Config{
		Features:      cfg.FeatureMap(),
		MaxEventDepth: cfg.Limits.MaxEventDepth,
		MaxRunSteps:   cfg.Limits.MaxRunSteps,
		Seed:          cfg.Seed,
		Trace:         trace,
	}, cat, store, peripheral.Basic(store))

	for _, g := range bundle.Graphs {
		if err := eng.LoadGraph(g); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
			os.Exit(1)
		}
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, bundle)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng, bundle)
		c.Trace = trace
		c.Run()
		return
	}

	c := cli.New(eng, bundle)
	c.Trace = trace
	if err := tui.Run(c); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
