// Command 3cbsolver is the CLI front end over the perfect-play solver:
// solve, show, goldfish, metagame, and list subcommands (spec.md §6, CLI
// surface). Exit codes: 0 success, 1 unknown deck or illegal input, 2
// internal invariant violation (spec.md §7).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/3cbsolver/solver/internal/logger"
	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/deckreg"
	"github.com/3cbsolver/solver/pkg/rules"
	"github.com/3cbsolver/solver/pkg/state"
)

const (
	exitSuccess       = 0
	exitIllegalInput  = 1
	exitInvariantFail = 2
)

var (
	catalogPath string
	deckPath    string
	logLevel    string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "3cbsolver",
		Short:         "Perfect-play solver for Three Card Blind",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "data/catalog.yaml", "path to the card catalog YAML")
	cmd.PersistentFlags().StringVar(&deckPath, "decks", "data/decks.yaml", "path to the deck registry YAML")
	cmd.PersistentFlags().StringVar(&logLevel, "log", "META", "log level (META, SEARCH, STATE, NODE)")
	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		logger.SetLevel(logger.ParseLevel(logLevel))
	}

	cmd.AddCommand(newSolveCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newGoldfishCmd())
	cmd.AddCommand(newMetagameCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

// exitCodeFor maps an error to spec.md §7's exit-code taxonomy.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, state.ErrInvariantViolation), errors.Is(err, rules.ErrIllegalAction):
		fmt.Fprintln(os.Stderr, err)
		return exitInvariantFail
	case errors.Is(err, catalog.ErrUnknownCard), errors.Is(err, deckreg.ErrUnknownDeck), errors.Is(err, deckreg.ErrMalformedDeck):
		fmt.Fprintln(os.Stderr, err)
		return exitIllegalInput
	default:
		fmt.Fprintln(os.Stderr, err)
		return exitIllegalInput
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(catalogPath)
}

func loadRegistry() (*deckreg.Registry, error) {
	return deckreg.Load(deckPath)
}
