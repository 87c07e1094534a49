package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/3cbsolver/solver/pkg/deckreg"
	"github.com/3cbsolver/solver/pkg/solver"
)

func newMetagameCmd() *cobra.Command {
	var turnCap int
	var fromCatalog bool

	cmd := &cobra.Command{
		Use:   "metagame",
		Short: "Compute the full payoff matrix across every deck in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			var decks map[string][]string
			if fromCatalog {
				decks = deckreg.NamedAllHands(cat.IDs())
			} else {
				reg, err := loadRegistry()
				if err != nil {
					return err
				}
				decks = reg.All()
			}

			matrix, err := solver.PayoffMatrix(cat, decks, solver.Options{TurnCap: turnCap})
			if err != nil {
				return err
			}

			names := make([]string, 0, len(decks))
			for name := range decks {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Printf("%-16s", "")
			for _, b := range names {
				fmt.Printf("%-16s", b)
			}
			fmt.Println()
			for _, a := range names {
				fmt.Printf("%-16s", a)
				for _, b := range names {
					cell := matrix[solver.DeckPair{DeckA: a, DeckB: b}]
					fmt.Printf("%-16d", cell.Value.Outcome)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&turnCap, "turn-cap", 0, "turn count after which a match is scored a draw, 0 for solver default")
	cmd.Flags().BoolVar(&fromCatalog, "from-catalog", false, "solve every 3-card combination drawable from the catalog instead of the deck registry")
	return cmd
}
