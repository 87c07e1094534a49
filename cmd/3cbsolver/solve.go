package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3cbsolver/solver/pkg/solver"
)

func newSolveCmd() *cobra.Command {
	var firstMover int
	var nodeBudget int
	var turnCap int

	cmd := &cobra.Command{
		Use:   "solve <deck-a> <deck-b>",
		Short: "Solve the game-theoretic value of a deck-a vs deck-b match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			handA, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			handB, err := reg.Get(args[1])
			if err != nil {
				return err
			}

			res, err := solver.Solve(cat, handA, handB, firstMover, solver.Options{
				NodeBudget: nodeBudget,
				TurnCap:    turnCap,
			})
			if err != nil {
				return err
			}

			outcome := res.Value.Outcome
			if firstMover == 1 {
				outcome = -outcome
			}
			fmt.Printf("value: %+d (from deck %q's perspective as first mover)\n", outcome, args[firstMover])
			fmt.Printf("nodes explored: %d\n", res.NodesExplored)
			if res.Partial {
				fmt.Println("result is PARTIAL: node budget exhausted before the search completed")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&firstMover, "first-mover", 0, "which deck (0 or 1) holds the play")
	cmd.Flags().IntVar(&nodeBudget, "node-budget", 0, "cap on minimax nodes explored, 0 for unlimited")
	cmd.Flags().IntVar(&turnCap, "turn-cap", 0, "turn count after which the match is scored a draw, 0 for solver default")
	return cmd
}
