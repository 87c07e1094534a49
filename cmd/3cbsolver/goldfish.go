package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3cbsolver/solver/pkg/solver"
)

func newGoldfishCmd() *cobra.Command {
	var turns int

	cmd := &cobra.Command{
		Use:   "goldfish <deck>",
		Short: "Solve one-sided play against an empty opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			hand, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			res, err := solver.Goldfish(cat, hand, turns)
			if err != nil {
				return err
			}

			if !res.Killed {
				fmt.Printf("%s cannot force a kill within %d turns\n", args[0], turns)
				return nil
			}
			fmt.Printf("%s kills by turn %d\n", args[0], res.TurnOfKill)
			return nil
		},
	}
	cmd.Flags().IntVar(&turns, "turns", 10, "turn horizon to solve within")
	return cmd
}
