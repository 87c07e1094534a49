package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the decks available in the deck registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			names := reg.Names()
			sort.Strings(names)
			for _, name := range names {
				cards, err := reg.Get(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-20s %s\n", name, strings.Join(cards, ", "))
			}
			return nil
		},
	}
	return cmd
}
