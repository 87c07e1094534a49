package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/search"
	"github.com/3cbsolver/solver/pkg/solver"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	stepStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("252"))
	winStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	lossStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	drawStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
)

func newShowCmd() *cobra.Command {
	var firstMover int

	cmd := &cobra.Command{
		Use:   "show <deck-a> <deck-b>",
		Short: "Solve a match and render its principal variation",
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

			res, err := solver.Solve(cat, handA, handB, firstMover, solver.Options{})
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("%s vs %s", args[0], args[1])))
			outcome := res.Value.Outcome
			if firstMover == 1 {
				outcome = -outcome
			}
			fmt.Println(renderOutcome(outcome))
			fmt.Println(renderPV(res.PrincipalVariation))
			return nil
		},
	}
	cmd.Flags().IntVar(&firstMover, "first-mover", 0, "which deck (0 or 1) holds the play")
	return cmd
}

func renderOutcome(outcome int) string {
	switch {
	case outcome > 0:
		return winStyle.Render("first mover wins with perfect play")
	case outcome < 0:
		return lossStyle.Render("second mover wins with perfect play")
	default:
		return drawStyle.Render("the match is a draw with perfect play")
	}
}

func renderPV(pv []search.PVStep) string {
	lines := make([]string, 0, len(pv))
	for i, step := range pv {
		lines = append(lines, stepStyle.Render(fmt.Sprintf("%2d. %s", i+1, describeAction(step))))
	}
	return strings.Join(lines, "\n")
}

func describeAction(step search.PVStep) string {
	a := step.Action
	switch a.Kind {
	case action.DeclareAttackers:
		return fmt.Sprintf("%s %v", a.Kind, a.Attackers)
	case action.DeclareBlockers:
		return fmt.Sprintf("%s %v", a.Kind, a.Blocks)
	case action.AssignCombatDamage:
		return fmt.Sprintf("%s attacker=%d order=%v", a.Kind, a.PermanentIndex, a.DamageOrder)
	case action.Activate:
		return fmt.Sprintf("%s permanent=%d ability=%s", a.Kind, a.PermanentIndex, a.AbilityTag)
	default:
		return a.Kind.String()
	}
}
