package state

import (
	"fmt"

	"github.com/3cbsolver/solver/pkg/phase"
)

// CheckInvariants validates the §3/§8 invariants that must hold for
// every state produced by Apply. It never attempts to repair state --
// on failure the caller aborts with the wrapped ErrInvariantViolation.
func CheckInvariants(s State) error {
	for i, p := range s.Players {
		if total := p.Total(); total != 3 {
			return fmt.Errorf("%w: player %d hand+battlefield+graveyard+library = %d, want 3", ErrInvariantViolation, i, total)
		}
		if p.LibraryCount < 0 || p.GraveyardCount < 0 {
			return fmt.Errorf("%w: player %d has a negative zone count", ErrInvariantViolation, i)
		}
		if !p.Mana.IsEmpty() && !IsDecisionOrCombat(s.Phase) {
			// Mana empties at phase boundaries except within a single
			// cast/activation; the rules package's phase advance clears
			// it on phase transitions, so floating mana carried into an
			// automatic phase is always a bug upstream.
			return fmt.Errorf("%w: player %d carries floating mana into phase %s", ErrInvariantViolation, i, s.Phase)
		}
		for j, perm := range p.Battlefield {
			if perm.Controller != 0 && perm.Controller != 1 {
				return fmt.Errorf("%w: permanent %d/%d has invalid controller %d", ErrInvariantViolation, i, j, perm.Controller)
			}
			if perm.SummoningSick && perm.EnteredTurn > s.Turn {
				return fmt.Errorf("%w: permanent %d/%d entered in the future", ErrInvariantViolation, i, j)
			}
		}
	}
	return nil
}

// IsDecisionOrCombat reports whether the phase may legitimately carry
// floating mana (it was produced to pay for something at this phase and
// hasn't been cleared yet). Only the strictly automatic phases -- untap,
// upkeep, draw, the combat-damage steps, and end -- must never see
// floating mana once rules.Apply finishes processing an action there.
func IsDecisionOrCombat(p phase.Phase) bool {
	switch p {
	case phase.Main1, phase.Main2, phase.BeginningOfCombat, phase.DeclareAttackers, phase.DeclareBlockers, phase.AssignDamageOrder, phase.EndOfCombat:
		return true
	default:
		return false
	}
}
