package rules

import (
	"github.com/3cbsolver/solver/pkg/card"
	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/combat"
	"github.com/3cbsolver/solver/pkg/phase"
	"github.com/3cbsolver/solver/pkg/state"
)

// AdvancePhase drives s through every automatic phase (spec.md §4.3)
// until either a decision phase is reached or the state becomes
// terminal-relevant for the caller to check (life totals are updated
// in-band; pkg/terminal is responsible for recognizing them). 3CB has no
// instant-speed interaction, so each decision phase is held by exactly
// one player (spec.md §4.3, Non-goals) and AdvancePhase always runs to
// completion in one call rather than needing the caller to alternate
// priority within a phase.
func AdvancePhase(s state.State, cat *catalog.Catalog) (state.State, error) {
	out := s.Clone()
	var pendingDamage []combat.PlayerDamage

	for !phase.IsDecision(out.Phase) {
		switch out.Phase {
		case phase.Untap:
			out = clearMana(out)
			out = untapActivePlayer(out, cat)

		case phase.Upkeep:
			var err error
			out, err = fireEventForAllPermanents(out, cat, card.EventUpkeep)
			if err != nil {
				return state.State{}, err
			}

		case phase.Draw:
			// Libraries are empty after the initial reveal (spec.md §4.3);
			// draw never offers a real decision or changes state.

		case phase.BeginningOfCombat:
			// No automatic work; exists as a phase boundary for
			// beginning-of-combat triggers a future card might add.

		case phase.CombatDamageFirstStrike:
			out = clearMana(out)
			var err error
			var dealt []combat.PlayerDamage
			out, dealt, err = combat.ResolveStep(out, cat, true)
			if err != nil {
				return state.State{}, err
			}
			pendingDamage = append(pendingDamage, dealt...)

		case phase.CombatDamageRegular:
			var err error
			var dealt []combat.PlayerDamage
			out, dealt, err = combat.ResolveStep(out, cat, false)
			if err != nil {
				return state.State{}, err
			}
			pendingDamage = append(pendingDamage, dealt...)

			out, err = combat.RemoveDead(out, cat)
			if err != nil {
				return state.State{}, err
			}
			out, err = fireDamageTriggers(out, cat, pendingDamage)
			if err != nil {
				return state.State{}, err
			}
			pendingDamage = nil

		case phase.EndOfCombat:
			out.Combat = state.CombatScratch{}
			for pi := range out.Players {
				for i := range out.Players[pi].Battlefield {
					out.Players[pi].Battlefield[i].Attacking = false
					out.Players[pi].Battlefield[i].Blocking = -1
					out.Players[pi].Battlefield[i].BlockedBy = nil
				}
			}

		case phase.End:
			out = clearMana(out)
			var err error
			out, err = fireEventForAllPermanents(out, cat, card.EventEndOfTurn)
			if err != nil {
				return state.State{}, err
			}
			out = clearEndOfTurnEffects(out)
		}

		next, turnEnded := phase.Next(out.Phase)
		out.Phase = next
		if turnEnded {
			out.Turn++
			out.ActivePlayer = state.Opponent(out.ActivePlayer)
			out.Priority = out.ActivePlayer
		} else {
			out.Priority = PriorityPlayer(out)
		}
	}

	return out, nil
}

// advanceOneStep moves s to the phase immediately following its current
// one, applying the same turn/priority bookkeeping as AdvancePhase's
// automatic-phase loop, and empties both mana pools. It's what a decision
// phase uses to record that its decision is finished --
// Main1/Main2/AssignDamageOrder's Pass, and
// DeclareAttackers/DeclareBlockers's single action -- handing the result
// to AdvancePhase to run forward through whatever automatic phases
// follow.
func advanceOneStep(s state.State) state.State {
	out := clearMana(s)
	next, turnEnded := phase.Next(out.Phase)
	out.Phase = next
	if turnEnded {
		out.Turn++
		out.ActivePlayer = state.Opponent(out.ActivePlayer)
		out.Priority = out.ActivePlayer
	} else {
		out.Priority = PriorityPlayer(out)
	}
	return out
}

func clearMana(s state.State) state.State {
	s.Players[0].Mana = state.ManaPool{}
	s.Players[1].Mana = state.ManaPool{}
	return s
}

func untapActivePlayer(s state.State, cat *catalog.Catalog) state.State {
	pi := s.ActivePlayer
	s.Players[pi].LandPlayedThisTurn = false
	for i := range s.Players[pi].Battlefield {
		perm := &s.Players[pi].Battlefield[i]
		skipUntap := false
		static, err := cat.Get(perm.CardID)
		if err == nil {
			if h, ok := card.Lookup(static.Behavior); ok && h.SkipsUntap != nil && h.SkipsUntap(static, *perm) {
				skipUntap = true
			}
		}
		if !skipUntap {
			perm.Tapped = false
		}
		perm.Damage = 0
		perm.HasAttacked = false
		perm.HasBlocked = false
		perm.ActivatedThisTurn = nil
		if perm.EnteredTurn < s.Turn {
			perm.SummoningSick = false
		}
	}
	return s
}

func clearEndOfTurnEffects(s state.State) state.State {
	for pi := range s.Players {
		for i := range s.Players[pi].Battlefield {
			perm := &s.Players[pi].Battlefield[i]
			perm.BonusPower = 0
			perm.BonusToughness = 0
			if perm.Animated {
				perm.Animated = false
				perm.TempPower = 0
				perm.TempToughness = 0
			}
		}
	}
	return s
}

// fireEventForAllPermanents collects and applies every permanent's
// triggers for evt, in canonical order: active player first, then
// permanent index ascending (spec.md §4.1, OnEvent doc).
func fireEventForAllPermanents(s state.State, cat *catalog.Catalog, evt card.Event) (state.State, error) {
	out := s
	order := []int{s.ActivePlayer, state.Opponent(s.ActivePlayer)}
	for _, pi := range order {
		for permIdx, perm := range out.Players[pi].Battlefield {
			static, err := cat.Get(perm.CardID)
			if err != nil {
				return state.State{}, err
			}
			h, ok := card.Lookup(static.Behavior)
			if !ok || h.OnEvent == nil {
				continue
			}
			for _, trig := range h.OnEvent(out, pi, permIdx, static, evt) {
				out, err = trig.Apply(out)
				if err != nil {
					return state.State{}, err
				}
			}
		}
	}
	return out, nil
}

func fireDamageTriggers(s state.State, cat *catalog.Catalog, dealt []combat.PlayerDamage) (state.State, error) {
	out := s
	for _, d := range dealt {
		if d.PermIndex >= len(out.Players[d.PlayerIdx].Battlefield) {
			continue // the permanent died before its trigger could fire
		}
		perm := out.Players[d.PlayerIdx].Battlefield[d.PermIndex]
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return state.State{}, err
		}
		h, ok := card.Lookup(static.Behavior)
		if !ok || h.OnEvent == nil {
			continue
		}
		for _, trig := range h.OnEvent(out, d.PlayerIdx, d.PermIndex, static, card.EventDealsDamage) {
			out, err = trig.Apply(out)
			if err != nil {
				return state.State{}, err
			}
		}
	}
	return out, nil
}
