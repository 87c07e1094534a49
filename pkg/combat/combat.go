// Package combat resolves declared attackers and blockers into damage,
// deaths, and life-total changes (spec.md §4.4, Combat Resolver), grounded
// on the teacher's CanBlock/DealDamage/cleanupDeadCreatures trio
// (src/combat.go) generalized from pointer-chasing Permanents to
// index-addressed state.Permanent values.
package combat

import (
	"github.com/3cbsolver/solver/pkg/card"
	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/state"
)

// CanBlock reports whether a creature with blockerKeywords is a legal
// blocker for an attacker with attackerKeywords, applying evasion and
// protection keywords in the same order as the teacher's CanBlock.
// Menace's "two or more blockers" requirement is checked separately by
// the rules engine at block-declaration time, since it's a property of
// the assignment rather than of a single attacker/blocker pair.
func CanBlock(attackerKeywords, blockerKeywords map[card.Keyword]bool) bool {
	if attackerKeywords[card.Flying] {
		return blockerKeywords[card.Flying] || blockerKeywords[card.Reach]
	}
	if attackerKeywords[card.Shadow] {
		return blockerKeywords[card.Shadow]
	}
	// Intimidate and Fear require color/artifact comparisons that 3CB's
	// catalog doesn't currently model (see DESIGN.md); neither keyword is
	// assigned to any seed-scenario card, so they never reach here.
	return true
}

// PlayerDamage is one attacker dealing combat damage through to the
// defending player, used by the rules engine to fire EventDealsDamage
// triggers (e.g. Stromkirk Noble's counter) after damage resolves.
type PlayerDamage struct {
	PlayerIdx int
	PermIndex int
}

// ResolveStep applies one combat-damage step (first strike or regular) to
// s, mirroring the teacher's two-pass DealDamage: first-strike/double-
// strike creatures deal damage in the first step, everything else (plus
// double-strike's second hit) in the regular step. stepIsFirstStrike
// selects which creatures participate. Dead creatures are not removed
// from the battlefield here -- a creature lethally damaged in the first
// strike step is simply excluded from participating in the regular step
// -- so that permanent indices stay stable across both steps; the caller
// applies RemoveDead once after the regular step to actually clear them.
func ResolveStep(s state.State, cat *catalog.Catalog, stepIsFirstStrike bool) (state.State, []PlayerDamage, error) {
	out := s.Clone()
	var dealt []PlayerDamage

	participates := func(keywords map[card.Keyword]bool) bool {
		hasFS := keywords[card.FirstStrike] || keywords[card.DoubleStrike]
		if stepIsFirstStrike {
			return hasFS
		}
		return !keywords[card.FirstStrike] || keywords[card.DoubleStrike]
	}

	for pi := range out.Players {
		opp := state.Opponent(pi)
		for permIdx := range out.Players[pi].Battlefield {
			perm := out.Players[pi].Battlefield[permIdx]
			if !perm.Attacking && perm.Blocking < 0 {
				continue
			}
			static, err := cat.Get(perm.CardID)
			if err != nil {
				return state.State{}, nil, err
			}
			power, toughness, keywords := card.Stats(static, perm)
			if !keywords[card.Indestructible] && s.Players[pi].Battlefield[permIdx].Damage >= toughness {
				continue // lethally damaged in an earlier step this combat
			}
			if !participates(keywords) || power <= 0 {
				continue
			}

			if perm.Attacking {
				blockers := perm.BlockedBy
				if len(blockers) == 0 {
					out.Players[opp].Life -= power
					if keywords[card.Lifelink] {
						out.Players[pi].Life += power
					}
					dealt = append(dealt, PlayerDamage{PlayerIdx: pi, PermIndex: permIdx})
					continue
				}
				remaining := power
				for _, bIdx := range blockers {
					if remaining <= 0 {
						break
					}
					blocker := out.Players[opp].Battlefield[bIdx]
					bStatic, err := cat.Get(blocker.CardID)
					if err != nil {
						return state.State{}, nil, err
					}
					_, bToughness, bKeywords := card.Stats(bStatic, blocker)
					lethal := bToughness - blocker.Damage
					if bKeywords[card.Indestructible] {
						lethal = remaining + 1
					}
					assign := remaining
					if assign > lethal {
						assign = lethal
					}
					if keywords[card.Deathtouch] && assign > 0 {
						assign = max(assign, 1)
					}
					out.Players[opp].Battlefield[bIdx].Damage += assign
					if keywords[card.Lifelink] {
						out.Players[pi].Life += assign
					}
					remaining -= assign
					if keywords[card.Deathtouch] {
						out.Players[opp].Battlefield[bIdx].Damage = bToughness
					}
				}
				if remaining > 0 && keywords[card.Trample] {
					out.Players[opp].Life -= remaining
				}
			}

			if perm.Blocking >= 0 {
				// The attacker's own half of this exchange (including any
				// trample-excess and deathtouch handling) is applied from
				// the attacker's own iteration above; a blocker's hit back
				// is always its full power against the attacker.
				out.Players[opp].Battlefield[perm.Blocking].Damage += power
				if keywords[card.Lifelink] {
					out.Players[pi].Life += power
				}
			}
		}
	}

	return out, dealt, nil
}

// isDying reports whether perm's damage has reached its (current)
// toughness and it isn't protected by Indestructible -- the state-based
// action the teacher applies after every damage step
// (cleanupDeadCreatures).
func isDying(static card.Static, perm state.Permanent) bool {
	if !static.IsCreature() && !perm.Animated {
		return false
	}
	_, toughness, keywords := card.Stats(static, perm)
	if keywords[card.Indestructible] {
		return false
	}
	return perm.Damage >= toughness
}

// dyingPermanent names one permanent found dead in RemoveDead's first
// pass, before anything is actually removed from a battlefield.
type dyingPermanent struct {
	playerIdx, permIndex int
}

// RemoveDead fires each dying permanent's EventDies trigger (spec.md
// §4.1, on_event "dies") and then clears it from the battlefield to the
// graveyard. Triggers fire in canonical order -- active player first,
// then permanent index ascending, the same order
// pkg/rules/advance.go's fireEventForAllPermanents uses -- before any
// permanent is actually removed, so a dies trigger still sees the rest
// of that combat's casualties on the battlefield.
func RemoveDead(s state.State, cat *catalog.Catalog) (state.State, error) {
	out := s.Clone()

	var deaths []dyingPermanent
	order := []int{out.ActivePlayer, state.Opponent(out.ActivePlayer)}
	for _, pi := range order {
		for permIdx, perm := range out.Players[pi].Battlefield {
			static, err := cat.Get(perm.CardID)
			if err != nil {
				return state.State{}, err
			}
			if isDying(static, perm) {
				deaths = append(deaths, dyingPermanent{playerIdx: pi, permIndex: permIdx})
			}
		}
	}

	for _, d := range deaths {
		if d.permIndex >= len(out.Players[d.playerIdx].Battlefield) {
			continue // an earlier dies trigger already removed this slot
		}
		perm := out.Players[d.playerIdx].Battlefield[d.permIndex]
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return state.State{}, err
		}
		h, ok := card.Lookup(static.Behavior)
		if !ok || h.OnEvent == nil {
			continue
		}
		for _, trig := range h.OnEvent(out, d.playerIdx, d.permIndex, static, card.EventDies) {
			out, err = trig.Apply(out)
			if err != nil {
				return state.State{}, err
			}
		}
	}

	for pi := range out.Players {
		var survivors []state.Permanent
		for _, perm := range out.Players[pi].Battlefield {
			static, err := cat.Get(perm.CardID)
			if err != nil {
				return state.State{}, err
			}
			if isDying(static, perm) {
				out.Players[pi].GraveyardCount++
				continue
			}
			survivors = append(survivors, perm)
		}
		out.Players[pi].Battlefield = survivors
	}
	return out, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
