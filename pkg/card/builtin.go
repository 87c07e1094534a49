package card

import (
	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/state"
)

// init registers the built-in behavior tags that cover every seed-scenario
// card (spec.md §8). A new card only needs a new tag here when its rules
// text doesn't reduce to one of these shapes.
func init() {
	Register("basic_land", basicLandHooks())
	Register("vanilla_creature", vanillaCreatureHooks())
	Register("level_up_creature", levelUpCreatureHooks())
	Register("combat_damage_counter_creature", combatDamageCounterCreatureHooks())
	Register("boast_sac_creature", boastSacCreatureHooks())
	Register("man_land", manLandHooks())
	Register("no_untap_creature", noUntapCreatureHooks())
}

// basicLandHooks covers Plains/Island/Forest/Mountain: play it from hand,
// tap it for its produced color.
func basicLandHooks() Hooks {
	return Hooks{
		PlayActions: func(s state.State, playerIdx, handIndex int, static Static) []action.Action {
			if s.Players[playerIdx].LandPlayedThisTurn {
				return nil
			}
			return []action.Action{{Kind: action.PlayLand, HandIndex: handIndex, SacrificeIndex: -1}}
		},
		BattlefieldActions: func(s state.State, playerIdx, permIndex int, static Static) []action.Action {
			perm := s.Players[playerIdx].Battlefield[permIndex]
			if perm.Tapped || len(static.ManaProduced) == 0 {
				return nil
			}
			return []action.Action{{
				Kind: action.Activate, PermanentIndex: permIndex,
				AbilityTag: "tap_for_mana", SacrificeIndex: -1,
			}}
		},
		Activate: func(s state.State, playerIdx, permIndex int, static Static, act action.Action) (state.State, error) {
			out := s.Clone()
			perm := &out.Players[playerIdx].Battlefield[permIndex]
			perm.Tapped = true
			color := string(static.ManaProduced[0])
			out.Players[playerIdx].Mana = out.Players[playerIdx].Mana.Add(color, 1)
			return out, nil
		},
	}
}

// vanillaCreatureHooks covers any creature with no activated or triggered
// ability: the only action it contributes is casting it from hand.
func vanillaCreatureHooks() Hooks {
	return Hooks{
		PlayActions: castCreaturePlayActions,
	}
}

// castCreaturePlayActions offers one representative CastCreature action
// (the canonical mana payment, spec.md §4.2) when the caster can afford
// static's cost; shared by every creature-shaped behavior.
func castCreaturePlayActions(s state.State, playerIdx, handIndex int, static Static) []action.Action {
	payment, ok := CanonicalPayment(static.Cost, s.Players[playerIdx].Mana)
	if !ok {
		return nil
	}
	return []action.Action{{Kind: action.CastCreature, HandIndex: handIndex, Payment: payment, SacrificeIndex: -1}}
}

// levelUpCounterCost is the mana cost of a single level-up activation,
// matching Student of Warfare's "{W}: Put a level counter on this" text.
var levelUpCounterCost = ManaCost{W: 1}

// levelUpCreatureHooks covers Student of Warfare: an activated ability
// that adds a "level" counter, with power/toughness and keywords gated on
// the counter's level thresholds.
func levelUpCreatureHooks() Hooks {
	return Hooks{
		PlayActions: castCreaturePlayActions,
		BattlefieldActions: func(s state.State, playerIdx, permIndex int, static Static) []action.Action {
			payment, ok := CanonicalPayment(levelUpCounterCost, s.Players[playerIdx].Mana)
			if !ok {
				return nil
			}
			return []action.Action{{
				Kind: action.Activate, PermanentIndex: permIndex,
				AbilityTag: "level_up", Payment: payment, SacrificeIndex: -1,
			}}
		},
		Activate: func(s state.State, playerIdx, permIndex int, static Static, act action.Action) (state.State, error) {
			if err := ValidatePayment(levelUpCounterCost, act.Payment, s.Players[playerIdx].Mana); err != nil {
				return state.State{}, err
			}
			out := s.Clone()
			out.Players[playerIdx].Mana = Spend(out.Players[playerIdx].Mana, act.Payment)
			perm := &out.Players[playerIdx].Battlefield[permIndex]
			if perm.Counters == nil {
				perm.Counters = map[string]int{}
			}
			perm.Counters["level"]++
			return out, nil
		},
		EffectiveStats: func(static Static, perm state.Permanent) (int, int, map[Keyword]bool) {
			level := perm.Counters["level"]
			switch {
			case level >= 6:
				kw := map[Keyword]bool{FirstStrike: true, DoubleStrike: true}
				return 4 + perm.BonusPower, 4 + perm.BonusToughness, kw
			case level >= 2:
				kw := map[Keyword]bool{FirstStrike: true}
				return 2 + perm.BonusPower, 2 + perm.BonusToughness, kw
			default:
				return static.Power + perm.BonusPower, static.Toughness + perm.BonusToughness, static.Keywords
			}
		},
	}
}

// combatDamageCounterCreatureHooks covers Stromkirk Noble: whenever it
// deals combat damage to a player, put a +1/+1 counter on it. The rules
// engine only fires EventDealsDamage for an attacker whose damage went
// through to the defending player (spec.md §4.4 combat resolution),
// never for damage dealt to a blocker, so the hook doesn't need to
// re-check that itself.
func combatDamageCounterCreatureHooks() Hooks {
	return Hooks{
		PlayActions: castCreaturePlayActions,
		OnEvent: func(s state.State, playerIdx, permIndex int, static Static, evt Event) []Trigger {
			if evt != EventDealsDamage {
				return nil
			}
			return []Trigger{{
				PermanentIndex: permIndex,
				Apply: func(s state.State) (state.State, error) {
					out := s.Clone()
					perm := &out.Players[playerIdx].Battlefield[permIndex]
					if perm.Counters == nil {
						perm.Counters = map[string]int{}
					}
					perm.Counters["+1/+1"]++
					return out, nil
				},
			}}
		},
		EffectiveStats: func(static Static, perm state.Permanent) (int, int, map[Keyword]bool) {
			bonus := perm.Counters["+1/+1"]
			return static.Power + bonus + perm.BonusPower, static.Toughness + bonus + perm.BonusToughness, static.Keywords
		},
	}
}

// boastCost is the activation cost of a boast ability, matching Heartfire
// Hero's "{1}{R}, Sacrifice another creature: deal 2 damage to any target"
// text, simplified to target the opposing player directly since 3CB's
// three-card hands rarely give a boast ability another creature to aim at
// (documented design decision, see design notes). The sacrifice is
// likewise widened: any other permanent the controller has, lands
// included, can be sacrificed.
var boastCost = ManaCost{Generic: 1, R: 1}

// boastSacCreatureHooks covers Heartfire Hero: an ability activatable only
// after this creature has attacked this turn, once per turn, that
// sacrifices another permanent and deals 2 damage to the opponent.
func boastSacCreatureHooks() Hooks {
	return Hooks{
		PlayActions: castCreaturePlayActions,
		BattlefieldActions: func(s state.State, playerIdx, permIndex int, static Static) []action.Action {
			perm := s.Players[playerIdx].Battlefield[permIndex]
			if !perm.HasAttacked || perm.ActivatedThisTurn["boast"] > 0 {
				return nil
			}
			payment, ok := CanonicalPayment(boastCost, s.Players[playerIdx].Mana)
			if !ok {
				return nil
			}
			var out []action.Action
			for i, other := range s.Players[playerIdx].Battlefield {
				if i == permIndex {
					continue
				}
				out = append(out, action.Action{
					Kind: action.Activate, PermanentIndex: permIndex,
					AbilityTag: "boast", Payment: payment, SacrificeIndex: i,
				})
			}
			return out
		},
		Activate: func(s state.State, playerIdx, permIndex int, static Static, act action.Action) (state.State, error) {
			if err := ValidatePayment(boastCost, act.Payment, s.Players[playerIdx].Mana); err != nil {
				return state.State{}, err
			}
			out := s.Clone()
			out.Players[playerIdx].Mana = Spend(out.Players[playerIdx].Mana, act.Payment)

			perm := &out.Players[playerIdx].Battlefield[permIndex]
			if perm.ActivatedThisTurn == nil {
				perm.ActivatedThisTurn = map[string]int{}
			}
			perm.ActivatedThisTurn["boast"]++

			bf := out.Players[playerIdx].Battlefield
			out.Players[playerIdx].Battlefield = append(bf[:act.SacrificeIndex], bf[act.SacrificeIndex+1:]...)
			out.Players[playerIdx].GraveyardCount++

			opp := state.Opponent(playerIdx)
			out.Players[opp].Life -= 2
			return out, nil
		},
	}
}

// manLandAnimateCost is Mutavault's animation cost, "{1}: Becomes a 2/2
// Elemental creature with all creature types until end of turn, still a
// land".
var manLandAnimateCost = ManaCost{Generic: 1}

// manLandHooks covers Mutavault: a land that can pay mana to become a
// creature until end of turn.
func manLandHooks() Hooks {
	return Hooks{
		PlayActions: func(s state.State, playerIdx, handIndex int, static Static) []action.Action {
			if s.Players[playerIdx].LandPlayedThisTurn {
				return nil
			}
			return []action.Action{{Kind: action.PlayLand, HandIndex: handIndex, SacrificeIndex: -1}}
		},
		BattlefieldActions: func(s state.State, playerIdx, permIndex int, static Static) []action.Action {
			perm := s.Players[playerIdx].Battlefield[permIndex]
			var acts []action.Action
			if !perm.Tapped && len(static.ManaProduced) > 0 {
				acts = append(acts, action.Action{
					Kind: action.Activate, PermanentIndex: permIndex,
					AbilityTag: "tap_for_mana", SacrificeIndex: -1,
				})
			}
			if !perm.Animated {
				if payment, ok := CanonicalPayment(manLandAnimateCost, s.Players[playerIdx].Mana); ok {
					acts = append(acts, action.Action{
						Kind: action.Activate, PermanentIndex: permIndex,
						AbilityTag: "animate", Payment: payment, SacrificeIndex: -1,
					})
				}
			}
			return acts
		},
		Activate: func(s state.State, playerIdx, permIndex int, static Static, act action.Action) (state.State, error) {
			out := s.Clone()
			perm := &out.Players[playerIdx].Battlefield[permIndex]
			switch act.AbilityTag {
			case "tap_for_mana":
				perm.Tapped = true
				color := string(static.ManaProduced[0])
				out.Players[playerIdx].Mana = out.Players[playerIdx].Mana.Add(color, 1)
				return out, nil
			case "animate":
				if err := ValidatePayment(manLandAnimateCost, act.Payment, s.Players[playerIdx].Mana); err != nil {
					return state.State{}, err
				}
				out.Players[playerIdx].Mana = Spend(out.Players[playerIdx].Mana, act.Payment)
				perm.Animated = true
				perm.TempPower = 2
				perm.TempToughness = 2
				return out, nil
			default:
				return state.State{}, ErrUnknownAbility
			}
		},
		EffectiveStats: func(static Static, perm state.Permanent) (int, int, map[Keyword]bool) {
			if perm.Animated {
				return perm.TempPower + perm.BonusPower, perm.TempToughness + perm.BonusToughness, static.Keywords
			}
			return static.Power + perm.BonusPower, static.Toughness + perm.BonusToughness, static.Keywords
		},
	}
}

// noUntapCreatureHooks covers Sleep-Cursed Faerie: an otherwise vanilla
// flier that never untaps during its controller's untap step.
func noUntapCreatureHooks() Hooks {
	return Hooks{
		PlayActions: castCreaturePlayActions,
		SkipsUntap: func(static Static, perm state.Permanent) bool {
			return true
		},
	}
}
