// Package rules is the core game engine: it turns a state into the set
// of legal actions available to whichever player holds priority, and
// applies a chosen action to produce the successor state (spec.md §4.2,
// Game State & Rules Engine). It never asks "is this a good move" --
// that's pkg/search's job -- only "is this move legal, and what does the
// board look like afterward."
package rules

import (
	"fmt"

	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/card"
	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/combat"
	"github.com/3cbsolver/solver/pkg/phase"
	"github.com/3cbsolver/solver/pkg/state"
)

// PriorityPlayer returns which player currently acts: the active player
// at Main1/Main2/BeginningOfCombat/DeclareAttackers/EndOfCombat, the
// defending player at DeclareBlockers.
func PriorityPlayer(s state.State) int {
	if s.Phase == phase.DeclareBlockers {
		return state.Opponent(s.ActivePlayer)
	}
	return s.ActivePlayer
}

// LegalActions returns every action the priority player may take in s.
// Main phases always include Pass; AssignDamageOrder offers Pass only
// once every multiply-blocked attacker has a chosen order; declare-attacker
// and declare-blocker phases instead always offer the empty declaration as
// their "do nothing" option (spec.md §4.2/§4.3).
func LegalActions(s state.State, cat *catalog.Catalog) ([]action.Action, error) {
	switch s.Phase {
	case phase.DeclareAttackers:
		return legalAttackerDeclarations(s, cat)
	case phase.DeclareBlockers:
		return legalBlockerDeclarations(s, cat)
	case phase.AssignDamageOrder:
		return legalDamageOrderAssignments(s), nil
	case phase.Main1, phase.Main2:
		return legalMainPhaseActions(s, cat)
	default:
		return []action.Action{action.NewPass()}, nil
	}
}

func legalMainPhaseActions(s state.State, cat *catalog.Catalog) ([]action.Action, error) {
	pi := PriorityPlayer(s)
	var acts []action.Action

	for handIdx, cardID := range s.Players[pi].Hand {
		static, err := cat.Get(cardID)
		if err != nil {
			return nil, err
		}
		h, ok := card.Lookup(static.Behavior)
		if !ok || h.PlayActions == nil {
			continue
		}
		acts = append(acts, h.PlayActions(s, pi, handIdx, static)...)
	}

	for permIdx, perm := range s.Players[pi].Battlefield {
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return nil, err
		}
		h, ok := card.Lookup(static.Behavior)
		if !ok || h.BattlefieldActions == nil {
			continue
		}
		acts = append(acts, h.BattlefieldActions(s, pi, permIdx, static)...)
	}

	acts = append(acts, action.NewPass())
	return acts, nil
}

// legalAttackerDeclarations enumerates every subset of the active
// player's untapped creatures that are not summoning-sick (or have haste)
// as a DeclareAttackers action, including the empty subset (spec.md §4.4:
// attacking is always optional).
func legalAttackerDeclarations(s state.State, cat *catalog.Catalog) ([]action.Action, error) {
	pi := s.ActivePlayer
	var eligible []int
	for idx, perm := range s.Players[pi].Battlefield {
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return nil, err
		}
		if !isCreature(static, perm) {
			continue
		}
		if perm.Tapped {
			continue
		}
		if perm.SummoningSick {
			if _, _, kw := card.Stats(static, perm); !kw[card.Haste] {
				continue
			}
		}
		eligible = append(eligible, idx)
	}

	var acts []action.Action
	for _, subset := range subsets(eligible) {
		acts = append(acts, action.Action{Kind: action.DeclareAttackers, Attackers: subset, SacrificeIndex: -1})
	}
	return acts, nil
}

// legalBlockerDeclarations enumerates every legal assignment of the
// defending player's untapped creatures to the declared attackers,
// honoring evasion keywords (combat.CanBlock) and Menace's two-or-more
// requirement.
func legalBlockerDeclarations(s state.State, cat *catalog.Catalog) ([]action.Action, error) {
	defender := state.Opponent(s.ActivePlayer)
	attackers := s.Combat.Attackers
	if len(attackers) == 0 {
		return []action.Action{{Kind: action.DeclareBlockers, Blocks: map[int][]int{}, SacrificeIndex: -1}}, nil
	}

	attackerKeywords := make(map[int]map[card.Keyword]bool, len(attackers))
	for _, aIdx := range attackers {
		perm := s.Players[s.ActivePlayer].Battlefield[aIdx]
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return nil, err
		}
		_, _, kw := card.Stats(static, perm)
		attackerKeywords[aIdx] = kw
	}

	var blockers []int
	blockerKeywords := make(map[int]map[card.Keyword]bool)
	for idx, perm := range s.Players[defender].Battlefield {
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return nil, err
		}
		if !isCreature(static, perm) || perm.Tapped {
			continue
		}
		_, _, kw := card.Stats(static, perm)
		blockers = append(blockers, idx)
		blockerKeywords[idx] = kw
	}

	assignments := enumerateBlockAssignments(blockers, attackers, attackerKeywords, blockerKeywords)

	var acts []action.Action
	for _, a := range assignments {
		valid := true
		for aIdx, bs := range a {
			if attackerKeywords[aIdx][card.Menace] && len(bs) < 2 {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		acts = append(acts, action.Action{Kind: action.DeclareBlockers, Blocks: a, SacrificeIndex: -1})
	}
	return acts, nil
}

// enumerateBlockAssignments assigns each blocker to at most one attacker
// (or to none), recursively, and groups the results by attacker.
func enumerateBlockAssignments(blockers, attackers []int, attackerKeywords, blockerKeywords map[int]map[card.Keyword]bool) []map[int][]int {
	var results []map[int][]int
	var assign func(i int, choice map[int][]int)
	assign = func(i int, choice map[int][]int) {
		if i == len(blockers) {
			cp := make(map[int][]int, len(choice))
			for k, v := range choice {
				cp[k] = append([]int(nil), v...)
			}
			results = append(results, cp)
			return
		}
		b := blockers[i]

		// Option: this blocker doesn't block.
		assign(i+1, choice)

		// Option: this blocker blocks one of the legal attackers.
		for _, a := range attackers {
			if !combat.CanBlock(attackerKeywords[a], blockerKeywords[b]) {
				continue
			}
			choice[a] = append(choice[a], b)
			assign(i+1, choice)
			choice[a] = choice[a][:len(choice[a])-1]
			if len(choice[a]) == 0 {
				delete(choice, a)
			}
		}
	}
	assign(0, map[int][]int{})
	return results
}

// legalDamageOrderAssignments enumerates the ambiguous-order tie-break
// from spec.md §4.4: for the first attacker (lowest battlefield index)
// whose blocker count is two or more and whose order hasn't already been
// refined this combat, return one AssignCombatDamage action per
// permutation of its blocker list. Once every multiply-blocked attacker
// has a chosen order, the only legal action is Pass -- there's nothing
// left to decide, and Pass is what moves combat on to damage.
func legalDamageOrderAssignments(s state.State) []action.Action {
	for _, attackerIdx := range s.Combat.Attackers {
		blockers := s.Combat.Blocks[attackerIdx]
		if len(blockers) < 2 {
			continue
		}
		if _, resolved := s.Combat.DamageOrder[attackerIdx]; resolved {
			continue
		}
		var acts []action.Action
		for _, perm := range permutations(blockers) {
			acts = append(acts, action.Action{
				Kind:           action.AssignCombatDamage,
				PermanentIndex: attackerIdx,
				DamageOrder:    perm,
				SacrificeIndex: -1,
			})
		}
		return acts
	}
	return []action.Action{action.NewPass()}
}

// permutations returns every ordering of idx. 3CB combat never blocks an
// attacker with more than a handful of creatures, so n! enumeration is
// cheap.
func permutations(idx []int) [][]int {
	if len(idx) <= 1 {
		return [][]int{append([]int(nil), idx...)}
	}
	var out [][]int
	for i := range idx {
		rest := make([]int, 0, len(idx)-1)
		rest = append(rest, idx[:i]...)
		rest = append(rest, idx[i+1:]...)
		for _, sub := range permutations(rest) {
			out = append(out, append([]int{idx[i]}, sub...))
		}
	}
	return out
}

// subsets returns every subset of idx (including the empty subset, which
// comes first), in binary-counting order: each element of idx in turn is
// appended to a copy of every subset built so far. 3CB battlefields are small enough
// (at most a handful of creatures per side) that 2^n enumeration is
// cheap.
func subsets(idx []int) [][]int {
	result := [][]int{{}}
	for _, v := range idx {
		n := len(result)
		for i := 0; i < n; i++ {
			next := append(append([]int(nil), result[i]...), v)
			result = append(result, next)
		}
	}
	return result
}

func isCreature(static card.Static, perm state.Permanent) bool {
	return static.IsCreature() || perm.Animated
}

// Apply applies act to s and returns the successor state. It checks hand,
// permanent, attacker and blocker indices against their ranges, the
// one-land-per-turn limit, that a played card is a land or a cast card a
// creature, the mana payment, and whatever the activated card's own
// Activate hook validates, rejecting a failure with ErrIllegalAction (or
// the hook's error). It does not check the current phase, whether a
// declared attacker is an untapped, non-summoning-sick creature, or
// whether a declared block is legal (evasion, Menace, tapped blockers);
// those are only enforced by LegalActions.
func Apply(s state.State, act action.Action, cat *catalog.Catalog) (state.State, error) {
	pi := PriorityPlayer(s)

	switch act.Kind {
	case action.Pass:
		if phase.IsDecision(s.Phase) {
			return advanceOneStep(s), nil
		}
		return s, nil

	case action.PlayLand:
		return applyPlayLand(s, pi, act, cat)

	case action.CastCreature:
		return applyCastCreature(s, pi, act, cat)

	case action.Activate:
		return applyActivate(s, pi, act, cat)

	case action.DeclareAttackers:
		return applyDeclareAttackers(s, act, cat)

	case action.DeclareBlockers:
		return applyDeclareBlockers(s, act)

	case action.AssignCombatDamage:
		return applyAssignCombatDamage(s, act)

	default:
		return state.State{}, fmt.Errorf("%w: unknown action kind %v", ErrIllegalAction, act.Kind)
	}
}

func applyPlayLand(s state.State, pi int, act action.Action, cat *catalog.Catalog) (state.State, error) {
	if act.HandIndex < 0 || act.HandIndex >= len(s.Players[pi].Hand) {
		return state.State{}, fmt.Errorf("%w: hand index %d out of range", ErrIllegalAction, act.HandIndex)
	}
	if s.Players[pi].LandPlayedThisTurn {
		return state.State{}, fmt.Errorf("%w: a land has already been played this turn", ErrIllegalAction)
	}
	cardID := s.Players[pi].Hand[act.HandIndex]
	static, err := cat.Get(cardID)
	if err != nil {
		return state.State{}, err
	}
	if !static.IsLand() {
		return state.State{}, fmt.Errorf("%w: %s is not a land", ErrIllegalAction, cardID)
	}

	out := s.Clone()
	out.Players[pi].Hand = removeAt(out.Players[pi].Hand, act.HandIndex)
	out.Players[pi].LandPlayedThisTurn = true
	out.Players[pi].Battlefield = append(out.Players[pi].Battlefield, state.Permanent{
		CardID: cardID, Controller: pi, Owner: pi, EnteredTurn: s.Turn, Blocking: -1,
	})
	return fireEnterBattlefield(out, pi, len(out.Players[pi].Battlefield)-1, cat)
}

func applyCastCreature(s state.State, pi int, act action.Action, cat *catalog.Catalog) (state.State, error) {
	if act.HandIndex < 0 || act.HandIndex >= len(s.Players[pi].Hand) {
		return state.State{}, fmt.Errorf("%w: hand index %d out of range", ErrIllegalAction, act.HandIndex)
	}
	cardID := s.Players[pi].Hand[act.HandIndex]
	static, err := cat.Get(cardID)
	if err != nil {
		return state.State{}, err
	}
	if !static.IsCreature() {
		return state.State{}, fmt.Errorf("%w: %s is not a creature", ErrIllegalAction, cardID)
	}
	if err := card.ValidatePayment(static.Cost, act.Payment, s.Players[pi].Mana); err != nil {
		return state.State{}, fmt.Errorf("%w: %v", ErrIllegalAction, err)
	}

	out := s.Clone()
	out.Players[pi].Mana = card.Spend(out.Players[pi].Mana, act.Payment)
	out.Players[pi].Hand = removeAt(out.Players[pi].Hand, act.HandIndex)
	out.Players[pi].Battlefield = append(out.Players[pi].Battlefield, state.Permanent{
		CardID: cardID, Controller: pi, Owner: pi, SummoningSick: true, EnteredTurn: s.Turn, Blocking: -1,
	})
	return fireEnterBattlefield(out, pi, len(out.Players[pi].Battlefield)-1, cat)
}

func fireEnterBattlefield(s state.State, pi, permIdx int, cat *catalog.Catalog) (state.State, error) {
	perm := s.Players[pi].Battlefield[permIdx]
	static, err := cat.Get(perm.CardID)
	if err != nil {
		return state.State{}, err
	}
	h, ok := card.Lookup(static.Behavior)
	if !ok || h.OnEvent == nil {
		return s, nil
	}
	out := s
	for _, trig := range h.OnEvent(out, pi, permIdx, static, card.EventEntersBattlefield) {
		out, err = trig.Apply(out)
		if err != nil {
			return state.State{}, err
		}
	}
	return out, nil
}

func applyActivate(s state.State, pi int, act action.Action, cat *catalog.Catalog) (state.State, error) {
	if act.PermanentIndex < 0 || act.PermanentIndex >= len(s.Players[pi].Battlefield) {
		return state.State{}, fmt.Errorf("%w: permanent index %d out of range", ErrIllegalAction, act.PermanentIndex)
	}
	perm := s.Players[pi].Battlefield[act.PermanentIndex]
	static, err := cat.Get(perm.CardID)
	if err != nil {
		return state.State{}, err
	}
	h, ok := card.Lookup(static.Behavior)
	if !ok || h.Activate == nil {
		return state.State{}, fmt.Errorf("%w: %s has no activated ability", ErrIllegalAction, perm.CardID)
	}
	out, err := h.Activate(s, pi, act.PermanentIndex, static, act)
	if err != nil {
		return state.State{}, fmt.Errorf("%w: %v", ErrIllegalAction, err)
	}

	// A sacrifice-costed activation's SacrificeIndex removes a permanent
	// as part of its cost; hooks.Activate handles its own sacrifice
	// bookkeeping (see boastSacCreatureHooks), so nothing further happens
	// here beyond passing the action through.
	return out, nil
}

func applyDeclareAttackers(s state.State, act action.Action, cat *catalog.Catalog) (state.State, error) {
	out := s.Clone()
	pi := s.ActivePlayer
	out.Combat = state.CombatScratch{Attackers: append([]int(nil), act.Attackers...), Blocks: map[int][]int{}}

	for _, idx := range act.Attackers {
		if idx < 0 || idx >= len(out.Players[pi].Battlefield) {
			return state.State{}, fmt.Errorf("%w: attacker index %d out of range", ErrIllegalAction, idx)
		}
		perm := &out.Players[pi].Battlefield[idx]
		static, err := cat.Get(perm.CardID)
		if err != nil {
			return state.State{}, err
		}
		_, _, kw := card.Stats(static, *perm)
		perm.Attacking = true
		perm.HasAttacked = true
		if !kw[card.Vigilance] {
			perm.Tapped = true
		}
	}

	var err error
	for _, idx := range act.Attackers {
		perm := out.Players[pi].Battlefield[idx]
		static, gerr := cat.Get(perm.CardID)
		if gerr != nil {
			return state.State{}, gerr
		}
		h, ok := card.Lookup(static.Behavior)
		if !ok || h.OnEvent == nil {
			continue
		}
		for _, trig := range h.OnEvent(out, pi, idx, static, card.EventAttackDeclared) {
			out, err = trig.Apply(out)
			if err != nil {
				return state.State{}, err
			}
		}
	}
	return advanceOneStep(out), nil
}

func applyDeclareBlockers(s state.State, act action.Action) (state.State, error) {
	out := s.Clone()
	defender := state.Opponent(s.ActivePlayer)
	out.Combat.Blocks = map[int][]int{}

	for attackerIdx, blockerIdxs := range act.Blocks {
		bs := append([]int(nil), blockerIdxs...)
		out.Combat.Blocks[attackerIdx] = bs
		if attackerIdx < 0 || attackerIdx >= len(out.Players[s.ActivePlayer].Battlefield) {
			return state.State{}, fmt.Errorf("%w: attacker index %d out of range", ErrIllegalAction, attackerIdx)
		}
		out.Players[s.ActivePlayer].Battlefield[attackerIdx].BlockedBy = bs
		for _, bIdx := range bs {
			if bIdx < 0 || bIdx >= len(out.Players[defender].Battlefield) {
				return state.State{}, fmt.Errorf("%w: blocker index %d out of range", ErrIllegalAction, bIdx)
			}
			out.Players[defender].Battlefield[bIdx].Blocking = attackerIdx
			out.Players[defender].Battlefield[bIdx].HasBlocked = true
		}
	}
	return advanceOneStep(out), nil
}

// applyAssignCombatDamage refines one attacker's blocker order (spec.md
// §4.4's ambiguous-order tie-break) and records it in Combat.DamageOrder
// so legalDamageOrderAssignments won't offer it again this combat. It
// never advances the phase itself -- a combat can have several
// multiply-blocked attackers, each resolved by its own
// AssignCombatDamage action, and only Pass (once none remain) moves on
// to damage.
func applyAssignCombatDamage(s state.State, act action.Action) (state.State, error) {
	out := s.Clone()
	if act.PermanentIndex < 0 || act.PermanentIndex >= len(out.Players[s.ActivePlayer].Battlefield) {
		return state.State{}, fmt.Errorf("%w: attacker index %d out of range", ErrIllegalAction, act.PermanentIndex)
	}
	order := append([]int(nil), act.DamageOrder...)
	out.Players[s.ActivePlayer].Battlefield[act.PermanentIndex].BlockedBy = order
	if out.Combat.DamageOrder == nil {
		out.Combat.DamageOrder = map[int][]int{}
	}
	out.Combat.DamageOrder[act.PermanentIndex] = order
	return out, nil
}

func removeAt(s []string, i int) []string {
	out := append([]string(nil), s[:i]...)
	return append(out, s[i+1:]...)
}
