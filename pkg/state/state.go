// Package state defines the 3CB match-state snapshot: Players, their
// Permanents, and the combat scratch space (spec.md §3, Game State).
//
// State is treated as immutable by convention: every transformation in
// pkg/rules returns a new State by value rather than mutating an
// existing one in place, so alpha-beta can retreat cheaply and so
// cross-references between Permanents are always stable indices, never
// pointers (spec.md §3, Ownership).
package state

import "github.com/3cbsolver/solver/pkg/phase"

// ManaPool holds floating mana, per color plus generic/colorless. It is
// emptied at phase boundaries except within a single cast or activation
// (spec.md §3 invariants).
type ManaPool struct {
	W, U, B, R, G, C int
}

// Add returns a pool with amount added to the given color.
func (m ManaPool) Add(color string, amount int) ManaPool {
	switch color {
	case "W":
		m.W += amount
	case "U":
		m.U += amount
	case "B":
		m.B += amount
	case "R":
		m.R += amount
	case "G":
		m.G += amount
	case "C":
		m.C += amount
	}
	return m
}

// IsEmpty reports whether the pool holds no floating mana.
func (m ManaPool) IsEmpty() bool {
	return m == ManaPool{}
}

// Permanent is a card on the battlefield, with its per-instance tracking
// flags (spec.md §3, Permanent).
type Permanent struct {
	CardID        string
	Controller    int
	Owner         int
	Tapped        bool
	SummoningSick bool
	Damage        int
	// Counters holds named persistent counters (e.g. "level", "+1/+1")
	// generalizing spec.md §3's "+1/+1 counters and other persistent
	// counters" to any named counter a card's behavior hooks define.
	Counters map[string]int

	// EnteredTurn is the turn number this permanent entered the
	// battlefield, used to clear summoning sickness on untap.
	EnteredTurn int

	// Attacking is true while this permanent is declared as an
	// attacker for the current combat.
	Attacking bool
	// Blocking holds the battlefield index (attacking player's side)
	// of the attacker this permanent is blocking, or -1 if not
	// blocking.
	Blocking int
	// BlockedBy holds the battlefield indices (defending player's
	// side) of the permanents blocking this attacker, in assignment
	// order, or nil if unblocked.
	BlockedBy []int

	HasAttacked bool
	HasBlocked  bool
	// ActivatedThisTurn counts activations this turn per ability tag,
	// for once-per-turn restrictions (e.g. boast).
	ActivatedThisTurn map[string]int

	// Animated and the Temp* fields implement man-land-style "becomes a
	// creature until end of turn" effects (spec.md §10 supplemented
	// features): while Animated is set the permanent is treated as a
	// creature with TempPower/TempToughness regardless of its catalog
	// Static type.
	Animated      bool
	TempPower     int
	TempToughness int

	// BonusPower and BonusToughness are temporary combat-stat modifiers
	// (an "until end of turn" pump) layered on top of whichever base
	// stats apply, cleared at the end phase.
	BonusPower     int
	BonusToughness int
}

// Clone returns a deep copy of the permanent so mutation of the copy
// never aliases the original (cheap at 3CB's scale: at most a handful of
// permanents per player).
func (p Permanent) Clone() Permanent {
	cp := p
	if p.Counters != nil {
		cp.Counters = make(map[string]int, len(p.Counters))
		for k, v := range p.Counters {
			cp.Counters[k] = v
		}
	}
	if p.ActivatedThisTurn != nil {
		cp.ActivatedThisTurn = make(map[string]int, len(p.ActivatedThisTurn))
		for k, v := range p.ActivatedThisTurn {
			cp.ActivatedThisTurn[k] = v
		}
	}
	if p.BlockedBy != nil {
		cp.BlockedBy = append([]int(nil), p.BlockedBy...)
	}
	return cp
}

// Player is one side's zones and counters (spec.md §3, Player).
type Player struct {
	Life int
	Mana ManaPool
	// Hand is an ordered multiset of card identifiers.
	Hand []string
	// Battlefield is addressed by stable index; entries are never
	// reordered, only appended (new permanent) or tombstoned via
	// removal which shifts later indices -- callers must re-resolve
	// indices from a fresh LegalActions() call after any Apply.
	Battlefield    []Permanent
	LibraryCount   int
	GraveyardCount int

	// LandPlayedThisTurn tracks the one-land-per-turn restriction,
	// cleared on entering untap.
	LandPlayedThisTurn bool
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	cp := p
	cp.Hand = append([]string(nil), p.Hand...)
	cp.Battlefield = make([]Permanent, len(p.Battlefield))
	for i, perm := range p.Battlefield {
		cp.Battlefield[i] = perm.Clone()
	}
	return cp
}

// Total returns hand + battlefield (non-token) + graveyard + library,
// which spec.md §3/§8 requires to equal 3 for every player at every
// reachable state. Tokens (CardID == "") don't count against the three.
func (p Player) Total() int {
	nonTokenPermanents := 0
	for _, perm := range p.Battlefield {
		if perm.CardID != "" {
			nonTokenPermanents++
		}
	}
	return len(p.Hand) + nonTokenPermanents + p.GraveyardCount + p.LibraryCount
}

// CombatScratch holds the current combat's attacker/blocker assignments.
// It exists only during combat sub-phases and is cleared at end of
// combat (spec.md §3, Lifecycles).
type CombatScratch struct {
	// Attackers holds battlefield indices (active player's side).
	Attackers []int
	// Blocks maps attacker battlefield index -> ordered blocker
	// battlefield indices (defending player's side).
	Blocks map[int][]int
	// DamageOrder optionally refines the blocker order per attacker
	// for damage-assignment purposes (spec.md §4.4, tie-break rule).
	DamageOrder map[int][]int
}

// IsEmpty reports whether no combat is in progress.
func (c CombatScratch) IsEmpty() bool {
	return len(c.Attackers) == 0 && len(c.Blocks) == 0
}

// Clone returns a deep copy of the combat scratch space.
func (c CombatScratch) Clone() CombatScratch {
	cp := CombatScratch{
		Attackers: append([]int(nil), c.Attackers...),
	}
	if c.Blocks != nil {
		cp.Blocks = make(map[int][]int, len(c.Blocks))
		for k, v := range c.Blocks {
			cp.Blocks[k] = append([]int(nil), v...)
		}
	}
	if c.DamageOrder != nil {
		cp.DamageOrder = make(map[int][]int, len(c.DamageOrder))
		for k, v := range c.DamageOrder {
			cp.DamageOrder[k] = append([]int(nil), v...)
		}
	}
	return cp
}

// State is the immutable-by-convention match-state snapshot (spec.md §3,
// Match State). Players are indexed 0 and 1; ActivePlayer names whose
// turn it is, Priority names who is the current decision maker (usually
// but not always the active player, e.g. the defending player during
// declare_blockers).
type State struct {
	Players      [2]Player
	Turn         int
	Phase        phase.Phase
	ActivePlayer int
	Priority     int
	Combat       CombatScratch
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	cp := s
	cp.Players[0] = s.Players[0].Clone()
	cp.Players[1] = s.Players[1].Clone()
	cp.Combat = s.Combat.Clone()
	return cp
}

// Opponent returns the index of the player other than p.
func Opponent(p int) int {
	return 1 - p
}
