// Package action defines the closed set of action variants that can be
// applied to a 3CB game state (spec.md §3, Action Model).
package action

// Kind discriminates the action variant. Action is a single flat struct
// rather than an interface-per-variant so it can be compared, hashed, and
// copied by value the way state.State is -- the teacher's Permanent and
// Player records take the same "flat struct, zero value means absent"
// approach instead of per-kind types.
type Kind int

const (
	PlayLand Kind = iota
	CastCreature
	Activate
	DeclareAttackers
	DeclareBlockers
	AssignCombatDamage
	Pass
)

func (k Kind) String() string {
	switch k {
	case PlayLand:
		return "play_land"
	case CastCreature:
		return "cast_creature"
	case Activate:
		return "activate"
	case DeclareAttackers:
		return "declare_attackers"
	case DeclareBlockers:
		return "declare_blockers"
	case AssignCombatDamage:
		return "assign_combat_damage"
	case Pass:
		return "pass"
	default:
		return "unknown"
	}
}

// ManaPayment is an explicit mana payment breakdown: counts per color plus
// colorless (C); there is no generic bucket, a cost's generic part is paid
// from whichever of these are committed beyond its colored part. The engine never auto-taps on the caller's behalf --
// ManaPayment must already balance against the card's cost and the
// payer's available mana pool, keeping Apply pure and deterministic per
// spec §8.
type ManaPayment struct {
	W, U, B, R, G, C int
}

// Total returns the total mana committed across all colors.
func (m ManaPayment) Total() int {
	return m.W + m.U + m.B + m.R + m.G + m.C
}

// Action is a single legal move: which variant, plus only the fields that
// variant uses.
type Action struct {
	Kind Kind

	// PlayLand, CastCreature: index into the acting player's hand.
	HandIndex int

	// CastCreature, Activate: the mana committed to pay the cost.
	Payment ManaPayment

	// Activate: index into the acting player's battlefield of the
	// permanent whose ability is being activated, and which named
	// ability (a card can expose more than one).
	PermanentIndex int
	AbilityTag     string

	// Activate: optional sacrifice accompanying the ability cost (e.g.
	// a boast-style ability), index into the acting player's
	// battlefield. -1 when not applicable.
	SacrificeIndex int

	// DeclareAttackers: battlefield indices (of the active player) of
	// the permanents declared as attackers. Nil/empty is a legal "no
	// attacks" declaration.
	Attackers []int

	// DeclareBlockers: maps an attacker's battlefield index (on the
	// active player's side) to the ordered list of battlefield indices
	// (on the defending player's side) blocking it. An attacker absent
	// from the map is unblocked.
	Blocks map[int][]int

	// AssignCombatDamage: refines an ambiguous damage assignment order
	// for one attacker with multiple blockers -- the ordered list of
	// blocker indices to assign lethal damage to before any excess
	// (trample or otherwise) is considered. Only needed when the
	// default blocker order from DeclareBlockers leaves a choice.
	DamageOrder []int
}

// Pass is the always-legal "do nothing" action at a decision phase.
func NewPass() Action {
	return Action{Kind: Pass, SacrificeIndex: -1}
}
