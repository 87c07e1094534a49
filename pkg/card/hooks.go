package card

import (
	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/state"
)

// Event names a point in the turn/phase structure or a game occurrence
// that a triggered ability can fire on (spec.md §4.1, on_event).
type Event string

const (
	EventEntersBattlefield Event = "enters_battlefield"
	EventUpkeep            Event = "upkeep"
	EventAttackDeclared    Event = "attack_declared"
	EventDealsDamage       Event = "deals_damage"
	EventDies              Event = "dies"
	EventEndOfTurn         Event = "end_of_turn"
)

// Trigger is a single triggered-effect update queued by an event: which
// permanent's ability fired, applied as a pure state transformation.
type Trigger struct {
	PermanentIndex int
	Apply          func(state.State) (state.State, error)
}

// Hooks is the set of behavior callbacks a card contributes, looked up
// from its catalog Static.Behavior tag through Registry each time the
// rules engine needs them.
// Cards never mutate state; every hook returns a transformed successor,
// the same "return the new thing, never poke the old one" discipline the
// teacher's ExecutionEngine applies to ability resolution
// (pkg/ability/engine.go).
type Hooks struct {
	// PlayActions returns the actions this card contributes while in
	// the hand at HandIndex (typically a PlayLand or CastCreature).
	PlayActions func(s state.State, playerIdx, handIndex int, static Static) []action.Action

	// BattlefieldActions returns the activated-ability actions
	// available while this permanent is on the battlefield.
	BattlefieldActions func(s state.State, playerIdx, permIndex int, static Static) []action.Action

	// OnEvent returns the triggers that fire for this permanent on the
	// given event, in no particular order -- the rules engine applies
	// canonical ordering (active-player-first, then permanent index
	// ascending) across every permanent's triggers, not within a single
	// card's hook.
	OnEvent func(s state.State, playerIdx, permIndex int, static Static, evt Event) []Trigger

	// Activate resolves an Activate action naming this card's ability
	// tag: validates the action's own legality (AbilityTag, payment,
	// sacrifice) and returns the successor state.
	Activate func(s state.State, playerIdx, permIndex int, static Static, act action.Action) (state.State, error)

	// EffectiveStats computes a permanent's current power/toughness and
	// keyword set, generalizing level-up counters, man-land animation,
	// and temporary combat buffs on top of the catalog base stats. Nil
	// means the catalog base stats and keywords apply unmodified.
	EffectiveStats func(static Static, perm state.Permanent) (power, toughness int, keywords map[Keyword]bool)

	// SkipsUntap reports whether a permanent with this behavior fails to
	// untap during its controller's untap step (e.g. a "doesn't untap"
	// drawback), consulted once per permanent by the untap phase handler.
	SkipsUntap func(static Static, perm state.Permanent) bool
}

// Stats returns a permanent's current effective power, toughness, and
// keyword set, consulting its registered EffectiveStats hook if one
// exists and falling back to the catalog's base stats otherwise.
func Stats(static Static, perm state.Permanent) (power, toughness int, keywords map[Keyword]bool) {
	if h, ok := Lookup(static.Behavior); ok && h.EffectiveStats != nil {
		return h.EffectiveStats(static, perm)
	}
	return static.Power + perm.BonusPower, static.Toughness + perm.BonusToughness, static.Keywords
}

// Registry maps a behavior tag (Static.Behavior) to its Hooks. Adding a
// card to the catalog means adding a Static record and, if its behavior
// isn't already covered by one of the generic tags below, a new entry
// here -- no other core change (spec.md §6, Card catalog).
var Registry = map[string]Hooks{}

// Register adds or replaces a behavior tag's hooks. Called from
// builtin.go's init for the catalog's built-in behavior kinds.
func Register(tag string, h Hooks) {
	Registry[tag] = h
}

// Lookup returns the hooks registered for a card's behavior tag, and
// whether the tag was found.
func Lookup(tag string) (Hooks, bool) {
	h, ok := Registry[tag]
	return h, ok
}
