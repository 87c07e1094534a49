// Package terminal detects when a match has reached a result: a player's
// life has dropped to zero or below, the turn cap has been reached, or
// the grinding heuristic (spec.md §4.6) has proven the position is a
// non-progressing draw. The strict on-path repetition rule (spec.md §4.5,
// "if the child's fingerprint is already on the path, treat the branch
// as a non-progress draw") is a property of the search path rather than
// of a single state, so it is implemented directly in pkg/search's
// minimax loop instead of here.
package terminal

import "github.com/3cbsolver/solver/pkg/state"

// Outcome names how a terminal state resolved.
type Outcome int

const (
	// NotTerminal means the match continues.
	NotTerminal Outcome = iota
	// Win0 and Win1 mean the named player index won.
	Win0
	Win1
	// Draw means the match ended without a winner (turn cap,
	// on-path repetition, or grinding).
	Draw
)

// DefaultTurnCap is the last turn a match is played to: a match that
// hasn't otherwise ended is called a draw once its turn number exceeds
// it (spec.md §8: "a generous default that
// never fires on a correctly modeled deterministic line, just guards
// against a modeling bug turning into an infinite search").
const DefaultTurnCap = 50

// DefaultRepetitionWindow is N in spec.md §4.6's grinding detector: the
// number of consecutive turns that must show an identical fingerprint
// and unchanged life totals before the position is declared a draw.
const DefaultRepetitionWindow = 3

// Detector bundles the configurable terminal thresholds so a search run
// can override them (e.g. for tests that want a short turn cap) without
// touching global state.
type Detector struct {
	TurnCap          int
	RepetitionWindow int
}

// New returns a Detector configured with the spec's defaults.
func New() Detector {
	return Detector{TurnCap: DefaultTurnCap, RepetitionWindow: DefaultRepetitionWindow}
}

// Check evaluates s against the life-total and turn-cap conditions. It
// does not look at repetition at all -- callers run the on-path check
// (spec.md §4.5) and Grinding (spec.md §4.6) separately, since both need
// path history Check has no access to.
func (d Detector) Check(s state.State) Outcome {
	switch {
	case s.Players[0].Life <= 0 && s.Players[1].Life <= 0:
		return Draw
	case s.Players[0].Life <= 0:
		return Win1
	case s.Players[1].Life <= 0:
		return Win0
	}

	if d.TurnCap > 0 && s.Turn > d.TurnCap {
		return Draw
	}

	return NotTerminal
}

// TurnSnapshot captures one turn's starting position for the grinding
// detector: the canonical fingerprint (already turn-count-agnostic, see
// state.State.Fingerprint) plus both players' life totals, which the
// fingerprint also folds in but spec.md §4.6 calls out as its own
// condition.
type TurnSnapshot struct {
	Fingerprint uint64
	Life0       int
	Life1       int
}

// Grinding implements spec.md §4.6's heuristic: "if both players have
// passed through N consecutive turns (default 3) with identical
// fingerprints modulo turn counter and with no life change, declare
// draw." history is the sequence of per-turn snapshots along the
// current search path, oldest first, with the current turn already
// appended; Grinding only looks at its trailing window. It never
// returns a non-exact value into the search -- it only reports whether
// the current position may be converted into an exact draw.
func (d Detector) Grinding(history []TurnSnapshot) bool {
	if d.RepetitionWindow <= 0 || len(history) < d.RepetitionWindow {
		return false
	}
	window := history[len(history)-d.RepetitionWindow:]
	first := window[0]
	for _, snap := range window[1:] {
		if snap != first {
			return false
		}
	}
	return true
}

// IsTerminal reports whether outcome represents an ended match.
func IsTerminal(o Outcome) bool {
	return o != NotTerminal
}
