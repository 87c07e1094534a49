// Package search implements alpha-beta minimax over 3CB states with
// transposition caching and on-path repetition handling (spec.md §4.5).
package search

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/phase"
	"github.com/3cbsolver/solver/pkg/rules"
	"github.com/3cbsolver/solver/pkg/state"
	"github.com/3cbsolver/solver/pkg/terminal"
)

// ttEntry is one transposition-table record: the value computed for a
// fingerprint, the bound type it represents, and the ply depth from the
// root at which it was computed (store keeps an existing entry computed
// at a greater depth than the new one, and otherwise replaces it).
type ttEntry struct {
	Value      Value
	Bound      BoundType
	SearchDepth int
}

// PVStep is one (state, action) pair along a principal variation.
type PVStep struct {
	Fingerprint uint64
	Action      action.Action
}

// Engine owns one search run's transposition table and on-path
// repetition set. It is not safe for concurrent use -- the
// solver package gives each parallel worker its own Engine (spec.md §5).
type Engine struct {
	cat      *catalog.Catalog
	detector terminal.Detector
	tt       *lru.Cache[uint64, ttEntry]

	// NodeBudget caps the number of minimax calls a Search performs; 0
	// means unlimited. Exceeding it makes Search return its best
	// bound-so-far with Partial=true rather than a proven value
	// (spec.md §5, Cancellation).
	NodeBudget int

	nodes          int
	budgetExceeded bool

	// path holds the on-path fingerprint set used by the strict
	// immediate-draw rule (spec.md §4.5): a child whose fingerprint is
	// already present here is a non-progress repeat of an ancestor.
	path map[uint64]int

	// turnHistory is the ancestor chain of Main1 snapshots feeding
	// the grinding heuristic (spec.md §4.6), pushed/popped in lockstep
	// with recursion exactly like path.
	turnHistory []terminal.TurnSnapshot
}

// NewEngine builds an Engine with a transposition table bounded to
// ttCapacity entries.
func NewEngine(cat *catalog.Catalog, detector terminal.Detector, ttCapacity int) (*Engine, error) {
	tt, err := lru.New[uint64, ttEntry](ttCapacity)
	if err != nil {
		return nil, err
	}
	return &Engine{cat: cat, detector: detector, tt: tt}, nil
}

// Result is the outcome of a Search call.
type Result struct {
	Value           Value
	PrincipalVariation []PVStep
	NodesExplored   int
	Partial         bool
}

// Search runs alpha-beta minimax from root and returns the game-theoretic
// value from player 0's perspective, the principal variation, and whether
// the result is only a partial bound (node budget exhausted).
func (e *Engine) Search(root state.State) (Result, error) {
	e.nodes = 0
	e.budgetExceeded = false
	e.path = map[uint64]int{}
	e.turnHistory = nil

	val, pv, err := e.minimax(root, -(1 << 21), 1<<21, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Value:              val,
		PrincipalVariation: pv,
		NodesExplored:      e.nodes,
		Partial:            e.budgetExceeded,
	}, nil
}

func (e *Engine) minimax(s state.State, alpha, beta, depth int) (Value, []PVStep, error) {
	if e.NodeBudget > 0 && e.nodes >= e.NodeBudget {
		e.budgetExceeded = true
		return Value{Outcome: 0, Depth: depth}, nil, nil
	}
	e.nodes++

	if outcome := e.detector.Check(s); terminal.IsTerminal(outcome) {
		return terminalValue(outcome, depth), nil, nil
	}

	fp := s.Fingerprint()

	// Grinding heuristic (spec.md §4.6): checked at every Main1 node (the
	// turn's first decision phase) against the trailing window of
	// ancestor snapshots on this path. Every Main1 node pushes a
	// snapshot, so a turn with land drops, casts or activations at Main1
	// contributes one snapshot per such node rather than one per turn.
	if s.Phase == phase.Main1 {
		snap := terminal.TurnSnapshot{Fingerprint: fp, Life0: s.Players[0].Life, Life1: s.Players[1].Life}
		if e.detector.Grinding(append(e.turnHistory, snap)) {
			return terminalValue(terminal.Draw, depth), nil, nil
		}
		e.turnHistory = append(e.turnHistory, snap)
		defer func() { e.turnHistory = e.turnHistory[:len(e.turnHistory)-1] }()
	}

	if entry, ok := e.tt.Get(fp); ok {
		switch entry.Bound {
		case Exact:
			return entry.Value, nil, nil
		case LowerBound:
			if entry.Value.Score() > alpha {
				alpha = entry.Value.Score()
			}
		case UpperBound:
			if entry.Value.Score() < beta {
				beta = entry.Value.Score()
			}
		}
		if alpha >= beta {
			return entry.Value, nil, nil
		}
	}

	e.path[fp]++
	defer func() { e.path[fp]-- }()

	acts, err := rules.LegalActions(s, e.cat)
	if err != nil {
		return Value{}, nil, err
	}
	acts = orderActions(acts)

	mover := rules.PriorityPlayer(s)
	var best Value
	var bestPV []PVStep
	haveBest := false
	originalAlpha, originalBeta := alpha, beta

	for _, act := range acts {
		successor, err := rules.Apply(s, act, e.cat)
		if err != nil {
			return Value{}, nil, err
		}
		successor, err = rules.AdvancePhase(successor, e.cat)
		if err != nil {
			return Value{}, nil, err
		}

		// spec.md §4.5: if the child's fingerprint is already on the
		// current path, it's a non-progress repeat of an ancestor --
		// call it a draw immediately rather than recursing into it.
		var childVal Value
		var childPV []PVStep
		if e.path[successor.Fingerprint()] > 0 {
			childVal = Value{Outcome: 0, Depth: depth + 1}
		} else {
			childVal, childPV, err = e.minimax(successor, alpha, beta, depth+1)
			if err != nil {
				return Value{}, nil, err
			}
		}

		if !haveBest || childVal.Better(best, mover) {
			best = childVal
			bestPV = append([]PVStep{{Fingerprint: fp, Action: act}}, childPV...)
			haveBest = true
		}

		if mover == 0 {
			if best.Score() > alpha {
				alpha = best.Score()
			}
		} else {
			if best.Score() < beta {
				beta = best.Score()
			}
		}
		if alpha >= beta {
			break
		}

		if e.budgetExceeded {
			break
		}
	}

	if !haveBest {
		// No legal action exists for the mover; this only happens if
		// rules.LegalActions ever returns an empty list, which it never
		// does (every phase offers Pass, a damage order, or at least the
		// empty declaration) -- a defensive fallback rather than a
		// reachable branch.
		best = Value{Outcome: 0, Depth: depth}
	}

	bound := Exact
	if best.Score() <= originalAlpha {
		bound = UpperBound
	} else if best.Score() >= originalBeta {
		bound = LowerBound
	}
	if !e.budgetExceeded {
		e.store(fp, ttEntry{Value: best, Bound: bound, SearchDepth: depth})
	}

	return best, bestPV, nil
}

func (e *Engine) store(fp uint64, entry ttEntry) {
	if existing, ok := e.tt.Get(fp); ok && existing.SearchDepth > entry.SearchDepth {
		return
	}
	e.tt.Add(fp, entry)
}

func terminalValue(o terminal.Outcome, depth int) Value {
	switch o {
	case terminal.Win0:
		return Value{Outcome: 1, Depth: depth}
	case terminal.Win1:
		return Value{Outcome: -1, Depth: depth}
	default:
		return Value{Outcome: 0, Depth: depth}
	}
}

// orderActions applies the static move-ordering heuristic from spec.md
// §4.5 step 3: lands first, then cheaper casts, then attacks/blocks,
// then pass, to improve alpha-beta cut rate.
func orderActions(acts []action.Action) []action.Action {
	rank := func(a action.Action) int {
		switch a.Kind {
		case action.PlayLand:
			return 0
		case action.CastCreature:
			return 1 + a.Payment.Total()
		case action.Activate:
			return 10
		case action.DeclareAttackers, action.DeclareBlockers, action.AssignCombatDamage:
			return 20
		case action.Pass:
			return 100
		default:
			return 50
		}
	}
	out := append([]action.Action(nil), acts...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && rank(out[j-1]) > rank(out[j]); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
