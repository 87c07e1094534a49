// Package solver exposes the solve/goldfish/payoff-matrix APIs that wrap
// pkg/search into the shapes an external front end consumes (spec.md §6,
// External Interfaces).
package solver

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/3cbsolver/solver/internal/logger"
	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/phase"
	"github.com/3cbsolver/solver/pkg/rules"
	"github.com/3cbsolver/solver/pkg/search"
	"github.com/3cbsolver/solver/pkg/state"
	"github.com/3cbsolver/solver/pkg/terminal"
)

// DefaultStartingLife is the life total both players begin a match at
// (spec.md §3: "starts at a configured value -- 20 by default").
const DefaultStartingLife = 20

// DefaultTTCapacity bounds a single Engine's transposition table.
const DefaultTTCapacity = 1 << 16

// Options configures a solve run.
type Options struct {
	StartingLife int
	TurnCap      int
	NodeBudget   int
	TTCapacity   int
}

// defaults fills zero-valued fields with spec defaults.
func (o Options) defaults() Options {
	if o.StartingLife == 0 {
		o.StartingLife = DefaultStartingLife
	}
	if o.TurnCap == 0 {
		o.TurnCap = terminal.DefaultTurnCap
	}
	if o.TTCapacity == 0 {
		o.TTCapacity = DefaultTTCapacity
	}
	return o
}

// Result is the outcome of Solve, matching spec.md §6's
// solve(hand1, hand2, first_mover) -> {value, principal_variation,
// nodes_explored}.
type Result struct {
	// RunID identifies this solve invocation in logs, the same way the
	// teacher tags each stack object with a fresh uuid.UUID rather than
	// relying on a reused index.
	RunID              uuid.UUID
	Value              search.Value
	PrincipalVariation []search.PVStep
	NodesExplored      int
	Partial            bool
}

// newRootState builds the opening state for a match: both hands fully in
// hand (library empty after the initial reveal, spec.md §4.3), empty
// battlefields, starting life, advanced from Untap through any automatic
// phases up to the first real decision.
func newRootState(cat *catalog.Catalog, hand0, hand1 []string, firstMover int, startingLife int) (state.State, error) {
	s := state.State{
		Players: [2]state.Player{
			{Life: startingLife, Hand: append([]string(nil), hand0...)},
			{Life: startingLife, Hand: append([]string(nil), hand1...)},
		},
		Turn:         1,
		Phase:        phase.Untap,
		ActivePlayer: firstMover,
	}
	return rules.AdvancePhase(s, cat)
}

// Solve computes the game-theoretic value of the match between hand0 and
// hand1 with firstMover holding the play.
func Solve(cat *catalog.Catalog, hand0, hand1 []string, firstMover int, opts Options) (Result, error) {
	opts = opts.defaults()
	runID := uuid.New()
	logger.Search("run %s: solving hand0=%v hand1=%v first_mover=%d", runID, hand0, hand1, firstMover)

	root, err := newRootState(cat, hand0, hand1, firstMover, opts.StartingLife)
	if err != nil {
		return Result{}, fmt.Errorf("building root state: %w", err)
	}

	engine, err := search.NewEngine(cat, terminal.Detector{TurnCap: opts.TurnCap, RepetitionWindow: terminal.DefaultRepetitionWindow}, opts.TTCapacity)
	if err != nil {
		return Result{}, err
	}
	engine.NodeBudget = opts.NodeBudget

	res, err := engine.Search(root)
	if err != nil {
		return Result{}, err
	}
	if res.Partial {
		logger.Search("solve hit its node budget (%d nodes); result is a partial bound", opts.NodeBudget)
	}
	return Result{
		RunID:              runID,
		Value:              res.Value,
		PrincipalVariation: res.PrincipalVariation,
		NodesExplored:      res.NodesExplored,
		Partial:            res.Partial,
	}, nil
}

// GoldfishResult is the outcome of Goldfish, spec.md §6:
// goldfish(hand, turns) -> {turn_of_kill | none, line}.
type GoldfishResult struct {
	Killed     bool
	TurnOfKill int
	Line       []search.PVStep
}

// Goldfish solves one-sided play: hand against an empty, inert opponent,
// within a turns-long horizon, returning the turn the opponent's life
// first reaches zero if one exists.
func Goldfish(cat *catalog.Catalog, hand []string, turns int) (GoldfishResult, error) {
	root, err := newRootState(cat, hand, nil, 0, DefaultStartingLife)
	if err != nil {
		return GoldfishResult{}, fmt.Errorf("building root state: %w", err)
	}

	engine, err := search.NewEngine(cat, terminal.Detector{TurnCap: turns, RepetitionWindow: terminal.DefaultRepetitionWindow}, DefaultTTCapacity)
	if err != nil {
		return GoldfishResult{}, err
	}

	res, err := engine.Search(root)
	if err != nil {
		return GoldfishResult{}, err
	}
	if res.Value.Outcome != 1 {
		return GoldfishResult{Killed: false}, nil
	}

	turn, err := replayToKill(root, res.PrincipalVariation, cat)
	if err != nil {
		return GoldfishResult{}, err
	}
	return GoldfishResult{Killed: true, TurnOfKill: turn, Line: res.PrincipalVariation}, nil
}

// replayToKill walks the principal variation forward from root, applying
// each action and re-running AdvancePhase, to find the turn number at
// which the opponent's life first reaches zero -- the PV's Value alone
// doesn't carry that, only that a win occurs somewhere along it.
func replayToKill(root state.State, pv []search.PVStep, cat *catalog.Catalog) (int, error) {
	s := root
	for _, step := range pv {
		var err error
		s, err = rules.Apply(s, step.Action, cat)
		if err != nil {
			return 0, err
		}
		s, err = rules.AdvancePhase(s, cat)
		if err != nil {
			return 0, err
		}
		if s.Players[1].Life <= 0 {
			return s.Turn, nil
		}
	}
	return s.Turn, nil
}

// DeckPair names one cell of a payoff matrix (including the diagonal,
// where DeckA and DeckB are the same deck): deck A on the play against
// deck B.
type DeckPair struct {
	DeckA, DeckB string
}

// PayoffMatrix solves every (deckA, deckB) pairing in decks with deckA on
// the play, fanning the |D|^2 independent solves out across workers --
// each gets its own Engine and transposition table since Engine isn't
// safe for concurrent use (spec.md §5, natural parallelism is at the
// root). The out-of-scope Nash solver consumes the resulting matrix.
func PayoffMatrix(cat *catalog.Catalog, decks map[string][]string, opts Options) (map[DeckPair]Result, error) {
	names := make([]string, 0, len(decks))
	for name := range decks {
		names = append(names, name)
	}

	type job struct {
		pair DeckPair
	}
	jobs := make([]job, 0, len(names)*len(names))
	for _, a := range names {
		for _, b := range names {
			jobs = append(jobs, job{pair: DeckPair{DeckA: a, DeckB: b}})
		}
	}

	results := make([]Result, len(jobs))
	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		i, j := i, j
		group.Go(func() error {
			res, err := Solve(cat, decks[j.pair.DeckA], decks[j.pair.DeckB], 0, opts)
			if err != nil {
				return fmt.Errorf("solving %s vs %s: %w", j.pair.DeckA, j.pair.DeckB, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	matrix := make(map[DeckPair]Result, len(jobs))
	for i, j := range jobs {
		matrix[j.pair] = results[i]
	}
	logger.Meta("payoff matrix computed for %d decks (%d pairings)", len(names), len(jobs))
	return matrix, nil
}
