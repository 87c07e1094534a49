package search

import (
	"testing"

	"github.com/3cbsolver/solver/pkg/catalog"
	"github.com/3cbsolver/solver/pkg/phase"
	"github.com/3cbsolver/solver/pkg/state"
	"github.com/3cbsolver/solver/pkg/terminal"
)

const testCatalog = `
bear:
  name: Grizzly Bear
  types: [creature]
  power: 3
  toughness: 3
  behavior: vanilla_creature
`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	e, err := NewEngine(cat, terminal.Detector{TurnCap: 5, RepetitionWindow: 3}, 1024)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestSearchFindsImmediateLethalAttack(t *testing.T) {
	e := testEngine(t)
	s := state.State{
		Players: [2]state.Player{
			{Life: 20, Battlefield: []state.Permanent{{CardID: "bear", Blocking: -1}}},
			{Life: 2},
		},
		Phase:        phase.Main1,
		Turn:         1,
		ActivePlayer: 0,
	}
	result, err := e.Search(s)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Value.Outcome != 1 {
		t.Errorf("Outcome = %d, want 1 (player 0 wins by attacking)", result.Value.Outcome)
	}
	if len(result.PrincipalVariation) == 0 {
		t.Error("expected a non-empty principal variation")
	}
}

func TestSearchDrawsWithNoCreatures(t *testing.T) {
	e := testEngine(t)
	s := state.State{
		Players: [2]state.Player{
			{Life: 20},
			{Life: 20},
		},
		Phase:        phase.Main1,
		Turn:         1,
		ActivePlayer: 0,
	}
	result, err := e.Search(s)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Value.Outcome != 0 {
		t.Errorf("Outcome = %d, want 0 (draw, neither side can deal damage)", result.Value.Outcome)
	}
}

func TestSearchDrawsByOnPathRepetitionWithoutTurnCap(t *testing.T) {
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// TurnCap disabled: with neither player able to affect the board,
	// the only thing that can stop this search is the on-path
	// repetition rule (spec.md §4.5) firing on the very first repeated
	// fingerprint, not the grinding window or a turn cap.
	e, err := NewEngine(cat, terminal.Detector{TurnCap: 0, RepetitionWindow: 3}, 1024)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	s := state.State{
		Players: [2]state.Player{
			{Life: 20},
			{Life: 20},
		},
		Phase:        phase.Main1,
		Turn:         1,
		ActivePlayer: 0,
	}
	result, err := e.Search(s)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Value.Outcome != 0 {
		t.Errorf("Outcome = %d, want 0 (draw by on-path repetition)", result.Value.Outcome)
	}
	if result.Partial {
		t.Error("expected an exact result, not a partial bound, from on-path repetition alone")
	}
}

func TestSearchRespectsNodeBudget(t *testing.T) {
	e := testEngine(t)
	e.NodeBudget = 1
	s := state.State{
		Players: [2]state.Player{
			{Life: 20, Battlefield: []state.Permanent{{CardID: "bear", Blocking: -1}}},
			{Life: 20},
		},
		Phase:        phase.Main1,
		Turn:         1,
		ActivePlayer: 0,
	}
	result, err := e.Search(s)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !result.Partial {
		t.Error("expected a partial result when the node budget is exhausted")
	}
}
