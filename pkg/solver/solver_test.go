package solver

import (
	"testing"

	"github.com/3cbsolver/solver/pkg/catalog"
)

const testCatalog = `
bear:
  name: Grizzly Bear
  types: [creature]
  power: 3
  toughness: 3
  behavior: vanilla_creature
`

func testCat(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return cat
}

func TestSolveWithNoCardsIsADraw(t *testing.T) {
	cat := testCat(t)
	res, err := Solve(cat, nil, nil, 0, Options{TurnCap: 5})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if res.Value.Outcome != 0 {
		t.Errorf("Outcome = %d, want 0 (draw with no cards in either hand)", res.Value.Outcome)
	}
}

func TestGoldfishNoCreaturesNeverKills(t *testing.T) {
	cat := testCat(t)
	res, err := Goldfish(cat, nil, 5)
	if err != nil {
		t.Fatalf("Goldfish failed: %v", err)
	}
	if res.Killed {
		t.Error("expected no kill with an empty hand")
	}
}

func TestPayoffMatrixCoversEveryPairing(t *testing.T) {
	cat := testCat(t)
	decks := map[string][]string{
		"empty": nil,
	}
	matrix, err := PayoffMatrix(cat, decks, Options{TurnCap: 5})
	if err != nil {
		t.Fatalf("PayoffMatrix failed: %v", err)
	}
	if len(matrix) != 1 {
		t.Fatalf("len(matrix) = %d, want 1", len(matrix))
	}
	res, ok := matrix[DeckPair{DeckA: "empty", DeckB: "empty"}]
	if !ok {
		t.Fatal("missing empty-vs-empty cell")
	}
	if res.Value.Outcome != 0 {
		t.Errorf("Outcome = %d, want 0", res.Value.Outcome)
	}
}
