package deckreg

import "testing"

func TestAllHandsCountsCombinationsWithRepetition(t *testing.T) {
	hands := AllHands([]string{"a", "b"})
	// C(2+3-1, 3) = C(4,3) = 4 multisets of size 3 from 2 items.
	if len(hands) != 4 {
		t.Fatalf("len(hands) = %d, want 4", len(hands))
	}
	for _, h := range hands {
		if len(h) != 3 {
			t.Errorf("hand %v has length %d, want 3", h, len(h))
		}
	}
}

func TestNamedAllHandsProducesUniqueNames(t *testing.T) {
	named := NamedAllHands([]string{"a", "b", "c"})
	// C(3+3-1, 3) = 10 hands; a name collision would leave fewer entries.
	if len(named) != len(AllHands([]string{"a", "b", "c"})) {
		t.Errorf("len(named) = %d, want %d (one unique name per hand)", len(named), len(AllHands([]string{"a", "b", "c"})))
	}
	seen := map[string]bool{}
	for name := range named {
		if seen[name] {
			t.Errorf("duplicate synthetic name %q", name)
		}
		seen[name] = true
	}
}
