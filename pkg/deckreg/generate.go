package deckreg

// AllHands returns every three-card combination (with repetition)
// drawable from cardIDs, one per distinct multiset so that permutations
// of the same three cards aren't returned twice. Used by the CLI's
// metagame command to run a payoff matrix over a whole catalog instead
// of a curated registry, generalizing the teacher's fixed-deck-size
// combination generator to 3CB's three-card hand size.
func AllHands(cardIDs []string) [][]string {
	var hands [][]string
	var generate func(current []string, remaining int, start int)
	generate = func(current []string, remaining int, start int) {
		if remaining == 0 {
			hands = append(hands, append([]string(nil), current...))
			return
		}
		for i := start; i < len(cardIDs); i++ {
			generate(append(current, cardIDs[i]), remaining-1, i)
		}
	}
	generate(nil, 3, 0)
	return hands
}

// NamedAllHands labels each combination from AllHands with a synthetic
// short name so it can be fed directly into solver.PayoffMatrix the same
// way a loaded Registry's All() would be.
func NamedAllHands(cardIDs []string) map[string][]string {
	hands := AllHands(cardIDs)
	named := make(map[string][]string, len(hands))
	for i, hand := range hands {
		named[syntheticName(i, hand)] = hand
	}
	return named
}

func syntheticName(i int, hand []string) string {
	name := hand[0]
	for _, c := range hand[1:] {
		name += "+" + c
	}
	return name
}
