package search

// Value is a game-theoretic result from player 0's perspective (whichever
// player holds the play), paired with how many plies from the root it was reached
// at so ties can prefer faster wins and slower losses (spec.md §4.5:
// "value pair (outcome, -depth) compared lexicographically").
type Value struct {
	// Outcome is -1, 0, or +1: player 1 wins, draw, or player 0 wins.
	Outcome int
	// Depth is the number of plies from the root at which Outcome was
	// reached.
	Depth int
}

// Score folds Value into a single int that increases monotonically with
// how good the position is for player 0 -- player 0 maximizes Score,
// player 1 minimizes it. A win closer to the root (smaller Depth) scores
// higher than a win further away; a loss further from the root scores
// higher (less bad) than one closer.
func (v Value) Score() int {
	const winMagnitude = 1 << 20
	switch {
	case v.Outcome > 0:
		return winMagnitude - v.Depth
	case v.Outcome < 0:
		return -winMagnitude + v.Depth
	default:
		return 0
	}
}

// Better reports whether v is strictly preferable to other from the
// point of view of mover (0 maximizes Score, 1 minimizes it).
func (v Value) Better(other Value, mover int) bool {
	if mover == 0 {
		return v.Score() > other.Score()
	}
	return v.Score() < other.Score()
}

// BoundType records whether a transposition-table entry's Value is an
// exact result or only a bound produced by an alpha-beta cutoff.
type BoundType int

const (
	Exact BoundType = iota
	LowerBound
	UpperBound
)
