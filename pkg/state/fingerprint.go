package state

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns the canonical hash of the state, used as the
// transposition-table key and the repetition-path key (spec.md §4.5).
//
// Two states that differ only in symmetries that don't affect play --
// the append order of permanents on a battlefield, the order of cards
// within a hand -- must hash identically (spec.md §4.5: "Symmetries that
// don't affect play... must be normalized before hashing"). Battlefield
// entries are therefore re-ranked into a canonical order before being
// folded into the hash, and every index that crosses from one player's
// combat-scratch references into the other player's battlefield is
// rewritten through that canonical rank.
//
// Absolute turn count is deliberately excluded in favor of turn parity:
// two boards that are otherwise identical represent the same strategic
// position regardless of how many turns it took to reach them (the turn
// cap itself is enforced by pkg/terminal, not by the transposition key).
func (s State) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	writeStr := func(str string) {
		writeInt(len(str))
		h.Write([]byte(str))
	}

	writeInt(s.Turn % 2)
	writeInt(int(s.Phase))
	writeInt(s.ActivePlayer)
	writeInt(s.Priority)

	var rank [2][]int
	for pi := 0; pi < 2; pi++ {
		rank[pi] = canonicalRank(s.Players[pi].Battlefield)
	}

	for pi := 0; pi < 2; pi++ {
		p := s.Players[pi]
		other := rank[Opponent(pi)]

		writeInt(p.Life)
		writeInt(p.Mana.W)
		writeInt(p.Mana.U)
		writeInt(p.Mana.B)
		writeInt(p.Mana.R)
		writeInt(p.Mana.G)
		writeInt(p.Mana.C)
		writeInt(p.LibraryCount)
		writeInt(p.GraveyardCount)
		writeInt(boolToInt(p.LandPlayedThisTurn))

		hand := append([]string(nil), p.Hand...)
		sort.Strings(hand)
		writeInt(len(hand))
		for _, c := range hand {
			writeStr(c)
		}

		descs := make([]string, len(p.Battlefield))
		for i, perm := range p.Battlefield {
			descs[i] = permanentDescriptor(perm, other)
		}
		sort.Strings(descs)
		writeInt(len(descs))
		for _, d := range descs {
			writeStr(d)
		}
	}

	activeRank := rank[s.ActivePlayer]
	defenderRank := rank[Opponent(s.ActivePlayer)]

	attackers := make([]int, len(s.Combat.Attackers))
	for i, a := range s.Combat.Attackers {
		attackers[i] = activeRank[a]
	}
	sort.Ints(attackers)
	writeInt(len(attackers))
	for _, a := range attackers {
		writeInt(a)
	}

	type blockEntry struct {
		attacker int
		blockers []int
	}
	entries := make([]blockEntry, 0, len(s.Combat.Blocks))
	for atk, blockers := range s.Combat.Blocks {
		bl := make([]int, len(blockers))
		for i, b := range blockers {
			bl[i] = defenderRank[b]
		}
		sort.Ints(bl)
		entries = append(entries, blockEntry{activeRank[atk], bl})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].attacker < entries[j].attacker })
	writeInt(len(entries))
	for _, e := range entries {
		writeInt(e.attacker)
		writeInt(len(e.blockers))
		for _, b := range e.blockers {
			writeInt(b)
		}
	}

	// Attackers whose damage order has been chosen; the order itself is
	// carried by BlockedBy in the permanent descriptors.
	ordered := make([]int, 0, len(s.Combat.DamageOrder))
	for atk := range s.Combat.DamageOrder {
		ordered = append(ordered, activeRank[atk])
	}
	sort.Ints(ordered)
	writeInt(len(ordered))
	for _, a := range ordered {
		writeInt(a)
	}

	return h.Sum64()
}

// canonicalRank maps each original battlefield index to a position in a
// deterministic, content-sorted order.
func canonicalRank(battlefield []Permanent) []int {
	type item struct {
		idx  int
		desc string
	}
	items := make([]item, len(battlefield))
	for i, p := range battlefield {
		items[i] = item{i, permanentDescriptor(p, nil)}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].desc != items[j].desc {
			return items[i].desc < items[j].desc
		}
		return items[i].idx < items[j].idx
	})
	rank := make([]int, len(battlefield))
	for newPos, it := range items {
		rank[it.idx] = newPos
	}
	return rank
}

// permanentDescriptor renders a permanent's full state as a string,
// rewriting any index into the opposing battlefield through otherRank
// (nil when computing the sort key itself, before otherRank is known).
func permanentDescriptor(p Permanent, otherRank []int) string {
	remap := func(idx int) int {
		if idx < 0 || otherRank == nil {
			return idx
		}
		return otherRank[idx]
	}

	counterKeys := make([]string, 0, len(p.Counters))
	for k := range p.Counters {
		counterKeys = append(counterKeys, k)
	}
	sort.Strings(counterKeys)
	counters := ""
	for _, k := range counterKeys {
		counters += fmt.Sprintf("%s=%d,", k, p.Counters[k])
	}

	activated := make([]string, 0, len(p.ActivatedThisTurn))
	for k := range p.ActivatedThisTurn {
		activated = append(activated, k)
	}
	sort.Strings(activated)
	usage := ""
	for _, k := range activated {
		usage += fmt.Sprintf("%s=%d,", k, p.ActivatedThisTurn[k])
	}

	// BlockedBy is the literal damage-assignment order (spec.md §4.4), not
	// an unordered set -- two states whose only difference is which
	// blocker an attacker assigns damage to first can have different
	// outcomes, so the order must survive into the fingerprint unsorted.
	blockedBy := make([]int, len(p.BlockedBy))
	for i, b := range p.BlockedBy {
		blockedBy[i] = remap(b)
	}

	return fmt.Sprintf(
		"%s|c=%d|o=%d|t=%v|ss=%v|dmg=%d|ctr={%s}|atk=%v|blk=%d|bby=%v|ha=%v|hb=%v|used={%s}|an=%v|tp=%d|tt=%d|bp=%d|bt=%d",
		p.CardID, p.Controller, p.Owner, p.Tapped, p.SummoningSick, p.Damage,
		counters, p.Attacking, remap(p.Blocking), blockedBy, p.HasAttacked,
		p.HasBlocked, usage, p.Animated, p.TempPower, p.TempToughness,
		p.BonusPower, p.BonusToughness,
	)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
