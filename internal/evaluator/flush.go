// Package evaluator finds the best flush and the longest straight-flush run
// in a seven-card hand. Only flushes matter in this game; there is no general
// poker hand ranking.
package evaluator

import (
	"sort"

	"github.com/lox/flushrush/internal/deck"
)

// Flush is a sequence of same-suit cards sorted by descending rank. It may be
// empty when a hand holds no cards of a suit.
type Flush []deck.Card

// SortHand sorts cards in place by suit then descending rank. The suit order
// is the fixed deck.Suit order and only makes grouping deterministic; it
// carries no hand-strength meaning.
func SortHand(cards []deck.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit < cards[j].Suit
		}
		return cards[i].Rank > cards[j].Rank
	})
}

// SuitGroups splits cards into per-suit groups, each sorted descending by
// rank. Ranks within a suit are unique, so the order is total.
func SuitGroups(cards []deck.Card) [4]Flush {
	var groups [4]Flush
	for _, c := range cards {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	for s := range groups {
		g := groups[s]
		sort.Slice(g, func(i, j int) bool { return g[i].Rank > g[j].Rank })
	}
	return groups
}

// BestFlush returns the strongest suit group: most cards first, rank
// comparison breaking ties.
func BestFlush(cards []deck.Card) Flush {
	groups := SuitGroups(cards)
	best := groups[0]
	for _, g := range groups[1:] {
		if CompareFlushes(g, best) > 0 {
			best = g
		}
	}
	return best
}

// CompareFlushes orders two flushes: a longer flush always wins; at equal
// length the first differing rank from the top decides. Returns >0 when a is
// stronger, <0 when b is, 0 on a full tie.
func CompareFlushes(a, b Flush) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	for i := range a {
		if a[i].Rank != b[i].Rank {
			if a[i].Rank > b[i].Rank {
				return 1
			}
			return -1
		}
	}
	return 0
}

// HighCard returns the top rank of a flush, or 0 when the flush is empty.
func HighCard(f Flush) deck.Rank {
	if len(f) == 0 {
		return 0
	}
	return f[0].Rank
}

// LongestStraightFlush returns the length of the longest run of consecutive
// ranks within any single suit. The ace counts high (A-K-Q...) and, checked
// independently, low (A-2-3...); the two checks never combine into one run
// and the maximum of both is returned.
func LongestStraightFlush(cards []deck.Card) int {
	best := 0
	for _, g := range SuitGroups(cards) {
		if len(g) == 0 {
			continue
		}
		if n := longestRun(g); n > best {
			best = n
		}
		if n := wheelRun(g); n > best {
			best = n
		}
	}
	return best
}

// longestRun counts the longest consecutive descending streak in a group
// already sorted by descending rank.
func longestRun(g Flush) int {
	best, run := 1, 1
	for i := 1; i < len(g); i++ {
		if g[i].Rank == g[i-1].Rank-1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}

// wheelRun treats a present ace as rank 1 and counts how far the run extends
// upward from Two. Without an ace there is no wheel.
func wheelRun(g Flush) int {
	var present [15]bool
	hasAce := false
	for _, c := range g {
		present[c.Rank] = true
		if c.IsAce() {
			hasAce = true
		}
	}
	if !hasAce {
		return 0
	}

	n := 1
	for r := deck.Two; r < deck.Ace && present[r]; r++ {
		n++
	}
	return n
}
