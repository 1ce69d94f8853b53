package bets

import (
	"github.com/lox/flushrush/internal/deck"
	"github.com/lox/flushrush/internal/evaluator"
)

// Stakes are fixed at one unit per bet: the ante and each side bet.
const (
	Ante         = 1.0
	SideBetStake = 1.0
)

// BetType indexes the three bet categories. The set is closed, so
// accumulators live in a fixed array rather than a keyed map.
type BetType int

const (
	BaseGame BetType = iota
	FlushRushBonus
	SuperFlushRushBonus
	NumBetTypes
)

// String returns the display label for the bet type.
func (bt BetType) String() string {
	switch bt {
	case BaseGame:
		return "Base Game"
	case FlushRushBonus:
		return "Flush Rush Bonus"
	case SuperFlushRushBonus:
		return "Super Flush Rush Bonus"
	default:
		return "Unknown"
	}
}

// Accumulator tracks one bet category across a run. All fields only ever
// increase, so two accumulators merge by field-wise summation.
type Accumulator struct {
	TotalBet  float64
	TotalWon  float64
	HandsWon  int
	HandsLost int
}

// Merge adds another accumulator's totals into this one.
func (a *Accumulator) Merge(o Accumulator) {
	a.TotalBet += o.TotalBet
	a.TotalWon += o.TotalWon
	a.HandsWon += o.HandsWon
	a.HandsLost += o.HandsLost
}

// ExpectedReturn is the net return as a percentage of the amount wagered.
// Zero wagered yields zero, never NaN.
func (a Accumulator) ExpectedReturn() float64 {
	if a.TotalBet == 0 {
		return 0
	}
	return (a.TotalWon - a.TotalBet) / a.TotalBet * 100
}

// WinRate is the share of decided hands won, as a percentage. Pushes count as
// neither won nor lost. Zero decided hands yields zero.
func (a Accumulator) WinRate() float64 {
	decided := a.HandsWon + a.HandsLost
	if decided == 0 {
		return 0
	}
	return float64(a.HandsWon) / float64(decided) * 100
}

// Tally holds the accumulators for all three bet categories.
type Tally [NumBetTypes]Accumulator

// Merge folds another tally into this one field-wise.
func (t *Tally) Merge(o *Tally) {
	for i := range t {
		t[i].Merge(o[i])
	}
}

// ValidThreshold reports whether a minimum 3-card-flush rank is in the
// accepted set: 0 for "always play", or Five through Ace. Lower thresholds
// are meaningless since the weakest 3-card flush is already 4-high.
func ValidThreshold(r deck.Rank) bool {
	return r == 0 || (r >= deck.Five && r <= deck.Ace)
}

// Resolver applies the betting rules for one configuration of paytable and
// fold threshold.
type Resolver struct {
	paytable  Paytable
	threshold deck.Rank
}

// NewResolver creates a resolver. A zero threshold means every 3-card flush
// is played.
func NewResolver(paytable Paytable, threshold deck.Rank) *Resolver {
	return &Resolver{paytable: paytable, threshold: threshold}
}

// ShouldFold implements the player strategy: fold anything under three cards,
// and 3-card flushes below the configured high-card threshold. Four cards or
// more always play.
func (r *Resolver) ShouldFold(player evaluator.Flush) bool {
	switch {
	case len(player) < 3:
		return true
	case len(player) == 3 && r.threshold != 0 && evaluator.HighCard(player) < r.threshold:
		return true
	default:
		return false
	}
}

// PlayWager sizes the play wager by flush length: triple ante at six or more
// cards, double at five, single otherwise.
func PlayWager(flushLength int) float64 {
	switch {
	case flushLength >= 6:
		return 3 * Ante
	case flushLength == 5:
		return 2 * Ante
	default:
		return Ante
	}
}

// DealerQualifies reports whether the dealer's flush contests the play
// wager: four or more cards always, exactly three only 9-high or better.
// This rule is fixed by the game, not configurable.
func DealerQualifies(dealer evaluator.Flush) bool {
	switch {
	case len(dealer) > 3:
		return true
	case len(dealer) < 3:
		return false
	default:
		return evaluator.HighCard(dealer) >= deck.Nine
	}
}

// Resolve settles one hand into the tally: the base game against the dealer
// and both side bets, which pay on the player's cards regardless of the
// fold/play outcome. It reports whether the hand was played.
func (r *Resolver) Resolve(player, dealer evaluator.Flush, straightFlushLen int, tally *Tally) bool {
	played := !r.ShouldFold(player)

	base := &tally[BaseGame]
	if !played {
		// Fold forfeits the ante only.
		base.TotalBet += Ante
		base.HandsLost++
	} else {
		wager := Ante + PlayWager(len(player))
		base.TotalBet += wager
		switch {
		case !DealerQualifies(dealer):
			// Ante pays even money, play wager pushes.
			base.TotalWon += wager + Ante
			base.HandsWon++
		default:
			switch cmp := evaluator.CompareFlushes(player, dealer); {
			case cmp > 0:
				base.TotalWon += 2 * wager
				base.HandsWon++
			case cmp < 0:
				base.HandsLost++
			default:
				// Push: full stake returned.
				base.TotalWon += wager
			}
		}
	}

	flushRush := &tally[FlushRushBonus]
	flushRush.TotalBet += SideBetStake
	if m, ok := r.paytable.FlushRush.Multiplier(len(player)); ok {
		flushRush.TotalWon += SideBetStake * (1 + m)
		flushRush.HandsWon++
	} else {
		flushRush.HandsLost++
	}

	superRush := &tally[SuperFlushRushBonus]
	superRush.TotalBet += SideBetStake
	if m, ok := r.paytable.SuperFlushRush.Multiplier(straightFlushLen); ok {
		superRush.TotalWon += SideBetStake * (1 + m)
		superRush.HandsWon++
	} else {
		superRush.HandsLost++
	}

	return played
}
