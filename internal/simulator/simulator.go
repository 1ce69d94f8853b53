// Package simulator runs the per-hand Monte Carlo loop for the flush
// comparison game and aggregates results across parallel workers.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/lox/flushrush/internal/bets"
	"github.com/lox/flushrush/internal/deck"
	"github.com/lox/flushrush/internal/evaluator"
	"github.com/lox/flushrush/internal/rng"
)

const handSize = 7

// ErrInvalidHands is returned when a run is requested with no hands.
var ErrInvalidHands = errors.New("number of hands must be positive")

// ErrInvalidThreshold is returned for a 3-card-flush threshold outside the
// accepted set {0, 5..14}.
var ErrInvalidThreshold = errors.New("minimum 3-card flush rank must be 0 or between 5 and 14")

// Config holds configuration for running simulations.
type Config struct {
	// Hands is the number of hands to simulate.
	Hands int

	// Paytable holds the side-bet payout tables.
	Paytable bets.Paytable

	// MinThreeCardRank is the high-card threshold below which a 3-card
	// flush folds. Zero plays every 3-card flush.
	MinThreeCardRank deck.Rank

	// Seed makes the run reproducible. Nil seeds from the system entropy
	// source and the resulting run is flagged non-deterministic.
	Seed *string

	// Workers is the parallel worker count; zero or negative means the
	// available hardware parallelism, capped at the hand count.
	Workers int

	// OnProgress, when set, is called with a 0..100 percentage roughly
	// every 1% of hands. It must be fast; it runs on the simulation
	// goroutine.
	OnProgress func(percent float64)

	Logger *log.Logger
}

func (c Config) validate() error {
	if c.Hands <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHands, c.Hands)
	}
	if !bets.ValidThreshold(c.MinThreeCardRank) {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, c.MinThreeCardRank)
	}
	if err := c.Paytable.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}

// HandDistribution counts hands the player played versus folded. Percentages
// are derived, never stored, so the counts cannot drift.
type HandDistribution struct {
	TotalHands   int `json:"totalHands"`
	AboveMinimum int `json:"aboveMinimum"`
	BelowMinimum int `json:"belowMinimum"`
}

// PlayedPercent is the share of hands played, 0..100.
func (d HandDistribution) PlayedPercent() float64 {
	if d.TotalHands == 0 {
		return 0
	}
	return float64(d.AboveMinimum) / float64(d.TotalHands) * 100
}

// FoldedPercent is the share of hands folded, 0..100.
func (d HandDistribution) FoldedPercent() float64 {
	if d.TotalHands == 0 {
		return 0
	}
	return float64(d.BelowMinimum) / float64(d.TotalHands) * 100
}

// Result is the outcome of one bet category over a run.
type Result struct {
	BetType        string  `json:"betType"`
	TotalBet       float64 `json:"totalBet"`
	TotalWon       float64 `json:"totalWon"`
	ExpectedReturn float64 `json:"expectedReturn"`
	HandsWon       int     `json:"handsWon"`
	HandsLost      int     `json:"handsLost"`
	WinRate        float64 `json:"winRate"`
}

// Summary is the terminal artifact of a run: one result per bet category
// plus the play/fold distribution.
type Summary struct {
	Results          []Result         `json:"results"`
	HandDistribution HandDistribution `json:"handDistribution"`

	// Deterministic reports whether the run can be replayed from its
	// seed. False means the entropy-seeded fallback was used.
	Deterministic bool `json:"deterministic"`
}

// Simulate runs a single-threaded simulation. Same seed, same summary.
func Simulate(ctx context.Context, cfg Config) (*Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	stream := newStream(cfg.Seed)
	d := &driver{cfg: cfg, stream: stream}
	tally, dist, err := d.run(ctx)
	if err != nil {
		return nil, err
	}
	return newSummary(tally, dist, stream.Deterministic()), nil
}

func newStream(seed *string) *rng.Stream {
	if seed == nil {
		return rng.NewNondeterministic()
	}
	return rng.NewFromText(*seed)
}

// driver owns one hand loop: a private RNG stream and private accumulators.
// Drivers share nothing, so workers need no locks.
type driver struct {
	cfg    Config
	stream *rng.Stream
}

func (d *driver) run(ctx context.Context) (*bets.Tally, HandDistribution, error) {
	resolver := bets.NewResolver(d.cfg.Paytable, d.cfg.MinThreeCardRank)
	canonical := deck.New()

	var tally bets.Tally
	var dist HandDistribution

	step := d.cfg.Hands / 100
	if step < 1 {
		step = 1
	}

	for i := 0; i < d.cfg.Hands; i++ {
		if err := ctx.Err(); err != nil {
			return nil, HandDistribution{}, err
		}

		shuffled := canonical.Shuffle(d.stream)
		player := []deck.Card(shuffled[:handSize])
		dealer := []deck.Card(shuffled[handSize : 2*handSize])
		evaluator.SortHand(player)
		evaluator.SortHand(dealer)

		playerFlush := evaluator.BestFlush(player)
		dealerFlush := evaluator.BestFlush(dealer)
		straightLen := evaluator.LongestStraightFlush(player)

		played := resolver.Resolve(playerFlush, dealerFlush, straightLen, &tally)
		dist.TotalHands++
		if played {
			dist.AboveMinimum++
		} else {
			dist.BelowMinimum++
		}

		if (i+1)%step == 0 || i+1 == d.cfg.Hands {
			if d.cfg.OnProgress != nil {
				d.cfg.OnProgress(float64(i+1) / float64(d.cfg.Hands) * 100)
			}
			// Let a responsive caller breathe. This never touches the
			// stream, so yielding cannot change the outcome.
			runtime.Gosched()
		}
	}

	return &tally, dist, nil
}

func newSummary(tally *bets.Tally, dist HandDistribution, deterministic bool) *Summary {
	results := make([]Result, bets.NumBetTypes)
	for bt := bets.BetType(0); bt < bets.NumBetTypes; bt++ {
		a := tally[bt]
		results[bt] = Result{
			BetType:        bt.String(),
			TotalBet:       a.TotalBet,
			TotalWon:       a.TotalWon,
			ExpectedReturn: a.ExpectedReturn(),
			HandsWon:       a.HandsWon,
			HandsLost:      a.HandsLost,
			WinRate:        a.WinRate(),
		}
	}
	return &Summary{
		Results:          results,
		HandDistribution: dist,
		Deterministic:    deterministic,
	}
}
