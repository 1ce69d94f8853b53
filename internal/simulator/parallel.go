package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/flushrush/internal/bets"
	"github.com/lox/flushrush/internal/rng"
)

// SimulateParallel partitions the hand count across workers and merges their
// accumulators into one summary. Each worker owns a private RNG stream seeded
// as "<seed>:<workerIndex>", so a run replays exactly for a fixed
// (seed, workerCount) pair; changing the worker count changes the partition
// and therefore the sampled hands.
//
// The run is all-or-nothing: any worker failure cancels the siblings and
// discards every partial tally.
func SimulateParallel(ctx context.Context, cfg Config) (*Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Hands {
		workers = cfg.Hands
	}

	logger := cfg.logger()
	logger.Debug("Starting parallel simulation", "hands", cfg.Hands, "workers", workers)

	type partial struct {
		tally         *bets.Tally
		dist          HandDistribution
		deterministic bool
	}

	base := cfg.Hands / workers
	remainder := cfg.Hands % workers

	g, ctx := errgroup.WithContext(ctx)
	partials := make([]partial, workers)
	progress := newProgressAggregator(workers, cfg.OnProgress)

	for w := 0; w < workers; w++ {
		hands := base
		if w < remainder {
			hands++
		}

		stream := workerStream(cfg.Seed, w)
		workerCfg := cfg
		workerCfg.Hands = hands
		workerCfg.OnProgress = progress.callback(w, hands, cfg.Hands)

		w := w
		g.Go(func() error {
			d := &driver{cfg: workerCfg, stream: stream}
			tally, dist, err := d.run(ctx)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			partials[w] = partial{tally: tally, dist: dist, deterministic: stream.Deterministic()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The reduction is a commutative field-wise sum over immutable partials,
	// so completion order cannot affect the merged summary.
	var merged bets.Tally
	var dist HandDistribution
	deterministic := true
	for _, p := range partials {
		merged.Merge(p.tally)
		dist.TotalHands += p.dist.TotalHands
		dist.AboveMinimum += p.dist.AboveMinimum
		dist.BelowMinimum += p.dist.BelowMinimum
		deterministic = deterministic && p.deterministic
	}

	// Rates are recomputed once on the merged totals; averaging the
	// workers' own percentages would double-weight small partitions.
	return newSummary(&merged, dist, deterministic), nil
}

// workerStream derives an independent stream per worker. With a base seed the
// sub-seed is the FNV hash of "<seed>:<index>"; without one each worker seeds
// from entropy.
func workerStream(seed *string, worker int) *rng.Stream {
	if seed == nil {
		return rng.NewNondeterministic()
	}
	return rng.New(rng.SeedFromText(fmt.Sprintf("%s:%d", *seed, worker)))
}

// progressAggregator folds per-worker progress into one hands-weighted
// percentage. Workers report from their own goroutines, so updates take a
// lock; the callback runs under it to keep the reported sequence
// non-decreasing.
type progressAggregator struct {
	mu         sync.Mutex
	weighted   []float64 // last percent * weight, per worker
	onProgress func(percent float64)
}

func newProgressAggregator(workers int, onProgress func(float64)) *progressAggregator {
	return &progressAggregator{
		weighted:   make([]float64, workers),
		onProgress: onProgress,
	}
}

func (p *progressAggregator) callback(worker, hands, totalHands int) func(float64) {
	if p.onProgress == nil {
		return nil
	}
	weight := float64(hands) / float64(totalHands)
	return func(percent float64) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.weighted[worker] = percent * weight
		total := 0.0
		for _, wp := range p.weighted {
			total += wp
		}
		p.onProgress(total)
	}
}
