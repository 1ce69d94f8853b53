package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/flushrush/internal/bets"
	"github.com/lox/flushrush/internal/deck"
	"github.com/lox/flushrush/internal/simulator"
)

// SimulateCmd runs a simulation locally and prints the summary.
type SimulateCmd struct {
	Hands        int     `kong:"default='100000',help='Number of hands to simulate'"`
	MinThreeCard int     `kong:"name='min-three-card-rank',default='9',help='Fold 3-card flushes high-carded below this rank (0 plays all of them)'"`
	Seed         *string `kong:"help='Seed for a reproducible run, a number or any text'"`
	Workers      int     `kong:"help='Parallel workers (default: all CPUs)'"`
	Paytable     string  `kong:"type='path',help='HCL paytable file (built-in tables when absent)'"`
	Table        string  `kong:"default='default',help='Named paytable block to use'"`
	JSON         bool    `kong:"help='Emit the summary as JSON'"`
	NoProgress   bool    `kong:"help='Disable the progress display'"`
	Debug        bool    `kong:"help='Enable debug logging'"`

	clock quartz.Clock
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)
	ctx, cancel := context.WithCancel(setupSignalHandler(logger))
	defer cancel()

	if c.clock == nil {
		c.clock = quartz.NewReal()
	}

	paytable, err := bets.LoadPaytable(c.Paytable, c.Table)
	if err != nil {
		return err
	}

	cfg := simulator.Config{
		Hands:            c.Hands,
		Paytable:         paytable,
		MinThreeCardRank: deck.Rank(c.MinThreeCard),
		Seed:             c.Seed,
		Workers:          c.Workers,
		Logger:           logger,
	}

	display := c.newProgressDisplay(cancel)
	cfg.OnProgress = display.Update

	watch := newStopwatch(c.clock)
	summary, err := simulator.SimulateParallel(ctx, cfg)
	elapsed := watch.Elapsed()
	display.Close()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Simulation cancelled, no summary produced")
		}
		return err
	}

	if c.JSON {
		return writeJSONSummary(os.Stdout, summary, c.seedLabel(), elapsed)
	}

	renderSummary(os.Stdout, summary, renderOptions{
		Hands:   c.Hands,
		Seed:    c.seedLabel(),
		Elapsed: elapsed,
	})
	return nil
}

// seedLabel is what gets echoed back to the user so the run can be replayed.
func (c *SimulateCmd) seedLabel() string {
	if c.Seed != nil {
		return *c.Seed
	}
	return ""
}

// newProgressDisplay picks a display for the terminal at hand: a live bar on
// an interactive terminal, dots on a pipe, nothing for JSON output.
func (c *SimulateCmd) newProgressDisplay(cancel context.CancelFunc) progressDisplay {
	if c.NoProgress || c.JSON {
		return noProgress{}
	}
	if interactiveTerminal() {
		return newProgressBar(cancel)
	}
	return newDotMonitor(os.Stderr)
}

func interactiveTerminal() bool {
	return termenv.ColorProfile() != termenv.Ascii
}

type jsonSummary struct {
	*simulator.Summary
	Seed      string `json:"seed,omitempty"`
	ElapsedMs int64  `json:"elapsedMs"`
}

func writeJSONSummary(w io.Writer, summary *simulator.Summary, seed string, elapsed time.Duration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonSummary{
		Summary:   summary,
		Seed:      seed,
		ElapsedMs: elapsed.Milliseconds(),
	})
}

// stopwatch measures elapsed wall time through an injectable clock.
type stopwatch struct {
	clock quartz.Clock
	start time.Time
}

func newStopwatch(clock quartz.Clock) *stopwatch {
	return &stopwatch{clock: clock, start: clock.Now()}
}

func (s *stopwatch) Elapsed() time.Duration {
	return s.clock.Since(s.start)
}

func setupLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return ctx
}
