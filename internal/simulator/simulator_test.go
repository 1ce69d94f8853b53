package simulator

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/lox/flushrush/internal/bets"
	"github.com/lox/flushrush/internal/deck"
)

func seed(s string) *string { return &s }

func testConfig(hands int) Config {
	return Config{
		Hands:            hands,
		Paytable:         bets.DefaultPaytable(),
		MinThreeCardRank: deck.Nine,
		Seed:             seed("42"),
	}
}

func TestSimulateDeterminism(t *testing.T) {
	a, err := Simulate(context.Background(), testConfig(200))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	b, err := Simulate(context.Background(), testConfig(200))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed produced different summaries:\n%+v\n%+v", a, b)
	}
}

func TestSimulateSeedChangesOutcome(t *testing.T) {
	cfg := testConfig(500)
	a, err := Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	cfg.Seed = seed("different")
	b, err := Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if reflect.DeepEqual(a.Results, b.Results) {
		t.Error("Different seeds produced identical results")
	}
}

func TestSimulateEndToEnd(t *testing.T) {
	summary, err := Simulate(context.Background(), testConfig(20))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if summary.HandDistribution.TotalHands != 20 {
		t.Errorf("TotalHands = %d, want 20", summary.HandDistribution.TotalHands)
	}
	if got := summary.HandDistribution.AboveMinimum + summary.HandDistribution.BelowMinimum; got != 20 {
		t.Errorf("Played+folded = %d, want 20", got)
	}
	if !summary.Deterministic {
		t.Error("Seeded run should be deterministic")
	}

	wantTypes := []string{"Base Game", "Flush Rush Bonus", "Super Flush Rush Bonus"}
	if len(summary.Results) != len(wantTypes) {
		t.Fatalf("Expected %d results, got %d", len(wantTypes), len(summary.Results))
	}
	for i, r := range summary.Results {
		if r.BetType != wantTypes[i] {
			t.Errorf("Result %d type = %q, want %q", i, r.BetType, wantTypes[i])
		}
		if r.TotalBet < 0 || math.IsNaN(r.TotalBet) || math.IsInf(r.TotalBet, 0) {
			t.Errorf("%s TotalBet not a finite non-negative number: %v", r.BetType, r.TotalBet)
		}
		if r.TotalWon < 0 || math.IsNaN(r.TotalWon) || math.IsInf(r.TotalWon, 0) {
			t.Errorf("%s TotalWon not a finite non-negative number: %v", r.BetType, r.TotalWon)
		}
		if math.IsNaN(r.ExpectedReturn) || math.IsNaN(r.WinRate) {
			t.Errorf("%s derived rates must never be NaN", r.BetType)
		}
	}

	// Side bets stake one unit per hand.
	for _, i := range []int{1, 2} {
		if summary.Results[i].TotalBet != 20 {
			t.Errorf("%s TotalBet = %v, want 20", summary.Results[i].BetType, summary.Results[i].TotalBet)
		}
	}
}

func TestSimulateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero hands", func(c *Config) { c.Hands = 0 }, ErrInvalidHands},
		{"negative hands", func(c *Config) { c.Hands = -5 }, ErrInvalidHands},
		{"threshold too low", func(c *Config) { c.MinThreeCardRank = deck.Three }, ErrInvalidThreshold},
		{"threshold too high", func(c *Config) { c.MinThreeCardRank = 15 }, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(10)
			tt.mutate(&cfg)
			_, err := Simulate(context.Background(), cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSimulateBadPaytable(t *testing.T) {
	cfg := testConfig(10)
	cfg.Paytable.FlushRush.FourCard = -1

	if _, err := Simulate(context.Background(), cfg); err == nil {
		t.Error("Negative paytable tier should fail validation")
	}
}

func TestSimulateCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Simulate(ctx, testConfig(1000))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if summary != nil {
		t.Error("Cancelled run must not return a partial summary")
	}
}

func TestSimulateProgress(t *testing.T) {
	var percents []float64
	cfg := testConfig(300)
	cfg.OnProgress = func(p float64) { percents = append(percents, p) }

	if _, err := Simulate(context.Background(), cfg); err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if len(percents) == 0 {
		t.Fatal("Expected progress callbacks")
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("Progress went backwards: %v -> %v", percents[i-1], percents[i])
		}
	}
	if last := percents[len(percents)-1]; last != 100 {
		t.Errorf("Final progress = %v, want 100", last)
	}
}

func TestSimulateProgressDoesNotChangeOutcome(t *testing.T) {
	quiet, err := Simulate(context.Background(), testConfig(100))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	cfg := testConfig(100)
	cfg.OnProgress = func(float64) {}
	noisy, err := Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if !reflect.DeepEqual(quiet, noisy) {
		t.Error("Progress reporting must not affect the RNG stream or outcome")
	}
}

func TestSimulateWithoutSeed(t *testing.T) {
	cfg := testConfig(10)
	cfg.Seed = nil

	summary, err := Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if summary.Deterministic {
		t.Error("Unseeded run must be flagged non-deterministic")
	}
}

func TestHandDistributionPercentages(t *testing.T) {
	d := HandDistribution{TotalHands: 200, AboveMinimum: 150, BelowMinimum: 50}
	if d.PlayedPercent() != 75 {
		t.Errorf("PlayedPercent = %v, want 75", d.PlayedPercent())
	}
	if d.FoldedPercent() != 25 {
		t.Errorf("FoldedPercent = %v, want 25", d.FoldedPercent())
	}

	var empty HandDistribution
	if empty.PlayedPercent() != 0 || empty.FoldedPercent() != 0 {
		t.Error("Empty distribution should derive zeros")
	}
}
