// Package bets resolves a single hand of the flush-comparison game: the
// fold/play decision, play-wager sizing, the base game against the dealer and
// the two independent side bets. It also owns the payout tables and the
// per-bet accumulators the simulator aggregates.
package bets

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FlushRushTable holds the Flush Rush bonus multipliers ("odds-to-1") keyed
// by player flush length. Lengths below four lose the stake.
type FlushRushTable struct {
	FourCard  float64 `hcl:"four_card" json:"fourCard"`
	FiveCard  float64 `hcl:"five_card" json:"fiveCard"`
	SixCard   float64 `hcl:"six_card" json:"sixCard"`
	SevenCard float64 `hcl:"seven_card" json:"sevenCard"`
}

// Multiplier returns the payout multiplier for a flush of the given length
// and whether the length qualifies at all.
func (t FlushRushTable) Multiplier(length int) (float64, bool) {
	switch {
	case length >= 7:
		return t.SevenCard, true
	case length == 6:
		return t.SixCard, true
	case length == 5:
		return t.FiveCard, true
	case length == 4:
		return t.FourCard, true
	default:
		return 0, false
	}
}

// SuperFlushRushTable holds the Super Flush Rush multipliers keyed by the
// longest straight-flush length. Lengths below three lose the stake.
type SuperFlushRushTable struct {
	ThreeCardStraight float64 `hcl:"three_card_straight" json:"threeCardStraight"`
	FourCardStraight  float64 `hcl:"four_card_straight" json:"fourCardStraight"`
	FiveCardStraight  float64 `hcl:"five_card_straight" json:"fiveCardStraight"`
	SixCardStraight   float64 `hcl:"six_card_straight" json:"sixCardStraight"`
	SevenCardStraight float64 `hcl:"seven_card_straight" json:"sevenCardStraight"`
}

// Multiplier returns the payout multiplier for a straight flush of the given
// length and whether the length qualifies at all.
func (t SuperFlushRushTable) Multiplier(length int) (float64, bool) {
	switch {
	case length >= 7:
		return t.SevenCardStraight, true
	case length == 6:
		return t.SixCardStraight, true
	case length == 5:
		return t.FiveCardStraight, true
	case length == 4:
		return t.FourCardStraight, true
	case length == 3:
		return t.ThreeCardStraight, true
	default:
		return 0, false
	}
}

// Paytable is the full payout configuration for one run. Both tables are
// independent of the base game.
type Paytable struct {
	FlushRush      FlushRushTable      `hcl:"flush_rush,block" json:"flushRush"`
	SuperFlushRush SuperFlushRushTable `hcl:"super_flush_rush,block" json:"superFlushRush"`
}

// DefaultPaytable returns the house-standard payout tables.
func DefaultPaytable() Paytable {
	return Paytable{
		FlushRush: FlushRushTable{
			FourCard:  1,
			FiveCard:  10,
			SixCard:   100,
			SevenCard: 300,
		},
		SuperFlushRush: SuperFlushRushTable{
			ThreeCardStraight: 7,
			FourCardStraight:  60,
			FiveCardStraight:  100,
			SixCardStraight:   1000,
			SevenCardStraight: 8000,
		},
	}
}

// Validate checks every tier is a usable multiplier.
func (p Paytable) Validate() error {
	tiers := []struct {
		name  string
		value float64
	}{
		{"flush_rush.four_card", p.FlushRush.FourCard},
		{"flush_rush.five_card", p.FlushRush.FiveCard},
		{"flush_rush.six_card", p.FlushRush.SixCard},
		{"flush_rush.seven_card", p.FlushRush.SevenCard},
		{"super_flush_rush.three_card_straight", p.SuperFlushRush.ThreeCardStraight},
		{"super_flush_rush.four_card_straight", p.SuperFlushRush.FourCardStraight},
		{"super_flush_rush.five_card_straight", p.SuperFlushRush.FiveCardStraight},
		{"super_flush_rush.six_card_straight", p.SuperFlushRush.SixCardStraight},
		{"super_flush_rush.seven_card_straight", p.SuperFlushRush.SevenCardStraight},
	}
	for _, tier := range tiers {
		if tier.value < 0 {
			return fmt.Errorf("paytable tier %s is negative: %v", tier.name, tier.value)
		}
		if tier.value != tier.value { // NaN
			return fmt.Errorf("paytable tier %s is not a number", tier.name)
		}
	}
	return nil
}

// paytableFile is the root schema for an HCL paytable file containing one or
// more named tables.
type paytableFile struct {
	Paytables []namedPaytable `hcl:"paytable,block"`
}

type namedPaytable struct {
	Name           string              `hcl:"name,label"`
	FlushRush      FlushRushTable      `hcl:"flush_rush,block" json:"flushRush"`
	SuperFlushRush SuperFlushRushTable `hcl:"super_flush_rush,block" json:"superFlushRush"`
}

// LoadPaytable loads the named paytable from an HCL file. A missing file
// yields the default table so callers can treat the file as optional, but a
// present file must parse and contain the requested name.
func LoadPaytable(filename, name string) (Paytable, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultPaytable(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Paytable{}, fmt.Errorf("failed to parse paytable file: %s", diags.Error())
	}

	var root paytableFile
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return Paytable{}, fmt.Errorf("failed to decode paytable file: %s", diags.Error())
	}

	for _, pt := range root.Paytables {
		if pt.Name != name {
			continue
		}
		table := Paytable{FlushRush: pt.FlushRush, SuperFlushRush: pt.SuperFlushRush}
		if err := table.Validate(); err != nil {
			return Paytable{}, fmt.Errorf("paytable %q: %w", name, err)
		}
		return table, nil
	}
	return Paytable{}, fmt.Errorf("paytable %q not found in %s", name, filename)
}
