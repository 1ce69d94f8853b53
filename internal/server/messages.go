package server

import (
	"github.com/lox/flushrush/internal/bets"
	"github.com/lox/flushrush/internal/simulator"
)

// Message kinds sent to the client over a simulation session.
const (
	KindProgress = "progress"
	KindDone     = "done"
	KindError    = "error"
)

// Task is the single request message a client sends to start a run.
type Task struct {
	NumHands int `json:"numHands"`

	// PayoutConfig overrides the side-bet paytables. Nil uses the
	// defaults.
	PayoutConfig *bets.Paytable `json:"payoutConfig,omitempty"`

	// MinThreeCardFlushRank is the fold threshold for 3-card flushes;
	// zero plays all of them.
	MinThreeCardFlushRank int `json:"minThreeCardFlushRank"`

	Seed    *string `json:"seed,omitempty"`
	Workers int     `json:"workers,omitempty"`
}

// ProgressMessage reports completion percentage, 0..100.
type ProgressMessage struct {
	Kind    string  `json:"kind"`
	Percent float64 `json:"percent"`
}

// DoneMessage carries the terminal summary of a successful run.
type DoneMessage struct {
	Kind             string                     `json:"kind"`
	Results          []simulator.Result         `json:"results"`
	HandDistribution simulator.HandDistribution `json:"handDistribution"`
	Deterministic    bool                       `json:"deterministic"`
}

// ErrorMessage is sent when the task is invalid or the run fails.
type ErrorMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
