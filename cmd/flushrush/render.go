package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/flushrush/internal/simulator"
)

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	betStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

type renderOptions struct {
	Hands   int
	Seed    string
	Elapsed time.Duration
}

// renderSummary writes the human-readable report for a finished run.
func renderSummary(out io.Writer, summary *simulator.Summary, opts renderOptions) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("bet"),
		headerStyle.Render("return"),
		headerStyle.Render("bet total"),
		headerStyle.Render("won total"),
		headerStyle.Render("win rate"),
		headerStyle.Render("won/lost"))

	for _, result := range summary.Results {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.2f\t%s\t%d/%d\n",
			betStyle.Render(result.BetType),
			returnCell(result.ExpectedReturn),
			result.TotalBet,
			result.TotalWon,
			fmt.Sprintf("%.2f%%", result.WinRate),
			result.HandsWon,
			result.HandsLost)
	}
	w.Flush()

	dist := summary.HandDistribution
	fmt.Fprintf(out, "\n%s\n", headerStyle.Render("hands"))
	fmt.Fprintf(out, "played %d (%.1f%%), folded %d (%.1f%%) of %d\n",
		dist.AboveMinimum, dist.PlayedPercent(),
		dist.BelowMinimum, dist.FoldedPercent(),
		dist.TotalHands)

	fmt.Fprintf(out, "\n%d hands in %v (%s hands/sec)\n",
		opts.Hands,
		opts.Elapsed.Truncate(time.Millisecond),
		handsPerSec(opts.Hands, opts.Elapsed))

	switch {
	case !summary.Deterministic:
		fmt.Fprintln(out, mutedStyle.Render("unseeded run, not reproducible"))
	case opts.Seed != "":
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("replay with --seed %q", opts.Seed)))
	}
}

// returnCell colors the net expected return by sign, break-even at zero.
func returnCell(expectedReturn float64) string {
	cell := fmt.Sprintf("%+.4f%%", expectedReturn)
	if expectedReturn >= 0 {
		return gainStyle.Render(cell)
	}
	return lossStyle.Render(cell)
}

func handsPerSec(hands int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", float64(hands)/elapsed.Seconds())
}
