// stats/report.go
package stats

import (
	"fmt"
	"io"
)

// PrintReport writes a plain-text KPI summary for terminal display.
func PrintReport(w io.Writer, s Stats) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trading Journal Summary")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Positions:     %d (%d closed, %d open)\n",
		s.TotalPositions, s.ClosedPositions, s.OpenPositions)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Wins:          %d\n", s.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", s.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", s.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", s.AvgLoss)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Net P/L:       %.2f\n", s.NetPnL)
	fmt.Fprintf(w, "Total Fees:    %.2f\n", s.TotalFees)
	fmt.Fprintf(w, "Total Volume:  %.2f\n", s.TotalVolume)

	if s.ProfitFactorUnbounded {
		fmt.Fprintf(w, "Profit Factor: inf (no losing trades)\n")
	} else if s.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	}
	if s.MaxDrawdown > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f\n", s.MaxDrawdown)
	}
	if s.SharpeRatio != 0 {
		fmt.Fprintf(w, "Sharpe Ratio:  %.2f\n", s.SharpeRatio)
	}

	fmt.Fprintln(w)
}

// PrintEquityCurve writes the equity series as aligned text.
func PrintEquityCurve(w io.Writer, points []EquityPoint) {
	fmt.Fprintf(w, "%-12s %12s %12s\n", "DATE", "EQUITY", "PNL")
	for _, p := range points {
		fmt.Fprintf(w, "%-12s %12.2f %12.2f\n", p.Date, p.Equity, p.PnL)
	}
}

// PrintDailyPnL writes the daily buckets as aligned text.
func PrintDailyPnL(w io.Writer, points []DailyPoint) {
	fmt.Fprintf(w, "%-12s %12s\n", "DATE", "PNL")
	for _, p := range points {
		fmt.Fprintf(w, "%-12s %12.2f\n", p.Date, p.PnL)
	}
}

// PrintPairDistribution writes the per-pair breakdown as aligned text.
func PrintPairDistribution(w io.Writer, pairs []PairStat) {
	fmt.Fprintf(w, "%-14s %8s %12s\n", "PAIR", "COUNT", "PNL")
	for _, p := range pairs {
		fmt.Fprintf(w, "%-14s %8d %12.2f\n", p.Pair, p.Count, p.PnL)
	}
}

// PrintLongShort writes the long/short comparison as aligned text.
func PrintLongShort(w io.Writer, ls LongShort) {
	fmt.Fprintf(w, "%-8s %8s %12s %10s\n", "SIDE", "COUNT", "PNL", "WIN RATE")
	fmt.Fprintf(w, "%-8s %8d %12.2f %9.2f%%\n", "LONG", ls.Long.Count, ls.Long.PnL, ls.Long.WinRate)
	fmt.Fprintf(w, "%-8s %8d %12.2f %9.2f%%\n", "SHORT", ls.Short.Count, ls.Short.PnL, ls.Short.WinRate)
}
