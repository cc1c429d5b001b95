// stats/stats.go
package stats

import (
	"math"
	"sort"

	"github.com/jilee1212/trading-journal/position"
)

// Stats is a pure aggregate snapshot over the position list. Only closed
// positions enter win/loss classification; everything is recomputed when
// the list changes, nothing here is persisted.
type Stats struct {
	TotalPositions  int     `json:"total_positions"`
	ClosedPositions int     `json:"closed_positions"`
	OpenPositions   int     `json:"open_positions"`
	WinningTrades   int     `json:"winning_trades"`
	LosingTrades    int     `json:"losing_trades"`
	WinRate         float64 `json:"win_rate"`
	NetPnL          float64 `json:"net_pnl"`
	TotalFees       float64 `json:"total_fees"`
	TotalVolume     float64 `json:"total_volume"`
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"`

	// ProfitFactor is gross wins over absolute gross losses. When there
	// are wins but no losses the ratio is unbounded: Unbounded is set
	// and the value stays 0 rather than Inf, so it survives JSON.
	ProfitFactor          float64 `json:"profit_factor"`
	ProfitFactorUnbounded bool    `json:"profit_factor_unbounded"`

	// MaxDrawdown is the largest peak-to-trough decline of the
	// cumulative net-PnL series ordered by close time, reported >= 0.
	MaxDrawdown float64 `json:"max_drawdown"`

	// SharpeRatio is mean daily net PnL over its population standard
	// deviation, not annualized. Zero with fewer than two trading days
	// or a flat series.
	SharpeRatio float64 `json:"sharpe_ratio"`
}

// Compute derives summary KPIs from the full position list. Accumulation
// runs in close-time order so results are reproducible across runs.
func Compute(positions []position.Position) Stats {
	s := Stats{TotalPositions: len(positions)}

	closed := closedByCloseTime(positions)
	s.ClosedPositions = len(closed)
	s.OpenPositions = len(positions) - len(closed)

	for _, p := range positions {
		s.TotalFees += p.Fees
	}

	var sumWins, sumLosses float64
	for _, p := range closed {
		s.NetPnL += p.NetPnL
		s.TotalVolume += p.EntryPrice * p.Quantity
		switch {
		case p.NetPnL > 0:
			s.WinningTrades++
			sumWins += p.NetPnL
		case p.NetPnL < 0:
			s.LosingTrades++
			sumLosses += p.NetPnL
		}
	}

	if decided := s.WinningTrades + s.LosingTrades; decided > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(decided) * 100
	}
	if s.WinningTrades > 0 {
		s.AvgWin = sumWins / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = sumLosses / float64(s.LosingTrades)
	}

	switch {
	case sumLosses < 0:
		s.ProfitFactor = sumWins / -sumLosses
	case sumWins > 0:
		s.ProfitFactorUnbounded = true
	}

	s.MaxDrawdown = maxDrawdown(closed)
	s.SharpeRatio = sharpe(dailyBuckets(closed))

	return s
}

// closedByCloseTime filters to closed positions and sorts a copy
// ascending by close time.
func closedByCloseTime(positions []position.Position) []position.Position {
	closed := make([]position.Position, 0, len(positions))
	for _, p := range positions {
		if p.IsClosed() {
			closed = append(closed, p)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].CloseTime.Before(closed[j].CloseTime)
	})
	return closed
}

func maxDrawdown(closed []position.Position) float64 {
	var equity, peak, dd float64
	for _, p := range closed {
		equity += p.NetPnL
		if equity > peak {
			peak = equity
		}
		if d := peak - equity; d > dd {
			dd = d
		}
	}
	return dd
}

func sharpe(daily []dayPnL) float64 {
	if len(daily) < 2 {
		return 0
	}

	var mean float64
	for _, d := range daily {
		mean += d.pnl
	}
	mean /= float64(len(daily))

	var variance float64
	for _, d := range daily {
		variance += (d.pnl - mean) * (d.pnl - mean)
	}
	variance /= float64(len(daily))

	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance)
}

type dayPnL struct {
	date string
	pnl  float64
}

// dailyBuckets sums net PnL by UTC close date. Input must already be
// close-time ordered; output dates come out ascending.
func dailyBuckets(closed []position.Position) []dayPnL {
	var out []dayPnL
	idx := make(map[string]int)

	for _, p := range closed {
		date := p.CloseTime.UTC().Format("2006-01-02")
		if i, ok := idx[date]; ok {
			out[i].pnl += p.NetPnL
			continue
		}
		idx[date] = len(out)
		out = append(out, dayPnL{date: date, pnl: p.NetPnL})
	}
	return out
}
