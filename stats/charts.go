// stats/charts.go
package stats

import (
	"sort"

	"github.com/jilee1212/trading-journal/position"
)

// EquityPoint is one sample of the running cumulative net PnL, taken at
// a position's close.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
	PnL    float64 `json:"pnl"`
}

// DailyPoint is net PnL bucketed by UTC close date.
type DailyPoint struct {
	Date string  `json:"date"`
	PnL  float64 `json:"pnl"`
}

// PairStat counts closed positions and sums PnL per trading pair.
type PairStat struct {
	Pair  string  `json:"pair"`
	Count int     `json:"count"`
	PnL   float64 `json:"pnl"`
}

// SideStat summarizes one side of the long/short split.
type SideStat struct {
	Count   int     `json:"count"`
	PnL     float64 `json:"pnl"`
	WinRate float64 `json:"win_rate"`
}

// LongShort compares closed long positions against shorts.
type LongShort struct {
	Long  SideStat `json:"long"`
	Short SideStat `json:"short"`
}

// ChartData carries derived series for the presentation layer. Like
// Stats it is recomputed from the position list, never stored.
type ChartData struct {
	EquityCurve      []EquityPoint `json:"equity_curve"`
	DailyPnL         []DailyPoint  `json:"daily_pnl"`
	PairDistribution []PairStat    `json:"pair_distribution"`
	LongShort        LongShort     `json:"long_vs_short"`
}

// Charts derives the chart series from the position list. Open positions
// are excluded everywhere; the equity curve starts from zero cumulative
// PnL and accumulates in close-time order.
func Charts(positions []position.Position) ChartData {
	var data ChartData
	closed := closedByCloseTime(positions)

	var equity float64
	for _, p := range closed {
		equity += p.NetPnL
		data.EquityCurve = append(data.EquityCurve, EquityPoint{
			Date:   p.CloseTime.UTC().Format("2006-01-02"),
			Equity: equity,
			PnL:    p.NetPnL,
		})
	}

	for _, d := range dailyBuckets(closed) {
		data.DailyPnL = append(data.DailyPnL, DailyPoint{Date: d.date, PnL: d.pnl})
	}

	data.PairDistribution = pairDistribution(closed)
	data.LongShort = longShort(closed)

	return data
}

func pairDistribution(closed []position.Position) []PairStat {
	idx := make(map[string]int)
	var out []PairStat

	for _, p := range closed {
		i, ok := idx[p.Pair]
		if !ok {
			i = len(out)
			idx[p.Pair] = i
			out = append(out, PairStat{Pair: p.Pair})
		}
		out[i].Count++
		out[i].PnL += p.NetPnL
	}

	// Busiest pairs first; name as the deterministic tie-break.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Pair < out[j].Pair
	})
	return out
}

func longShort(closed []position.Position) LongShort {
	var ls LongShort
	var longWins, shortWins int

	for _, p := range closed {
		if p.Direction == position.Long {
			ls.Long.Count++
			ls.Long.PnL += p.NetPnL
			if p.NetPnL > 0 {
				longWins++
			}
		} else {
			ls.Short.Count++
			ls.Short.PnL += p.NetPnL
			if p.NetPnL > 0 {
				shortWins++
			}
		}
	}

	if ls.Long.Count > 0 {
		ls.Long.WinRate = float64(longWins) / float64(ls.Long.Count) * 100
	}
	if ls.Short.Count > 0 {
		ls.Short.WinRate = float64(shortWins) / float64(ls.Short.Count) * 100
	}
	return ls
}
