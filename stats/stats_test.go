package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jilee1212/trading-journal/position"
)

func closedPos(day int, pair string, dir position.Direction, net float64) position.Position {
	open := time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC)
	return position.Position{
		ID:         fmt.Sprintf("%s-%d", pair, day),
		Pair:       pair,
		Direction:  dir,
		Leverage:   1,
		EntryPrice: 100,
		ExitPrice:  100 + net,
		Quantity:   1,
		OpenTime:   open,
		CloseTime:  open.Add(2 * time.Hour),
		GrossPnL:   net,
		NetPnL:     net,
		Status:     position.StatusClosed,
	}
}

func TestComputeBasics(t *testing.T) {
	t.Parallel()

	positions := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, 100),
		closedPos(2, "BTCUSDT", position.Long, -40),
		closedPos(3, "ETHUSDT", position.Short, 60),
		{Pair: "SOLUSDT", Direction: position.Long, Status: position.StatusOpen, EntryPrice: 100, Quantity: 1},
	}

	s := Compute(positions)
	assert.Equal(t, 4, s.TotalPositions)
	assert.Equal(t, 3, s.ClosedPositions)
	assert.Equal(t, 1, s.OpenPositions)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 66.6666, s.WinRate, 0.001)
	assert.InDelta(t, 120.0, s.NetPnL, 1e-9)
	assert.InDelta(t, 300.0, s.TotalVolume, 1e-9) // open position excluded
	assert.InDelta(t, 80.0, s.AvgWin, 1e-9)
	assert.InDelta(t, -40.0, s.AvgLoss, 1e-9)
	assert.InDelta(t, 4.0, s.ProfitFactor, 1e-9)
	assert.False(t, s.ProfitFactorUnbounded)
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	s := Compute(nil)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.AvgWin)
	assert.Zero(t, s.AvgLoss)
	assert.Zero(t, s.ProfitFactor)
	assert.False(t, s.ProfitFactorUnbounded)
	assert.Zero(t, s.MaxDrawdown)
	assert.Zero(t, s.SharpeRatio)
}

func TestComputeNoLosses(t *testing.T) {
	t.Parallel()

	positions := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, 50),
		closedPos(2, "BTCUSDT", position.Long, 30),
	}

	s := Compute(positions)
	assert.Equal(t, 100.0, s.WinRate)
	assert.Zero(t, s.AvgLoss)
	assert.True(t, s.ProfitFactorUnbounded)
	assert.Zero(t, s.ProfitFactor) // sentinel, never Inf or NaN
}

func TestComputeNoWins(t *testing.T) {
	t.Parallel()

	positions := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, -50),
	}

	s := Compute(positions)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.AvgWin)
	assert.Zero(t, s.ProfitFactor)
	assert.False(t, s.ProfitFactorUnbounded)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	// Equity path: 100, 40, 140, 60 -> worst peak-to-trough is 140-60.
	positions := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, 100),
		closedPos(2, "BTCUSDT", position.Long, -60),
		closedPos(3, "BTCUSDT", position.Long, 100),
		closedPos(4, "BTCUSDT", position.Long, -80),
	}

	s := Compute(positions)
	assert.InDelta(t, 80.0, s.MaxDrawdown, 1e-9)
}

func TestSharpeConventions(t *testing.T) {
	t.Parallel()

	// Flat daily returns: stddev 0, sharpe defined as 0.
	flat := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, 10),
		closedPos(2, "BTCUSDT", position.Long, 10),
	}
	assert.Zero(t, Compute(flat).SharpeRatio)

	// Single day: not enough observations.
	one := []position.Position{closedPos(1, "BTCUSDT", position.Long, 10)}
	assert.Zero(t, Compute(one).SharpeRatio)

	// Two days, +10 and -10: mean 0 over population stddev 10.
	mixed := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, 10),
		closedPos(2, "BTCUSDT", position.Long, -10),
	}
	assert.InDelta(t, 0.0, Compute(mixed).SharpeRatio, 1e-9)

	// Two days, +30 and +10: mean 20, population stddev 10 -> 2.0.
	up := []position.Position{
		closedPos(1, "BTCUSDT", position.Long, 30),
		closedPos(2, "BTCUSDT", position.Long, 10),
	}
	assert.InDelta(t, 2.0, Compute(up).SharpeRatio, 1e-9)
}
