package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jilee1212/trading-journal/position"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func samplePosition(id string, day int) position.Position {
	open := time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC)
	return position.Position{
		ID:            id,
		OpenOrderID:   "O-" + id,
		CloseOrderIDs: []string{"C-" + id},
		Pair:          "BTCUSDT",
		Direction:     position.Long,
		Leverage:      5,
		EntryPrice:    60000.123456,
		ExitPrice:     61000.654321,
		Quantity:      0.5,
		OpenTime:      open,
		CloseTime:     open.Add(90 * time.Minute),
		Duration:      90 * time.Minute,
		GrossPnL:      500.2655,
		Fees:          2.5,
		NetPnL:        497.7655,
		ROIPercent:    8.29,
		Status:        position.StatusClosed,
		Source:        "export.csv",
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	want := samplePosition("P1", 1)
	n, err := j.SavePositions(ctx, []position.Position{want})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := j.LoadPositions(ctx, 0, 0)
	assert.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, want.ID, p.ID)
	assert.Equal(t, want.OpenOrderID, p.OpenOrderID)
	assert.Equal(t, want.CloseOrderIDs, p.CloseOrderIDs)
	assert.Equal(t, want.Pair, p.Pair)
	assert.Equal(t, want.Direction, p.Direction)
	assert.Equal(t, want.Leverage, p.Leverage)
	assert.InDelta(t, want.EntryPrice, p.EntryPrice, 1e-9)
	assert.InDelta(t, want.ExitPrice, p.ExitPrice, 1e-9)
	assert.InDelta(t, want.Quantity, p.Quantity, 1e-9)
	assert.True(t, want.OpenTime.Equal(p.OpenTime))
	assert.True(t, want.CloseTime.Equal(p.CloseTime))
	assert.Equal(t, want.Duration, p.Duration)
	assert.InDelta(t, want.GrossPnL, p.GrossPnL, 1e-9)
	assert.InDelta(t, want.Fees, p.Fees, 1e-9)
	assert.InDelta(t, want.NetPnL, p.NetPnL, 1e-9)
	assert.InDelta(t, want.ROIPercent, p.ROIPercent, 1e-9)
	assert.Equal(t, want.Status, p.Status)
	assert.Equal(t, want.Source, p.Source)
}

func TestSQLiteOpenPositionNullExit(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	open := position.Position{
		ID:          "P-open",
		OpenOrderID: "O1",
		Pair:        "ETHUSDT",
		Direction:   position.Short,
		Leverage:    3,
		EntryPrice:  3000,
		Quantity:    1,
		OpenTime:    time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Status:      position.StatusOpen,
	}

	_, err := j.SavePositions(ctx, []position.Position{open})
	assert.NoError(t, err)

	got, err := j.LoadPositions(ctx, 0, 0)
	assert.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CloseTime.IsZero())
	assert.Zero(t, got[0].ExitPrice)
	assert.Empty(t, got[0].CloseOrderIDs)
	assert.Equal(t, position.StatusOpen, got[0].Status)
}

func TestSQLiteDedup(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	p1 := samplePosition("P1", 1)
	p2 := samplePosition("P2", 1) // same pair/open_time/entry/qty, new id
	p3 := samplePosition("P3", 2)

	n, err := j.SavePositions(ctx, []position.Position{p1})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	// Re-importing the same file must not double count.
	n, err = j.SavePositions(ctx, []position.Position{p2, p3})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := j.CountPositions(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteLimitOffset(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	var batch []position.Position
	for day := 1; day <= 5; day++ {
		batch = append(batch, samplePosition(string(rune('A'+day)), day))
	}
	_, err := j.SavePositions(ctx, batch)
	assert.NoError(t, err)

	page, err := j.LoadPositions(ctx, 2, 0)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
	// Newest open_time first.
	assert.True(t, page[0].OpenTime.After(page[1].OpenTime))

	rest, err := j.LoadPositions(ctx, 10, 4)
	assert.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestSQLiteQueries(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	p := samplePosition("P1", 3)
	_, err := j.SavePositions(ctx, []position.Position{p})
	assert.NoError(t, err)

	got, err := j.GetPosition("P1")
	assert.NoError(t, err)
	assert.Equal(t, "BTCUSDT", got.Pair)

	_, err = j.GetPosition("nope")
	assert.Error(t, err)

	day := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	recs, err := j.ListClosedBetween(day, day.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, recs, 1)

	byPair, err := j.ListByPair("BTCUSDT")
	assert.NoError(t, err)
	assert.Len(t, byPair, 1)
}

func TestSQLiteProcessedFiles(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	done, err := j.IsFileProcessed(ctx, "export.csv")
	assert.NoError(t, err)
	assert.False(t, done)

	err = j.MarkFileProcessed(ctx, ProcessedFile{
		Filename:  "export.csv",
		Path:      "/data/export.csv",
		Positions: 12,
	})
	assert.NoError(t, err)

	done, err = j.IsFileProcessed(ctx, "export.csv")
	assert.NoError(t, err)
	assert.True(t, done)

	files, err := j.ListProcessedFiles(ctx)
	assert.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "export.csv", files[0].Filename)
	assert.Equal(t, 12, files[0].Positions)
	assert.False(t, files[0].ProcessedAt.IsZero())
}

func TestSQLiteClear(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	ctx := context.Background()

	_, err := j.SavePositions(ctx, []position.Position{samplePosition("P1", 1)})
	assert.NoError(t, err)
	assert.NoError(t, j.MarkFileProcessed(ctx, ProcessedFile{Filename: "a.csv"}))

	assert.NoError(t, j.Clear(ctx))

	count, err := j.CountPositions(ctx)
	assert.NoError(t, err)
	assert.Zero(t, count)

	files, err := j.ListProcessedFiles(ctx)
	assert.NoError(t, err)
	assert.Empty(t, files)
}
