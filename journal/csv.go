// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jilee1212/trading-journal/position"
)

var csvHeader = []string{
	"id", "pair", "direction", "status", "leverage",
	"entry_price", "exit_price", "quantity",
	"open_time", "close_time", "duration_seconds",
	"gross_pnl", "fees", "net_pnl", "roi_percent",
	"open_order_id", "close_order_ids", "source",
}

// WriteCSV writes the position list as CSV for spreadsheet handoff.
func WriteCSV(w io.Writer, positions []position.Position) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range positions {
		closeTime := ""
		if !p.CloseTime.IsZero() {
			closeTime = p.CloseTime.UTC().Format(time.RFC3339)
		}
		exitPrice := ""
		if p.IsClosed() {
			exitPrice = f(p.ExitPrice)
		}

		if err := cw.Write([]string{
			p.ID,
			p.Pair,
			string(p.Direction),
			string(p.Status),
			strconv.Itoa(p.Leverage),
			f(p.EntryPrice),
			exitPrice,
			f(p.Quantity),
			p.OpenTime.UTC().Format(time.RFC3339),
			closeTime,
			strconv.FormatInt(int64(p.Duration/time.Second), 10),
			f(p.GrossPnL),
			f(p.Fees),
			f(p.NetPnL),
			f(p.ROIPercent),
			p.OpenOrderID,
			strings.Join(p.CloseOrderIDs, " "),
			p.Source,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the position list to a file.
func ExportCSV(path string, positions []position.Position) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, positions); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
