package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jilee1212/trading-journal/position"
)

var (
	posLimit  int
	posOffset int
	posStatus string
	posPair   string
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List reconstructed positions",
	Long: `List positions from the journal, newest first.

Examples:
  tradejournal positions
  tradejournal positions --limit 20 --status closed
  tradejournal positions --pair BTCUSDT`,
	Args: cobra.NoArgs,
	RunE: runPositions,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
	positionsCmd.Flags().IntVar(&posLimit, "limit", 0, "max rows (0 = config default)")
	positionsCmd.Flags().IntVar(&posOffset, "offset", 0, "rows to skip")
	positionsCmd.Flags().StringVar(&posStatus, "status", "", "filter: open or closed")
	positionsCmd.Flags().StringVar(&posPair, "pair", "", "filter by trading pair")
}

func runPositions(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	limit := posLimit
	if limit == 0 {
		limit = cfg.Report.PositionsPerPage
	}

	var positions []position.Position
	if posPair != "" {
		positions, err = j.ListByPair(strings.ToUpper(posPair))
	} else {
		positions, err = j.LoadPositions(context.Background(), limit, posOffset)
	}
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	if posStatus != "" {
		want := position.Status(strings.ToUpper(posStatus))
		filtered := positions[:0]
		for _, p := range positions {
			if p.Status == want {
				filtered = append(filtered, p)
			}
		}
		positions = filtered
	}

	if len(positions) == 0 {
		fmt.Println("No positions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAIR\tSIDE\tSTATUS\tQTY\tENTRY\tEXIT\tNET PNL\tROI%\tOPENED\tDURATION")
	for _, p := range positions {
		exit := "-"
		duration := "-"
		if p.IsClosed() {
			exit = fmt.Sprintf("%.4f", p.ExitPrice)
			duration = p.Duration.Truncate(time.Second).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\t%s\t%.2f\t%.2f\t%s\t%s\n",
			p.Pair, p.Direction, p.Status, p.Quantity, p.EntryPrice, exit,
			p.NetPnL, p.ROIPercent, p.OpenTime.Format("2006-01-02 15:04"), duration)
	}
	return w.Flush()
}
