package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jilee1212/trading-journal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for the journal",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	positions, err := j.LoadPositions(context.Background(), 0, 0)
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}
	if len(positions) == 0 {
		fmt.Println("No data. Import an export file first: tradejournal import <file>")
		return nil
	}

	stats.PrintReport(os.Stdout, stats.Compute(positions))
	return nil
}
