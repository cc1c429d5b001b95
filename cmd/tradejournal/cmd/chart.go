package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jilee1212/trading-journal/stats"
)

var chartCmd = &cobra.Command{
	Use:       "chart <equity|daily|pairs|sides>",
	Short:     "Print chart series derived from the journal",
	Long: `Print one of the derived chart series as text.

Series:
  equity - cumulative net PnL sampled at each position close
  daily  - net PnL bucketed by UTC close date
  pairs  - count and PnL per trading pair
  sides  - long vs short comparison`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"equity", "daily", "pairs", "sides"},
	RunE:      runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	positions, err := j.LoadPositions(context.Background(), 0, 0)
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	data := stats.Charts(positions)
	switch args[0] {
	case "equity":
		stats.PrintEquityCurve(os.Stdout, data.EquityCurve)
	case "daily":
		stats.PrintDailyPnL(os.Stdout, data.DailyPnL)
	case "pairs":
		stats.PrintPairDistribution(os.Stdout, data.PairDistribution)
	case "sides":
		stats.PrintLongShort(os.Stdout, data.LongShort)
	}
	return nil
}
