package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jilee1212/trading-journal/config"
	"github.com/jilee1212/trading-journal/journal"
)

var (
	cfgFile string
	dbPath  string
	verbose bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A trading journal for exchange-exported trade history",
	Long: `Tradejournal ingests CSV/Excel trade exports, reconstructs round-trip
positions from the individual fills, and keeps them in a SQLite journal.

It provides tools for:
  - Importing futures and spot order-history exports
  - FIFO matching of open fills against closes, partial fills included
  - Win rate, profit factor, drawdown and Sharpe statistics
  - Equity curve, daily PnL, pair and long/short breakdowns
  - CSV export of the reconstructed position list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFromFile(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}

		if verbose {
			log, err = zap.NewDevelopment()
		} else {
			zcfg := zap.NewProductionConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			log, err = zcfg.Build()
		}
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func openStore() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	return j, nil
}
