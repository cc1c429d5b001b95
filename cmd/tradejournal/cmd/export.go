package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jilee1212/trading-journal/journal"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the position list to CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "positions.csv", "output CSV path")
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	positions, err := j.LoadPositions(context.Background(), 0, 0)
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	if err := journal.ExportCSV(exportOut, positions); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Wrote %d position(s) to %s\n", len(positions), exportOut)
	return nil
}
