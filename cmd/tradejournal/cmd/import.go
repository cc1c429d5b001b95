package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jilee1212/trading-journal/ingest"
	"github.com/jilee1212/trading-journal/journal"
	"github.com/jilee1212/trading-journal/position"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <file|dir>...",
	Short: "Import trade exports into the journal",
	Long: `Parse CSV/Excel trade exports, reconstruct positions, and save them.

Directories are scanned for .csv and .xlsx files. Files already recorded
in the journal are skipped unless --force is given. Bad rows and orphan
close fills are dropped with a warning, never fatal.

Examples:
  tradejournal import exports/2024-03.csv
  tradejournal import ~/Downloads/exports --force`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "re-import files already processed")
}

func runImport(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .csv or .xlsx files found")
	}

	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	totalSaved := 0

	for _, path := range files {
		name := filepath.Base(path)

		if cfg.Ingest.SkipProcessed && !importForce {
			done, err := j.IsFileProcessed(ctx, name)
			if err != nil {
				return fmt.Errorf("check processed: %w", err)
			}
			if done {
				fmt.Printf("skip %s (already imported, use --force)\n", name)
				continue
			}
		}

		saved, err := importFile(ctx, j, path)
		if err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
		totalSaved += saved
	}

	fmt.Printf("Imported %d position(s) from %d file(s)\n", totalSaved, len(files))
	return nil
}

func importFile(ctx context.Context, j *journal.SQLite, path string) (int, error) {
	name := filepath.Base(path)

	rows, err := ingest.ReadFile(path)
	if err != nil {
		return 0, err
	}

	parsed, err := ingest.ParseInLocation(rows, name, cfg.Location())
	if err != nil {
		return 0, err
	}
	for _, rerr := range parsed.Errors {
		log.Warn("row dropped", zap.String("file", name), zap.Int("line", rerr.Line), zap.String("reason", rerr.Reason))
	}

	if len(parsed.Fills) == 0 {
		fmt.Printf("%s: no valid fills\n", name)
		return 0, nil
	}

	matched := position.Match(parsed.Fills)
	for _, merr := range matched.Errors {
		log.Warn("fill skipped", zap.String("file", name), zap.String("order", merr.OrderID), zap.String("reason", merr.Reason))
	}

	saved, err := j.SavePositions(ctx, matched.Positions)
	if err != nil {
		return 0, err
	}

	if err := j.MarkFileProcessed(ctx, journal.ProcessedFile{
		Filename:  name,
		Path:      path,
		Positions: saved,
	}); err != nil {
		return saved, err
	}

	fmt.Printf("%s: %d fills, %d positions (%d new), %d row error(s), %d match error(s)\n",
		name, len(parsed.Fills), len(matched.Positions), saved, len(parsed.Errors), len(matched.Errors))
	return saved, nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".csv", ".xlsx", ".xlsm", ".xls":
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
	}
	return files, nil
}
