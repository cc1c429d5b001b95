// journal/journal.go
package journal

import (
	"context"
	"time"

	"github.com/jilee1212/trading-journal/position"
)

// ProcessedFile tracks an already-imported export so re-scanning a
// folder does not double count its fills.
type ProcessedFile struct {
	Filename    string
	Path        string
	ProcessedAt time.Time
	Positions   int
}

// Store is the persistence facility for derived positions. Positions are
// the durable unit; stats and chart series are always recomputed from
// what Load returns, never stored.
type Store interface {
	// SavePositions inserts positions, skipping duplicates on
	// (pair, open_time, entry_price, quantity). Returns how many were
	// actually inserted.
	SavePositions(ctx context.Context, positions []position.Position) (int, error)
	LoadPositions(ctx context.Context, limit, offset int) ([]position.Position, error)
	CountPositions(ctx context.Context) (int, error)
	Clear(ctx context.Context) error

	IsFileProcessed(ctx context.Context, filename string) (bool, error)
	MarkFileProcessed(ctx context.Context, f ProcessedFile) error
	ListProcessedFiles(ctx context.Context) ([]ProcessedFile, error)

	Close() error
}
