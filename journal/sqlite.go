// journal/sqlite.go
package journal

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jilee1212/trading-journal/position"
)

// SQLite is the Store implementation backing the journal database.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) SavePositions(ctx context.Context, positions []position.Position) (int, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, p := range positions {
		dup, err := j.isDuplicate(ctx, tx, p)
		if err != nil {
			return inserted, err
		}
		if dup {
			continue
		}

		var closeTime sql.NullTime
		if !p.CloseTime.IsZero() {
			closeTime = sql.NullTime{Time: p.CloseTime.UTC(), Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO positions
			(id, open_order_id, close_order_ids, pair, direction, leverage,
			 entry_price, exit_price, quantity, open_time, close_time,
			 duration_seconds, gross_pnl, fees, net_pnl, roi_percent, status, source, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.OpenOrderID, strings.Join(p.CloseOrderIDs, ","), p.Pair,
			string(p.Direction), p.Leverage, p.EntryPrice, p.ExitPrice,
			p.Quantity, p.OpenTime.UTC(), closeTime,
			int64(p.Duration/time.Second), p.GrossPnL, p.Fees, p.NetPnL,
			p.ROIPercent, string(p.Status), p.Source, time.Now().UTC(),
		)
		if err != nil {
			return inserted, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// isDuplicate mirrors the import dedup rule: a position with the same
// pair, open time, entry price, and quantity is the same round trip seen
// through a re-imported file.
func (j *SQLite) isDuplicate(ctx context.Context, tx *sql.Tx, p position.Position) (bool, error) {
	var id string
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM positions
		WHERE pair = ? AND open_time = ? AND entry_price = ? AND quantity = ?`,
		p.Pair, p.OpenTime.UTC(), p.EntryPrice, p.Quantity,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (j *SQLite) LoadPositions(ctx context.Context, limit, offset int) ([]position.Position, error) {
	query := selectPositions + ` ORDER BY open_time DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPositions(rows)
}

func (j *SQLite) CountPositions(ctx context.Context) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM positions`).Scan(&n)
	return n, err
}

func (j *SQLite) Clear(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM positions`); err != nil {
		return err
	}
	_, err := j.db.ExecContext(ctx, `DELETE FROM processed_files`)
	return err
}

func (j *SQLite) IsFileProcessed(ctx context.Context, filename string) (bool, error) {
	var name string
	err := j.db.QueryRowContext(ctx,
		`SELECT filename FROM processed_files WHERE filename = ?`, filename,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (j *SQLite) MarkFileProcessed(ctx context.Context, f ProcessedFile) error {
	when := f.ProcessedAt
	if when.IsZero() {
		when = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO processed_files
		(filename, file_path, processed_at, positions_count)
		VALUES (?, ?, ?, ?)`,
		f.Filename, f.Path, when, f.Positions,
	)
	return err
}

func (j *SQLite) ListProcessedFiles(ctx context.Context) ([]ProcessedFile, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT filename, file_path, processed_at, positions_count
		FROM processed_files
		ORDER BY processed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProcessedFile
	for rows.Next() {
		var f ProcessedFile
		if err := rows.Scan(&f.Filename, &f.Path, &f.ProcessedAt, &f.Positions); err != nil {
			return nil, err
		}
		f.ProcessedAt = f.ProcessedAt.UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
