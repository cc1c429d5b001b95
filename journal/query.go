// journal/query.go
package journal

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jilee1212/trading-journal/position"
)

const selectPositions = `
	SELECT id, open_order_id, close_order_ids, pair, direction, leverage,
	       entry_price, exit_price, quantity, open_time, close_time,
	       duration_seconds, gross_pnl, fees, net_pnl, roi_percent, status, source
	FROM positions`

// GetPosition returns a single position by ID.
func (j *SQLite) GetPosition(id string) (position.Position, error) {
	rows, err := j.db.Query(selectPositions+` WHERE id = ?`, id)
	if err != nil {
		return position.Position{}, err
	}
	defer rows.Close()

	out, err := scanPositions(rows)
	if err != nil {
		return position.Position{}, err
	}
	if len(out) == 0 {
		return position.Position{}, fmt.Errorf("position %q not found", id)
	}
	return out[0], nil
}

// ListClosedBetween returns closed positions whose close_time is within
// [start, end), ascending by close time.
func (j *SQLite) ListClosedBetween(start, end time.Time) ([]position.Position, error) {
	rows, err := j.db.Query(selectPositions+`
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPositions(rows)
}

// ListByPair returns every position for one trading pair, newest first.
func (j *SQLite) ListByPair(pair string) ([]position.Position, error) {
	rows, err := j.db.Query(selectPositions+`
		WHERE pair = ?
		ORDER BY open_time DESC`, pair)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPositions(rows)
}

func scanPositions(rows *sql.Rows) ([]position.Position, error) {
	var out []position.Position
	for rows.Next() {
		var (
			p         position.Position
			closeIDs  string
			direction string
			status    string
			exitPrice sql.NullFloat64
			closeTime sql.NullTime
			durationS int64
		)
		if err := rows.Scan(
			&p.ID,
			&p.OpenOrderID,
			&closeIDs,
			&p.Pair,
			&direction,
			&p.Leverage,
			&p.EntryPrice,
			&exitPrice,
			&p.Quantity,
			&p.OpenTime,
			&closeTime,
			&durationS,
			&p.GrossPnL,
			&p.Fees,
			&p.NetPnL,
			&p.ROIPercent,
			&status,
			&p.Source,
		); err != nil {
			return nil, err
		}

		p.Direction = position.Direction(direction)
		p.Status = position.Status(status)
		p.OpenTime = p.OpenTime.UTC()
		if closeIDs != "" {
			p.CloseOrderIDs = strings.Split(closeIDs, ",")
		}
		if exitPrice.Valid {
			p.ExitPrice = exitPrice.Float64
		}
		if closeTime.Valid {
			p.CloseTime = closeTime.Time.UTC()
		}
		p.Duration = time.Duration(durationS) * time.Second

		out = append(out, p)
	}
	return out, rows.Err()
}
