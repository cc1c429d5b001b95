// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	open_order_id TEXT NOT NULL,
	close_order_ids TEXT NOT NULL DEFAULT '',
	pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	leverage INTEGER NOT NULL DEFAULT 1,
	entry_price REAL NOT NULL,
	exit_price REAL,
	quantity REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	gross_pnl REAL NOT NULL DEFAULT 0,
	fees REAL NOT NULL DEFAULT 0,
	net_pnl REAL NOT NULL DEFAULT 0,
	roi_percent REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'OPEN',
	source TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS processed_files (
	filename TEXT PRIMARY KEY,
	file_path TEXT NOT NULL,
	processed_at DATETIME NOT NULL,
	positions_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_positions_close_time ON positions(close_time);
CREATE INDEX IF NOT EXISTS idx_positions_status ON positions(status);
`
