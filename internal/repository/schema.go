package repository

import (
	"context"
	"fmt"
)

// Timestamps are stored as fixed-width RFC3339 text (zero-padded
// nanoseconds) so the same DDL works on both sqlite and postgres and text
// comparison matches time order.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS lots (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		cost         DOUBLE PRECISION NOT NULL DEFAULT 0,
		quantity     INTEGER NOT NULL DEFAULT 1,
		platform     TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		purchased_at TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id         TEXT PRIMARY KEY,
		lot_id     TEXT NOT NULL REFERENCES lots(id) ON DELETE CASCADE,
		price      DOUBLE PRECISION NOT NULL DEFAULT 0,
		fees       DOUBLE PRECISION NOT NULL DEFAULT 0,
		quantity   INTEGER NOT NULL DEFAULT 1,
		platform   TEXT NOT NULL DEFAULT '',
		sold_at    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_lot_id ON sales(lot_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(sold_at)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
