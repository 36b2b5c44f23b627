package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all Lich tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS teachers (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,

	// No foreign key from overrides to teachers: an override must survive
	// the deletion of the teacher it references. The stale row resolves
	// to an unassigned day and reactivates if the id is ever re-added.
	`CREATE TABLE IF NOT EXISTS overrides (
		date       TEXT PRIMARY KEY,
		teacher_id TEXT NOT NULL DEFAULT '',
		empty      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS day_colors (
		date  TEXT PRIMARY KEY,
		color TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_teachers_position ON teachers(position)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
