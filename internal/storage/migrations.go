package storage

import "fmt"

// migrate creates the reference table schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Debug().Int("count", len(migrations)).Msg("database migrations applied")
	return nil
}

// Every table keeps a seq column: row order is significant for door
// numbering and egress ordering.
var migrations = []string{
	// Door positions
	`CREATE TABLE IF NOT EXISTS doors (
		seq INTEGER PRIMARY KEY,
		car TEXT NOT NULL,
		x   TEXT NOT NULL
	)`,

	// Platform egresses
	`CREATE TABLE IF NOT EXISTS egresses (
		seq        INTEGER PRIMARY KEY,
		name_std   TEXT NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		x          TEXT NOT NULL,
		y          TEXT NOT NULL DEFAULT '',
		exit_label TEXT NOT NULL DEFAULT '',
		pref       TEXT NOT NULL DEFAULT '',
		transfer   TEXT NOT NULL DEFAULT '',
		lines      TEXT NOT NULL DEFAULT '',
		direction  TEXT NOT NULL DEFAULT ''
	)`,

	// Street exits
	`CREATE TABLE IF NOT EXISTS exits (
		seq         INTEGER PRIMARY KEY,
		name_std    TEXT NOT NULL,
		exit_label  TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,

	// Stations
	`CREATE TABLE IF NOT EXISTS stations (
		seq           INTEGER PRIMARY KEY,
		name_std      TEXT NOT NULL,
		platform_type TEXT NOT NULL DEFAULT '',
		has_rd        TEXT NOT NULL DEFAULT '',
		has_gr        TEXT NOT NULL DEFAULT '',
		has_yl        TEXT NOT NULL DEFAULT '',
		has_bl        TEXT NOT NULL DEFAULT '',
		has_sv        TEXT NOT NULL DEFAULT '',
		has_or        TEXT NOT NULL DEFAULT ''
	)`,

	// Dataset metadata (imported_at, source_dir)
	`CREATE TABLE IF NOT EXISTS dataset_metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_egresses_station ON egresses(name_std)`,
	`CREATE INDEX IF NOT EXISTS idx_exits_station ON exits(name_std, exit_label)`,
}
