package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Metadata keys written by the importer.
const (
	MetaImportedAt = "imported_at"
	MetaSourceDir  = "source_dir"
)

// ReferenceTables lists the tables an import replaces, in import order.
var ReferenceTables = []string{"doors", "egresses", "exits", "stations"}

// GetMetadata retrieves a value from the dataset_metadata table.
func (db *DB) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM dataset_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMetadata stores a key-value pair in the dataset_metadata table.
func (db *DB) SetMetadata(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO dataset_metadata (key, value) VALUES (?, ?)`,
		key, value)
	return err
}

// HasData reports whether every reference table has at least one row.
func (db *DB) HasData(ctx context.Context) (bool, error) {
	for _, table := range ReferenceTables {
		var n int
		if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return false, fmt.Errorf("count %s: %w", table, err)
		}
		if n == 0 {
			return false, nil
		}
	}
	return true, nil
}

// ClearTables deletes every reference row and the dataset metadata inside tx.
func ClearTables(ctx context.Context, tx *sql.Tx) error {
	tables := append([]string{"dataset_metadata"}, ReferenceTables...)
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", t)); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	return nil
}
