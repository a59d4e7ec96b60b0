package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path, zerolog.Nop())
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		db.Close()
	}
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	got, err := db.GetMetadata(ctx, MetaImportedAt)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if got != "" {
		t.Errorf("GetMetadata on empty db = %q, want empty", got)
	}

	if err := db.SetMetadata(ctx, MetaImportedAt, "2026-01-01T00:00:00Z"); err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}
	if err := db.SetMetadata(ctx, MetaImportedAt, "2026-02-01T00:00:00Z"); err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}
	got, _ = db.GetMetadata(ctx, MetaImportedAt)
	if got != "2026-02-01T00:00:00Z" {
		t.Errorf("GetMetadata = %q, want the overwritten value", got)
	}
}

func TestHasDataAndClear(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	has, err := db.HasData(ctx)
	if err != nil {
		t.Fatalf("HasData: %v", err)
	}
	if has {
		t.Fatal("fresh database should have no data")
	}

	inserts := []string{
		`INSERT INTO doors (car, x) VALUES ('1', '10')`,
		`INSERT INTO egresses (name_std, x) VALUES ('A', '10')`,
		`INSERT INTO exits (name_std, exit_label) VALUES ('A', 'E1')`,
	}
	for _, q := range inserts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}
	if has, _ := db.HasData(ctx); has {
		t.Error("HasData should be false while stations is empty")
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO stations (name_std) VALUES ('A')`); err != nil {
		t.Fatalf("insert station: %v", err)
	}
	if has, _ := db.HasData(ctx); !has {
		t.Error("HasData should be true once every table has rows")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if err := ClearTables(ctx, tx); err != nil {
		t.Fatalf("ClearTables: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if has, _ := db.HasData(ctx); has {
		t.Error("HasData should be false after ClearTables")
	}
}
