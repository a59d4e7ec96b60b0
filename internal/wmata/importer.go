package wmata

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"metroexit/internal/storage"
)

// Importer loads parsed reference tables into SQLite.
type Importer struct {
	db     *storage.DB
	logger zerolog.Logger
}

// NewImporter creates an Importer.
func NewImporter(db *storage.DB, logger zerolog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// Import replaces every reference table with t in a single transaction.
// Rows keep their file order through the seq column.
func (imp *Importer) Import(ctx context.Context, t *Tables, sourceDir string) error {
	start := time.Now()

	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := storage.ClearTables(ctx, tx); err != nil {
		return err
	}
	if err := imp.importDoors(ctx, tx, t.Doors); err != nil {
		return err
	}
	if err := imp.importEgresses(ctx, tx, t.Egresses); err != nil {
		return err
	}
	if err := imp.importExits(ctx, tx, t.Exits); err != nil {
		return err
	}
	if err := imp.importStations(ctx, tx, t.Stations); err != nil {
		return err
	}

	meta := map[string]string{
		storage.MetaImportedAt: time.Now().UTC().Format(time.RFC3339),
		storage.MetaSourceDir:  sourceDir,
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO dataset_metadata (key, value) VALUES (?, ?)`, k, v); err != nil {
			return errors.Wrapf(err, "set %s", k)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}

	imp.logger.Info().
		Dur("duration", time.Since(start).Round(time.Millisecond)).
		Int("egresses", len(t.Egresses)).
		Int("stations", len(t.Stations)).
		Msg("reference import complete")
	return nil
}

func (imp *Importer) importDoors(ctx context.Context, tx *sql.Tx, rows []DoorRow) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO doors (seq, car, x) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare doors")
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, i, r.Car, r.X); err != nil {
			return errors.Wrapf(err, "insert door row %d", i+1)
		}
	}
	imp.logger.Debug().Int("count", len(rows)).Msg("imported doors")
	return nil
}

func (imp *Importer) importEgresses(ctx context.Context, tx *sql.Tx, rows []EgressRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO egresses (seq, name_std, icon, x, y, exit_label, pref, transfer, lines, direction)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare egresses")
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, i, r.Station, r.Icon, r.X, r.Y, r.ExitLabel,
			r.Preferred, r.Transfer, r.Lines, r.Direction); err != nil {
			return errors.Wrapf(err, "insert egress row %d", i+1)
		}
	}
	imp.logger.Debug().Int("count", len(rows)).Msg("imported egresses")
	return nil
}

func (imp *Importer) importExits(ctx context.Context, tx *sql.Tx, rows []ExitRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO exits (seq, name_std, exit_label, description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare exits")
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, i, r.Station, r.ExitLabel, r.Description); err != nil {
			return errors.Wrapf(err, "insert exit row %d", i+1)
		}
	}
	imp.logger.Debug().Int("count", len(rows)).Msg("imported exits")
	return nil
}

func (imp *Importer) importStations(ctx context.Context, tx *sql.Tx, rows []StationRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stations (seq, name_std, platform_type, has_rd, has_gr, has_yl, has_bl, has_sv, has_or)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare stations")
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, i, r.Station, r.PlatformType,
			r.HasRD, r.HasGR, r.HasYL, r.HasBL, r.HasSV, r.HasOR); err != nil {
			return errors.Wrapf(err, "insert station %s", r.Station)
		}
	}
	imp.logger.Debug().Int("count", len(rows)).Msg("imported stations")
	return nil
}
