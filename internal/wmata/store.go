package wmata

import (
	"context"

	"github.com/pkg/errors"

	"metroexit/internal/storage"
)

// LoadTables reads the reference tables back from SQLite in file order.
func LoadTables(ctx context.Context, db *storage.DB) (*Tables, error) {
	t := &Tables{}

	rows, err := db.QueryContext(ctx, `SELECT car, x FROM doors ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "query doors")
	}
	defer rows.Close()
	for rows.Next() {
		var r DoorRow
		if err := rows.Scan(&r.Car, &r.X); err != nil {
			return nil, errors.Wrap(err, "scan door")
		}
		t.Doors = append(t.Doors, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	erows, err := db.QueryContext(ctx, `
		SELECT name_std, icon, x, y, exit_label, pref, transfer, lines, direction
		FROM egresses ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "query egresses")
	}
	defer erows.Close()
	for erows.Next() {
		var r EgressRow
		if err := erows.Scan(&r.Station, &r.Icon, &r.X, &r.Y, &r.ExitLabel,
			&r.Preferred, &r.Transfer, &r.Lines, &r.Direction); err != nil {
			return nil, errors.Wrap(err, "scan egress")
		}
		t.Egresses = append(t.Egresses, r)
	}
	if err := erows.Err(); err != nil {
		return nil, err
	}

	xrows, err := db.QueryContext(ctx, `SELECT name_std, exit_label, description FROM exits ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "query exits")
	}
	defer xrows.Close()
	for xrows.Next() {
		var r ExitRow
		if err := xrows.Scan(&r.Station, &r.ExitLabel, &r.Description); err != nil {
			return nil, errors.Wrap(err, "scan exit")
		}
		t.Exits = append(t.Exits, r)
	}
	if err := xrows.Err(); err != nil {
		return nil, err
	}

	srows, err := db.QueryContext(ctx, `
		SELECT name_std, platform_type, has_rd, has_gr, has_yl, has_bl, has_sv, has_or
		FROM stations ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "query stations")
	}
	defer srows.Close()
	for srows.Next() {
		var r StationRow
		if err := srows.Scan(&r.Station, &r.PlatformType,
			&r.HasRD, &r.HasGR, &r.HasYL, &r.HasBL, &r.HasSV, &r.HasOR); err != nil {
			return nil, errors.Wrap(err, "scan station")
		}
		t.Stations = append(t.Stations, r)
	}
	return t, srows.Err()
}
