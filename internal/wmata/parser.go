package wmata

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// File names of the reference tables inside a data directory.
const (
	DoorsFile    = "Doors.csv"
	EgressesFile = "Egresses.csv"
	ExitsFile    = "Exits.csv"
	StationsFile = "Stations.csv"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseDir reads the four reference tables from dir. The files are parsed
// concurrently; the first failure is returned.
func ParseDir(dir string, logger zerolog.Logger) (*Tables, error) {
	tables := &Tables{}

	p := pool.New().WithErrors()
	p.Go(func() error { return parseCSVFile(filepath.Join(dir, DoorsFile), &tables.Doors) })
	p.Go(func() error { return parseCSVFile(filepath.Join(dir, EgressesFile), &tables.Egresses) })
	p.Go(func() error { return parseCSVFile(filepath.Join(dir, ExitsFile), &tables.Exits) })
	p.Go(func() error { return parseCSVFile(filepath.Join(dir, StationsFile), &tables.Stations) })
	if err := p.Wait(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("dir", dir).
		Int("doors", len(tables.Doors)).
		Int("egresses", len(tables.Egresses)).
		Int("exits", len(tables.Exits)).
		Int("stations", len(tables.Stations)).
		Msg("reference tables parsed")
	return tables, nil
}

// parseCSVFile decodes one CSV file into out, a pointer to a slice of row
// structs. Rows with missing trailing columns are tolerated.
func parseCSVFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read csv")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	if err := gocsv.UnmarshalCSV(r, out); err != nil {
		return errors.Wrapf(err, "parse %s", filepath.Base(path))
	}
	return nil
}
