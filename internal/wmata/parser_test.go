package wmata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func parseTestdata(t *testing.T) *Tables {
	t.Helper()
	tables, err := ParseDir("testdata", zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	return tables
}

func TestParseDir(t *testing.T) {
	tables := parseTestdata(t)

	want := map[string]int{
		DoorsFile:    24,
		EgressesFile: 103,
		ExitsFile:    3,
		StationsFile: 99,
	}
	for file, n := range tables.Counts() {
		if n != want[file] {
			t.Errorf("%s: %d rows, want %d", file, n, want[file])
		}
	}

	first := tables.Egresses[0]
	if first.Station != "Shady Grove" || first.Icon != "escalator" || first.X != "25" {
		t.Errorf("first egress = %+v", first)
	}
	last := tables.Egresses[len(tables.Egresses)-1]
	if last.Transfer != "L'Enfant Plaza" || last.Lines != "[BL, SV, OR]" || last.Direction != "both" {
		t.Errorf("last egress transfer columns = %q %q %q", last.Transfer, last.Lines, last.Direction)
	}
}

func TestParseDir_MissingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DoorsFile), []byte("Car,x\n1,25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseDir(dir, zerolog.Nop()); err == nil {
		t.Error("ParseDir should fail when tables are missing")
	}
}

func TestParseCSVFile_BOMAndRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), ExitsFile)
	data := "\xef\xbb\xbfnameStd,exitLabel,description\nRosslyn,A,N Moore St\nRosslyn,B\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	var rows []ExitRow
	if err := parseCSVFile(path, &rows); err != nil {
		t.Fatalf("parseCSVFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Station != "Rosslyn" || rows[0].Description != "N Moore St" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].ExitLabel != "B" || rows[1].Description != "" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}
