package wmata

// Tables holds the four reference tables, rows in file order.
type Tables struct {
	Doors    []DoorRow
	Egresses []EgressRow
	Exits    []ExitRow
	Stations []StationRow
}

// DoorRow is one door position along a platform (Doors.csv).
type DoorRow struct {
	Car string `csv:"Car"`
	X   string `csv:"x"`
}

// EgressRow is one platform egress (Egresses.csv). Transfer, Lines and
// Direction are the raw transfer columns and are usually empty.
type EgressRow struct {
	Station   string `csv:"nameStd"`
	Icon      string `csv:"icon"`
	X         string `csv:"x"`
	Y         string `csv:"y"`
	ExitLabel string `csv:"exitLabel"`
	Preferred string `csv:"pref"`
	Transfer  string `csv:"transfer"`
	Lines     string `csv:"lines"`
	Direction string `csv:"direction"`
}

// ExitRow describes a street exit (Exits.csv).
type ExitRow struct {
	Station     string `csv:"nameStd"`
	ExitLabel   string `csv:"exitLabel"`
	Description string `csv:"description"`
}

// StationRow carries per-station attributes (Stations.csv). A has* column is
// non-empty when the line serves the station.
type StationRow struct {
	Station      string `csv:"nameStd"`
	PlatformType string `csv:"platformType"`
	HasRD        string `csv:"hasRD"`
	HasGR        string `csv:"hasGR"`
	HasYL        string `csv:"hasYL"`
	HasBL        string `csv:"hasBL"`
	HasSV        string `csv:"hasSV"`
	HasOR        string `csv:"hasOR"`
}

// Counts returns the number of rows per table, keyed by file name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		DoorsFile:    len(t.Doors),
		EgressesFile: len(t.Egresses),
		ExitsFile:    len(t.Exits),
		StationsFile: len(t.Stations),
	}
}
