package metro

import (
	"sort"

	"github.com/pkg/errors"
)

// lineSequences are the station names of every line, western terminus first.
var lineSequences = map[LineCode][]string{
	Red: {
		"Shady Grove",
		"Rockville",
		"Twinbrook",
		"North Bethesda",
		"Grosvenor-Strathmore",
		"Medical Center",
		"Bethesda",
		"Friendship Heights",
		"Tenleytown-AU",
		"Van Ness-UDC",
		"Cleveland Park",
		"Woodley Park",
		"Dupont Circle",
		"Farragut North",
		"Metro Center",
		"Gallery Place",
		"Judiciary Square",
		"Union Station",
		"NoMa-Gallaudet U",
		"Rhode Island Avenue",
		"Brookland-CUA",
		"Fort Totten",
		"Takoma",
		"Silver Spring",
		"Forest Glen",
		"Wheaton",
		"Glenmont",
	},
	Green: {
		"Greenbelt",
		"College Park-U of Md",
		"Hyattsville Crossing",
		"West Hyattsville",
		"Fort Totten",
		"Georgia Avenue-Petworth",
		"Columbia Heights",
		"U Street",
		"Shaw-Howard U",
		"Mount Vernon Square",
		"Gallery Place",
		"Archives",
		"L'Enfant Plaza",
		"Waterfront",
		"Navy Yard-Ballpark",
		"Anacostia",
		"Congress Heights",
		"Southern Avenue",
		"Naylor Road",
		"Suitland",
		"Branch Avenue",
	},
	Yellow: {
		"Mount Vernon Square",
		"Gallery Place",
		"Archives",
		"L'Enfant Plaza",
		"Pentagon",
		"Pentagon City",
		"Crystal City",
		"Washington National Airport",
		"Potomac Yard",
		"Braddock Road",
		"King Street-Old Town",
		"Eisenhower Avenue",
		"Huntington",
	},
	Blue: {
		"Franconia-Springfield",
		"Van Dorn Street",
		"King Street-Old Town",
		"Braddock Road",
		"Potomac Yard",
		"Washington National Airport",
		"Crystal City",
		"Pentagon City",
		"Pentagon",
		"Arlington Cemetery",
		"Rosslyn",
		"Foggy Bottom-GWU",
		"Farragut West",
		"McPherson Square",
		"Metro Center",
		"Federal Triangle",
		"Smithsonian",
		"L'Enfant Plaza",
		"Federal Center SW",
		"Capitol South",
		"Eastern Market",
		"Potomac Avenue",
		"Stadium-Armory",
		"Benning Road",
		"Capitol Heights",
		"Addison Road",
		"Morgan Boulevard",
		"Downtown Largo",
	},
	Silver: {
		"Ashburn",
		"Loudoun Gateway",
		"Washington Dulles International Airport",
		"Innovation Center",
		"Herndon",
		"Reston Town Center",
		"Wiehle-Reston East",
		"Spring Hill",
		"Greensboro",
		"Tysons",
		"McLean",
		"East Falls Church",
		"Ballston-MU",
		"Virginia Square-GMU",
		"Clarendon",
		"Court House",
		"Rosslyn",
		"Foggy Bottom-GWU",
		"Farragut West",
		"McPherson Square",
		"Metro Center",
		"Federal Triangle",
		"Smithsonian",
		"L'Enfant Plaza",
		"Federal Center SW",
		"Capitol South",
		"Eastern Market",
		"Potomac Avenue",
		"Stadium-Armory",
		"Benning Road",
		"Capitol Heights",
		"Addison Road",
		"Morgan Boulevard",
		"Downtown Largo",
	},
	Orange: {
		"Vienna",
		"Dunn Loring",
		"West Falls Church",
		"East Falls Church",
		"Ballston-MU",
		"Virginia Square-GMU",
		"Clarendon",
		"Court House",
		"Rosslyn",
		"Foggy Bottom-GWU",
		"Farragut West",
		"McPherson Square",
		"Metro Center",
		"Federal Triangle",
		"Smithsonian",
		"L'Enfant Plaza",
		"Federal Center SW",
		"Capitol South",
		"Eastern Market",
		"Potomac Avenue",
		"Stadium-Armory",
		"Minnesota Avenue",
		"Deanwood",
		"Cheverly",
		"Landover",
		"New Carrollton",
	},
}

// LineSequence returns a copy of the station names of a line in order.
func LineSequence(code LineCode) []string {
	seq := lineSequences[code]
	out := make([]string, len(seq))
	copy(out, seq)
	return out
}

// Network holds every station and line. It is built once before any trip is
// planned and is read-only afterwards, so it may be shared between
// goroutines.
type Network struct {
	stations map[string]*Station
	lines    map[LineCode]*Line
	names    []string
}

// NewNetwork resolves the fixed line sequences against stations.
func NewNetwork(stations map[string]*Station) (*Network, error) {
	return newNetwork(stations, lineSequences)
}

func newNetwork(stations map[string]*Station, sequences map[LineCode][]string) (*Network, error) {
	n := &Network{
		stations: stations,
		lines:    make(map[LineCode]*Line, len(sequences)),
		names:    make([]string, 0, len(stations)),
	}
	for name := range stations {
		n.names = append(n.names, name)
	}
	sort.Strings(n.names)

	for _, code := range AllLines {
		seq, ok := sequences[code]
		if !ok {
			continue
		}
		resolved := make([]*Station, len(seq))
		for i, name := range seq {
			s, ok := stations[name]
			if !ok {
				return nil, errors.Wrapf(ErrStationNotFound, "%q on line %s", name, code)
			}
			resolved[i] = s
		}
		line, err := NewLine(code, resolved)
		if err != nil {
			return nil, err
		}
		n.lines[code] = line
	}
	return n, nil
}

// Station looks up a station by name.
func (n *Network) Station(name string) (*Station, error) {
	s, ok := n.stations[name]
	if !ok {
		return nil, errors.Wrapf(ErrStationNotFound, "%q", name)
	}
	return s, nil
}

// Line looks up a line by code.
func (n *Network) Line(code LineCode) (*Line, error) {
	l, ok := n.lines[code]
	if !ok {
		return nil, errors.Wrapf(ErrLineNotFound, "%q", code)
	}
	return l, nil
}

// Lines returns every line in canonical order.
func (n *Network) Lines() []*Line {
	lines := make([]*Line, 0, len(n.lines))
	for _, code := range AllLines {
		if l, ok := n.lines[code]; ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// StationNames returns every station name, sorted.
func (n *Network) StationNames() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}
