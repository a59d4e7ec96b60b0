package metro

import (
	"sort"

	"github.com/pkg/errors"
)

// Station groups every egress sharing a normalized station name.
type Station struct {
	Name     string
	Egresses []*Egress
	Lines    LineSet
}

// NewStation builds a station from its egresses. The name comes from the
// first egress and every other egress must share it.
func NewStation(egresses []*Egress) (*Station, error) {
	if len(egresses) == 0 {
		return nil, errors.New("station has no egresses")
	}
	s := &Station{
		Name:     egresses[0].Station,
		Egresses: egresses,
	}
	for _, e := range egresses {
		if e.Station != s.Name {
			return nil, errors.Errorf("egress for %q grouped under %q", e.Station, s.Name)
		}
		s.Lines = s.Lines.Union(e.Lines)
	}
	return s, nil
}

// GroupStations groups egresses by station name, keeping each station's
// egresses in input order.
func GroupStations(egresses []*Egress) (map[string]*Station, error) {
	grouped := make(map[string][]*Egress)
	var names []string
	for _, e := range egresses {
		if _, ok := grouped[e.Station]; !ok {
			names = append(names, e.Station)
		}
		grouped[e.Station] = append(grouped[e.Station], e)
	}
	sort.Strings(names)

	stations := make(map[string]*Station, len(names))
	for _, name := range names {
		s, err := NewStation(grouped[name])
		if err != nil {
			return nil, err
		}
		stations[name] = s
	}
	return stations, nil
}
