package metro

import (
	"github.com/pkg/errors"
)

// Line is one rail line: its stations in geographic order, index 0 being the
// western (or southern) terminus.
type Line struct {
	Code     LineCode
	Stations []*Station

	index     map[string]int
	transfers map[LineCode][]*Station
}

// NewLine builds a line and its transfer index. A station may appear only
// once and a line needs two termini.
func NewLine(code LineCode, stations []*Station) (*Line, error) {
	if len(stations) < 2 {
		return nil, errors.Errorf("line %s needs at least two stations", code)
	}
	l := &Line{
		Code:     code,
		Stations: stations,
		index:    make(map[string]int, len(stations)),
	}
	for i, s := range stations {
		if _, dup := l.index[s.Name]; dup {
			return nil, errors.Errorf("line %s lists %q twice", code, s.Name)
		}
		l.index[s.Name] = i
	}
	l.transfers = findTransferStations(stations)
	return l, nil
}

// findTransferStations returns, per line, the interior stations where that
// line joins or leaves this one: it serves the station but not the station
// before or after it.
func findTransferStations(stations []*Station) map[LineCode][]*Station {
	transfers := make(map[LineCode][]*Station)
	for i := 1; i < len(stations)-1; i++ {
		prev, cur, next := stations[i-1], stations[i], stations[i+1]
		for _, code := range cur.Lines.Codes() {
			if !prev.Lines.Has(code) || !next.Lines.Has(code) {
				transfers[code] = append(transfers[code], cur)
			}
		}
	}
	return transfers
}

// TransferStations returns the stations where riders can change from this
// line onto line to, in line order.
func (l *Line) TransferStations(to LineCode) []*Station {
	return l.transfers[to]
}

// StationNames returns the station names in line order.
func (l *Line) StationNames() []string {
	names := make([]string, len(l.Stations))
	for i, s := range l.Stations {
		names[i] = s.Name
	}
	return names
}

// Contains reports whether the line stops at the named station.
func (l *Line) Contains(name string) bool {
	_, ok := l.index[name]
	return ok
}

// IndexOf returns the position of the named station on the line.
func (l *Line) IndexOf(name string) (int, error) {
	i, ok := l.index[name]
	if !ok {
		return 0, errors.Wrapf(ErrStationNotFound, "%q on line %s", name, l.Code)
	}
	return i, nil
}

func (l *Line) WesternTerminus() string { return l.Stations[0].Name }
func (l *Line) EasternTerminus() string { return l.Stations[len(l.Stations)-1].Name }

// Terminus returns the name of the terminus trains heading in dir run to.
func (l *Line) Terminus(dir Direction) string {
	if dir == Eastbound {
		return l.EasternTerminus()
	}
	return l.WesternTerminus()
}

// Heading returns the direction of travel and the number of stops between
// start and end. A zero-stop ride counts as westbound.
func (l *Line) Heading(start, end *Station) (Direction, int, error) {
	from, err := l.IndexOf(start.Name)
	if err != nil {
		return DirectionNone, 0, err
	}
	to, err := l.IndexOf(end.Name)
	if err != nil {
		return DirectionNone, 0, err
	}
	if to > from {
		return Eastbound, to - from, nil
	}
	return Westbound, from - to, nil
}

// TransferConstraint restricts a leg's exits to egresses that are transfer
// points onto Line for trains heading to Terminus.
type TransferConstraint struct {
	Line     LineCode
	Terminus string
}

// PlanLeg plans a ride on this line from start to end. Exit recommendations
// come from the arrival station only. When onward is set, only egresses that
// serve as a transfer onto onward.Line are kept.
func (l *Line) PlanLeg(start, end *Station, onward *TransferConstraint) (TripLeg, error) {
	dir, stops, err := l.Heading(start, end)
	if err != nil {
		return TripLeg{}, err
	}

	exits := make(ExitRecommendations)
	for _, e := range end.Egresses {
		info, ok := e.ExitInfo(dir, l.Code)
		if !ok {
			continue
		}
		if onward != nil && !e.IsTransfer(onward.Line, onward.Terminus) {
			continue
		}
		exits[info.Label] = append(exits[info.Label], Recommendation{
			Icon:      info.Icon,
			Car:       info.Car,
			Door:      info.Door,
			Preferred: info.Preferred,
		})
	}

	return TripLeg{
		Direction:    l.Terminus(dir),
		NumStops:     stops,
		Egresses:     exits,
		StartStation: start.Name,
		EndStation:   end.Name,
		Lines:        string(l.Code),
		heading:      dir,
	}, nil
}
