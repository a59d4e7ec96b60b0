package wmata

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"metroexit/internal/metro"
)

// DefaultExitLabel is used for egresses with no matching Exits row.
const DefaultExitLabel = "Main Exit"

// Platform layouts whose egresses are only reachable from one track.
var sidedPlatforms = map[string]bool{
	"Gap Island": true,
	"Side":       true,
}

type exitKey struct {
	station string
	label   string
}

// DoorTable converts the door rows, keeping file order.
func DoorTable(rows []DoorRow) (*metro.DoorTable, error) {
	doors := make([]metro.Door, 0, len(rows))
	for i, r := range rows {
		car, err := parseInt(r.Car)
		if err != nil {
			return nil, errors.Wrapf(err, "door row %d: car", i+1)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(r.X), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "door row %d: x", i+1)
		}
		doors = append(doors, metro.Door{Car: car, X: x})
	}
	return metro.NewDoorTable(doors)
}

// BuildEgresses joins the egress rows with the station, exit and door tables.
func BuildEgresses(t *Tables) ([]*metro.Egress, error) {
	doors, err := DoorTable(t.Doors)
	if err != nil {
		return nil, err
	}

	stations := make(map[string]StationRow, len(t.Stations))
	for _, s := range t.Stations {
		stations[s.Station] = s
	}
	labels := make(map[exitKey]string, len(t.Exits))
	for _, e := range t.Exits {
		k := exitKey{station: e.Station, label: e.ExitLabel}
		if _, dup := labels[k]; !dup {
			labels[k] = e.Description
		}
	}

	egresses := make([]*metro.Egress, 0, len(t.Egresses))
	for i, row := range t.Egresses {
		station, ok := stations[row.Station]
		if !ok {
			return nil, errors.Wrapf(metro.ErrStationNotFound, "egress row %d: %q", i+1, row.Station)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(row.X), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "egress row %d: x", i+1)
		}

		var platform metro.Direction
		if sidedPlatforms[station.PlatformType] {
			side, err := parseInt(row.Y)
			if err != nil {
				return nil, errors.Wrapf(err, "egress row %d: y", i+1)
			}
			if platform, err = metro.PlatformDirection(side); err != nil {
				return nil, errors.Wrapf(err, "egress row %d", i+1)
			}
		}

		label, ok := labels[exitKey{station: row.Station, label: row.ExitLabel}]
		if !ok {
			label = DefaultExitLabel
		}

		e, err := metro.NewEgress(doors, metro.EgressParams{
			Station:           row.Station,
			Icon:              row.Icon,
			X:                 x,
			Platform:          platform,
			Label:             label,
			Lines:             station.Lines(),
			Preferred:         truthy(row.Preferred),
			TransferIndicator: row.Transfer,
			TransferLines:     row.Lines,
			TransferDirection: row.Direction,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "egress row %d", i+1)
		}
		egresses = append(egresses, e)
	}
	return egresses, nil
}

// BuildNetwork builds the immutable network from the reference tables.
func BuildNetwork(t *Tables) (*metro.Network, error) {
	egresses, err := BuildEgresses(t)
	if err != nil {
		return nil, err
	}
	stations, err := metro.GroupStations(egresses)
	if err != nil {
		return nil, err
	}
	return metro.NewNetwork(stations)
}

// Lines returns the lines flagged as serving the station.
func (s StationRow) Lines() metro.LineSet {
	flags := map[metro.LineCode]string{
		metro.Red:    s.HasRD,
		metro.Green:  s.HasGR,
		metro.Yellow: s.HasYL,
		metro.Blue:   s.HasBL,
		metro.Silver: s.HasSV,
		metro.Orange: s.HasOR,
	}
	var lines metro.LineSet
	for code, v := range flags {
		if served(v) {
			lines = lines.Add(code)
		}
	}
	return lines
}

// served reports whether a has* cell marks the line as present: any value
// except blank or an explicit false.
func served(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}

func truthy(v string) bool {
	v = strings.TrimSpace(v)
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f == 1
}

// parseInt accepts "2" as well as the "2.0" spreadsheets export.
func parseInt(v string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, errors.Errorf("%q is not a whole number", v)
	}
	return int(f), nil
}
