package metro

import (
	"regexp"

	"github.com/pkg/errors"
)

var levelSuffix = regexp.MustCompile(` \((Lower|Upper) Level\)$`)

// NormalizeStationName strips the platform level suffix some stations carry
// in the source tables, so both levels group under one station.
func NormalizeStationName(name string) string {
	return levelSuffix.ReplaceAllString(name, "")
}

// Egress is a physical exit, elevator, escalator or stairway reachable from
// a platform. Egresses are built once at load time and never modified.
type Egress struct {
	Station   string
	Icon      string
	Car       int
	Door      int
	Platform  Direction // DirectionNone when reachable from either platform
	Label     string
	Lines     LineSet
	Preferred bool
	Transfer  *TransferInfo
}

// EgressParams are the raw inputs for one egress row.
type EgressParams struct {
	Station   string
	Icon      string
	X         float64
	Platform  Direction
	Label     string
	Lines     LineSet
	Preferred bool

	TransferIndicator string
	TransferLines     string
	TransferDirection string
}

// NewEgress derives car/door from p.X and parses the transfer columns.
func NewEgress(doors *DoorTable, p EgressParams) (*Egress, error) {
	if doors == nil {
		return nil, errors.New("nil door table")
	}
	transfer, err := ParseTransferInfo(p.TransferIndicator, p.TransferLines, p.TransferDirection)
	if err != nil {
		return nil, errors.Wrapf(err, "egress %q at %s", p.Label, p.Station)
	}
	car, door := doors.Locate(p.X)
	return &Egress{
		Station:   NormalizeStationName(p.Station),
		Icon:      p.Icon,
		Car:       car,
		Door:      door,
		Platform:  p.Platform,
		Label:     p.Label,
		Lines:     p.Lines,
		Preferred: p.Preferred,
		Transfer:  transfer,
	}, nil
}

// IsTransfer reports whether this egress is a transfer point onto line for
// trains heading to terminus.
func (e *Egress) IsTransfer(line LineCode, terminus string) bool {
	return e.Transfer.Matches(line, terminus)
}

// ExitInfo is what a rider needs to know about one egress when arriving on a
// given line in a given direction.
type ExitInfo struct {
	Preferred bool
	Label     string
	Icon      string
	Car       int
	Door      int
}

// ExitInfo returns the car/door to ride for this egress, or false when the
// egress is on the other platform or does not serve line. Positions are
// recorded facing westbound and mirrored for eastbound travel.
func (e *Egress) ExitInfo(dir Direction, line LineCode) (ExitInfo, bool) {
	if e.Platform != DirectionNone && e.Platform != dir {
		return ExitInfo{}, false
	}
	if !e.Lines.Has(line) {
		return ExitInfo{}, false
	}
	info := ExitInfo{
		Preferred: e.Preferred,
		Label:     e.Label,
		Icon:      e.Icon,
		Car:       e.Car,
		Door:      e.Door,
	}
	if dir == Eastbound {
		info.Car, info.Door = mirror(e.Car, e.Door)
	}
	return info, true
}
