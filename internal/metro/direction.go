package metro

import "github.com/pkg/errors"

// Direction is a direction of travel along a line. Index 0 of every line is
// its western (or southern) terminus, so travel towards higher indexes is
// eastbound.
type Direction int

const (
	DirectionNone Direction = iota
	Eastbound
	Westbound
)

func (d Direction) String() string {
	switch d {
	case Eastbound:
		return "eastbound"
	case Westbound:
		return "westbound"
	default:
		return ""
	}
}

// PlatformDirection maps the platform side recorded in the egress table to the
// only direction of travel that egress is reachable from.
func PlatformDirection(side int) (Direction, error) {
	switch side {
	case 1:
		return Eastbound, nil
	case 2:
		return Westbound, nil
	}
	return DirectionNone, errors.Errorf("unknown platform side %d", side)
}
