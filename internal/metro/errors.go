package metro

import "github.com/pkg/errors"

var (
	// ErrStationNotFound is returned when a station name is not in the
	// loaded tables (or not on the line being asked about).
	ErrStationNotFound = errors.New("station not found")
	// ErrLineNotFound is returned for a line code the network does not have.
	ErrLineNotFound = errors.New("line not found")
	// ErrNoRoute is returned when two stations share no line and no single
	// transfer connects them.
	ErrNoRoute = errors.New("no route between stations")
)
