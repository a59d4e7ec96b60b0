package metro

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// CarsPerTrain is the number of cars in a full-length train.
	CarsPerTrain = 8
	// DoorsPerCar is the number of doors on each side of a car.
	DoorsPerCar = 3
)

// Door is one row of the door position table: a car number and the
// x-coordinate of one of its doors along the platform.
type Door struct {
	Car int
	X   float64
}

// DoorTable maps platform x-coordinates to car/door positions.
type DoorTable struct {
	doors []Door
}

// NewDoorTable validates rows and keeps them in their given order, which is
// significant for both tie-breaking and door numbering.
func NewDoorTable(doors []Door) (*DoorTable, error) {
	if len(doors) == 0 {
		return nil, errors.New("door table is empty")
	}
	for i, d := range doors {
		if d.Car < 1 || d.Car > CarsPerTrain {
			return nil, errors.Errorf("door row %d: car %d out of range", i, d.Car)
		}
	}
	rows := make([]Door, len(doors))
	copy(rows, doors)
	return &DoorTable{doors: rows}, nil
}

// Locate returns the car and the 1-based door within that car nearest to x.
// Ties go to the earlier row.
func (t *DoorTable) Locate(x float64) (car, door int) {
	best := 0
	bestDiff := math.Abs(t.doors[0].X - x)
	for i := 1; i < len(t.doors); i++ {
		if diff := math.Abs(t.doors[i].X - x); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}

	car = t.doors[best].Car
	for i := 0; i <= best; i++ {
		if t.doors[i].Car == car {
			door++
		}
	}
	return car, door
}

// Len returns the number of rows.
func (t *DoorTable) Len() int {
	return len(t.doors)
}

// mirror converts a car/door pair recorded for westbound travel into the
// numbering seen when riding eastbound.
func mirror(car, door int) (int, int) {
	return CarsPerTrain + 1 - car, DoorsPerCar + 1 - door
}
