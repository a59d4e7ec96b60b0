package metro

import (
	"testing"
)

// testDoors has one row per door: car c door d sits at (c-1)*100 + d*25.
func testDoors(t *testing.T) *DoorTable {
	t.Helper()
	var rows []Door
	for car := 1; car <= CarsPerTrain; car++ {
		for door := 1; door <= DoorsPerCar; door++ {
			rows = append(rows, Door{Car: car, X: doorX(car, door)})
		}
	}
	doors, err := NewDoorTable(rows)
	if err != nil {
		t.Fatalf("NewDoorTable: %v", err)
	}
	return doors
}

func doorX(car, door int) float64 {
	return float64((car-1)*100 + door*25)
}

// buildTestNetwork gives every station on sequences a single "Main Exit" at
// car 1 door 1 serving each line the station is on, plus any extra egresses.
func buildTestNetwork(t *testing.T, sequences map[LineCode][]string, extra ...EgressParams) *Network {
	t.Helper()
	doors := testDoors(t)

	lines := make(map[string]LineSet)
	var order []string
	for _, code := range AllLines {
		for _, name := range sequences[code] {
			if _, ok := lines[name]; !ok {
				order = append(order, name)
			}
			lines[name] = lines[name].Add(code)
		}
	}

	var egresses []*Egress
	for _, name := range order {
		e, err := NewEgress(doors, EgressParams{
			Station: name,
			Icon:    "escalator",
			X:       doorX(1, 1),
			Label:   "Main Exit",
			Lines:   lines[name],
		})
		if err != nil {
			t.Fatalf("NewEgress(%q): %v", name, err)
		}
		egresses = append(egresses, e)
	}
	for _, p := range extra {
		e, err := NewEgress(doors, p)
		if err != nil {
			t.Fatalf("NewEgress(%q): %v", p.Station, err)
		}
		egresses = append(egresses, e)
	}

	stations, err := GroupStations(egresses)
	if err != nil {
		t.Fatalf("GroupStations: %v", err)
	}
	n, err := newNetwork(stations, sequences)
	if err != nil {
		t.Fatalf("newNetwork: %v", err)
	}
	return n
}

func fullTestNetwork(t *testing.T, extra ...EgressParams) *Network {
	t.Helper()
	return buildTestNetwork(t, lineSequences, extra...)
}

func mainExit(car, door int) ExitRecommendations {
	return ExitRecommendations{
		"Main Exit": {{Icon: "escalator", Car: car, Door: door}},
	}
}
