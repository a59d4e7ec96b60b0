package metro

import (
	"encoding/json"
	"testing"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

func checkLeg(t *testing.T, name string, got TripLeg, direction string, stops int, lines string, exits ExitRecommendations) {
	t.Helper()
	if got.Direction != direction {
		t.Errorf("%s direction = %q, want %q", name, got.Direction, direction)
	}
	if got.NumStops != stops {
		t.Errorf("%s num_stops = %d, want %d", name, got.NumStops, stops)
	}
	if got.Lines != lines {
		t.Errorf("%s lines = %q, want %q", name, got.Lines, lines)
	}
	if diff := pretty.Diff(got.Egresses, exits); len(diff) > 0 {
		t.Errorf("%s egresses diff: %v", name, diff)
	}
}

func TestPlanTrip_SameLine(t *testing.T) {
	n := fullTestNetwork(t)

	tests := []struct {
		name      string
		start     string
		end       string
		direction string
		stops     int
		lines     string
		exits     ExitRecommendations
	}{
		{"end to end", "Shady Grove", "Glenmont", "Glenmont", 26, "RD", mainExit(8, 3)},
		{"red and green prefers red", "Fort Totten", "Gallery Place", "Shady Grove", 6, "RD", mainExit(1, 1)},
		{"equal lines merge", "Rosslyn", "Metro Center", "Downtown Largo/New Carrollton", 4, "BL/SV/OR", mainExit(8, 3)},
		{"fewest stops wins", "Pentagon", "L'Enfant Plaza", "Mount Vernon Square", 1, "YL", mainExit(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanTrip(n, tt.start, tt.end)
			if err != nil {
				t.Fatalf("PlanTrip: %v", err)
			}
			if plan.Transfer || plan.SecondLeg != nil {
				t.Fatal("plan should not transfer")
			}
			if plan.StartStation != tt.start || plan.EndStation != tt.end {
				t.Errorf("stations = %q -> %q", plan.StartStation, plan.EndStation)
			}
			checkLeg(t, "leg", plan.FirstLeg, tt.direction, tt.stops, tt.lines, tt.exits)
			if plan.FirstLeg.StartStation != tt.start || plan.FirstLeg.EndStation != tt.end {
				t.Errorf("leg stations = %q -> %q", plan.FirstLeg.StartStation, plan.FirstLeg.EndStation)
			}
		})
	}
}

func TestPlanTrip_SameLineTieAtMinimum(t *testing.T) {
	n := buildTestNetwork(t, map[LineCode][]string{
		Yellow: {"A", "B", "C"},
		Blue:   {"A", "C"},
		Silver: {"A", "C"},
		Orange: {"A", "P", "Q", "C"},
	})

	plan, err := PlanTrip(n, "A", "C")
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	checkLeg(t, "leg", plan.FirstLeg, "C", 1, "BL/SV", mainExit(8, 3))
	if plan.FirstLeg.Heading() != Eastbound {
		t.Errorf("Heading() = %v, want eastbound", plan.FirstLeg.Heading())
	}
}

func TestPlanTrip_Transfer(t *testing.T) {
	n := fullTestNetwork(t)

	tests := []struct {
		name        string
		start       string
		end         string
		firstDir    string
		firstStops  int
		firstExits  ExitRecommendations
		secondDir   string
		secondStops int
		secondExits ExitRecommendations
	}{
		{
			// Greenbelt then Franconia-Springfield keeps riders heading the
			// same way, so the empty first leg is left alone.
			name: "continuing direction", start: "Anacostia", end: "Van Dorn Street",
			firstDir: "Greenbelt", firstStops: 3, firstExits: ExitRecommendations{},
			secondDir: "Franconia-Springfield", secondStops: 16, secondExits: mainExit(1, 1),
		},
		{
			name: "reversing direction", start: "Greenbelt", end: "Van Dorn Street",
			firstDir: "Branch Avenue", firstStops: 12, firstExits: mainExit(8, 3),
			secondDir: "Franconia-Springfield", secondStops: 16, secondExits: mainExit(1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanTrip(n, tt.start, tt.end)
			if err != nil {
				t.Fatalf("PlanTrip: %v", err)
			}
			if !plan.Transfer || plan.SecondLeg == nil {
				t.Fatal("plan should transfer")
			}
			checkLeg(t, "first leg", plan.FirstLeg, tt.firstDir, tt.firstStops, "GR", tt.firstExits)
			checkLeg(t, "second leg", *plan.SecondLeg, tt.secondDir, tt.secondStops, "BL", tt.secondExits)
			if plan.FirstLeg.EndStation != "L'Enfant Plaza" || plan.SecondLeg.StartStation != "L'Enfant Plaza" {
				t.Errorf("transfer at %q/%q, want L'Enfant Plaza", plan.FirstLeg.EndStation, plan.SecondLeg.StartStation)
			}
			if len(plan.Legs()) != 2 {
				t.Errorf("Legs() has %d legs, want 2", len(plan.Legs()))
			}
		})
	}
}

func TestPlanTrip_TransferUsesTransferEgress(t *testing.T) {
	n := fullTestNetwork(t, EgressParams{
		Station:           "L'Enfant Plaza",
		Icon:              "elevator",
		X:                 doorX(5, 1),
		Label:             "7th St",
		Lines:             NewLineSet(Green),
		TransferIndicator: "L'Enfant Plaza",
		TransferLines:     "[BL]",
		TransferDirection: "[Franconia-Springfield]",
	})

	plan, err := PlanTrip(n, "Anacostia", "Van Dorn Street")
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	want := ExitRecommendations{"7th St": {{Icon: "elevator", Car: 5, Door: 1}}}
	checkLeg(t, "first leg", plan.FirstLeg, "Greenbelt", 3, "GR", want)
}

func TestPlanTrip_TransferEgressMatchesOnwardTerminus(t *testing.T) {
	transferEgress := func(termini string) EgressParams {
		return EgressParams{
			Station:           "L'Enfant Plaza",
			Icon:              "elevator",
			X:                 doorX(5, 1),
			Label:             "Orange Line",
			Lines:             NewLineSet(Yellow),
			TransferIndicator: "L'Enfant Plaza",
			TransferLines:     "[BL, OR]",
			TransferDirection: termini,
		}
	}

	tests := []struct {
		name    string
		termini string
		want    ExitRecommendations
	}{
		// Blue and Orange both head west from L'Enfant, to different termini.
		{"other branch", "[Franconia-Springfield]", ExitRecommendations{}},
		{"onward terminus", "[Vienna]", ExitRecommendations{"Orange Line": {{Icon: "elevator", Car: 5, Door: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := fullTestNetwork(t, transferEgress(tt.termini))
			plan, err := PlanTrip(n, "Huntington", "Vienna")
			if err != nil {
				t.Fatalf("PlanTrip: %v", err)
			}
			checkLeg(t, "first leg", plan.FirstLeg, "Mount Vernon Square", 9, "YL", tt.want)
			if plan.SecondLeg.Direction != "Vienna" {
				t.Errorf("second leg toward %q, want Vienna", plan.SecondLeg.Direction)
			}
		})
	}
}

func TestPlanTrip_TransferTie(t *testing.T) {
	n := buildTestNetwork(t, map[LineCode][]string{
		Green: {"G0", "T1", "S", "T2", "G4"},
		Blue:  {"B0", "T1", "E", "T2", "B4"},
	})

	plan, err := PlanTrip(n, "S", "E")
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	// Both transfer stations cost two stops; the first one found is kept and
	// both directions are listed.
	checkLeg(t, "first leg", plan.FirstLeg, "G0/G4", 1, "GR", mainExit(1, 1))
	checkLeg(t, "second leg", *plan.SecondLeg, "B4/B0", 1, "BL", mainExit(8, 3))
	if plan.FirstLeg.EndStation != "T1" {
		t.Errorf("transfer at %q, want T1", plan.FirstLeg.EndStation)
	}
}

func TestPlanTrip_Errors(t *testing.T) {
	n := buildTestNetwork(t, map[LineCode][]string{
		Green: {"A", "B", "C"},
		Blue:  {"D", "E", "F"},
	})

	if _, err := PlanTrip(n, "A", "F"); !errors.Is(err, ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
	if _, err := PlanTrip(n, "Atlantis", "F"); !errors.Is(err, ErrStationNotFound) {
		t.Errorf("err = %v, want ErrStationNotFound", err)
	}
	if _, err := NewTripPlanner(n, "A", "Atlantis"); !errors.Is(err, ErrStationNotFound) {
		t.Errorf("err = %v, want ErrStationNotFound", err)
	}
}

func TestPlanTrip_Idempotent(t *testing.T) {
	n := fullTestNetwork(t)

	first, err := PlanTrip(n, "Greenbelt", "Van Dorn Street")
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	if _, err := PlanTrip(n, "Anacostia", "Van Dorn Street"); err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	again, err := PlanTrip(n, "Greenbelt", "Van Dorn Street")
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	if diff := pretty.Diff(first, again); len(diff) > 0 {
		t.Errorf("repeat plan differs: %v", diff)
	}
}

func TestTripPlan_JSON(t *testing.T) {
	n := fullTestNetwork(t)
	plan, err := PlanTrip(n, "Shady Grove", "Glenmont")
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}

	b, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"start_station":"Shady Grove","end_station":"Glenmont","transfer":false,` +
		`"first_leg":{"direction":"Glenmont","num_stops":26,"egresses":{"Main Exit":[["escalator",8,3]]},` +
		`"start_station":"Shady Grove","end_station":"Glenmont","lines":"RD"}}`
	if string(b) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", b, want)
	}
}

func TestContinuesThrough(t *testing.T) {
	tests := []struct {
		first, second string
		want          bool
	}{
		{"Greenbelt", "Franconia-Springfield", true},
		{"Downtown Largo", "Greenbelt", true},
		{"New Carrolton", "Vienna", true},
		// Only the misspelled name is recognised.
		{"New Carrollton", "Vienna", false},
		{"Branch Avenue", "Franconia-Springfield", false},
		{"Greenbelt", "Glenmont", false},
	}
	for _, tt := range tests {
		if got := continuesThrough(tt.first, tt.second); got != tt.want {
			t.Errorf("continuesThrough(%q, %q) = %v, want %v", tt.first, tt.second, got, tt.want)
		}
	}
}
