package metro

import (
	"encoding/json"
	"sort"
)

// Recommendation tells a rider which car and door to ride for an exit.
type Recommendation struct {
	Icon      string
	Car       int
	Door      int
	Preferred bool
}

// MarshalJSON encodes r as [icon, car, door].
func (r Recommendation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Icon, r.Car, r.Door})
}

// Mirrored returns r as seen riding in the opposite direction.
func (r Recommendation) Mirrored() Recommendation {
	r.Car, r.Door = mirror(r.Car, r.Door)
	return r
}

// ExitRecommendations maps an exit label to the car/door positions closest
// to it.
type ExitRecommendations map[string][]Recommendation

// Labels returns the exit labels in sorted order.
func (e ExitRecommendations) Labels() []string {
	labels := make([]string, 0, len(e))
	for label := range e {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Mirrored returns a copy with every recommendation mirrored.
func (e ExitRecommendations) Mirrored() ExitRecommendations {
	out := make(ExitRecommendations, len(e))
	for label, recs := range e {
		mirrored := make([]Recommendation, len(recs))
		for i, r := range recs {
			mirrored[i] = r.Mirrored()
		}
		out[label] = mirrored
	}
	return out
}

// TripLeg is one uninterrupted ride on a single line (or on several lines
// that are equally good for it).
type TripLeg struct {
	// Direction is the name of the terminus the train is heading for. Merged
	// legs join several names with "/".
	Direction    string              `json:"direction"`
	NumStops     int                 `json:"num_stops"`
	Egresses     ExitRecommendations `json:"egresses"`
	StartStation string              `json:"start_station"`
	EndStation   string              `json:"end_station"`
	// Lines is a line code, or several joined with "/".
	Lines string `json:"lines"`

	heading Direction
}

// Heading returns the direction of travel the leg was planned for.
func (l TripLeg) Heading() Direction {
	return l.heading
}

// TripPlan is the result of planning a trip. SecondLeg is set iff Transfer.
type TripPlan struct {
	StartStation string   `json:"start_station"`
	EndStation   string   `json:"end_station"`
	Transfer     bool     `json:"transfer"`
	FirstLeg     TripLeg  `json:"first_leg"`
	SecondLeg    *TripLeg `json:"second_leg,omitempty"`
}

// Legs returns the legs of the plan in riding order.
func (p *TripPlan) Legs() []TripLeg {
	if p.SecondLeg == nil {
		return []TripLeg{p.FirstLeg}
	}
	return []TripLeg{p.FirstLeg, *p.SecondLeg}
}
