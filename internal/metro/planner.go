package metro

import (
	"strings"

	"github.com/pkg/errors"
)

// TripPlanner plans one trip. Planners are cheap and built per request; the
// Network they read from is shared.
type TripPlanner struct {
	network *Network
	start   *Station
	end     *Station
}

// NewTripPlanner resolves the start and end station names.
func NewTripPlanner(network *Network, start, end string) (*TripPlanner, error) {
	s, err := network.Station(start)
	if err != nil {
		return nil, errors.Wrap(err, "start station")
	}
	e, err := network.Station(end)
	if err != nil {
		return nil, errors.Wrap(err, "end station")
	}
	return &TripPlanner{network: network, start: s, end: e}, nil
}

// PlanTrip plans a trip between two named stations.
func PlanTrip(network *Network, start, end string) (*TripPlan, error) {
	p, err := NewTripPlanner(network, start, end)
	if err != nil {
		return nil, err
	}
	return p.Plan()
}

// Plan rides a single line when the two stations share one, otherwise it
// changes lines exactly once.
func (p *TripPlanner) Plan() (*TripPlan, error) {
	plan := &TripPlan{
		StartStation: p.start.Name,
		EndStation:   p.end.Name,
	}

	common := p.start.Lines.Intersect(p.end.Lines)
	if !common.IsEmpty() {
		leg, err := p.planSameLine(common)
		if err != nil {
			return nil, err
		}
		plan.FirstLeg = leg
		return plan, nil
	}

	first, second, err := p.planWithTransfer(p.start.Lines, p.end.Lines)
	if err != nil {
		return nil, err
	}
	plan.Transfer = true
	plan.FirstLeg = first
	plan.SecondLeg = &second
	return plan, nil
}

func (p *TripPlanner) planSameLine(common LineSet) (TripLeg, error) {
	codes := common.Codes()
	legs := make(map[LineCode]TripLeg, len(codes))
	for _, code := range codes {
		line, err := p.network.Line(code)
		if err != nil {
			return TripLeg{}, err
		}
		leg, err := line.PlanLeg(p.start, p.end, nil)
		if err != nil {
			return TripLeg{}, err
		}
		legs[code] = leg
	}

	if len(codes) == 1 {
		return legs[codes[0]], nil
	}
	// Red and Green only share Fort Totten and Gallery Place; prefer Red.
	if common == NewLineSet(Red, Green) {
		return legs[Red], nil
	}

	fewest := legs[codes[0]].NumStops
	allEqual := true
	for _, code := range codes[1:] {
		n := legs[code].NumStops
		if n != fewest {
			allEqual = false
		}
		if n < fewest {
			fewest = n
		}
	}

	if allEqual {
		leg := legs[codes[0]]
		directions := make([]string, 0, len(codes))
		for _, code := range codes {
			directions = append(directions, legs[code].Direction)
		}
		leg.Lines = joinCodes(codes)
		leg.Direction = joinUnique(directions)
		return leg, nil
	}

	var shortest []LineCode
	for _, code := range codes {
		if legs[code].NumStops == fewest {
			shortest = append(shortest, code)
		}
	}
	leg := legs[shortest[0]]
	leg.Lines = joinCodes(shortest)
	return leg, nil
}

type transferOption struct {
	from *Line
	to   *Line
	via  *Station
}

// transferOptions lists every (start line, end line, transfer station)
// triple, in canonical line order then line order of the station.
func (p *TripPlanner) transferOptions(startLines, endLines LineSet) ([]transferOption, error) {
	var options []transferOption
	for _, fromCode := range startLines.Codes() {
		from, err := p.network.Line(fromCode)
		if err != nil {
			return nil, err
		}
		for _, toCode := range endLines.Codes() {
			to, err := p.network.Line(toCode)
			if err != nil {
				return nil, err
			}
			for _, via := range from.TransferStations(toCode) {
				options = append(options, transferOption{from: from, to: to, via: via})
			}
		}
	}
	return options, nil
}

type transferCandidate struct {
	first  TripLeg
	second TripLeg
}

func (p *TripPlanner) planWithTransfer(startLines, endLines LineSet) (TripLeg, TripLeg, error) {
	options, err := p.transferOptions(startLines, endLines)
	if err != nil {
		return TripLeg{}, TripLeg{}, err
	}

	var best []transferCandidate
	fewest := -1
	for _, opt := range options {
		second, err := opt.to.PlanLeg(opt.via, p.end, nil)
		if err != nil {
			return TripLeg{}, TripLeg{}, err
		}
		first, err := opt.from.PlanLeg(p.start, opt.via, &TransferConstraint{
			Line:     opt.to.Code,
			Terminus: second.Direction,
		})
		if err != nil {
			return TripLeg{}, TripLeg{}, err
		}

		total := first.NumStops + second.NumStops
		switch {
		case fewest < 0 || total < fewest:
			fewest = total
			best = []transferCandidate{{first: first, second: second}}
		case total == fewest:
			best = append(best, transferCandidate{first: first, second: second})
		}
	}
	if len(best) == 0 {
		return TripLeg{}, TripLeg{}, errors.Wrapf(ErrNoRoute, "%q to %q", p.start.Name, p.end.Name)
	}

	first, second := mergeCandidates(best)

	// The transfer station had no usable egress for the first leg: reuse the
	// second leg's positions, flipped, unless the rider keeps travelling the
	// same way through the station.
	if len(first.Egresses) == 0 && !continuesThrough(first.Direction, second.Direction) {
		first.Egresses = second.Egresses.Mirrored()
	}
	return first, second, nil
}

// mergeCandidates keeps the first candidate's legs and lists every line and
// direction among the candidates on them.
func mergeCandidates(candidates []transferCandidate) (TripLeg, TripLeg) {
	var firstLines, firstDirs, secondLines, secondDirs []string
	for _, c := range candidates {
		firstLines = append(firstLines, c.first.Lines)
		firstDirs = append(firstDirs, c.first.Direction)
		secondLines = append(secondLines, c.second.Lines)
		secondDirs = append(secondDirs, c.second.Direction)
	}

	first, second := candidates[0].first, candidates[0].second
	first.Lines = joinUnique(firstLines)
	first.Direction = joinUnique(firstDirs)
	second.Lines = joinUnique(secondLines)
	second.Direction = joinUnique(secondDirs)
	return first, second
}

// Terminus pairs for which a rider arriving on the first leg keeps heading the
// same way on the second. The names are kept exactly as recorded, including
// the ones that never match a real terminus.
var (
	continuingTermini = map[string]bool{
		"Downtown Largo":      true,
		"New Carrolton":       true,
		"Mount Vernon Square": true,
		"Greenbelt":           true,
	}
	reversingTermini = map[string]bool{
		"Franconia-Springfield": true,
		"Ashburn":               true,
		"Vienna":                true,
		"Hungington":            true,
		"Branch Avenue":         true,
	}
)

func continuesThrough(firstDirection, secondDirection string) bool {
	if !continuingTermini[firstDirection] {
		return false
	}
	return reversingTermini[secondDirection] || continuingTermini[secondDirection]
}

func joinCodes(codes []LineCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, "/")
}

// joinUnique joins values with "/", dropping repeats but keeping first-seen
// order.
func joinUnique(values []string) string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return strings.Join(out, "/")
}
