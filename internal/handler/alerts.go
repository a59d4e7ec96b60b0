package handler

import (
	"strings"

	"metroexit/internal/metro"
	"metroexit/internal/realtime"
	"metroexit/internal/templates"
)

// alertsForPlan returns the service alerts affecting any line the plan rides.
func (h *Handler) alertsForPlan(plan *metro.TripPlan) []templates.AlertDisplay {
	if h.rt == nil {
		return nil
	}

	var lines metro.LineSet
	for _, leg := range plan.Legs() {
		lines = lines.Union(legLines(leg))
	}

	var alerts []templates.AlertDisplay
	for _, a := range h.rt.AlertsForLines(lines) {
		alerts = append(alerts, templates.AlertDisplay{
			Header:      a.Header,
			Description: a.Description,
			Effect:      realtime.FormatAlertEffect(a.Effect),
			Lines:       metro.NewLineSet(a.Lines...).String(),
		})
	}
	return alerts
}

// legLines parses a leg's "/"-joined line codes.
func legLines(leg metro.TripLeg) metro.LineSet {
	var lines metro.LineSet
	for _, c := range strings.Split(leg.Lines, "/") {
		if code, err := metro.ParseLineCode(c); err == nil {
			lines = lines.Add(code)
		}
	}
	return lines
}
