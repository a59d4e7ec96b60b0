package handler

import (
	"net/http"
	"strings"

	"metroexit/internal/templates"
)

// Home serves the trip planner form.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := templates.IndexData{
		Page: h.page("Plan a trip", "/"),
		Form: templates.StationForm{
			Stations: h.network.StationNames(),
			Start:    r.URL.Query().Get("start"),
			End:      r.URL.Query().Get("end"),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.IndexPage(data).Render(r.Context(), w); err != nil {
		h.logger.Error().Err(err).Msg("rendering index page")
	}
}

// PlanForm handles a submitted start/end pair and renders the trip.
func (h *Handler) PlanForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	start := strings.TrimSpace(r.PostForm.Get("start_station"))
	end := strings.TrimSpace(r.PostForm.Get("end_station"))

	data := templates.PlanData{
		Page: h.page("Your trip", "/"),
		Form: templates.StationForm{
			Stations: h.network.StationNames(),
			Start:    start,
			End:      end,
		},
	}

	status := http.StatusOK
	if start == "" || end == "" {
		status = http.StatusBadRequest
		data.Form.Error = "Choose both a start and an end station."
	} else if plan, err := h.plan(start, end); err != nil {
		status = statusFor(err)
		data.Form.Error = userMessage(err, start, end)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("start", start).Str("end", end).Msg("planning trip")
		}
	} else {
		data.Plan = plan
		data.Alerts = h.alertsForPlan(plan)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.PlanPage(data).Render(r.Context(), w); err != nil {
		h.logger.Error().Err(err).Msg("rendering plan page")
	}
}
