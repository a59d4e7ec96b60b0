package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"metroexit/internal/metro"
)

type apiError struct {
	Error string `json:"error"`
}

type lineInfo struct {
	Code             string              `json:"code"`
	WesternTerminus  string              `json:"western_terminus"`
	EasternTerminus  string              `json:"eastern_terminus"`
	Stations         []string            `json:"stations"`
	TransferStations map[string][]string `json:"transfer_stations"`
}

// Stations lists every station name, sorted.
func (h *Handler) Stations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.network.StationNames())
}

// Lines describes every line in canonical order.
func (h *Handler) Lines(w http.ResponseWriter, r *http.Request) {
	var out []lineInfo
	for _, l := range h.network.Lines() {
		info := lineInfo{
			Code:             string(l.Code),
			WesternTerminus:  l.WesternTerminus(),
			EasternTerminus:  l.EasternTerminus(),
			Stations:         l.StationNames(),
			TransferStations: make(map[string][]string),
		}
		for _, other := range metro.AllLines {
			for _, s := range l.TransferStations(other) {
				info.TransferStations[string(other)] = append(info.TransferStations[string(other)], s.Name)
			}
		}
		out = append(out, info)
	}
	h.writeJSON(w, http.StatusOK, out)
}

// Plan returns the trip plan for ?start=&end= as JSON.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start == "" || end == "" {
		h.writeJSON(w, http.StatusBadRequest, apiError{Error: "start and end are required"})
		return
	}

	plan, err := h.plan(start, end)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("start", start).Str("end", end).Msg("planning trip")
		}
		h.writeJSON(w, status, apiError{Error: err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("encoding json response")
	}
}
