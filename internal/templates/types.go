package templates

import "metroexit/internal/metro"

// Page carries the fields every page layout needs.
type Page struct {
	Title        string
	CurrentPath  string
	AssetVersion string
}

// AlertDisplay is a service alert ready for rendering.
type AlertDisplay struct {
	Header      string
	Description string
	Effect      string
	Lines       string
}

// StationForm is the state of the start/end picker.
type StationForm struct {
	Stations []string
	Start    string
	End      string
	Error    string
}

// IndexData is the data for the trip planner form page.
type IndexData struct {
	Page Page
	Form StationForm
}

// PlanData is the data for a planned trip.
type PlanData struct {
	Page   Page
	Form   StationForm
	Plan   *metro.TripPlan
	Alerts []AlertDisplay
}
