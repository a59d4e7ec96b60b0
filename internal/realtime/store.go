package realtime

import (
	"sync"
	"time"

	"metroexit/internal/metro"
)

// Alert represents a parsed service alert.
type Alert struct {
	ID          string
	Header      string
	Description string
	Lines       []metro.LineCode
	Effect      string // "NO_SERVICE", "REDUCED_SERVICE", "DETOUR", etc.
	Cause       string
}

// Store holds the latest alerts in a thread-safe manner.
type Store struct {
	mu        sync.RWMutex
	alerts    []Alert
	updatedAt time.Time
}

// NewStore creates an empty alert store.
func NewStore() *Store {
	return &Store{}
}

// SetAlerts replaces all alerts.
func (s *Store) SetAlerts(alerts []Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = alerts
	s.updatedAt = time.Now()
}

// UpdatedAt returns when the alerts were last replaced; zero if never.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// AlertsForLines returns alerts affecting any of lines, each at most once,
// in feed order.
func (s *Store) AlertsForLines(lines metro.LineSet) []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Alert
	for _, a := range s.alerts {
		for _, l := range a.Lines {
			if lines.Has(l) {
				result = append(result, a)
				break
			}
		}
	}
	return result
}

// AllAlerts returns all active alerts.
func (s *Store) AllAlerts() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
