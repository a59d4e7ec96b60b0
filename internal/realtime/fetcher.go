package realtime

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"

	"metroexit/internal/metro"
)

// routeLines maps the feed's rail route ids to line codes.
var routeLines = map[string]metro.LineCode{
	"RED":    metro.Red,
	"GREEN":  metro.Green,
	"YELLOW": metro.Yellow,
	"BLUE":   metro.Blue,
	"SILVER": metro.Silver,
	"ORANGE": metro.Orange,
}

// LineForRoute maps a feed route id to a line code. Two-letter codes are
// accepted as they are; bus routes and unknown ids report false.
func LineForRoute(routeID string) (metro.LineCode, bool) {
	id := strings.ToUpper(strings.TrimSpace(routeID))
	if code, ok := routeLines[id]; ok {
		return code, true
	}
	if code, err := metro.ParseLineCode(id); err == nil {
		return code, true
	}
	return "", false
}

// Fetcher polls a GTFS-RT alerts feed and updates the store.
type Fetcher struct {
	alertsURL string
	apiKey    string
	interval  time.Duration
	store     *Store
	client    *http.Client
	logger    zerolog.Logger

	// newBackOff builds the retry policy for one poll.
	newBackOff func() backoff.BackOff
}

// NewFetcher creates an alerts fetcher. apiKey, when set, is sent in the
// api_key header.
func NewFetcher(alertsURL, apiKey string, store *Store, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		alertsURL: alertsURL,
		apiKey:    apiKey,
		interval:  60 * time.Second,
		store:     store,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 2 * time.Second
			b.MaxElapsedTime = 45 * time.Second
			return b
		},
	}
}

// Start begins polling the alerts feed. Blocks until context is cancelled.
func (f *Fetcher) Start(ctx context.Context) {
	// Fetch immediately on start
	f.poll(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.poll(ctx)
		case <-ctx.Done():
			f.logger.Info().Msg("alerts fetcher stopped")
			return
		}
	}
}

// poll fetches once, retrying transient failures with exponential backoff.
// On final failure the previous alerts are kept.
func (f *Fetcher) poll(ctx context.Context) {
	var alerts []Alert
	op := func() error {
		var err error
		alerts, err = f.FetchAlerts(ctx)
		return err
	}
	notify := func(err error, wait time.Duration) {
		f.logger.Warn().Err(err).Dur("retry_in", wait).Msg("fetch alerts failed")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(f.newBackOff(), ctx), notify); err != nil {
		f.logger.Error().Err(err).Msg("giving up on alerts feed until next poll")
		return
	}

	f.store.SetAlerts(alerts)
	f.logger.Info().Int("count", len(alerts)).Msg("service alerts updated")
}

// FetchAlerts downloads and decodes the feed. Client errors (4xx) and
// undecodable bodies are permanent and not retried.
func (f *Fetcher) FetchAlerts(ctx context.Context) ([]Alert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.alertsURL, nil)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "create alerts request"))
	}
	if f.apiKey != "" {
		req.Header.Set("api_key", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch alerts")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Errorf("alerts feed returned %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read alerts body")
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "parse alerts protobuf"))
	}
	return ParseAlerts(feed), nil
}

// ParseAlerts keeps the alerts that affect at least one rail line.
func ParseAlerts(feed *gtfs.FeedMessage) []Alert {
	var alerts []Alert
	for _, entity := range feed.GetEntity() {
		a := entity.GetAlert()
		if a == nil {
			continue
		}

		alert := Alert{
			ID:          entity.GetId(),
			Header:      getTranslation(a.GetHeaderText()),
			Description: getTranslation(a.GetDescriptionText()),
			Effect:      a.GetEffect().String(),
			Cause:       a.GetCause().String(),
		}

		// Collect affected lines (deduplicated)
		var seen metro.LineSet
		for _, ie := range a.GetInformedEntity() {
			code, ok := LineForRoute(ie.GetRouteId())
			if !ok || seen.Has(code) {
				continue
			}
			seen = seen.Add(code)
			alert.Lines = append(alert.Lines, code)
		}
		if len(alert.Lines) == 0 {
			continue
		}

		alerts = append(alerts, alert)
	}
	return alerts
}

func getTranslation(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if text := t.GetText(); text != "" {
			return text
		}
	}
	return ""
}

// FormatAlertEffect returns a human-readable effect description.
func FormatAlertEffect(effect string) string {
	switch effect {
	case "NO_SERVICE":
		return "No Service"
	case "REDUCED_SERVICE":
		return "Reduced Service"
	case "SIGNIFICANT_DELAYS":
		return "Significant Delays"
	case "DETOUR":
		return "Detour"
	case "ADDITIONAL_SERVICE":
		return "Additional Service"
	case "MODIFIED_SERVICE":
		return "Modified Service"
	case "STOP_MOVED":
		return "Stop Moved"
	default:
		return "Alert"
	}
}
