package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/cenkalti/backoff/v4"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"

	"metroexit/internal/metro"
)

func testFeed(t *testing.T) []byte {
	t.Helper()
	text := func(s string) *gtfs.TranslatedString {
		return &gtfs.TranslatedString{
			Translation: []*gtfs.TranslatedString_Translation{{Text: proto.String(s)}},
		}
	}
	route := func(id string) *gtfs.EntitySelector {
		return &gtfs.EntitySelector{RouteId: proto.String(id)}
	}

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("a1"),
				Alert: &gtfs.Alert{
					HeaderText:      text("Red Line delays"),
					DescriptionText: text("Trains single tracking near Takoma"),
					Effect:          gtfs.Alert_DETOUR.Enum(),
					InformedEntity:  []*gtfs.EntitySelector{route("RED"), route("RED")},
				},
			},
			{
				Id: proto.String("a2"),
				Alert: &gtfs.Alert{
					HeaderText:     text("Bus detour"),
					InformedEntity: []*gtfs.EntitySelector{route("70")},
				},
			},
			{
				Id: proto.String("a3"),
				Alert: &gtfs.Alert{
					HeaderText:     text("Shared track work"),
					Effect:         gtfs.Alert_REDUCED_SERVICE.Enum(),
					InformedEntity: []*gtfs.EntitySelector{route("BLUE"), route("OR"), route("SILVER")},
				},
			},
		},
	}
	b, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return b
}

func testFetcher(url string) *Fetcher {
	f := NewFetcher(url, "secret", NewStore(), zerolog.Nop())
	f.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	return f
}

func TestLineForRoute(t *testing.T) {
	tests := []struct {
		input  string
		want   metro.LineCode
		wantOK bool
	}{
		{"RED", metro.Red, true},
		{"green", metro.Green, true},
		{"SV", metro.Silver, true},
		{"70", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := LineForRoute(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("LineForRoute(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFetchAlerts(t *testing.T) {
	feed := testFeed(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api_key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write(feed)
	}))
	defer srv.Close()

	alerts, err := testFetcher(srv.URL).FetchAlerts(context.Background())
	if err != nil {
		t.Fatalf("FetchAlerts: %v", err)
	}
	want := []Alert{
		{
			ID:          "a1",
			Header:      "Red Line delays",
			Description: "Trains single tracking near Takoma",
			Lines:       []metro.LineCode{metro.Red},
			Effect:      "DETOUR",
			Cause:       "UNKNOWN_CAUSE",
		},
		{
			ID:     "a3",
			Header: "Shared track work",
			Lines:  []metro.LineCode{metro.Blue, metro.Orange, metro.Silver},
			Effect: "REDUCED_SERVICE",
			Cause:  "UNKNOWN_CAUSE",
		},
	}
	if diff := pretty.Diff(alerts, want); len(diff) > 0 {
		t.Errorf("alerts diff: %v", diff)
	}
}

func TestPoll_RetriesServerErrors(t *testing.T) {
	feed := testFeed(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(feed)
	}))
	defer srv.Close()

	f := testFetcher(srv.URL)
	f.poll(context.Background())

	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
	if n := len(f.store.AllAlerts()); n != 2 {
		t.Errorf("store has %d alerts, want 2", n)
	}
	if f.store.UpdatedAt().IsZero() {
		t.Error("UpdatedAt should be set")
	}
}

func TestPoll_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := testFetcher(srv.URL)
	previous := []Alert{{ID: "old", Lines: []metro.LineCode{metro.Red}}}
	f.store.SetAlerts(previous)
	f.poll(context.Background())

	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
	if diff := pretty.Diff(f.store.AllAlerts(), previous); len(diff) > 0 {
		t.Errorf("previous alerts should be kept: %v", diff)
	}
}

func TestFormatAlertEffect(t *testing.T) {
	if got := FormatAlertEffect("NO_SERVICE"); got != "No Service" {
		t.Errorf("FormatAlertEffect(NO_SERVICE) = %q", got)
	}
	if got := FormatAlertEffect("UNKNOWN_EFFECT"); got != "Alert" {
		t.Errorf("FormatAlertEffect(UNKNOWN_EFFECT) = %q, want Alert", got)
	}
}
