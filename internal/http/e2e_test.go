package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	ics "github.com/arran4/golang-ical"

	"github.com/example/shift-calendar/internal/account"
	"github.com/example/shift-calendar/internal/calendar"
	"github.com/example/shift-calendar/internal/manus"
	"github.com/example/shift-calendar/internal/manustime"
	"github.com/example/shift-calendar/internal/testfixtures"
)

// startDegradedUpstream fakes a Manus deployment that authenticates one user
// but has no schedule data: every week fetch fails with a server error.
func startDegradedUpstream(t *testing.T, scheduleCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/app/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","expires_in":3600,"token_type":"Bearer"}`))
	})
	mux.HandleFunc("/api/user/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"emp-9","userName":"jdoe","fullname":"J. Doe","nodeId":"node-1","nodeCode":"AMS","nodeName":"Amsterdam Noord"}`))
	})
	mux.HandleFunc("/api/node/", func(w http.ResponseWriter, r *http.Request) {
		scheduleCalls.Add(1)
		http.Error(w, "unavailable", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestServiceEndToEnd(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	var scheduleCalls atomic.Int64
	upstream := startDegradedUpstream(t, &scheduleCalls)

	client := manus.NewClient(upstream.URL, upstream.Client())
	registry := account.NewRegistry(client, logger)
	registry.Initialize(context.Background(), []account.Credential{{Username: "jdoe", Secret: "s"}})
	if registry.Len() != 1 {
		t.Fatalf("expected 1 initialized account, got %d", registry.Len())
	}

	codec, err := manustime.NewCodec("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}
	synthesizer := calendar.NewSynthesizer(client, codec, testfixtures.NewClock(testfixtures.ReferenceTime()).NowFunc(), logger)

	router := NewRouter(RouterConfig{
		Calendar:   NewCalendarHandler(registry, synthesizer, logger),
		Middleware: []func(http.Handler) http.Handler{RequestLogger(logger)},
	})
	service := httptest.NewServer(router)
	defer service.Close()

	t.Run("unknown username returns 404 without upstream traffic", func(t *testing.T) {
		before := scheduleCalls.Load()

		resp, err := http.Get(service.URL + "/unknown-user")
		if err != nil {
			t.Fatalf("GET returned error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		if scheduleCalls.Load() != before {
			t.Fatal("unknown username triggered upstream schedule fetches")
		}
	})

	t.Run("known username with all week fetches failing returns an empty calendar", func(t *testing.T) {
		resp, err := http.Get(service.URL + "/jdoe")
		if err != nil {
			t.Fatalf("GET returned error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Type"); got != "text/calendar" {
			t.Fatalf("Content-Type = %q, want text/calendar", got)
		}

		parsed, err := ics.ParseCalendar(resp.Body)
		if err != nil {
			t.Fatalf("response is not a parseable calendar: %v", err)
		}
		if events := parsed.Events(); len(events) != 0 {
			t.Fatalf("expected zero events, got %d", len(events))
		}

		// All 17 window targets were attempted despite every one failing.
		if scheduleCalls.Load() < 17 {
			t.Fatalf("expected 17 week fetches, saw %d", scheduleCalls.Load())
		}
	})
}
