package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}

func TestGetMonthlyCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/calendar/2025/6" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"year": 2025, "month": 6,
			"events": [
				{"id":"e1","location_id":1,"date":"2025-06-21","type":"diamond","quality_score":91.5},
				{"id":"e2","location_id":2,"date":"2025-06-22","type":"pearl","quality_score":78.0}
			]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.GetMonthlyCalendar(ctx(t), 2025, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Year != 2025 || resp.Month != 6 || len(resp.Events) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Events[0].ID != "e1" || resp.Events[0].QualityScore != 91.5 {
		t.Fatalf("unexpected first event: %+v", resp.Events[0])
	}
}

func TestGetMonthlyCalendar_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to load calendar"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetMonthlyCalendar(ctx(t), 2025, 6)
	if err == nil {
		t.Fatal("expected error")
	}
	// The server's message comes through verbatim so it can be shown to users.
	if err.Error() != "failed to load calendar" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestGetDayEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/events/2025-06-21" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"events":[{"id":"e1","date":"2025-06-21","type":"diamond"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	events, err := c.GetDayEvents(ctx(t), "2025-06-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "e1" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestGetDayEvents_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":0,"events":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	events, err := c.GetDayEvents(ctx(t), "2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty slice, got %+v", events)
	}
}

func TestGetWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/weather/2025-06-21" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"condition":"clear","temperature_c":18.5,"cloud_cover":10,"recommendation":"excellent"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	info, err := c.GetWeather(ctx(t), "2025-06-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Condition != "clear" || info.Recommendation != "excellent" {
		t.Fatalf("unexpected weather: %+v", info)
	}
}

func TestGetWeather_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"weather unavailable for 2026-01-01"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetWeather(ctx(t), "2026-01-01")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "weather unavailable") {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetDayEvents(ctx(t), "2025-06-21")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status text fallback, got %q", err.Error())
	}
}
