package uscalendar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"uscalendar/internal/calendar"
	"uscalendar/internal/domain"
	"uscalendar/internal/httpapi"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	c := NewClient(baseURL)

	if c == nil {
		t.Fatal("expected non-nil client")
	}
	if c.baseURL != baseURL {
		t.Errorf("expected baseURL %q, got %q", baseURL, c.baseURL)
	}
	if c.http == nil {
		t.Fatal("expected non-nil http client")
	}
}

func newClient(t *testing.T) *Client {
	t.Helper()
	cal, err := calendar.NewTradingCalendar(domain.MarketUS)
	if err != nil {
		t.Fatal(err)
	}
	srv := httpapi.NewServer(cal, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL)
}

func TestClientAgainstServer(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	open, err := c.IsOpen(ctx, "2024-11-28")
	if err != nil || open {
		t.Errorf("IsOpen(2024-11-28) = %v, %v; want false", open, err)
	}

	weekend, err := c.IsWeekend(ctx, "2024-11-30")
	if err != nil || !weekend {
		t.Errorf("IsWeekend(2024-11-30) = %v, %v; want true", weekend, err)
	}

	next, err := c.NextOpen(ctx, "2024-11-27")
	if err != nil || next != "2024-11-29" {
		t.Errorf("NextOpen(2024-11-27) = %q, %v; want 2024-11-29", next, err)
	}

	day, err := c.Status(ctx, "2022-12-26")
	if err != nil {
		t.Fatal(err)
	}
	if day.Open || day.Holiday != "christmas" {
		t.Errorf("Status(2022-12-26) = %+v", day)
	}

	days, err := c.Days(ctx, "2024-07-01", "2024-07-07", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 4 {
		t.Errorf("Days open-only returned %d, want 4", len(days))
	}
}

func TestClientAPIError(t *testing.T) {
	c := newClient(t)

	_, err := c.IsOpen(context.Background(), "2024-02-30")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message == "" {
		t.Errorf("APIError = %+v", apiErr)
	}
}
