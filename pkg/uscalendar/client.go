// Package uscalendar is a Go SDK for the calendar-server HTTP API.
package uscalendar

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Day mirrors the server's classified-day JSON.
type Day struct {
	Market  string `json:"market"`
	Date    string `json:"date"`
	Open    bool   `json:"open"`
	Weekend bool   `json:"weekend"`
	Holiday string `json:"holiday,omitempty"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("uscalendar: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client provides a Go SDK for interacting with the calendar-server API.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates a new calendar API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// IsOpen reports whether the market is open on date (YYYY-MM-DD).
func (c *Client) IsOpen(ctx context.Context, date string) (bool, error) {
	var out struct {
		Open bool `json:"open"`
	}
	if err := c.get(ctx, "/api/market/open/{date}", date, nil, &out); err != nil {
		return false, err
	}
	return out.Open, nil
}

// IsWeekend reports whether date is a Saturday or Sunday.
func (c *Client) IsWeekend(ctx context.Context, date string) (bool, error) {
	var out struct {
		Weekend bool `json:"weekend"`
	}
	if err := c.get(ctx, "/api/market/weekend/{date}", date, nil, &out); err != nil {
		return false, err
	}
	return out.Weekend, nil
}

// NextOpen returns the first open date after date.
func (c *Client) NextOpen(ctx context.Context, date string) (string, error) {
	var out struct {
		NextOpen string `json:"next_open"`
	}
	if err := c.get(ctx, "/api/market/next-open/{date}", date, nil, &out); err != nil {
		return "", err
	}
	return out.NextOpen, nil
}

// Status returns the full classification of date.
func (c *Client) Status(ctx context.Context, date string) (*Day, error) {
	var out Day
	if err := c.get(ctx, "/api/market/status/{date}", date, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Days returns classified days in [from, to]. With openOnly, closed days
// are omitted.
func (c *Client) Days(ctx context.Context, from, to string, openOnly bool) ([]Day, error) {
	query := map[string]string{"from": from, "to": to}
	if openOnly {
		query["open"] = "true"
	}
	var out []Day
	if err := c.get(ctx, "/api/market/days", "", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path, date string, query map[string]string, out any) error {
	apiErr := &APIError{}
	req := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(apiErr)
	if date != "" {
		req.SetPathParam("date", date)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}
