// Package apiclient is the typed HTTP client for the calendar server. The
// aggregator consumes it; nothing in here knows about view-state.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fujical/internal/models"
)

const defaultTimeout = 15 * time.Second

// Client calls the calendar server's REST surface.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option tweaks a Client at construction time.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client, e.g. for custom
// transports or timeouts.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New builds a Client against the given server base URL (scheme + host,
// no trailing slash required).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMonthlyCalendar fetches all events for a month.
func (c *Client) GetMonthlyCalendar(ctx context.Context, year, month int) (*models.CalendarResponse, error) {
	path := "/api/v1/calendar/" + strconv.Itoa(year) + "/" + strconv.Itoa(month)
	var resp models.CalendarResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// dayEventsResponse mirrors the server's day-events payload.
type dayEventsResponse struct {
	Count  int                `json:"count"`
	Events []models.FujiEvent `json:"events"`
}

// GetDayEvents fetches events for a single YYYY-MM-DD date.
func (c *Client) GetDayEvents(ctx context.Context, date string) ([]models.FujiEvent, error) {
	var resp dayEventsResponse
	if err := c.getJSON(ctx, "/api/v1/events/"+url.PathEscape(date), &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// GetWeather fetches the forecast for a YYYY-MM-DD date. The server answers
// 404 for dates outside the provider's horizon, which surfaces as an error.
func (c *Client) GetWeather(ctx context.Context, date string) (*models.WeatherInfo, error) {
	var resp models.WeatherInfo
	if err := c.getJSON(ctx, "/api/v1/weather/"+url.PathEscape(date), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getJSON performs a GET and decodes a 2xx body into out. Non-2xx responses
// are turned into errors carrying the server's message so callers can embed
// the text directly.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s", readErrorMessage(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts the {"error": "..."} envelope the server uses,
// falling back to the HTTP status when the body is not in that shape.
func readErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return envelope.Error
		}
	}
	return resp.Status
}
