// Package weather fetches daily forecasts from an Open-Meteo compatible
// endpoint. Only the handful of daily variables the calendar needs are
// requested.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fujical/internal/models"
)

// Provider yields a forecast for one calendar date at a point.
type Provider interface {
	Forecast(ctx context.Context, lat, lon float64, date string) (*models.WeatherInfo, error)
}

// OpenMeteo talks to an Open-Meteo style /v1/forecast endpoint.
type OpenMeteo struct {
	baseURL string
	httpc   *http.Client
}

func NewOpenMeteo(baseURL string, timeout time.Duration) *OpenMeteo {
	return &OpenMeteo{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

var _ Provider = (*OpenMeteo)(nil)

// forecastResponse mirrors the provider's daily arrays: index i of every
// array belongs to Time[i].
type forecastResponse struct {
	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		WindSpeedMax   []float64 `json:"wind_speed_10m_max"`
		CloudCoverMean []float64 `json:"cloud_cover_mean"`
		VisibilityMin  []float64 `json:"visibility_min"`
	} `json:"daily"`
}

func (p *OpenMeteo) Forecast(ctx context.Context, lat, lon float64, date string) (*models.WeatherInfo, error) {
	u, err := url.Parse(p.baseURL + "/v1/forecast")
	if err != nil {
		return nil, fmt.Errorf("weather base url: %w", err)
	}
	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "weather_code,temperature_2m_max,wind_speed_10m_max,cloud_cover_mean,visibility_min")
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "Asia/Tokyo")
	q.Set("start_date", date)
	q.Set("end_date", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned %s", resp.Status)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	return pickDay(&body, date)
}

// pickDay extracts the requested date from the daily arrays.
func pickDay(body *forecastResponse, date string) (*models.WeatherInfo, error) {
	d := body.Daily
	for i, ts := range d.Time {
		if ts != date {
			continue
		}
		info := &models.WeatherInfo{}
		if i < len(d.WeatherCode) {
			info.Condition = conditionFromCode(d.WeatherCode[i])
		}
		if i < len(d.TemperatureMax) {
			info.TemperatureC = d.TemperatureMax[i]
		}
		if i < len(d.WindSpeedMax) {
			info.WindSpeedMS = d.WindSpeedMax[i]
		}
		if i < len(d.CloudCoverMean) {
			info.CloudCover = d.CloudCoverMean[i]
		}
		if i < len(d.VisibilityMin) {
			info.VisibilityKm = d.VisibilityMin[i] / 1000
		}
		return info, nil
	}
	return nil, fmt.Errorf("date %s not covered by weather provider", date)
}

// conditionFromCode maps WMO weather codes to coarse conditions.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 2:
		return "partly_cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	case code >= 51:
		return "rain"
	default:
		return "unknown"
	}
}
