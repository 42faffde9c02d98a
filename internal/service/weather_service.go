package service

import (
	"context"

	"fujical/internal/logger"
	"fujical/internal/models"
	"fujical/internal/weather"
)

// Forecast point for the Fuji view area (Lake Yamanaka shore). A single
// point is enough: the viewing locations sit within one forecast cell of
// each other relative to daily resolution.
const (
	forecastLat = 35.4171
	forecastLon = 138.8754
)

type WeatherService struct {
	provider weather.Provider
	log      *logger.Logger
}

func NewWeatherService(provider weather.Provider, log *logger.Logger) *WeatherService {
	return &WeatherService{provider: provider, log: log}
}

func (s *WeatherService) GetByDate(ctx context.Context, date string) (*models.WeatherInfo, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	info, err := s.provider.Forecast(ctx, forecastLat, forecastLon, normalized)
	if err != nil {
		s.log.Debugw("weather_lookup_failed", "date", normalized, "err", err)
		return nil, err
	}
	info.Recommendation = recommend(info)
	return info, nil
}

// recommend grades shooting conditions from cloud cover and visibility.
func recommend(w *models.WeatherInfo) string {
	switch {
	case w.CloudCover <= 20 && w.VisibilityKm >= 15:
		return models.RecommendationExcellent
	case w.CloudCover <= 40 && w.VisibilityKm >= 10:
		return models.RecommendationGood
	case w.CloudCover <= 70 && w.VisibilityKm >= 5:
		return models.RecommendationFair
	default:
		return models.RecommendationPoor
	}
}
