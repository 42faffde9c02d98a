package models

// Shooting-condition recommendations derived from the forecast.
const (
	RecommendationExcellent = "excellent"
	RecommendationGood      = "good"
	RecommendationFair      = "fair"
	RecommendationPoor      = "poor"
)

// WeatherInfo is the forecast for one calendar date at the Fuji view area.
type WeatherInfo struct {
	Condition      string  `json:"condition"`
	TemperatureC   float64 `json:"temperature_c"`
	WindSpeedMS    float64 `json:"wind_speed_ms"`
	CloudCover     float64 `json:"cloud_cover"`
	VisibilityKm   float64 `json:"visibility_km"`
	Recommendation string  `json:"recommendation"`
}
