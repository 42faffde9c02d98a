package models

// Location is a known Mt. Fuji viewing spot.
// FujiAzimuth is the bearing from the spot to the summit (degrees, 0=N
// clockwise); Elevation is meters above sea level.
type Location struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Prefecture     string  `json:"prefecture"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Elevation      float64 `json:"elevation"`
	FujiAzimuth    float64 `json:"fuji_azimuth"`
	FujiDistanceKm float64 `json:"fuji_distance_km"`
}
