package models

import "time"

// Event types.
const (
	EventDiamond = "diamond" // sun aligned with the summit
	EventPearl   = "pearl"   // moon aligned with the summit
)

// Event sub-types: which half of the pass the alignment belongs to.
const (
	SubSunrise = "sunrise"
	SubSunset  = "sunset"
	SubRising  = "rising"
	SubSetting = "setting"
)

// Accuracy tags for computed events.
const (
	AccuracyHigh   = "high"
	AccuracyMedium = "medium"
	AccuracyLow    = "low"
)

// FujiEvent is one computed alignment occurrence at a viewing location.
type FujiEvent struct {
	ID               string    `json:"id"`
	LocationID       int       `json:"location_id"`
	Date             string    `json:"date"` // YYYY-MM-DD, viewer-local calendar date
	Time             time.Time `json:"time"`
	Type             string    `json:"type"`     // diamond | pearl
	SubType          string    `json:"sub_type"` // sunrise | sunset | rising | setting
	Azimuth          float64   `json:"azimuth"`  // degrees, 0=N clockwise
	Altitude         float64   `json:"altitude"` // degrees above horizon
	QualityScore     float64   `json:"quality_score"`
	MoonPhase        *float64  `json:"moon_phase,omitempty"`        // [0,1), 0=new
	MoonIllumination *float64  `json:"moon_illumination,omitempty"` // [0,1]
	Accuracy         string    `json:"accuracy,omitempty"`          // high | medium | low
	CalculationYear  int       `json:"calculation_year"`
}

// CalendarResponse is a whole month of events, replaced wholesale on refetch.
type CalendarResponse struct {
	Year   int         `json:"year"`
	Month  int         `json:"month"`
	Events []FujiEvent `json:"events"`
}
