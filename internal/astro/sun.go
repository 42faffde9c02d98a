// Package astro provides low-precision solar and lunar positions, good to
// a few tenths of a degree. That is enough to shortlist alignment
// candidates; the accuracy tag on generated events reflects it.
package astro

import (
	"math"
	"time"
)

// Horizontal is a topocentric direction: azimuth in degrees from true
// north, clockwise; altitude in degrees above the horizon.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
}

const (
	deg = math.Pi / 180
	j2000 = 2451545.0
)

// julianDay converts t to a Julian Day number.
func julianDay(t time.Time) float64 {
	return float64(t.UTC().UnixMilli())/86400000.0 + 2440587.5
}

// SunPosition returns the sun's horizontal coordinates for an observer at
// (lat, lon) degrees at time t.
func SunPosition(t time.Time, lat, lon float64) Horizontal {
	n := julianDay(t) - j2000

	// Mean longitude and anomaly, ecliptic longitude (degrees).
	l := math.Mod(280.460+0.9856474*n, 360)
	g := (357.528 + 0.9856003*n) * deg
	lambda := (l + 1.915*math.Sin(g) + 0.020*math.Sin(2*g)) * deg

	eps := (23.439 - 0.0000004*n) * deg
	ra := math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	dec := math.Asin(math.Sin(eps) * math.Sin(lambda))

	return toHorizontal(n, ra, dec, lat, lon)
}

// toHorizontal converts equatorial (ra, dec in radians) to horizontal
// coordinates using the local sidereal time at day offset n from J2000.
func toHorizontal(n, ra, dec, lat, lon float64) Horizontal {
	gmst := math.Mod(280.46061837+360.98564736629*n, 360)
	h := math.Mod(gmst+lon, 360)*deg - ra // hour angle

	latR := lat * deg
	sinAlt := math.Sin(latR)*math.Sin(dec) + math.Cos(latR)*math.Cos(dec)*math.Cos(h)
	alt := math.Asin(sinAlt)

	// Azimuth from north, clockwise.
	az := math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(latR)-math.Tan(dec)*math.Cos(latR))
	azDeg := math.Mod(az/deg+180, 360)
	if azDeg < 0 {
		azDeg += 360
	}

	return Horizontal{Azimuth: azDeg, Altitude: alt / deg}
}
