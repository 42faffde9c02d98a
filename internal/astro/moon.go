package astro

import (
	"math"
	"time"
)

// MoonPosition returns the moon's horizontal coordinates for an observer
// at (lat, lon) degrees at time t. Low-precision series, no parallax.
func MoonPosition(t time.Time, lat, lon float64) Horizontal {
	n := julianDay(t) - j2000

	// Mean longitude, mean anomaly, argument of latitude (degrees).
	l := 218.316 + 13.176396*n
	m := (134.963 + 13.064993*n) * deg
	f := (93.272 + 13.229350*n) * deg

	lambda := (l + 6.289*math.Sin(m)) * deg
	beta := 5.128 * math.Sin(f) * deg

	eps := (23.439 - 0.0000004*n) * deg
	ra := math.Atan2(
		math.Sin(lambda)*math.Cos(eps)-math.Tan(beta)*math.Sin(eps),
		math.Cos(lambda),
	)
	dec := math.Asin(math.Sin(beta)*math.Cos(eps) + math.Cos(beta)*math.Sin(eps)*math.Sin(lambda))

	return toHorizontal(n, ra, dec, lat, lon)
}

// MoonPhase returns the phase fraction in [0,1) with 0 = new moon and 0.5
// = full moon, plus the illuminated fraction in [0,1].
func MoonPhase(t time.Time) (phase, illumination float64) {
	n := julianDay(t) - j2000

	// Mean elongation of the moon from the sun.
	d := math.Mod(297.8502+12.19074912*n, 360)
	if d < 0 {
		d += 360
	}
	phase = d / 360
	illumination = (1 - math.Cos(d*deg)) / 2
	return phase, illumination
}
