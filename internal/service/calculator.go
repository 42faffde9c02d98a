package service

import (
	"context"
	"math"
	"time"

	"fujical/internal/astro"
	"fujical/internal/logger"
	"fujical/internal/models"
	"fujical/internal/repository"
)

// ----------- Alignment search constants -----------
const (
	fujiSummitElevation = 3776.24 // meters

	azimuthToleranceDeg  = 1.5 // candidate must point this close to the summit
	altitudeToleranceDeg = 0.8 // body must sit at summit height within this band
	minPearlIllumination = 0.2 // thin crescents are not observable as pearl events
)

var jst = time.FixedZone("JST", 9*3600)

// CalculatorService extends location_events coverage in the background:
// every tick it makes sure each location has events computed through next
// year. Duplicate inserts are absorbed by the unique key.
type CalculatorService struct {
	events    repository.EventRepo
	locations repository.LocationRepo
	log       *logger.Logger
}

func NewCalculatorService(events repository.EventRepo, locations repository.LocationRepo, log *logger.Logger) *CalculatorService {
	return &CalculatorService{events: events, locations: locations, log: log}
}

// Run ticks at the given interval until ctx is canceled. The first pass
// starts immediately so a fresh database fills without waiting a tick.
func (s *CalculatorService) Run(ctx context.Context, tick time.Duration) {
	s.runOnce(ctx, time.Now())

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.runOnce(ctx, now)
		}
	}
}

func (s *CalculatorService) runOnce(ctx context.Context, now time.Time) {
	locs, err := s.locations.List(ctx)
	if err != nil {
		s.log.Errorw("calculator_list_locations_failed", "err", err)
		return
	}

	targetYear := now.Year() + 1
	for _, loc := range locs {
		last, err := s.events.LatestCalculationYear(ctx, loc.ID)
		if err != nil {
			s.log.Errorw("calculator_latest_year_failed", "location", loc.Name, "err", err)
			continue
		}
		start := last + 1
		if last == 0 {
			start = now.Year()
		}
		for year := start; year <= targetYear; year++ {
			n, err := s.generateYear(ctx, loc, year)
			if err != nil {
				s.log.Errorw("calculator_generate_failed", "location", loc.Name, "year", year, "err", err)
				break
			}
			s.log.Infow("calendar_year_generated", "location", loc.Name, "year", year, "events", n)
		}
	}
}

// generateYear scans every day of the year for diamond and pearl
// candidates at one location and inserts what it finds.
func (s *CalculatorService) generateYear(ctx context.Context, loc models.Location, year int) (int, error) {
	targetAlt := summitAltitude(loc)
	count := 0

	day := time.Date(year, 1, 1, 0, 0, 0, 0, jst)
	for ; day.Year() == year; day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		for _, typ := range []string{models.EventDiamond, models.EventPearl} {
			ev, ok := findAlignment(day, loc, targetAlt, typ)
			if !ok {
				continue
			}
			ev.CalculationYear = year
			if err := s.events.Insert(ctx, ev); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// summitAltitude is the apparent altitude of the summit above the
// horizontal plane of the viewing location, ignoring refraction.
func summitAltitude(loc models.Location) float64 {
	rise := fujiSummitElevation - loc.Elevation
	return math.Atan2(rise, loc.FujiDistanceKm*1000) * 180 / math.Pi
}

// findAlignment scans the (JST) day in one-minute steps for the moment
// the body sits at summit altitude closest in azimuth to the summit.
func findAlignment(day time.Time, loc models.Location, targetAlt float64, typ string) (models.FujiEvent, bool) {
	position := func(ts time.Time) astro.Horizontal {
		if typ == models.EventDiamond {
			return astro.SunPosition(ts, loc.Latitude, loc.Longitude)
		}
		return astro.MoonPosition(ts, loc.Latitude, loc.Longitude)
	}

	var (
		best     models.FujiEvent
		bestDiff = math.MaxFloat64
		found    bool
	)
	for m := 0; m < 24*60; m++ {
		ts := day.Add(time.Duration(m) * time.Minute)
		pos := position(ts)

		altDiff := pos.Altitude - targetAlt
		if math.Abs(altDiff) > altitudeToleranceDeg {
			continue
		}
		azDiff := angleDiff(pos.Azimuth, loc.FujiAzimuth)
		if azDiff > azimuthToleranceDeg || azDiff >= bestDiff {
			continue
		}

		ev := models.FujiEvent{
			LocationID:   loc.ID,
			Date:         day.Format("2006-01-02"),
			Time:         ts.UTC(),
			Type:         typ,
			SubType:      subTypeFor(typ, pos, position(ts.Add(time.Minute))),
			Azimuth:      pos.Azimuth,
			Altitude:     pos.Altitude,
			QualityScore: qualityScore(azDiff, altDiff),
			Accuracy:     accuracyFor(azDiff),
		}
		if typ == models.EventPearl {
			phase, illum := astro.MoonPhase(ts)
			if illum < minPearlIllumination {
				continue
			}
			ev.MoonPhase = &phase
			ev.MoonIllumination = &illum
		}
		best, bestDiff, found = ev, azDiff, true
	}
	return best, found
}

// angleDiff is the absolute difference of two bearings, wrapped to [0,180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return math.Abs(d - 180)
}

func subTypeFor(typ string, now, next astro.Horizontal) string {
	rising := next.Altitude > now.Altitude
	if typ == models.EventDiamond {
		if rising {
			return models.SubSunrise
		}
		return models.SubSunset
	}
	if rising {
		return models.SubRising
	}
	return models.SubSetting
}

// qualityScore favors tight azimuth alignment, then altitude proximity.
func qualityScore(azDiff, altDiff float64) float64 {
	score := 100 - azDiff*40 - math.Abs(altDiff)*25
	if score < 0 {
		return 0
	}
	return score
}

func accuracyFor(azDiff float64) string {
	switch {
	case azDiff <= 0.3:
		return models.AccuracyHigh
	case azDiff <= 0.8:
		return models.AccuracyMedium
	default:
		return models.AccuracyLow
	}
}
