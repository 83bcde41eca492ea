package solar

import (
	"fmt"
	"math"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

const (
	// SunsetAltitude is the apparent-horizon altitude of the solar centre,
	// accounting for standard refraction and the solar semi-diameter.
	SunsetAltitude = -0.833

	scanStep        = 5 * time.Minute
	maxScanSteps    = 200
	bisectionPasses = 20

	prescanSamples  = 12
	prescanInterval = 2 * time.Hour
)

// LocalNoonUTC returns the UTC instant of 12:00 local clock time on date's
// calendar day, for a fixed UTC offset in hours.
func LocalNoonUTC(date time.Time, utcOffsetHours float64) time.Time {
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return noon.Add(-offsetDuration(utcOffsetHours))
}

// LocalTime renders a UTC instant in a fixed-offset zone.
func LocalTime(t time.Time, utcOffsetHours float64) time.Time {
	return t.In(time.FixedZone(zoneName(utcOffsetHours), int(math.Round(utcOffsetHours*3600))))
}

// FindSunset returns the solar position at sunset on the local calendar day
// of date, for an observer at lat/lon with the given UTC offset. It fails
// with a *domain.NoSunsetError when the sun does not set that day.
func FindSunset(date time.Time, lat, lon, utcOffsetHours float64) (domain.SolarPosition, error) {
	anchor := LocalNoonUTC(date, utcOffsetHours)
	if err := prescan(anchor, date, lat, lon); err != nil {
		return domain.SolarPosition{}, err
	}

	t := anchor
	steps := 0
	for ; steps < maxScanSteps; steps++ {
		if Position(t, lat, lon).Altitude < SunsetAltitude {
			break
		}
		t = t.Add(scanStep)
	}
	if steps >= maxScanSteps {
		return domain.SolarPosition{}, noSunset(domain.ConditionSolverDivergence, date)
	}

	low, high := t.Add(-scanStep), t
	for i := 0; i < bisectionPasses; i++ {
		mid := low.Add(high.Sub(low) / 2)
		if Position(mid, lat, lon).Altitude > SunsetAltitude {
			low = mid
		} else {
			high = mid
		}
	}

	return Position(low.Add(high.Sub(low)/2), lat, lon), nil
}

// FindSunrise mirrors FindSunset, searching backwards from local noon.
func FindSunrise(date time.Time, lat, lon, utcOffsetHours float64) (domain.SolarPosition, error) {
	anchor := LocalNoonUTC(date, utcOffsetHours)
	if err := prescan(anchor, date, lat, lon); err != nil {
		return domain.SolarPosition{}, err
	}

	t := anchor
	steps := 0
	for ; steps < maxScanSteps; steps++ {
		if Position(t, lat, lon).Altitude < SunsetAltitude {
			break
		}
		t = t.Add(-scanStep)
	}
	if steps >= maxScanSteps {
		return domain.SolarPosition{}, noSunset(domain.ConditionSolverDivergence, date)
	}

	low, high := t, t.Add(scanStep)
	for i := 0; i < bisectionPasses; i++ {
		mid := low.Add(high.Sub(low) / 2)
		if Position(mid, lat, lon).Altitude > SunsetAltitude {
			high = mid
		} else {
			low = mid
		}
	}

	return Position(low.Add(high.Sub(low)/2), lat, lon), nil
}

// prescan samples the day around anchor to detect polar day and night.
func prescan(anchor, date time.Time, lat, lon float64) error {
	minAlt, maxAlt := math.Inf(1), math.Inf(-1)
	start := anchor.Add(-12 * time.Hour)
	for i := 0; i < prescanSamples; i++ {
		alt := Position(start.Add(time.Duration(i)*prescanInterval), lat, lon).Altitude
		minAlt = math.Min(minAlt, alt)
		maxAlt = math.Max(maxAlt, alt)
	}

	switch {
	case maxAlt < SunsetAltitude:
		return noSunset(domain.ConditionPolarNight, date)
	case minAlt > SunsetAltitude:
		return noSunset(domain.ConditionPolarDay, date)
	}
	return nil
}

func noSunset(c domain.NoSunsetCondition, date time.Time) error {
	y, m, d := date.Date()
	return &domain.NoSunsetError{Condition: c, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func offsetDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours * float64(time.Hour)))
}

func zoneName(hours float64) string {
	sign := "+"
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("UTC%s%02d:%02d", sign, total/60, total%60)
}
