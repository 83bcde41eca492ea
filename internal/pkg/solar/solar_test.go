package solar_test

import (
	"errors"
	"math"
	"testing"
	"time"

	sunrise "github.com/nathan-osman/go-sunrise"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/solar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJulianDay(t *testing.T) {
	// J2000.0 epoch
	jd := solar.JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0) > 1e-9 {
		t.Errorf("expected 2451545.0, got %f", jd)
	}
	if jc := solar.JulianCentury(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)); math.Abs(jc) > 1e-12 {
		t.Errorf("expected 0 centuries at J2000, got %g", jc)
	}
}

func TestPosition_Ranges(t *testing.T) {
	base := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	for lat := -90.0; lat <= 90; lat += 15 {
		for lon := -180.0; lon <= 180; lon += 45 {
			for h := 0; h < 24; h += 3 {
				p := solar.Position(base.Add(time.Duration(h)*time.Hour), lat, lon)
				if p.Altitude < -90 || p.Altitude > 90 {
					t.Fatalf("altitude out of range at %v,%v h=%d: %f", lat, lon, h, p.Altitude)
				}
				if p.Azimuth < 0 || p.Azimuth >= 360 {
					t.Fatalf("azimuth out of range at %v,%v h=%d: %f", lat, lon, h, p.Azimuth)
				}
			}
		}
	}
}

func TestPosition_NoonAtGreenwich(t *testing.T) {
	// Near the equinox the noon sun at the equator on the prime meridian is almost overhead.
	p := solar.Position(time.Date(2025, 3, 20, 12, 7, 0, 0, time.UTC), 0, 0)
	if p.Altitude < 85 {
		t.Errorf("expected sun near zenith, got altitude %f", p.Altitude)
	}
}

func TestPosition_MorningEastEveningWest(t *testing.T) {
	morning := solar.Position(time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC), 45, 0)
	evening := solar.Position(time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC), 45, 0)
	if morning.Azimuth > 180 {
		t.Errorf("expected eastern azimuth in the morning, got %f", morning.Azimuth)
	}
	if evening.Azimuth < 180 {
		t.Errorf("expected western azimuth in the evening, got %f", evening.Azimuth)
	}
}

func TestFindSunset_NaiHarn(t *testing.T) {
	pos, err := solar.FindSunset(date(2025, 12, 29), 7.7677, 98.3036, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Azimuth < 230 || pos.Azimuth > 295 {
		t.Errorf("expected azimuth in [230,295], got %f", pos.Azimuth)
	}
	if math.Abs(pos.Altitude-solar.SunsetAltitude) > 0.01 {
		t.Errorf("expected altitude ~%.3f, got %f", solar.SunsetAltitude, pos.Altitude)
	}
	local := solar.LocalTime(pos.Time, 7)
	if local.Hour() != 18 {
		t.Errorf("expected sunset in the 18:00 hour local, got %s", local.Format("15:04"))
	}
}

func TestFindSunset_Deterministic(t *testing.T) {
	a, errA := solar.FindSunset(date(2025, 12, 29), 7.7677, 98.3036, 7)
	b, errB := solar.FindSunset(date(2025, 12, 29), 7.7677, 98.3036, 7)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if a != b {
		t.Errorf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestFindSunset_PolarDay(t *testing.T) {
	_, err := solar.FindSunset(date(2025, 6, 21), 80, 0, 0)
	if !errors.Is(err, domain.ErrPolarDay) {
		t.Fatalf("expected ErrPolarDay, got %v", err)
	}
	if !errors.Is(err, domain.ErrNoSunset) {
		t.Error("expected error to match ErrNoSunset")
	}
	var nse *domain.NoSunsetError
	if !errors.As(err, &nse) {
		t.Fatal("expected *domain.NoSunsetError")
	}
	if nse.Date.Format("2006-01-02") != "2025-06-21" {
		t.Errorf("unexpected date in error: %s", nse.Date)
	}
}

func TestFindSunset_PolarNight(t *testing.T) {
	_, err := solar.FindSunset(date(2025, 12, 21), 80, 0, 0)
	if !errors.Is(err, domain.ErrPolarNight) {
		t.Fatalf("expected ErrPolarNight, got %v", err)
	}
	if errors.Is(err, domain.ErrPolarDay) {
		t.Error("polar night must not match ErrPolarDay")
	}
}

func TestFindSunset_MatchesGoSunrise(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		offset   float64
		day      time.Time
	}{
		{"phuket", 7.7677, 98.3036, 7, date(2025, 12, 29)},
		{"malibu", 34.0259, -118.7798, -8, date(2025, 1, 15)},
		{"lisbon", 38.6979, -9.4215, 1, date(2025, 7, 4)},
		{"goa", 15.0100, 74.0233, 5.5, date(2025, 4, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := solar.FindSunset(tt.day, tt.lat, tt.lon, tt.offset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			local := solar.LocalTime(pos.Time, tt.offset)
			_, set := sunrise.SunriseSunset(tt.lat, tt.lon, local.Year(), local.Month(), local.Day())
			if diff := pos.Time.Sub(set); diff > 5*time.Minute || diff < -5*time.Minute {
				t.Errorf("sunset %s differs from reference %s by %s", pos.Time, set, diff)
			}
		})
	}
}

func TestFindSunrise_BeforeSunset(t *testing.T) {
	rise, err := solar.FindSunrise(date(2025, 12, 29), 7.7677, 98.3036, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, err := solar.FindSunset(date(2025, 12, 29), 7.7677, 98.3036, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rise.Time.Before(set.Time) {
		t.Errorf("expected sunrise %s before sunset %s", rise.Time, set.Time)
	}
	if rise.Azimuth > 180 {
		t.Errorf("expected eastern sunrise azimuth, got %f", rise.Azimuth)
	}
	dayLength := set.Time.Sub(rise.Time)
	if dayLength < 11*time.Hour || dayLength > 12*time.Hour {
		t.Errorf("unexpected day length %s", dayLength)
	}
}

func TestLocalTime(t *testing.T) {
	u := time.Date(2025, 12, 29, 11, 20, 0, 0, time.UTC)
	got := solar.LocalTime(u, 5.5)
	if got.Format("15:04") != "16:50" {
		t.Errorf("expected 16:50, got %s", got.Format("15:04"))
	}
	if !got.Equal(u) {
		t.Error("LocalTime must not change the instant")
	}
}
