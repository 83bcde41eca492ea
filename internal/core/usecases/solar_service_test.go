package usecases_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

func TestSolarService_SunTimes_ExplicitOffset(t *testing.T) {
	svc := usecases.NewSolarService(fixedTimezone{err: errors.New("must not be called")})
	offset := 7.0
	st, err := svc.SunTimes(context.Background(), naiHarnPoint, dec29, &offset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LocalTime != "18:19" {
		t.Errorf("expected 18:19, got %s", st.LocalTime)
	}
	if st.Direction != "west-southwest" {
		t.Errorf("expected west-southwest, got %s", st.Direction)
	}
	if st.Sunrise == nil || !st.Sunrise.Before(st.Sunset.Time) {
		t.Errorf("expected sunrise before sunset, got %v", st.Sunrise)
	}
}

func TestSolarService_SunTimes_LooksUpOffset(t *testing.T) {
	svc := usecases.NewSolarService(fixedTimezone{offset: 7})
	st, err := svc.SunTimes(context.Background(), naiHarnPoint, dec29, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.UTCOffset != 7 || st.LocalTime != "18:19" {
		t.Errorf("unexpected result %+v", st)
	}
}

func TestSolarService_SunTimes_PolarNight(t *testing.T) {
	svc := usecases.NewSolarService(nil)
	_, err := svc.SunTimes(context.Background(), domain.GeoPoint{Lat: 80, Lon: 0}, time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC), nil)
	if !errors.Is(err, domain.ErrPolarNight) {
		t.Errorf("expected ErrPolarNight, got %v", err)
	}
}

func TestSolarService_Position(t *testing.T) {
	svc := usecases.NewSolarService(nil)
	pos, err := svc.Position(domain.GeoPoint{Lat: 0, Lon: 0}, time.Date(2025, 3, 20, 12, 7, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Altitude < 85 || math.IsNaN(pos.Azimuth) {
		t.Errorf("expected sun near zenith, got %+v", pos)
	}
	if _, err := svc.Position(domain.GeoPoint{Lat: -91}, time.Now()); !errors.Is(err, domain.ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}
