package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
	"github.com/samirrijal/sundowner/internal/pkg/solar"
)

// SolarService exposes the ephemeris and sunset solver without any view
// geometry.
type SolarService struct {
	timezones ports.TimezoneProvider
}

// NewSolarService creates a new SolarService. The timezone provider is only
// used when a caller does not supply a UTC offset.
func NewSolarService(timezones ports.TimezoneProvider) *SolarService {
	return &SolarService{timezones: timezones}
}

// Position returns the sun's azimuth and altitude at t for an observer at p.
func (s *SolarService) Position(p domain.GeoPoint, t time.Time) (domain.SolarPosition, error) {
	if !p.Valid() {
		return domain.SolarPosition{}, domain.ErrInvalidCoordinates
	}
	return solar.Position(t.UTC(), p.Lat, p.Lon), nil
}

// SunTimes returns sunset and sunrise on date at p. A nil offset is looked
// up through the timezone provider.
func (s *SolarService) SunTimes(ctx context.Context, p domain.GeoPoint, date time.Time, offset *float64) (*domain.SunTimes, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}

	var hours float64
	switch {
	case offset != nil:
		hours = *offset
	case s.timezones != nil:
		tz, err := s.timezones.Lookup(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("timezone: %w", err)
		}
		hours = tz.OffsetHours
	}

	sunset, err := solar.FindSunset(date, p.Lat, p.Lon, hours)
	if err != nil {
		recordNoSunset(err)
		return nil, err
	}

	st := &domain.SunTimes{
		Date:      date.Format(time.DateOnly),
		Location:  p,
		UTCOffset: hours,
		Sunset:    sunset,
		LocalTime: solar.LocalTime(sunset.Time, hours).Format("15:04"),
		Direction: geospatial.DirectionName(sunset.Azimuth),
	}
	if rise, err := solar.FindSunrise(date, p.Lat, p.Lon, hours); err == nil {
		st.Sunrise = &rise.Time
		st.DayLengthHours = sunset.Time.Sub(rise.Time).Hours()
	}
	return st, nil
}
