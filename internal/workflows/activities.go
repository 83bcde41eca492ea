package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

// ErrTypeBeachNotFound is the application error type of an unknown slug.
const ErrTypeBeachNotFound = "BeachNotFound"

// ForecastActivities holds the activity implementations for the forecast workflow.
type ForecastActivities struct {
	Sunset *usecases.SunsetService
}

// CheckBeachSunset runs one curated check. A date without a sunset is a
// result, not a failure.
func (a *ForecastActivities) CheckBeachSunset(ctx context.Context, slug, date string) (ForecastDay, error) {
	logger := activity.GetLogger(ctx)

	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ForecastDay{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("invalid date %q", date), "InvalidInput", err)
	}

	r, err := a.Sunset.CheckBeach(ctx, slug, d)
	var ns *domain.NoSunsetError
	switch {
	case errors.As(err, &ns):
		logger.Info("No sunset", "beach", slug, "date", date, "condition", ns.Condition)
		return ForecastDay{Date: date, NoSunset: string(ns.Condition)}, nil
	case errors.Is(err, domain.ErrBeachNotFound):
		return ForecastDay{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("beach %q not found", slug), ErrTypeBeachNotFound, err)
	case err != nil:
		return ForecastDay{}, fmt.Errorf("check %s on %s: %w", slug, date, err)
	}

	day := ForecastDay{
		Date:      date,
		ReportID:  r.ID,
		OverWater: r.Verdict.OverWater,
		Azimuth:   r.Sunset.Azimuth,
		LocalTime: r.LocalTime,
	}
	if r.Verdict.Scenic != nil {
		day.Scenic = r.Verdict.Scenic.Label
	}
	return day, nil
}
