package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// MaxForecastDays bounds a single forecast run.
const MaxForecastDays = 31

// ForecastInput is the input for the forecast workflow.
type ForecastInput struct {
	BeachSlug string
	StartDate string // YYYY-MM-DD
	Days      int
}

// ForecastDay is the outcome of one day's check.
type ForecastDay struct {
	Date      string  `json:"date"`
	ReportID  string  `json:"report_id,omitempty"`
	OverWater bool    `json:"over_water"`
	Azimuth   float64 `json:"azimuth,omitempty"`
	LocalTime string  `json:"local_time,omitempty"`
	Scenic    string  `json:"scenic,omitempty"`
	// NoSunset names the polar condition when the sun does not set.
	NoSunset string `json:"no_sunset,omitempty"`
}

// ForecastResult summarises a forecast run.
type ForecastResult struct {
	BeachSlug   string        `json:"beach_slug"`
	Days        []ForecastDay `json:"days"`
	VisibleDays int           `json:"visible_days"`
}

// ForecastWorkflow checks a curated beach's sunset for Days consecutive
// dates starting at StartDate. Each day is one activity; the checks run
// concurrently and the reports they produce are stored and published by
// the sunset service.
func ForecastWorkflow(ctx workflow.Context, input ForecastInput) (*ForecastResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting forecast workflow", "beach", input.BeachSlug, "days", input.Days)

	start, err := time.Parse(time.DateOnly, input.StartDate)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("invalid start date %q", input.StartDate), "InvalidInput", err)
	}
	if input.Days < 1 || input.Days > MaxForecastDays {
		return nil, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("days must be between 1 and %d", MaxForecastDays), "InvalidInput", nil)
	}

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{ErrTypeBeachNotFound},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	var a *ForecastActivities
	futures := make([]workflow.Future, input.Days)
	for i := range futures {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		futures[i] = workflow.ExecuteActivity(ctx, a.CheckBeachSunset, input.BeachSlug, date)
	}

	result := &ForecastResult{BeachSlug: input.BeachSlug, Days: make([]ForecastDay, 0, input.Days)}
	for _, f := range futures {
		var day ForecastDay
		if err := f.Get(ctx, &day); err != nil {
			return nil, err
		}
		if day.OverWater {
			result.VisibleDays++
		}
		result.Days = append(result.Days, day)
	}

	logger.Info("Forecast complete", "beach", input.BeachSlug, "visibleDays", result.VisibleDays)
	return result, nil
}
