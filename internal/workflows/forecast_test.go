package workflows

import (
	"testing"

	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/sundowner/internal/adapters/staticdata"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

const polarBeach = `
- slug: tromso_telegrafbukta
  name: "Telegrafbukta"
  country: "Norway"
  region: "Troms"
  location: {lat: 69.6329, lon: 18.9170}
  utc_offset: 2
  ocean_view_start: 180
  ocean_view_end: 300
`

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	catalog, err := staticdata.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	polar, err := staticdata.Parse([]byte(polarBeach))
	if err != nil {
		t.Fatalf("parse polar beach: %v", err)
	}
	for _, b := range polar.All() {
		if err := catalog.Upsert(t.Context(), &b); err != nil {
			t.Fatalf("add polar beach: %v", err)
		}
	}

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ForecastWorkflow)
	env.RegisterActivity(&ForecastActivities{
		Sunset: usecases.NewSunsetService(usecases.SunsetConfig{}, usecases.SunsetDeps{Beaches: catalog}),
	})
	return env
}

func TestForecastWorkflow_NaiHarnWinter(t *testing.T) {
	env := newEnv(t)
	env.ExecuteWorkflow(ForecastWorkflow, ForecastInput{BeachSlug: "nai_harn", StartDate: "2025-12-27", Days: 5})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow failed: %v", err)
	}

	var result ForecastResult
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(result.Days))
	}
	if result.VisibleDays != 5 {
		t.Errorf("expected every winter sunset over water, got %d", result.VisibleDays)
	}
	for i, want := range []string{"2025-12-27", "2025-12-28", "2025-12-29", "2025-12-30", "2025-12-31"} {
		day := result.Days[i]
		if day.Date != want {
			t.Errorf("day %d: expected %s, got %s", i, want, day.Date)
		}
		if day.ReportID == "" || day.LocalTime == "" {
			t.Errorf("day %d: missing report fields %+v", i, day)
		}
	}
}

func TestForecastWorkflow_PolarDay(t *testing.T) {
	env := newEnv(t)
	env.ExecuteWorkflow(ForecastWorkflow, ForecastInput{BeachSlug: "tromso_telegrafbukta", StartDate: "2025-06-20", Days: 3})

	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow failed: %v", err)
	}
	var result ForecastResult
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatal(err)
	}
	if result.VisibleDays != 0 {
		t.Errorf("expected no visible sunsets, got %d", result.VisibleDays)
	}
	for _, day := range result.Days {
		if day.NoSunset != "polar_day" {
			t.Errorf("%s: expected polar_day, got %q", day.Date, day.NoSunset)
		}
	}
}

func TestForecastWorkflow_UnknownBeach(t *testing.T) {
	env := newEnv(t)
	env.ExecuteWorkflow(ForecastWorkflow, ForecastInput{BeachSlug: "atlantis", StartDate: "2025-06-20", Days: 2})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if env.GetWorkflowError() == nil {
		t.Fatal("expected an error for an unknown beach")
	}
}

func TestForecastWorkflow_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input ForecastInput
	}{
		{"bad date", ForecastInput{BeachSlug: "nai_harn", StartDate: "27/12/2025", Days: 3}},
		{"zero days", ForecastInput{BeachSlug: "nai_harn", StartDate: "2025-12-27", Days: 0}},
		{"too many days", ForecastInput{BeachSlug: "nai_harn", StartDate: "2025-12-27", Days: MaxForecastDays + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			env.ExecuteWorkflow(ForecastWorkflow, tt.input)
			if env.GetWorkflowError() == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
