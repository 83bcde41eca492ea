package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/render"
)

func TestHorizon(t *testing.T) {
	w := domain.ViewWindow{Start: 225, End: 315}
	islands := []domain.Advisory{{
		Kind:    domain.AdvisoryScenic,
		Feature: domain.PointFeature{Name: "Koh Man", Kind: domain.FeatureIsland, Bearing: 270},
	}}

	out := render.Horizon(270, w, islands)
	lines := strings.Split(out, "\n")
	// header (3), sun marker, horizon line
	if len(lines) < 5 {
		t.Fatalf("too few lines:\n%s", out)
	}
	sun, horizon := lines[3], lines[4]
	if !strings.HasSuffix(sun, "<- sun") || strings.IndexByte(sun, '*') != 22 {
		t.Errorf("sun line = %q", sun)
	}
	if len(horizon) != 42 {
		t.Fatalf("horizon width = %d, want 42", len(horizon))
	}
	if horizon[2] != '#' || horizon[41] != '#' {
		t.Errorf("edges should be land: %q", horizon)
	}
	if horizon[22] != '^' {
		t.Errorf("island at 270° should be at column 22: %q", horizon)
	}
	if horizon[15] != '~' {
		t.Errorf("azimuth ~238° should be water: %q", horizon)
	}
}

func TestHorizon_SunOutsideWesternHalf(t *testing.T) {
	out := render.Horizon(120, domain.ViewWindow{Start: 60, End: 120}, nil)
	if strings.Contains(out, "<- sun") {
		t.Errorf("unexpected sun marker:\n%s", out)
	}
}

func TestReport(t *testing.T) {
	rise := time.Date(2025, 12, 28, 23, 30, 0, 0, time.UTC)
	r := &domain.SunsetReport{
		Name:           "Nai Harn Beach",
		Location:       domain.GeoPoint{Lat: 7.7677, Lon: 98.3036},
		Date:           "2025-12-29",
		Sunset:         domain.SolarPosition{Azimuth: 246.7},
		Sunrise:        &rise,
		DayLengthHours: 11.8,
		LocalTime:      "18:19",
		Timezone:       domain.TimezoneInfo{OffsetHours: 7},
		Direction:      "west-southwest",
		Facing:         "west-southwest",
		Window:         domain.ViewWindow{Start: 230, End: 295, Confidence: domain.ConfidenceMedium},
		Verdict:        domain.VisibilityVerdict{OverWater: true},
	}

	var buf bytes.Buffer
	render.Report(&buf, r)
	out := buf.String()
	for _, want := range []string{
		"SUNSET VISIBILITY: Nai Harn Beach",
		"Ocean view: 230° to 295°",
		"Sunset: 18:19 (UTC+7)",
		"Day length: 11h 48m",
		"YES - Sunset WILL be visible over the ocean!",
		"Confidence: medium",
		"<- sun",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReport_NotVisible(t *testing.T) {
	r := &domain.SunsetReport{
		Name:        "Grace Bay",
		Facing:      "north",
		WaterType:   domain.SourceOcean,
		Window:      domain.ViewWindow{Start: 330, End: 90, Confidence: domain.ConfidenceHigh},
		Verdict:     domain.VisibilityVerdict{BlockingReason: domain.ReasonOutsideView},
		Explanation: "This beach faces north.",
	}
	var buf bytes.Buffer
	render.Report(&buf, r)
	out := buf.String()
	if !strings.Contains(out, "NO - Sunset will NOT be over the ocean") || !strings.Contains(out, "This beach faces north.") {
		t.Errorf("output:\n%s", out)
	}
	if strings.Contains(out, "<- sun") {
		t.Error("diagram should only be drawn for visible sunsets")
	}
}

func TestNoSunset(t *testing.T) {
	var buf bytes.Buffer
	render.NoSunset(&buf, &domain.NoSunsetError{Condition: domain.ConditionPolarDay, Date: time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)})
	if !strings.Contains(buf.String(), "midnight sun") {
		t.Errorf("output = %q", buf.String())
	}
}
