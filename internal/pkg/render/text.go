// Package render formats sunset reports for terminals.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
	"github.com/samirrijal/sundowner/internal/pkg/visibility"
)

const horizonWidth = 40

// Horizon draws the western half of the horizon, south (180°) to north
// (360°): ~ for open water, # for land, ^ for islands. When the sun sets in
// that half a marker line with * is printed above it.
func Horizon(sunAz float64, w domain.ViewWindow, advisories []domain.Advisory) string {
	var b strings.Builder
	b.WriteString("  S        SW        W        NW        N\n")
	b.WriteString("  180      225      270      315      360\n")
	b.WriteString("  |--------|--------|--------|--------|\n")

	line := []byte("  ")
	for pos := 0; pos < horizonWidth; pos++ {
		az := 180 + float64(pos)/horizonWidth*180
		if geospatial.InRange(az, w.Start, w.End) {
			line = append(line, '~')
		} else {
			line = append(line, '#')
		}
	}

	for _, a := range advisories {
		if a.Feature.Kind != domain.FeatureIsland {
			continue
		}
		if pos, ok := column(math.Round(a.Feature.Bearing)); ok && pos < len(line) {
			line[pos] = '^'
		}
	}

	if pos, ok := column(sunAz); ok {
		sun := []byte(strings.Repeat(" ", len(line)))
		if pos < len(sun) {
			sun[pos] = '*'
		}
		b.Write(sun)
		b.WriteString("  <- sun\n")
	}

	b.Write(line)
	b.WriteString("\n\n  ~ = water  # = land  ^ = island  * = sunset\n")
	return b.String()
}

// column maps an azimuth in [180, 360] to its position on the horizon line.
func column(az float64) (int, bool) {
	if az < 180 || az > 360 {
		return 0, false
	}
	return 2 + int((az-180)/180*horizonWidth), true
}

// Report writes the human-readable form of a report.
func Report(out io.Writer, r *domain.SunsetReport) {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 40)
	water := r.WaterType.String()
	label := "Ocean"
	if r.WaterType == domain.SourceWaterBody {
		label = "Lake"
	}

	fmt.Fprintf(out, "\n%s\nSUNSET VISIBILITY: %s\n%s\n", rule, r.Name, rule)
	fmt.Fprintf(out, "\nDate: %s\n", r.Date)
	fmt.Fprintf(out, "Location: %.4f, %.4f\n", r.Location.Lat, r.Location.Lon)
	fmt.Fprintf(out, "Beach faces: %s\n", r.Facing)
	fmt.Fprintf(out, "%s view: %.0f° to %.0f°\n", label, r.Window.Start, r.Window.End)

	fmt.Fprintf(out, "\n%s\n", thin)
	fmt.Fprintf(out, "Sunset: %s (%s)\n", r.LocalTime, timezoneLabel(r.Timezone))
	fmt.Fprintf(out, "Sun position: %.1f° (%s)\n", r.Sunset.Azimuth, r.Direction)
	if r.Sunrise != nil && r.DayLengthHours > 0 {
		h := int(r.DayLengthHours)
		m := int(math.Round((r.DayLengthHours - float64(h)) * 60))
		fmt.Fprintf(out, "Day length: %dh %02dm\n", h, m)
	}

	fmt.Fprintf(out, "\n%s\n", thin)
	if r.Verdict.OverWater {
		fmt.Fprintf(out, "YES - Sunset WILL be visible over the %s!\n", water)
		if r.Verdict.Scenic != nil {
			fmt.Fprintf(out, "\n  %s\n", r.Explanation)
		}
		if len(r.Advisories) > 0 {
			fmt.Fprintln(out, "\nNearby features:")
			for _, a := range r.Advisories {
				fmt.Fprintf(out, "  - %s\n", a.Message)
			}
		}
		confidence(out, r.Window.Confidence)
		fmt.Fprintf(out, "\n%s\n\n", thin)
		fmt.Fprint(out, Horizon(r.Sunset.Azimuth, r.Window, r.Advisories))
		return
	}

	fmt.Fprintf(out, "NO - Sunset will NOT be over the %s\n", water)
	if r.Explanation != "" {
		fmt.Fprintf(out, "\n  %s\n", r.Explanation)
	}
	confidence(out, r.Window.Confidence)
}

func confidence(out io.Writer, c domain.Confidence) {
	fmt.Fprintf(out, "\nConfidence: %s\n", c)
	if note := visibility.ConfidenceNote(c); note != "" {
		fmt.Fprintf(out, "  (%s)\n", note)
	}
}

func timezoneLabel(tz domain.TimezoneInfo) string {
	if tz.ID != "" {
		return tz.ID
	}
	return fmt.Sprintf("UTC%+.0f", tz.OffsetHours)
}

// NoSunset writes the explanation for a date without a sunset.
func NoSunset(out io.Writer, err *domain.NoSunsetError) {
	fmt.Fprintf(out, "\n%s\n", err.Error())
	switch err.Condition {
	case domain.ConditionPolarDay:
		fmt.Fprintln(out, "  The sun doesn't set at this location on this date (midnight sun).")
	case domain.ConditionPolarNight:
		fmt.Fprintln(out, "  The sun doesn't rise at this location on this date (polar night).")
	}
}
