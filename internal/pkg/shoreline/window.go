package shoreline

import (
	"sort"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

const (
	// NearbyDistance bounds the segments used to estimate the facing azimuth.
	NearbyDistance = 1000.0
	// MaxNearbySegments caps how many of the nearest segments are averaged.
	MaxNearbySegments = 10
	// MinNearbySegments is the least number of nearby segments for a
	// geometry-derived window; fewer yield a low-confidence window.
	MinNearbySegments = 3

	straightDispersion = 10.0
	curvedDispersion   = 25.0

	halfWidthStraight = 60.0
	halfWidthModerate = 50.0
	halfWidthCurved   = 40.0
	halfWidthDefault  = 50.0
)

// EstimateViewWindow derives the view window from shoreline segments.
// A straight local shoreline gives a wide, high-confidence window; a curved
// one (a bay or cove) narrows it.
func EstimateViewWindow(segments []domain.ShorelineSegment) (domain.ViewWindow, error) {
	closest, ok := Closest(segments)
	if !ok {
		return domain.ViewWindow{}, domain.ErrNoShorelineFound
	}

	nearby := make([]domain.ShorelineSegment, 0, len(segments))
	for _, s := range segments {
		if s.Distance < NearbyDistance {
			nearby = append(nearby, s)
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].Distance < nearby[j].Distance })
	if len(nearby) > MaxNearbySegments {
		nearby = nearby[:MaxNearbySegments]
	}

	if len(nearby) < MinNearbySegments {
		return NewViewWindow(closest.WaterBearing, halfWidthDefault, domain.ConfidenceLow), nil
	}

	dirs := make([]float64, len(nearby))
	for i, s := range nearby {
		dirs[i] = s.WaterBearing
	}
	facing := geospatial.CircularMean(dirs)
	dispersion := geospatial.CircularDispersion(dirs, facing)

	switch {
	case dispersion < straightDispersion:
		return NewViewWindow(facing, halfWidthStraight, domain.ConfidenceHigh), nil
	case dispersion < curvedDispersion:
		return NewViewWindow(facing, halfWidthModerate, domain.ConfidenceMedium), nil
	default:
		return NewViewWindow(facing, halfWidthCurved, domain.ConfidenceMedium), nil
	}
}

// NewViewWindow builds a window centred on facing.
func NewViewWindow(facing, halfWidth float64, c domain.Confidence) domain.ViewWindow {
	facing = geospatial.Normalize360(facing)
	return domain.ViewWindow{
		FacingAzimuth: facing,
		HalfWidth:     halfWidth,
		Confidence:    c,
		Start:         geospatial.Normalize360(facing - halfWidth),
		End:           geospatial.Normalize360(facing + halfWidth),
	}
}

// WindowFromRange builds a window from an explicit clockwise start/end pair,
// as supplied by curated records. Facing is the midpoint of the arc.
func WindowFromRange(start, end float64, c domain.Confidence) domain.ViewWindow {
	start = geospatial.Normalize360(start)
	end = geospatial.Normalize360(end)
	half := geospatial.ClockwiseSpan(start, end) / 2
	return domain.ViewWindow{
		FacingAzimuth: geospatial.Normalize360(start + half),
		HalfWidth:     half,
		Confidence:    c,
		Start:         start,
		End:           end,
	}
}
