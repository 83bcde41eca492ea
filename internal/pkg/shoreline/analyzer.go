package shoreline

import (
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

// Analyze runs segment extraction, window estimation and feature
// classification for a query point. It fails with domain.ErrNoShorelineFound
// when geom yields no segments. RadiusMeters is left for the caller, which
// knows the radius the geometry was fetched with.
func Analyze(geom domain.ShorelineGeometry, query domain.GeoPoint, features []domain.PointFeature) (domain.ShorelineAnalysis, error) {
	segments := ExtractSegments(geom, query)
	window, err := EstimateViewWindow(segments)
	if err != nil {
		return domain.ShorelineAnalysis{}, err
	}
	closest, _ := Closest(segments)

	return domain.ShorelineAnalysis{
		Location:         query,
		Window:           window,
		FacingDirection:  geospatial.DirectionName(window.FacingAzimuth),
		CoastlineBearing: closest.TravelBearing,
		ClosestSegment:   closest,
		SegmentsAnalyzed: len(segments),
		PointsFound:      geom.PointCount(),
		Source:           geom.Source,
		Advisories:       ClassifyFeatures(window, features),
	}, nil
}
