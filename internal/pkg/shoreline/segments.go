// Package shoreline infers which way a stretch of shoreline faces, and how
// wide its view of open water is, from map geometry around a query point.
package shoreline

import (
	"math"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

// ExtractSegments turns every consecutive vertex pair of geom into a segment
// annotated with its bearings and its distance from query.
//
// Coastline ways keep water on the right of the direction of travel. Water
// body outlines have unreliable winding, so when a centroid is known a
// segment whose water side points more than 90° away from the centroid is
// flipped. A single centroid is a poor reference for long or irregular
// lakes, and the flip can be wrong there.
func ExtractSegments(geom domain.ShorelineGeometry, query domain.GeoPoint) []domain.ShorelineSegment {
	lakeCheck := geom.Source == domain.SourceWaterBody && geom.Centroid != nil
	var towardCentroid float64
	if lakeCheck {
		towardCentroid = geospatial.Bearing(query, *geom.Centroid)
	}

	var segments []domain.ShorelineSegment
	for _, pl := range geom.Polylines {
		for i := 0; i+1 < len(pl); i++ {
			a, b := pl[i], pl[i+1]
			travel := geospatial.Bearing(a, b)
			water := geospatial.Normalize360(travel + 90)

			flipped := false
			if lakeCheck && math.Abs(geospatial.AngleDiff(water, towardCentroid)) > 90 {
				water = geospatial.Normalize360(water + 180)
				flipped = true
			}

			dist, _ := geospatial.PointToSegmentDistance(query, a, b)
			segments = append(segments, domain.ShorelineSegment{
				P1:            a,
				P2:            b,
				TravelBearing: travel,
				WaterBearing:  water,
				Distance:      dist,
				Flipped:       flipped,
			})
		}
	}
	return segments
}

// Closest returns the segment nearest the query point. The first of equally
// near segments wins. ok is false for an empty slice.
func Closest(segments []domain.ShorelineSegment) (seg domain.ShorelineSegment, ok bool) {
	for i, s := range segments {
		if i == 0 || s.Distance < seg.Distance {
			seg = s
		}
	}
	return seg, len(segments) > 0
}
