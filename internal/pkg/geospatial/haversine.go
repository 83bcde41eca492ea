package geospatial

import (
	"math"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

const (
	// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
	EarthRadiusMeters = 6371000.0

	// meters per degree in the local equirectangular projection
	metersPerDegLon = 111320.0
	metersPerDegLat = 110540.0
)

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// Bearing returns the initial great-circle bearing from a to b in degrees [0,360).
func Bearing(a, b domain.GeoPoint) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLon := toRad(b.Lon - a.Lon)

	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return Normalize360(toDeg(math.Atan2(x, y)))
}

// PointToSegmentDistance returns the distance in meters from p to the segment
// a-b and the closest point on it. The computation uses an equirectangular
// projection centred on p, which is accurate for the short distances involved.
func PointToSegmentDistance(p, a, b domain.GeoPoint) (float64, domain.GeoPoint) {
	cosLat := math.Cos(toRad(p.Lat))
	project := func(g domain.GeoPoint) (float64, float64) {
		return g.Lon * cosLat * metersPerDegLon, g.Lat * metersPerDegLat
	}

	px, py := project(p)
	ax, ay := project(a)
	bx, by := project(b)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay), a
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	cx, cy := ax+t*dx, ay+t*dy
	closest := domain.GeoPoint{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
	return math.Hypot(px-cx, py-cy), closest
}

// BoundingBox returns a bounding box around a point with the given radius in meters.
func BoundingBox(p domain.GeoPoint, radiusMeters float64) domain.Bounds {
	latDelta := radiusMeters / metersPerDegLon
	lonDelta := radiusMeters / (metersPerDegLon * math.Cos(toRad(p.Lat)))

	return domain.Bounds{
		MinLat: p.Lat - latDelta,
		MinLon: p.Lon - lonDelta,
		MaxLat: p.Lat + latDelta,
		MaxLon: p.Lon + lonDelta,
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
