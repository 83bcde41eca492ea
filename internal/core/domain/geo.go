package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies inside the WGS 84 coordinate ranges.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Polyline is an ordered sequence of geographic coordinates, e.g. one OSM way.
type Polyline []GeoPoint

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// ShorelineSource says which kind of map way a polyline was taken from.
type ShorelineSource int

const (
	// SourceOcean is a natural=coastline way (water always on the right).
	SourceOcean ShorelineSource = iota
	// SourceWaterBody is the boundary of a lake or other water polygon,
	// whose winding is not reliable.
	SourceWaterBody
)

func (s ShorelineSource) String() string {
	if s == SourceWaterBody {
		return "lake"
	}
	return "ocean"
}

// MarshalText encodes the source as "ocean" or "lake".
func (s ShorelineSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "ocean" or "lake".
func (s *ShorelineSource) UnmarshalText(b []byte) error {
	if string(b) == "lake" {
		*s = SourceWaterBody
	} else {
		*s = SourceOcean
	}
	return nil
}

// ShorelineGeometry is the raw geometry returned by a map data provider.
type ShorelineGeometry struct {
	Polylines []Polyline      `json:"polylines"`
	Source    ShorelineSource `json:"source"`
	Centroid  *GeoPoint       `json:"centroid,omitempty"` // water-body centre, if known
}

// PointCount returns the total number of vertices over all polylines.
func (g ShorelineGeometry) PointCount() int {
	n := 0
	for _, pl := range g.Polylines {
		n += len(pl)
	}
	return n
}
