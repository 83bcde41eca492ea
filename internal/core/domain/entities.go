package domain

import (
	"time"
)

// SolarPosition is the Sun's apparent place for an observer at an instant.
type SolarPosition struct {
	Azimuth  float64   `json:"azimuth"`  // degrees clockwise from true north, [0,360)
	Altitude float64   `json:"altitude"` // degrees above the horizon, [-90,90]
	Time     time.Time `json:"time"`     // UTC
}

// ShorelineSegment is one edge of a shoreline polyline as seen from a query point.
type ShorelineSegment struct {
	P1            GeoPoint `json:"p1"`
	P2            GeoPoint `json:"p2"`
	TravelBearing float64  `json:"travel_bearing"`
	WaterBearing  float64  `json:"water_bearing"`
	Distance      float64  `json:"distance"` // meters from the query point
	Flipped       bool     `json:"flipped,omitempty"`
}

// Confidence grades how much the shoreline geometry supports a view window.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ViewWindow is the arc of horizon that faces open water.
// Start and End run clockwise and may wrap through 0°.
type ViewWindow struct {
	FacingAzimuth float64    `json:"facing_azimuth"`
	HalfWidth     float64    `json:"half_width"`
	Confidence    Confidence `json:"confidence"`
	Start         float64    `json:"start"`
	End           float64    `json:"end"`
}

// FeatureKind is the map classification of a point feature.
type FeatureKind string

const (
	FeatureCape      FeatureKind = "cape"
	FeaturePeninsula FeatureKind = "peninsula"
	FeatureCliff     FeatureKind = "cliff"
	FeatureIsland    FeatureKind = "island"
)

// PointFeature is a named landform near the query point.
type PointFeature struct {
	Name     string      `json:"name"`
	Location GeoPoint    `json:"location"`
	Kind     FeatureKind `json:"kind"`
	Bearing  float64     `json:"bearing"`  // from the query point
	Distance float64     `json:"distance"` // meters from the query point
}

// AdvisoryKind separates possible obstructions from scenic points.
type AdvisoryKind string

const (
	AdvisoryObstruction AdvisoryKind = "obstruction"
	AdvisoryScenic      AdvisoryKind = "scenic"
)

// Advisory is a feature found inside the view window.
type Advisory struct {
	Feature PointFeature `json:"feature"`
	Kind    AdvisoryKind `json:"kind"`
	Message string       `json:"message"`
}

// ObstructionInterval is an arc of horizon known to be blocked by land.
type ObstructionInterval struct {
	StartAz float64 `json:"start_az" yaml:"start"`
	EndAz   float64 `json:"end_az" yaml:"end"`
	Label   string  `json:"label" yaml:"label"`
}

// ScenicFeature is a named landmark centred on an azimuth.
type ScenicFeature struct {
	CenterAz    float64 `json:"center_az" yaml:"center"`
	HalfWidth   float64 `json:"half_width" yaml:"half_width"`
	Label       string  `json:"label" yaml:"label"`
	Description string  `json:"description,omitempty" yaml:"description"`
}

// ScenicAlignment grades how close the sunset is to a scenic feature.
type ScenicAlignment string

const (
	AlignmentDirect   ScenicAlignment = "direct"
	AlignmentAdjacent ScenicAlignment = "adjacent"
	AlignmentNearby   ScenicAlignment = "nearby"
)

// WindowSide tells on which side of the view window a blocked sunset falls.
type WindowSide string

const (
	SideTooFarSouth WindowSide = "too_far_south"
	SideTooFarNorth WindowSide = "too_far_north"
)

// ReasonOutsideView is the blocking reason when the sun sets outside the window.
const ReasonOutsideView = "outside view range"

// VisibilityVerdict is the final answer for one sunset.
type VisibilityVerdict struct {
	OverWater       bool            `json:"over_water"`
	BlockingReason  string          `json:"blocking_reason,omitempty"`
	Side            WindowSide      `json:"side,omitempty"`
	ScenicAlignment ScenicAlignment `json:"scenic_alignment,omitempty"`
	Scenic          *ScenicFeature  `json:"scenic,omitempty"`
}

// ShorelineAnalysis is the view window inferred from map geometry.
type ShorelineAnalysis struct {
	Location         GeoPoint         `json:"location"`
	Window           ViewWindow       `json:"window"`
	FacingDirection  string           `json:"facing_direction"`
	CoastlineBearing float64          `json:"coastline_bearing"`
	ClosestSegment   ShorelineSegment `json:"closest_segment"`
	SegmentsAnalyzed int              `json:"segments_analyzed"`
	PointsFound      int              `json:"points_found"`
	Source           ShorelineSource  `json:"source"`
	RadiusMeters     float64          `json:"radius_m"`
	Advisories       []Advisory       `json:"advisories,omitempty"`
}

// Beach is a curated record with hand-verified view geometry.
type Beach struct {
	ID              string                `json:"id,omitempty" yaml:"-"`
	Slug            string                `json:"slug" yaml:"slug"`
	Name            string                `json:"name" yaml:"name"`
	Country         string                `json:"country" yaml:"country"`
	Region          string                `json:"region" yaml:"region"`
	Location        GeoPoint              `json:"location" yaml:"location"`
	UTCOffset       float64               `json:"utc_offset" yaml:"utc_offset"`
	TimezoneID      string                `json:"timezone_id,omitempty" yaml:"timezone_id"`
	OceanViewStart  float64               `json:"ocean_view_start" yaml:"ocean_view_start"`
	OceanViewEnd    float64               `json:"ocean_view_end" yaml:"ocean_view_end"`
	Obstructions    []ObstructionInterval `json:"obstructions,omitempty" yaml:"obstructions"`
	ScenicFeatures  []ScenicFeature       `json:"scenic_features,omitempty" yaml:"scenic_features"`
	FacingDirection string                `json:"facing_direction" yaml:"facing"`
	Notes           string                `json:"notes,omitempty" yaml:"notes"`
	Distance        *float64              `json:"distance,omitempty" yaml:"-"` // computed field
}

// TimezoneInfo is the UTC offset in force at a location.
type TimezoneInfo struct {
	OffsetHours float64 `json:"offset_hours"`
	ID          string  `json:"id,omitempty"`
	Source      string  `json:"source"` // "geonames", "estimated" or "curated"
}

// BeachHit is a beach found by a map provider search.
type BeachHit struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Location    GeoPoint `json:"location"`
	Distance    float64  `json:"distance,omitempty"`
}

// ReportSource says where the view geometry of a report came from.
type ReportSource string

const (
	ReportCurated  ReportSource = "curated"
	ReportAnalyzed ReportSource = "analyzed"
)

// SunsetReport is the full result of one sunset check.
type SunsetReport struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	BeachSlug      string            `json:"beach_slug,omitempty"`
	Location       GeoPoint          `json:"location"`
	Date           string            `json:"date"` // YYYY-MM-DD, local
	Sunset         SolarPosition     `json:"sunset"`
	Sunrise        *time.Time        `json:"sunrise,omitempty"`
	DayLengthHours float64           `json:"day_length_hours,omitempty"`
	LocalTime      string            `json:"local_time"` // HH:MM
	Timezone       TimezoneInfo      `json:"timezone"`
	Direction      string            `json:"direction"`
	Facing         string            `json:"facing"`
	WaterType      ShorelineSource   `json:"water_type"`
	Window         ViewWindow        `json:"window"`
	Verdict        VisibilityVerdict `json:"verdict"`
	Explanation    string            `json:"explanation,omitempty"`
	Advisories     []Advisory        `json:"advisories,omitempty"`
	PointsFound    int               `json:"points_found,omitempty"`
	Source         ReportSource      `json:"source"`
	CreatedAt      time.Time         `json:"created_at"`
}

// SunTimes is the result of the solver alone, without any view geometry.
type SunTimes struct {
	Date           string        `json:"date"`
	Location       GeoPoint      `json:"location"`
	UTCOffset      float64       `json:"utc_offset"`
	Sunset         SolarPosition `json:"sunset"`
	LocalTime      string        `json:"local_time"`
	Direction      string        `json:"direction"`
	Sunrise        *time.Time    `json:"sunrise,omitempty"`
	DayLengthHours float64       `json:"day_length_hours,omitempty"`
}
