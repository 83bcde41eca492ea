package telemetry

import "go.opentelemetry.io/otel/attribute"

// Span attribute keys for sunset checks.
const (
	AttrLat        = attribute.Key("sundowner.lat")
	AttrLon        = attribute.Key("sundowner.lon")
	AttrDate       = attribute.Key("sundowner.date")
	AttrBeach      = attribute.Key("sundowner.beach")
	AttrSource     = attribute.Key("sundowner.view_source")
	AttrOverWater  = attribute.Key("sundowner.over_water")
	AttrAzimuth    = attribute.Key("sundowner.sunset_azimuth")
	AttrRadius     = attribute.Key("sundowner.radius_m")
	AttrConfidence = attribute.Key("sundowner.confidence")
)
