package ports

import (
	"context"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

// MapDataProvider fetches shoreline geometry and landforms around a point.
type MapDataProvider interface {
	// FetchShoreline returns ocean coastline ways within radius, falling back
	// to water-body outlines (with their centroid) when there is no coastline.
	// An empty geometry means nothing was found.
	FetchShoreline(ctx context.Context, p domain.GeoPoint, radiusMeters float64) (domain.ShorelineGeometry, error)
	// FetchFeatures returns capes, cliffs, peninsulas and islands within radius,
	// with bearing and distance measured from p.
	FetchFeatures(ctx context.Context, p domain.GeoPoint, radiusMeters float64) ([]domain.PointFeature, error)
	// FindBeachesNear returns mapped beaches within radius, nearest first.
	FindBeachesNear(ctx context.Context, p domain.GeoPoint, radiusMeters float64) ([]domain.BeachHit, error)
}

// Geocoder resolves free-text place names.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.BeachHit, error)
	SearchBeaches(ctx context.Context, name string) ([]domain.BeachHit, error)
}

// TimezoneProvider resolves the UTC offset in force at a location.
type TimezoneProvider interface {
	Lookup(ctx context.Context, p domain.GeoPoint) (domain.TimezoneInfo, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishReport(ctx context.Context, report *domain.SunsetReport) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeReports(ctx context.Context, handler func(ctx context.Context, report *domain.SunsetReport) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
