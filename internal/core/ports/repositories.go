package ports

import (
	"context"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

// BeachFilter narrows a curated beach listing.
type BeachFilter struct {
	Query      string // substring of name, country, region or slug
	Country    string // substring of country
	SunsetOnly bool   // only beaches whose view covers 250° or 270°
	Offset     int
	Limit      int
}

// BeachRepository persists curated beaches.
type BeachRepository interface {
	Upsert(ctx context.Context, beach *domain.Beach) error
	UpsertBatch(ctx context.Context, beaches []domain.Beach) error
	GetBySlug(ctx context.Context, slug string) (*domain.Beach, error)
	List(ctx context.Context, filter BeachFilter) ([]domain.Beach, int, error)
	FindNearby(ctx context.Context, p domain.GeoPoint, radiusMeters float64, limit int) ([]domain.Beach, error)
}

// ReportRepository persists sunset reports.
type ReportRepository interface {
	Insert(ctx context.Context, report *domain.SunsetReport) error
	GetByID(ctx context.Context, id string) (*domain.SunsetReport, error)
	ListByBeach(ctx context.Context, slug string, limit int) ([]domain.SunsetReport, error)
	ListRecent(ctx context.Context, limit int) ([]domain.SunsetReport, error)
}
