package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
)

// Radii searched, in order, for a mapped beach near a geocoded place.
var beachSearchRadii = []float64{5000, 10000, 20000}

// BeachService handles curated beach lookups and the free-text beach finder.
type BeachService struct {
	beaches  ports.BeachRepository
	geocoder ports.Geocoder
	maps     ports.MapDataProvider
	cache    ports.CacheService
}

// NewBeachService creates a new BeachService. geocoder and maps may be nil
// when only the curated catalogue is needed.
func NewBeachService(beaches ports.BeachRepository, geocoder ports.Geocoder, maps ports.MapDataProvider, cache ports.CacheService) *BeachService {
	return &BeachService{beaches: beaches, geocoder: geocoder, maps: maps, cache: cache}
}

// List returns one page of curated beaches and the total match count.
func (s *BeachService) List(ctx context.Context, f ports.BeachFilter) ([]domain.Beach, int, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.beaches.List(ctx, f)
}

// Get returns a curated beach by slug.
func (s *BeachService) Get(ctx context.Context, slug string) (*domain.Beach, error) {
	slug = domain.NormalizeSlug(slug)
	cacheKey := "beaches:slug:" + slug
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var b domain.Beach
			if err := json.Unmarshal(data, &b); err == nil {
				return &b, nil
			}
		}
	}

	b, err := s.beaches.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(b); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}
	return b, nil
}

// Nearby returns curated beaches within radiusMeters of p.
func (s *BeachService) Nearby(ctx context.Context, p domain.GeoPoint, radiusMeters float64, limit int) ([]domain.Beach, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.beaches.FindNearby(ctx, p, radiusMeters, limit)
}

// Locate finds a beach from free text. It searches beaches by name, then
// by "<query> beach", and finally geocodes the query and takes the nearest
// mapped beach within 5, 10 or 20 km.
func (s *BeachService) Locate(ctx context.Context, query string) (*domain.BeachHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if s.geocoder == nil || s.maps == nil {
		return nil, fmt.Errorf("beach finder is not configured")
	}

	cacheKey := "beaches:locate:" + strings.ToLower(query)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var hit domain.BeachHit
			if err := json.Unmarshal(data, &hit); err == nil {
				return &hit, nil
			}
		}
	}

	hit, err := s.locate(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(hit); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 86400)
		}
	}
	return hit, nil
}

func (s *BeachService) locate(ctx context.Context, query string) (*domain.BeachHit, error) {
	hits, err := s.geocoder.SearchBeaches(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 && !strings.Contains(strings.ToLower(query), "beach") {
		if hits, err = s.geocoder.SearchBeaches(ctx, query+" beach"); err != nil {
			return nil, err
		}
	}
	if len(hits) > 0 {
		best := hits[0]
		slog.DebugContext(ctx, "beach found by name", "query", query, "match", best.DisplayName, "candidates", len(hits))
		return &domain.BeachHit{
			Name:        query,
			DisplayName: best.DisplayName,
			Location:    best.Location,
		}, nil
	}

	place, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not find %q: %w", query, err)
	}
	for _, radius := range beachSearchRadii {
		near, err := s.maps.FindBeachesNear(ctx, place.Location, radius)
		if err != nil {
			return nil, err
		}
		if len(near) > 0 {
			best := near[0]
			slog.DebugContext(ctx, "nearest beach", "query", query, "beach", best.Name, "distance_m", best.Distance)
			return &best, nil
		}
	}
	return nil, fmt.Errorf("no beaches found within 20km of %q: %w", query, domain.ErrBeachNotFound)
}
