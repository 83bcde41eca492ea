package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
)

// --- Mock MapDataProvider ---

type mockMaps struct {
	mu                sync.Mutex
	shorelineRadii    []float64
	fetchShorelineFn  func(ctx context.Context, p domain.GeoPoint, radius float64) (domain.ShorelineGeometry, error)
	fetchFeaturesFn   func(ctx context.Context, p domain.GeoPoint, radius float64) ([]domain.PointFeature, error)
	findBeachesNearFn func(ctx context.Context, p domain.GeoPoint, radius float64) ([]domain.BeachHit, error)
}

func (m *mockMaps) FetchShoreline(ctx context.Context, p domain.GeoPoint, radius float64) (domain.ShorelineGeometry, error) {
	m.mu.Lock()
	m.shorelineRadii = append(m.shorelineRadii, radius)
	m.mu.Unlock()
	if m.fetchShorelineFn != nil {
		return m.fetchShorelineFn(ctx, p, radius)
	}
	return domain.ShorelineGeometry{}, nil
}

func (m *mockMaps) FetchFeatures(ctx context.Context, p domain.GeoPoint, radius float64) ([]domain.PointFeature, error) {
	if m.fetchFeaturesFn != nil {
		return m.fetchFeaturesFn(ctx, p, radius)
	}
	return nil, nil
}

func (m *mockMaps) FindBeachesNear(ctx context.Context, p domain.GeoPoint, radius float64) ([]domain.BeachHit, error) {
	if m.findBeachesNearFn != nil {
		return m.findBeachesNearFn(ctx, p, radius)
	}
	return nil, nil
}

// --- Mock Geocoder ---

type mockGeocoder struct {
	geocodeFn       func(ctx context.Context, q string) (domain.BeachHit, error)
	searchBeachesFn func(ctx context.Context, name string) ([]domain.BeachHit, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, q string) (domain.BeachHit, error) {
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, q)
	}
	return domain.BeachHit{}, domain.ErrLocationNotFound
}

func (m *mockGeocoder) SearchBeaches(ctx context.Context, name string) ([]domain.BeachHit, error) {
	if m.searchBeachesFn != nil {
		return m.searchBeachesFn(ctx, name)
	}
	return nil, nil
}

// --- Mock TimezoneProvider ---

type fixedTimezone struct {
	offset float64
	err    error
}

func (f fixedTimezone) Lookup(ctx context.Context, p domain.GeoPoint) (domain.TimezoneInfo, error) {
	if f.err != nil {
		return domain.TimezoneInfo{}, f.err
	}
	return domain.TimezoneInfo{OffsetHours: f.offset, Source: "test"}, nil
}

// --- Mock BeachRepository ---

type mockBeachRepo struct {
	getBySlugFn  func(ctx context.Context, slug string) (*domain.Beach, error)
	listFn       func(ctx context.Context, f ports.BeachFilter) ([]domain.Beach, int, error)
	findNearbyFn func(ctx context.Context, p domain.GeoPoint, radius float64, limit int) ([]domain.Beach, error)
}

func (m *mockBeachRepo) Upsert(ctx context.Context, b *domain.Beach) error            { return nil }
func (m *mockBeachRepo) UpsertBatch(ctx context.Context, beaches []domain.Beach) error { return nil }

func (m *mockBeachRepo) GetBySlug(ctx context.Context, slug string) (*domain.Beach, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrBeachNotFound
}

func (m *mockBeachRepo) List(ctx context.Context, f ports.BeachFilter) ([]domain.Beach, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return nil, 0, nil
}

func (m *mockBeachRepo) FindNearby(ctx context.Context, p domain.GeoPoint, radius float64, limit int) ([]domain.Beach, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, p, radius, limit)
	}
	return nil, nil
}

// --- Mock ReportRepository ---

type memReports struct {
	mu      sync.Mutex
	reports []domain.SunsetReport
	lastLim int
}

func (m *memReports) Insert(ctx context.Context, r *domain.SunsetReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, *r)
	return nil
}

func (m *memReports) GetByID(ctx context.Context, id string) (*domain.SunsetReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reports {
		if m.reports[i].ID == id {
			r := m.reports[i]
			return &r, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memReports) ListByBeach(ctx context.Context, slug string, limit int) ([]domain.SunsetReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLim = limit
	var out []domain.SunsetReport
	for _, r := range m.reports {
		if r.BeachSlug == slug {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReports) ListRecent(ctx context.Context, limit int) ([]domain.SunsetReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLim = limit
	return append([]domain.SunsetReport(nil), m.reports...), nil
}

// --- Mock EventPublisher ---

type recordingPublisher struct {
	mu        sync.Mutex
	published []*domain.SunsetReport
}

func (p *recordingPublisher) PublishReport(ctx context.Context, r *domain.SunsetReport) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, r)
	return nil
}

// --- Mock CacheService ---

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// --- Fixtures ---

// coastWestOf returns a coastline running due south 0.005° west of p, which
// places open water to the west of p.
func coastWestOf(p domain.GeoPoint) domain.ShorelineGeometry {
	var pl domain.Polyline
	for i := 0; i <= 12; i++ {
		pl = append(pl, domain.GeoPoint{Lat: p.Lat + 0.03 - float64(i)*0.005, Lon: p.Lon - 0.005})
	}
	return domain.ShorelineGeometry{Polylines: []domain.Polyline{pl}, Source: domain.SourceOcean}
}

func naiHarnBeach() *domain.Beach {
	return &domain.Beach{
		ID:              "b-1",
		Slug:            "nai_harn",
		Name:            "Nai Harn Beach",
		Country:         "Thailand",
		Region:          "Phuket",
		Location:        domain.GeoPoint{Lat: 7.7677, Lon: 98.3036},
		UTCOffset:       7,
		TimezoneID:      "Asia/Bangkok",
		OceanViewStart:  230,
		OceanViewEnd:    295,
		FacingDirection: "west",
		Obstructions: []domain.ObstructionInterval{
			{StartAz: 180, EndAz: 230, Label: "Promthep Cape (southern headland)"},
		},
		ScenicFeatures: []domain.ScenicFeature{
			{CenterAz: 247, HalfWidth: 2.5, Label: "Koh Man Island"},
		},
	}
}
