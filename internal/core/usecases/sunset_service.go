package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
	"github.com/samirrijal/sundowner/internal/pkg/metrics"
	"github.com/samirrijal/sundowner/internal/pkg/shoreline"
	"github.com/samirrijal/sundowner/internal/pkg/solar"
	"github.com/samirrijal/sundowner/internal/pkg/telemetry"
	"github.com/samirrijal/sundowner/internal/pkg/visibility"
)

// TimezoneSourceCurated marks offsets taken from a curated beach record.
const TimezoneSourceCurated = "curated"

// SunsetConfig tunes shoreline analysis and report handling.
type SunsetConfig struct {
	RadiusM         float64
	ExpandedRadiusM float64
	FeatureRadiusM  float64
	CacheTTLSeconds int
	// PersistReports stores every report through the report repository.
	// Leave it off when an archiver consumes published reports instead.
	PersistReports bool
}

// SunsetDeps are the collaborators of SunsetService. Reports, Publisher and
// Cache are optional.
type SunsetDeps struct {
	Maps      ports.MapDataProvider
	Timezones ports.TimezoneProvider
	Beaches   ports.BeachRepository
	Reports   ports.ReportRepository
	Publisher ports.EventPublisher
	Cache     ports.CacheService
}

// SunsetService answers sunset visibility checks for arbitrary shore points
// and curated beaches.
type SunsetService struct {
	cfg       SunsetConfig
	maps      ports.MapDataProvider
	timezones ports.TimezoneProvider
	beaches   ports.BeachRepository
	reports   ports.ReportRepository
	publisher ports.EventPublisher
	cache     ports.CacheService

	now   func() time.Time
	newID func() string
}

// NewSunsetService creates a new SunsetService.
func NewSunsetService(cfg SunsetConfig, deps SunsetDeps) *SunsetService {
	if cfg.RadiusM <= 0 {
		cfg.RadiusM = 2000
	}
	if cfg.ExpandedRadiusM < cfg.RadiusM {
		cfg.ExpandedRadiusM = cfg.RadiusM
	}
	if cfg.FeatureRadiusM <= 0 {
		cfg.FeatureRadiusM = 5000
	}
	return &SunsetService{
		cfg:       cfg,
		maps:      deps.Maps,
		timezones: deps.Timezones,
		beaches:   deps.Beaches,
		reports:   deps.Reports,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// WithClock replaces the clock used for report timestamps.
func (s *SunsetService) WithClock(now func() time.Time) *SunsetService {
	s.now = now
	return s
}

// CheckLocation analyses the shoreline around p and decides whether the
// sunset on date is seen over water. The timezone lookup and shoreline
// analysis run concurrently.
func (s *SunsetService) CheckLocation(ctx context.Context, p domain.GeoPoint, date time.Time, name string) (*domain.SunsetReport, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "SunsetService.CheckLocation", trace.WithAttributes(
		telemetry.AttrLat.Float64(p.Lat),
		telemetry.AttrLon.Float64(p.Lon),
		telemetry.AttrDate.String(date.Format(time.DateOnly)),
	))
	defer span.End()

	if !p.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}
	if name == "" {
		name = fmt.Sprintf("Location (%.4f, %.4f)", p.Lat, p.Lon)
	}

	var (
		tz       domain.TimezoneInfo
		analysis *domain.ShorelineAnalysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := s.timezones.Lookup(gctx, p)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		tz = info
		return nil
	})
	g.Go(func() error {
		a, err := s.AnalyzeShoreline(gctx, p)
		if err != nil {
			return err
		}
		analysis = a
		return nil
	})
	if err := g.Wait(); err != nil {
		failSpan(span, err)
		return nil, err
	}

	sunset, err := solar.FindSunset(date, p.Lat, p.Lon, tz.OffsetHours)
	if err != nil {
		recordNoSunset(err)
		failSpan(span, err)
		return nil, err
	}

	verdict := visibility.Resolve(sunset.Azimuth, visibility.Input{Window: analysis.Window})
	r := s.newReport(p, date, tz, sunset)
	r.Name = name
	r.Facing = analysis.FacingDirection
	r.WaterType = analysis.Source
	r.Window = analysis.Window
	r.Verdict = verdict
	r.Advisories = analysis.Advisories
	r.PointsFound = analysis.PointsFound
	r.Source = domain.ReportAnalyzed
	r.Explanation = visibility.Explain(verdict, sunset.Azimuth, r.Facing, r.Window, r.WaterType)

	span.SetAttributes(
		telemetry.AttrRadius.Float64(analysis.RadiusMeters),
		telemetry.AttrConfidence.String(string(analysis.Window.Confidence)),
	)
	s.finish(ctx, span, r)
	return r, nil
}

// CheckBeach decides sunset visibility for a curated beach. Its recorded
// view range, obstructions and scenic features replace geometry analysis.
func (s *SunsetService) CheckBeach(ctx context.Context, slug string, date time.Time) (*domain.SunsetReport, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "SunsetService.CheckBeach", trace.WithAttributes(
		telemetry.AttrBeach.String(slug),
		telemetry.AttrDate.String(date.Format(time.DateOnly)),
	))
	defer span.End()

	b, err := s.beaches.GetBySlug(ctx, slug)
	if err != nil {
		failSpan(span, err)
		return nil, err
	}

	sunset, err := solar.FindSunset(date, b.Location.Lat, b.Location.Lon, b.UTCOffset)
	if err != nil {
		recordNoSunset(err)
		failSpan(span, err)
		return nil, err
	}

	window := shoreline.WindowFromRange(b.OceanViewStart, b.OceanViewEnd, domain.ConfidenceHigh)
	verdict := visibility.Resolve(sunset.Azimuth, visibility.Input{
		Window:       window,
		Obstructions: b.Obstructions,
		Scenic:       b.ScenicFeatures,
	})

	tz := domain.TimezoneInfo{OffsetHours: b.UTCOffset, ID: b.TimezoneID, Source: TimezoneSourceCurated}
	r := s.newReport(b.Location, date, tz, sunset)
	r.Name = b.Name
	r.BeachSlug = b.Slug
	r.Facing = b.FacingDirection
	if r.Facing == "" {
		r.Facing = geospatial.DirectionName(window.FacingAzimuth)
	}
	r.WaterType = domain.SourceOcean
	r.Window = window
	r.Verdict = verdict
	r.Source = domain.ReportCurated
	r.Explanation = visibility.Explain(verdict, sunset.Azimuth, r.Facing, window, r.WaterType)

	s.finish(ctx, span, r)
	return r, nil
}

// AnalyzeShoreline infers the view window around p from map geometry. The
// shoreline is fetched at the configured radius, then once more at the
// expanded radius when nothing was found. Point features are advisory; a
// failure to fetch them is logged and ignored.
func (s *SunsetService) AnalyzeShoreline(ctx context.Context, p domain.GeoPoint) (*domain.ShorelineAnalysis, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}

	cacheKey := fmt.Sprintf("shoreline:%.4f:%.4f", p.Lat, p.Lon)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var a domain.ShorelineAnalysis
			if err := json.Unmarshal(data, &a); err == nil {
				metrics.CacheHits.WithLabelValues("shoreline").Inc()
				return &a, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("shoreline").Inc()
	}

	var (
		geom     domain.ShorelineGeometry
		radius   float64
		features []domain.PointFeature
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		geom, radius, err = s.fetchShoreline(gctx, p)
		return err
	})
	g.Go(func() error {
		f, err := s.maps.FetchFeatures(gctx, p, s.cfg.FeatureRadiusM)
		if err != nil {
			if gctx.Err() != nil {
				return nil
			}
			slog.WarnContext(gctx, "feature lookup failed", "lat", p.Lat, "lon", p.Lon, "error", err)
			return nil
		}
		features = f
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(geom.Polylines) == 0 {
		metrics.InlandLocations.Inc()
		return nil, fmt.Errorf("no coastline or lake within %.0fm of (%.4f, %.4f): %w",
			radius, p.Lat, p.Lon, domain.ErrNoShorelineFound)
	}

	a, err := shoreline.Analyze(geom, p, features)
	if err != nil {
		if errors.Is(err, domain.ErrNoShorelineFound) {
			metrics.InlandLocations.Inc()
		}
		return nil, err
	}
	a.RadiusMeters = radius

	if s.cache != nil && s.cfg.CacheTTLSeconds > 0 {
		if data, err := json.Marshal(a); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cfg.CacheTTLSeconds)
		}
	}
	return &a, nil
}

func (s *SunsetService) fetchShoreline(ctx context.Context, p domain.GeoPoint) (domain.ShorelineGeometry, float64, error) {
	radius := s.cfg.RadiusM
	geom, err := s.maps.FetchShoreline(ctx, p, radius)
	if err != nil {
		return geom, radius, fmt.Errorf("fetch shoreline: %w", err)
	}
	if len(geom.Polylines) > 0 || s.cfg.ExpandedRadiusM <= radius {
		return geom, radius, nil
	}

	slog.InfoContext(ctx, "no shoreline found, expanding search",
		"lat", p.Lat, "lon", p.Lon, "radius_m", s.cfg.ExpandedRadiusM)
	radius = s.cfg.ExpandedRadiusM
	geom, err = s.maps.FetchShoreline(ctx, p, radius)
	if err != nil {
		return geom, radius, fmt.Errorf("fetch shoreline: %w", err)
	}
	return geom, radius, nil
}

// newReport fills the solar part of a report.
func (s *SunsetService) newReport(p domain.GeoPoint, date time.Time, tz domain.TimezoneInfo, sunset domain.SolarPosition) *domain.SunsetReport {
	r := &domain.SunsetReport{
		ID:        s.newID(),
		Location:  p,
		Date:      date.Format(time.DateOnly),
		Sunset:    sunset,
		LocalTime: solar.LocalTime(sunset.Time, tz.OffsetHours).Format("15:04"),
		Timezone:  tz,
		Direction: geospatial.DirectionName(sunset.Azimuth),
		CreatedAt: s.now(),
	}
	if rise, err := solar.FindSunrise(date, p.Lat, p.Lon, tz.OffsetHours); err == nil {
		r.Sunrise = &rise.Time
		r.DayLengthHours = sunset.Time.Sub(rise.Time).Hours()
	}
	return r
}

// finish records metrics, caches, persists and publishes a report. Storage
// and publishing failures are logged; the report is still returned.
func (s *SunsetService) finish(ctx context.Context, span trace.Span, r *domain.SunsetReport) {
	metrics.SunsetChecks.WithLabelValues(verdictLabel(r.Verdict), string(r.Source)).Inc()
	span.SetAttributes(
		telemetry.AttrOverWater.Bool(r.Verdict.OverWater),
		telemetry.AttrAzimuth.Float64(r.Sunset.Azimuth),
		telemetry.AttrSource.String(string(r.Source)),
	)

	if s.cache != nil && s.cfg.CacheTTLSeconds > 0 {
		if data, err := json.Marshal(r); err == nil {
			_ = s.cache.Set(ctx, reportKey(r.ID), data, s.cfg.CacheTTLSeconds)
		}
	}
	if s.cfg.PersistReports && s.reports != nil {
		if err := s.reports.Insert(ctx, r); err != nil {
			slog.WarnContext(ctx, "store report failed", "id", r.ID, "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, r); err != nil {
			slog.WarnContext(ctx, "publish report failed", "id", r.ID, "error", err)
		}
	}
}

// GetReport returns a report by id from the cache or the report history.
func (s *SunsetService) GetReport(ctx context.Context, id string) (*domain.SunsetReport, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, reportKey(id)); err == nil {
			var r domain.SunsetReport
			if err := json.Unmarshal(data, &r); err == nil {
				metrics.CacheHits.WithLabelValues("report").Inc()
				return &r, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("report").Inc()
	}
	if s.reports == nil {
		return nil, fmt.Errorf("report %s: %w", id, ErrHistoryDisabled)
	}
	return s.reports.GetByID(ctx, id)
}

// ErrHistoryDisabled is returned when no report repository is configured.
var ErrHistoryDisabled = errors.New("report history is not configured")

// History lists stored reports of a beach, or the latest reports of any
// kind when slug is empty.
func (s *SunsetService) History(ctx context.Context, slug string, limit int) ([]domain.SunsetReport, error) {
	if s.reports == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if slug == "" {
		return s.reports.ListRecent(ctx, limit)
	}
	return s.reports.ListByBeach(ctx, slug, limit)
}

// Archive stores a report received from the event stream.
func (s *SunsetService) Archive(ctx context.Context, r *domain.SunsetReport) error {
	if s.reports == nil {
		return ErrHistoryDisabled
	}
	if err := s.reports.Insert(ctx, r); err != nil {
		return fmt.Errorf("archive report %s: %w", r.ID, err)
	}
	return nil
}

func reportKey(id string) string { return "report:" + id }

func verdictLabel(v domain.VisibilityVerdict) string {
	switch {
	case v.OverWater:
		return "visible"
	case v.BlockingReason == domain.ReasonOutsideView:
		return "outside_view"
	default:
		return "obstructed"
	}
}

func recordNoSunset(err error) {
	var ns *domain.NoSunsetError
	if errors.As(err, &ns) {
		metrics.NoSunsetDays.WithLabelValues(string(ns.Condition)).Inc()
	}
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseCoordinate parses a latitude or longitude query value.
func ParseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, domain.ErrInvalidCoordinates)
	}
	return v, nil
}
