// Package bootstrap wires adapters and use cases from configuration. Every
// backing service is optional: a missing database falls back to the embedded
// beach catalog, a missing Valkey to an in-process cache, and a missing NATS
// server disables report events.
package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/sundowner/internal/adapters/geonames"
	"github.com/samirrijal/sundowner/internal/adapters/memcache"
	natsadapter "github.com/samirrijal/sundowner/internal/adapters/nats"
	"github.com/samirrijal/sundowner/internal/adapters/overpass"
	"github.com/samirrijal/sundowner/internal/adapters/postgres"
	"github.com/samirrijal/sundowner/internal/adapters/staticdata"
	"github.com/samirrijal/sundowner/internal/adapters/valkey"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/core/usecases"
	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/internal/pkg/retry"
)

// Options selects which backing services to connect to.
type Options struct {
	Database bool
	Valkey   bool
	NATS     bool
	// PersistReports stores reports directly instead of leaving that to
	// the archiver. Reports are always stored directly when a database is
	// connected but NATS is not.
	PersistReports bool
	// CachePrefix namespaces Valkey keys per process kind.
	CachePrefix string
}

// Stack is the wired service graph of one process.
type Stack struct {
	Sunset  *usecases.SunsetService
	Solar   *usecases.SolarService
	Beaches *usecases.BeachService

	Maps      *overpass.Client
	Timezones *geonames.Client
	Catalog   *staticdata.Catalog

	// Optional connections; nil when not configured or unreachable.
	DB        *postgres.DB
	Cache     *valkey.Cache
	Publisher *natsadapter.Publisher
	NATS      *nats.Conn

	closers []func()
}

// Build connects the selected services and assembles the use cases.
// Failures to reach optional services are logged, not returned.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*Stack, error) {
	s := &Stack{}

	catalog, err := staticdata.Load()
	if err != nil {
		return nil, err
	}
	s.Catalog = catalog

	overpassPolicy := retry.Overpass(overpass.Retryable)
	overpassPolicy.MaxAttempts = cfg.Overpass.MaxAttempts
	s.Maps = overpass.New(overpass.Options{
		OverpassURL:  cfg.Overpass.URL,
		NominatimURL: cfg.Nominatim.URL,
		UserAgent:    cfg.Overpass.UserAgent,
		HTTPClient:   &http.Client{Timeout: 3 * time.Minute},
		Overpass:     &overpassPolicy,
	})
	s.Timezones = geonames.New(cfg.GeoNames.URL, cfg.GeoNames.Username, nil)

	var beaches ports.BeachRepository = catalog
	var reports ports.ReportRepository
	if opts.Database {
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			slog.Warn("database unavailable, using embedded beach catalog", "error", err)
		} else {
			s.DB = db
			s.closers = append(s.closers, db.Close)
			beaches = postgres.NewBeachRepo(db)
			reports = postgres.NewReportRepo(db)
		}
	}

	var cache ports.CacheService
	if opts.Valkey {
		c, err := valkey.New(cfg.Valkey.Addr, opts.CachePrefix)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err = c.Ping(pingCtx)
			cancel()
			if err != nil {
				c.Close()
			}
		}
		if err != nil {
			slog.Warn("valkey unavailable, using in-process cache", "error", err)
		} else {
			s.Cache = c
			s.closers = append(s.closers, c.Close)
			cache = c
		}
	}
	if cache == nil {
		cache = memcache.New(4096, 24*time.Hour)
	}

	var publisher ports.EventPublisher
	if opts.NATS {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, report events disabled", "error", err)
		} else {
			s.Publisher = pub
			s.closers = append(s.closers, pub.Close)
			publisher = pub
		}
		// Raw connection for the WebSocket relay.
		nc, err := natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats relay connection unavailable", "error", err)
		} else {
			s.NATS = nc
			s.closers = append(s.closers, nc.Close)
		}
	}

	s.Sunset = usecases.NewSunsetService(usecases.SunsetConfig{
		RadiusM:         cfg.Analysis.RadiusM,
		ExpandedRadiusM: cfg.Analysis.ExpandedRadiusM,
		FeatureRadiusM:  cfg.Analysis.FeatureRadiusM,
		CacheTTLSeconds: cfg.Analysis.CacheTTLSeconds,
		PersistReports:  reports != nil && (opts.PersistReports || publisher == nil),
	}, usecases.SunsetDeps{
		Maps:      s.Maps,
		Timezones: s.Timezones,
		Beaches:   beaches,
		Reports:   reports,
		Publisher: publisher,
		Cache:     cache,
	})
	s.Solar = usecases.NewSolarService(s.Timezones)
	s.Beaches = usecases.NewBeachService(beaches, s.Maps, s.Maps, cache)

	return s, nil
}

// Close releases connections in reverse order of opening.
func (s *Stack) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
