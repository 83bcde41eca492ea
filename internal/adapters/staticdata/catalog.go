// Package staticdata serves the curated beach dataset embedded in the binary.
package staticdata

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

//go:embed beaches.yaml
var beachesYAML []byte

// Catalog implements ports.BeachRepository over an in-memory beach set.
// It preserves the dataset's order for listings.
type Catalog struct {
	mu      sync.RWMutex
	order   []string
	beaches map[string]domain.Beach
}

var _ ports.BeachRepository = (*Catalog)(nil)

// Load parses the embedded dataset.
func Load() (*Catalog, error) {
	return Parse(beachesYAML)
}

// Parse builds a catalog from YAML-encoded beaches.
func Parse(data []byte) (*Catalog, error) {
	var list []domain.Beach
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse beaches: %w", err)
	}

	c := &Catalog{beaches: make(map[string]domain.Beach, len(list))}
	for i := range list {
		b := list[i]
		if b.Slug == "" {
			return nil, fmt.Errorf("beach %d (%q): missing slug", i, b.Name)
		}
		b.Slug = domain.NormalizeSlug(b.Slug)
		if _, dup := c.beaches[b.Slug]; dup {
			return nil, fmt.Errorf("duplicate beach slug %q", b.Slug)
		}
		if !b.Location.Valid() {
			return nil, fmt.Errorf("beach %q: %w", b.Slug, domain.ErrInvalidCoordinates)
		}
		c.order = append(c.order, b.Slug)
		c.beaches[b.Slug] = b
	}
	return c, nil
}

// All returns every beach in dataset order.
func (c *Catalog) All() []domain.Beach {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Beach, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.beaches[slug])
	}
	return out
}

// Upsert adds or replaces a beach in memory.
func (c *Catalog) Upsert(_ context.Context, b *domain.Beach) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(*b)
	return nil
}

// UpsertBatch adds or replaces several beaches in memory.
func (c *Catalog) UpsertBatch(_ context.Context, beaches []domain.Beach) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range beaches {
		c.put(b)
	}
	return nil
}

func (c *Catalog) put(b domain.Beach) {
	b.Slug = domain.NormalizeSlug(b.Slug)
	if _, ok := c.beaches[b.Slug]; !ok {
		c.order = append(c.order, b.Slug)
	}
	c.beaches[b.Slug] = b
}

// GetBySlug returns the beach for an identifier after slug normalisation.
func (c *Catalog) GetBySlug(_ context.Context, slug string) (*domain.Beach, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.beaches[domain.NormalizeSlug(slug)]
	if !ok {
		return nil, domain.ErrBeachNotFound
	}
	return &b, nil
}

// List returns the filtered page of beaches and the total number of matches.
func (c *Catalog) List(_ context.Context, f ports.BeachFilter) ([]domain.Beach, int, error) {
	var matched []domain.Beach
	for _, b := range c.All() {
		if MatchesFilter(&b, f) {
			matched = append(matched, b)
		}
	}

	total := len(matched)
	if f.Offset >= total {
		return []domain.Beach{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

// FindNearby returns beaches within radius of p, nearest first.
func (c *Catalog) FindNearby(_ context.Context, p domain.GeoPoint, radiusMeters float64, limit int) ([]domain.Beach, error) {
	var out []domain.Beach
	for _, b := range c.All() {
		d := geospatial.Haversine(p, b.Location)
		if d > radiusMeters {
			continue
		}
		dist := math.Round(d)
		b.Distance = &dist
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].Distance < *out[j].Distance })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MatchesFilter applies a BeachFilter's predicates, ignoring paging.
func MatchesFilter(b *domain.Beach, f ports.BeachFilter) bool {
	if f.Query != "" && !b.Matches(f.Query) {
		return false
	}
	if f.Country != "" && !containsFold(b.Country, f.Country) {
		return false
	}
	if f.SunsetOnly && !IsSunsetBeach(b) {
		return false
	}
	return true
}

// IsSunsetBeach reports whether the beach's view range covers due west or
// west-southwest, where most sunsets fall.
func IsSunsetBeach(b *domain.Beach) bool {
	for _, az := range domain.SunsetProbeAzimuths {
		if geospatial.InRange(az, b.OceanViewStart, b.OceanViewEnd) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
