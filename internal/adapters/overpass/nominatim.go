package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/metrics"
	"github.com/samirrijal/sundowner/internal/pkg/retry"
)

type place struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

func (p place) point() (domain.GeoPoint, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

func (p place) isBeach() bool {
	t := strings.ToLower(p.Type)
	return t == "beach" || (strings.ToLower(p.Class) == "natural" && strings.Contains(t, "beach"))
}

func (c *Client) search(ctx context.Context, operation string, params url.Values) ([]place, error) {
	params.Set("format", "json")
	u := c.nominatimURL + "?" + params.Encode()

	start := time.Now()
	var out []place
	err := c.nominatim.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		out = nil
		return c.doJSON(req, "nominatim", &out)
	})
	metrics.ObserveProvider("nominatim", operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("nominatim %s: %w", operation, err)
	}
	return out, nil
}

// Geocode resolves a free-text query to its best match.
func (c *Client) Geocode(ctx context.Context, query string) (domain.BeachHit, error) {
	places, err := c.search(ctx, "geocode", url.Values{"q": {query}, "limit": {"1"}})
	if err != nil {
		return domain.BeachHit{}, err
	}
	if len(places) == 0 {
		return domain.BeachHit{}, fmt.Errorf("%q: %w", query, domain.ErrLocationNotFound)
	}

	loc, err := places[0].point()
	if err != nil {
		return domain.BeachHit{}, err
	}
	display := places[0].DisplayName
	if display == "" {
		display = query
	}
	return domain.BeachHit{Name: query, DisplayName: display, Location: loc}, nil
}

// SearchBeaches returns places named like name that are tagged as beaches.
func (c *Client) SearchBeaches(ctx context.Context, name string) ([]domain.BeachHit, error) {
	places, err := c.search(ctx, "search_beaches", url.Values{
		"q":           {name},
		"limit":       {"10"},
		"featuretype": {"natural"},
	})
	if err != nil {
		return nil, err
	}

	var out []domain.BeachHit
	for _, p := range places {
		if !p.isBeach() {
			continue
		}
		loc, err := p.point()
		if err != nil {
			continue
		}
		out = append(out, domain.BeachHit{Name: p.DisplayName, DisplayName: p.DisplayName, Location: loc})
	}
	return out, nil
}
