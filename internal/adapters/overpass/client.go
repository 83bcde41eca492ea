// Package overpass fetches shoreline geometry and landforms from the
// OpenStreetMap Overpass API, and geocodes places through Nominatim.
package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/pkg/metrics"
	"github.com/samirrijal/sundowner/internal/pkg/retry"
)

// DefaultUserAgent identifies requests to the public OSM services.
const DefaultUserAgent = "SunsetVisibilityCalculator/1.0"

// StatusError is a non-200 answer from an upstream service.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Service, e.StatusCode)
}

// Retryable reports whether err is a rate limit, gateway failure, timeout or
// connection problem.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

// rateLimited reports whether err is an HTTP 429 or a connection failure,
// the only errors Nominatim calls retry on.
func rateLimited(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests
	}
	return Retryable(err)
}

// Options configures a Client.
type Options struct {
	OverpassURL  string
	NominatimURL string
	UserAgent    string
	HTTPClient   *http.Client
	// Overpass and Nominatim override the default retry policies.
	Overpass  *retry.Policy
	Nominatim *retry.Policy
}

// Client implements ports.MapDataProvider and ports.Geocoder.
type Client struct {
	http         *http.Client
	overpassURL  string
	nominatimURL string
	userAgent    string
	overpass     retry.Policy
	nominatim    retry.Policy
}

var (
	_ ports.MapDataProvider = (*Client)(nil)
	_ ports.Geocoder        = (*Client)(nil)
)

// New builds a client.
func New(opts Options) *Client {
	c := &Client{
		http:         opts.HTTPClient,
		overpassURL:  opts.OverpassURL,
		nominatimURL: opts.NominatimURL,
		userAgent:    opts.UserAgent,
		overpass:     retry.Overpass(Retryable),
		nominatim:    retry.Nominatim(rateLimited),
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 3 * time.Minute}
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if opts.Overpass != nil {
		c.overpass = *opts.Overpass
	}
	if opts.Nominatim != nil {
		c.nominatim = *opts.Nominatim
	}
	return c
}

// element is one entry of an Overpass JSON response.
type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Nodes  []int64           `json:"nodes"`
	Tags   map[string]string `json:"tags"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
}

type response struct {
	Elements []element `json:"elements"`
}

// query runs an Overpass QL query under the Overpass retry policy.
func (c *Client) query(ctx context.Context, operation, ql string) (*response, error) {
	start := time.Now()
	var out response
	err := c.overpass.Do(ctx, func(ctx context.Context) error {
		form := url.Values{"data": {ql}}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(form.Encode()))
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", c.userAgent)
		return c.doJSON(req, "overpass", &out)
	})
	metrics.ObserveProvider("overpass", operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("overpass %s: %w", operation, err)
	}
	return &out, nil
}

// doJSON sends req and decodes a 200 response body into v.
func (c *Client) doJSON(req *http.Request, service string, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Service: service, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return retry.Permanent(fmt.Errorf("decode %s response: %w", service, err))
	}
	return nil
}
