// Package geonames resolves the UTC offset at a coordinate using the GeoNames
// timezone web service.
package geonames

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/pkg/metrics"
	"github.com/samirrijal/sundowner/internal/pkg/retry"
)

const (
	SourceGeoNames  = "geonames"
	SourceEstimated = "estimated"
)

// Status codes GeoNames uses for bad credentials and exhausted credits.
// Retrying them does not help.
var fatalCodes = map[int]bool{10: true, 18: true, 19: true}

// APIError is an error reported in the GeoNames response body.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("geonames: %s (code %d)", e.Message, e.Code)
}

// StatusError is a non-200 HTTP answer.
type StatusError struct{ StatusCode int }

func (e *StatusError) Error() string {
	return fmt.Sprintf("geonames: unexpected status %d", e.StatusCode)
}

func retryable(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return !fatalCodes[ae.Code]
	}
	return true
}

// Client implements ports.TimezoneProvider. When no username is configured
// or the service keeps failing, Lookup falls back to Estimate.
type Client struct {
	http     *http.Client
	baseURL  string
	username string
	policy   retry.Policy
}

var _ ports.TimezoneProvider = (*Client)(nil)

// New builds a client. A nil httpClient uses a client with a 30s timeout.
func New(baseURL, username string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		http:     httpClient,
		baseURL:  baseURL,
		username: username,
		policy:   retry.GeoNames(retryable),
	}
}

// WithPolicy replaces the retry policy, e.g. to shorten waits in tests.
func (c *Client) WithPolicy(p retry.Policy) *Client {
	p.Retryable = retryable
	c.policy = p
	return c
}

// Estimate derives the offset from longitude alone, one hour per 15°.
func Estimate(p domain.GeoPoint) domain.TimezoneInfo {
	return domain.TimezoneInfo{
		OffsetHours: math.Round(p.Lon / 15),
		Source:      SourceEstimated,
	}
}

type timezoneResponse struct {
	DSTOffset  *float64 `json:"dstOffset"`
	GMTOffset  *float64 `json:"gmtOffset"`
	TimezoneID string   `json:"timezoneId"`
	Status     *struct {
		Message string `json:"message"`
		Value   int    `json:"value"`
	} `json:"status"`
}

// Lookup returns the offset in force at p. It never fails on provider
// errors; those are logged and the longitude estimate is returned instead.
func (c *Client) Lookup(ctx context.Context, p domain.GeoPoint) (domain.TimezoneInfo, error) {
	if !p.Valid() {
		return domain.TimezoneInfo{}, domain.ErrInvalidCoordinates
	}
	if c.username == "" {
		return Estimate(p), nil
	}

	info, err := c.fetch(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return domain.TimezoneInfo{}, ctx.Err()
		}
		slog.WarnContext(ctx, "timezone lookup failed, estimating from longitude",
			"lat", p.Lat, "lon", p.Lon, "error", err)
		return Estimate(p), nil
	}
	return info, nil
}

func (c *Client) fetch(ctx context.Context, p domain.GeoPoint) (domain.TimezoneInfo, error) {
	q := url.Values{
		"lat":      {strconv.FormatFloat(p.Lat, 'f', -1, 64)},
		"lng":      {strconv.FormatFloat(p.Lon, 'f', -1, 64)},
		"username": {c.username},
	}
	u := c.baseURL + "?" + q.Encode()

	start := time.Now()
	var info domain.TimezoneInfo
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			return &StatusError{StatusCode: resp.StatusCode}
		}

		var body timezoneResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return retry.Permanent(fmt.Errorf("decode geonames response: %w", err))
		}
		if body.Status != nil {
			return &APIError{Code: body.Status.Value, Message: body.Status.Message}
		}

		switch {
		case body.DSTOffset != nil:
			info.OffsetHours = *body.DSTOffset
		case body.GMTOffset != nil:
			info.OffsetHours = *body.GMTOffset
		default:
			return retry.Permanent(errors.New("geonames: response carries no offset"))
		}
		info.ID = body.TimezoneID
		info.Source = SourceGeoNames
		return nil
	})
	metrics.ObserveProvider("geonames", "timezone", start, err)
	return info, err
}
