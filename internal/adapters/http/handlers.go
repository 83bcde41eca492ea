package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

// queryPoint reads the required lat and lon query parameters.
func queryPoint(c *fiber.Ctx) (domain.GeoPoint, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return domain.GeoPoint{}, fmt.Errorf("lat and lon are required: %w", domain.ErrInvalidCoordinates)
	}
	lat, err := usecases.ParseCoordinate(latStr)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lon, err := usecases.ParseCoordinate(lonStr)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	p := domain.GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("(%g, %g) is outside WGS 84 ranges: %w", lat, lon, domain.ErrInvalidCoordinates)
	}
	return p, nil
}

// queryDate reads the optional date parameter, defaulting to tomorrow (UTC).
func queryDate(c *fiber.Ctx) (time.Time, error) {
	s := c.Query("date")
	if s == "" {
		y, m, d := time.Now().UTC().AddDate(0, 0, 1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return usecases.ParseDate(s)
}

// SunsetHandler checks an arbitrary shore point, inferring its view from
// map geometry.
func SunsetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		date, err := queryDate(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		name := c.Query("name")
		if len(name) > 200 {
			return errBadRequest(c, "name too long (max 200 characters)")
		}

		report, err := deps.Sunset.CheckLocation(c.UserContext(), p, date, name)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(report)
	}
}

// BeachSunsetHandler checks a curated beach.
func BeachSunsetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := domain.NormalizeSlug(c.Params("slug"))
		if slug == "" {
			return errBadRequest(c, "beach slug is required")
		}
		date, err := queryDate(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		report, err := deps.Sunset.CheckBeach(c.UserContext(), slug, date)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(report)
	}
}

// ListBeachesHandler lists or searches curated beaches.
func ListBeachesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if len(q) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		f := ports.BeachFilter{
			Query:      q,
			Country:    c.Query("country"),
			SunsetOnly: c.QueryBool("sunset", false),
			Offset:     c.QueryInt("offset", 0),
			Limit:      c.QueryInt("limit", 50),
		}
		if f.Offset < 0 {
			f.Offset = 0
		}
		if f.Limit <= 0 || f.Limit > 100 {
			f.Limit = 50
		}

		beaches, total, err := deps.Beaches.List(c.UserContext(), f)
		if err != nil {
			return writeError(c, err)
		}

		pg := Pagination{Offset: f.Offset, Limit: f.Limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: beaches, Pagination: pg})
	}
}

// NearbyBeachesHandler returns curated beaches within a radius of a point.
func NearbyBeachesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		radius := c.QueryFloat("radius", 20000)
		if radius <= 0 || radius > 200000 {
			return errBadRequest(c, "radius must be between 1 and 200000 meters")
		}

		beaches, err := deps.Beaches.Nearby(c.UserContext(), p, radius, c.QueryInt("limit", 10))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(beaches)
	}
}

// GetBeachHandler returns one curated beach.
func GetBeachHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "beach slug is required")
		}
		b, err := deps.Beaches.Get(c.UserContext(), slug)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(b)
	}
}

// LocateBeachHandler resolves a free-text place name to a mapped beach.
func LocateBeachHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(q) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		hit, err := deps.Beaches.Locate(c.UserContext(), q)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(hit)
	}
}

// SolarPositionHandler returns the sun's azimuth and altitude at an instant
// (RFC 3339 "time" parameter, default now).
func SolarPositionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		t := time.Now().UTC()
		if s := c.Query("time"); s != "" {
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				return errBadRequest(c, fmt.Sprintf("invalid time %q, use RFC 3339", s))
			}
		} else {
			c.Set("Cache-Control", "no-cache")
		}

		pos, err := deps.Solar.Position(p, t)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(pos)
	}
}

// SolarSunsetHandler runs the sunset solver alone. Without an offset
// parameter the UTC offset is looked up for the location.
func SolarSunsetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		date, err := queryDate(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		var offset *float64
		if c.Query("offset") != "" {
			v := c.QueryFloat("offset", 99)
			if v < -12 || v > 14 {
				return errBadRequest(c, "offset must be between -12 and 14 hours")
			}
			offset = &v
		}

		times, err := deps.Solar.SunTimes(c.UserContext(), p, date, offset)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(times)
	}
}

// ShorelineHandler returns the inferred view window and advisories only.
func ShorelineHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		a, err := deps.Sunset.AnalyzeShoreline(c.UserContext(), p)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(a)
	}
}

// ListReportsHandler lists stored reports, optionally for one beach.
func ListReportsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Query("beach")
		if slug != "" {
			slug = domain.NormalizeSlug(slug)
		}
		reports, err := deps.Sunset.History(c.UserContext(), slug, c.QueryInt("limit", 20))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(reports)
	}
}

// GetReportHandler returns one report by id.
func GetReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "report id is required")
		}
		r, err := deps.Sunset.GetReport(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(r)
	}
}
