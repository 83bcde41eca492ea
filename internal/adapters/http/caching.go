package http

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control on GET responses that have none.
// A sunset verdict for a given place and date never changes, so checks are
// cached as long as the curated data.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || len(c.Response().Header.Peek(fiber.HeaderCacheControl)) > 0 {
			return err
		}
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			c.Set("Cache-Control", "no-store")
			return err
		}

		path := c.Path()
		var ttl string
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"
		case path == "/metrics", strings.HasPrefix(path, "/v1/reports"):
			ttl = "no-cache"
		case strings.HasSuffix(path, "/sunset"), path == "/v1/shoreline":
			ttl = "public, max-age=3600"
		case strings.HasPrefix(path, "/v1/beaches/locate"):
			ttl = "public, max-age=86400"
		case strings.HasPrefix(path, "/v1/beaches"):
			ttl = "public, max-age=3600"
		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}
		return err
	}
}

// ETagMiddleware sets a weak ETag on cacheable 200 GET responses and
// answers 304 when the client already holds it.
func ETagMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Method() != fiber.MethodGet || c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		if strings.Contains(string(c.Response().Header.Peek(fiber.HeaderCacheControl)), "no-cache") {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		h := sha256.Sum256(body)
		etag := `W/"` + hex.EncodeToString(h[:8]) + `"`
		c.Set(fiber.HeaderETag, etag)

		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			c.Status(fiber.StatusNotModified)
			c.Response().ResetBody()
		}
		return nil
	}
}
