package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/sundowner/internal/pkg/metrics"
)

// requestTimeout bounds handlers that call map or timezone providers,
// retries included.
const requestTimeout = 90 * time.Second

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Map providers are shared public services; keep clients polite.
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited",
				"too many requests, please try again later")
		},
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	v1.Get("/sunset", timeout.NewWithContext(SunsetHandler(deps), requestTimeout))
	v1.Get("/shoreline", timeout.NewWithContext(ShorelineHandler(deps), requestTimeout))
	v1.Get("/beaches", ListBeachesHandler(deps))
	v1.Get("/beaches/nearby", NearbyBeachesHandler(deps))
	v1.Get("/beaches/locate", timeout.NewWithContext(LocateBeachHandler(deps), requestTimeout))
	v1.Get("/beaches/:slug", GetBeachHandler(deps))
	v1.Get("/beaches/:slug/sunset", BeachSunsetHandler(deps))
	v1.Get("/solar/position", SolarPositionHandler(deps))
	v1.Get("/solar/sunset", timeout.NewWithContext(SolarSunsetHandler(deps), requestTimeout))
	v1.Get("/reports", timeout.NewWithContext(ListReportsHandler(deps), 15*time.Second))
	v1.Get("/reports/:id", timeout.NewWithContext(GetReportHandler(deps), 15*time.Second))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
