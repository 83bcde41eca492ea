package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	loggerKey    ctxKey = "logger"
)

// RequestIDLogMiddleware stores the Fiber request ID and a logger carrying
// it in the user context, so use cases and adapters log with the request ID.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid, ok := c.Locals("requestid").(string)
		if !ok || rid == "" {
			return c.Next()
		}

		reqLogger := slog.Default().With("request_id", rid)
		ctx := context.WithValue(c.UserContext(), requestIDKey, rid)
		ctx = context.WithValue(ctx, loggerKey, reqLogger)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// LoggerFromCtx returns the request-scoped logger, or the default logger.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// RequestID returns the request ID stored by RequestIDLogMiddleware.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}
