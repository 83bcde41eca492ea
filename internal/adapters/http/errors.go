package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/sundowner/internal/adapters/postgres"
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, inland_location, internal_error, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// NoSunsetResponse is returned with status 200 for dates without a sunset;
// "the sun does not set" is an answer, not a failure.
type NoSunsetResponse struct {
	NoSunset  bool                     `json:"no_sunset"`
	Condition domain.NoSunsetCondition `json:"condition"`
	Date      string                   `json:"date"`
	Message   string                   `json:"message"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// writeError maps a use case error onto a response. Errors without a
// specific mapping are logged and reported as 500.
func writeError(c *fiber.Ctx, err error) error {
	var ns *domain.NoSunsetError
	switch {
	case errors.As(err, &ns):
		return c.JSON(NoSunsetResponse{
			NoSunset:  true,
			Condition: ns.Condition,
			Date:      ns.Date.Format("2006-01-02"),
			Message:   ns.Error(),
		})
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrBeachNotFound),
		errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, postgres.ErrReportNotFound):
		return errNotFound(c, err.Error())
	case errors.Is(err, domain.ErrNoShorelineFound):
		return newError(c, fiber.StatusUnprocessableEntity, "inland_location",
			"no coastline or lake found nearby; the location appears to be inland")
	case errors.Is(err, usecases.ErrHistoryDisabled):
		return newError(c, fiber.StatusServiceUnavailable, "unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return newError(c, fiber.StatusGatewayTimeout, "timeout", "map or timezone provider did not answer in time")
	}
	LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
	return errInternal(c, err.Error())
}
