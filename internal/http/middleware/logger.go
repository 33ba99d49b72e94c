package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger is a middleware that logs each HTTP request as one structured line.
//
// A child of base carrying request_id is attached to the request's user
// context before the handler runs, so handlers log through zerolog.Ctx.
// The line written afterwards has:
// - request_id
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - trace_id, when the request is traced
// - error, when the handler failed
func Logger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqLog := base.With().Str("request_id", RequestIDFromCtx(c)).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()

		// The global error handler has not written the response yet when an
		// error comes back up the chain, so derive the status from the error.
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = reqLog.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = reqLog.Warn().Err(err)
		default:
			ev = reqLog.Info()
		}

		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			ev = ev.Str("trace_id", sc.TraceID().String())
		}

		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("request")

		return err
	}
}

func statusFromError(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
