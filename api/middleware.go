package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"cpu-scheduler/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and attaches a request scoped
// logger to the user context.
func requestLogger(ctx *fiber.Ctx) error {
	start := time.Now()
	reqID := ctx.Get(requestIDHeader)
	if reqID == "" {
		reqID = xid.New().String()
	}
	ctx.Set(requestIDHeader, reqID)

	log := logger.Logger(ctx.UserContext()).With().
		Str("request_id", reqID).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Logger()
	ctx.SetUserContext(log.WithContext(ctx.UserContext()))
	log.Debug().Msg("access log")

	err := ctx.Next()

	status := ctx.Response().StatusCode()
	var event *zerolog.Event
	switch {
	case status >= 500:
		event = log.Error()
	case status >= 400:
		event = log.Warn()
	default:
		event = log.Info()
	}
	event.Int("status", status).Dur("duration", time.Since(start)).Msg("response log")
	return err
}
