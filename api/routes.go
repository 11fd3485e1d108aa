package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cpu-scheduler/pkg/logger"
)

// NewApp builds the fiber application with every route mounted.
func NewApp(handler SchedulerHandler, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(requestLogger)

	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/simulate", handler.Simulate)
		v1.Get("/simulate", handler.SimulateFromURL)
		v1.Post("/all", handler.AllAlgorithms)
	}

	return app
}

func LogEndpoints(ctx context.Context) {
	log := logger.Logger(ctx)
	log.Info().Msg("Endpoints:")
	log.Info().Msg("  POST /api/v1/{fcfs,sjf,srtf,priority,rr,mlfq} - Simulate one algorithm")
	log.Info().Msg("  POST /api/v1/simulate                         - Simulate, algorithm in body")
	log.Info().Msg("  GET  /api/v1/simulate?algorithm=&data=        - Simulate from a page URL")
	log.Info().Msg("  POST /api/v1/all                              - Compare all algorithms")
	log.Info().Msg("  GET  /metrics                                 - Prometheus metrics")
	log.Info().Msg("  GET  /health                                  - Health check")
}
