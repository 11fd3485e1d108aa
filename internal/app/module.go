package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"cpu-scheduler/api"
	"cpu-scheduler/config"
	"cpu-scheduler/internal/metrics"
	"cpu-scheduler/internal/service"
)

func ConfigModule(cfg *config.SchedulerConfig) fx.Option {
	return fx.Options(
		fx.Provide(func() *config.SchedulerConfig {
			return cfg
		}),
	)
}

// MetricsModule provides a private registry, exposed both for registration
// and for the /metrics endpoint.
func MetricsModule() fx.Option {
	return fx.Options(
		fx.Provide(prometheus.NewRegistry),
		fx.Provide(func(registry *prometheus.Registry) prometheus.Registerer {
			return registry
		}),
		fx.Provide(func(registry *prometheus.Registry) prometheus.Gatherer {
			return registry
		}),
		fx.Provide(metrics.NewCollector),
	)
}

// ServiceModule creates an Fx module that provides the simulation service, return *service.Service
func ServiceModule(cfg *config.SchedulerConfig) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		MetricsModule(),
		fx.Provide(NewService),
	)
}

// HandlerModule creates an Fx module that provides the fiber application, return *fiber.App
func HandlerModule(cfg *config.SchedulerConfig) fx.Option {
	return fx.Options(
		ServiceModule(cfg),
		fx.Provide(fx.Annotate(api.NewSchedulerHandlerImpl, fx.As(new(api.SchedulerHandler)))),
		fx.Provide(func(handler api.SchedulerHandler, gatherer prometheus.Gatherer) *fiber.App {
			return api.NewApp(handler, gatherer)
		}),
	)
}

// NewService stops the service's cache janitor with the application.
func NewService(lc fx.Lifecycle, cfg *config.SchedulerConfig, collector *metrics.Collector) *service.Service {
	svc := service.NewService(cfg, collector)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			svc.Close()
			return nil
		},
	})
	return svc
}
