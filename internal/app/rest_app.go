package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"cpu-scheduler/api"
	"cpu-scheduler/config"
	"cpu-scheduler/pkg/logger"
)

func NewRestApp(cfg *config.SchedulerConfig) *fx.App {
	return fx.New(
		HandlerModule(cfg),
		fx.NopLogger,
		fx.Invoke(StartRestApp),
	)
}

func StartRestApp(lc fx.Lifecycle, cfg *config.SchedulerConfig, app *fiber.App) error {
	addr := fmt.Sprintf(":%d", cfg.Port)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			api.LogEndpoints(ctx)
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on port %s", addr)
				if err := app.Listen(addr); err != nil {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", addr)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return app.ShutdownWithContext(ctx)
		},
	})

	return nil
}
