package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/app"
	"cpu-scheduler/internal/service"
	"cpu-scheduler/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.SchedulerConfig
}

// NewRootCmd assembles the command tree. Each call returns an independent
// tree so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "cpu-scheduler",
		Short:         "Simulate and compare single-CPU scheduling algorithms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			logger.InitLoggerWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the configuration file (defaults to ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newSimulateCmd(opts),
		newCompareCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

// loadConfig returns a private copy so flags can override fields without
// touching the shared default config.
func loadConfig(path string) (*config.SchedulerConfig, error) {
	if path != "" {
		return config.LoadSchedulerConfig(path)
	}
	shared, err := config.GetSchedulerConfig()
	if err != nil {
		return nil, err
	}
	cfg := *shared
	return &cfg, nil
}

// newService builds the service without starting the fx app; callers Close it.
func newService(cfg *config.SchedulerConfig) (*service.Service, error) {
	var svc *service.Service
	fxApp := fx.New(
		app.ServiceModule(cfg),
		fx.NopLogger,
		fx.Populate(&svc),
	)
	if err := fxApp.Err(); err != nil {
		return nil, err
	}
	return svc, nil
}
