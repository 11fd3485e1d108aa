package cmd

import (
	"github.com/spf13/cobra"

	"cpu-scheduler/internal/app"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				root.cfg.Port = port
			}
			fxApp := app.NewRestApp(root.cfg)
			if err := fxApp.Err(); err != nil {
				return err
			}
			fxApp.Run()
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides the configured one)")
	return cmd
}
