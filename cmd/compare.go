package cmd

import (
	"github.com/spf13/cobra"

	"cpu-scheduler/internal/report"
	"cpu-scheduler/internal/service"
)

func newCompareCmd(root *rootOptions) *cobra.Command {
	var (
		file    string
		quantum int
		levels  []int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every applicable algorithm on the same processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := loadRequest(file)
			if err != nil {
				return err
			}
			opts := service.CompareOptions{
				TimeQuantum:       root.cfg.RoundRobinTimeQuantum,
				LevelsTimeQuantum: root.cfg.MultilevelFeedbackQueueLevelsTimeQuantum,
			}
			if quantum > 0 {
				opts.TimeQuantum = quantum
			}
			if len(levels) > 0 {
				opts.LevelsTimeQuantum = levels
			}

			svc, err := newService(root.cfg)
			if err != nil {
				return err
			}
			defer svc.Close()
			compare, err := svc.Compare(cmd.Context(), request.Processes, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose {
				for _, name := range compare.Algorithms {
					report.Write(out, compare.Results[name])
				}
			}
			report.WriteComparison(out, compare)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV (id,burst,arrival[,priority]) or JSON request file")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "round robin time quantum (defaults to the configured one)")
	cmd.Flags().IntSliceVar(&levels, "levels", nil, "MLFQ time quantum per round robin level (defaults to the configured ones)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print every individual schedule")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
