package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cpu-scheduler/internal/playback"
	"cpu-scheduler/internal/report"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/pkg/logger"
)

type simulateOptions struct {
	algorithm string
	file      string
	quantum   int
	levels    []int
	animate   bool
	step      time.Duration
	shareURL  string
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one scheduling algorithm and print its schedule",
		Example: `  cpu-scheduler simulate --algorithm srtf --file processes.csv
  cpu-scheduler simulate --algorithm rr --quantum 3 --file processes.csv --animate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "fcfs, sjf, srtf, priority, rr or mlfq")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "CSV (id,burst,arrival[,priority]) or JSON request file")
	cmd.Flags().IntVarP(&opts.quantum, "quantum", "q", 0, "round robin time quantum (defaults to the configured one)")
	cmd.Flags().IntSliceVar(&opts.levels, "levels", nil, "MLFQ time quantum per round robin level (defaults to the configured ones)")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "replay the schedule one time unit per tick")
	cmd.Flags().DurationVar(&opts.step, "step", 0, "tick duration while animating")
	cmd.Flags().StringVar(&opts.shareURL, "share-url", "", "print a link to the simulation page at this base URL")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSimulate(cmd *cobra.Command, root *rootOptions, opts *simulateOptions) error {
	cfg := root.cfg
	request, err := loadRequest(opts.file)
	if err != nil {
		return err
	}
	if opts.algorithm != "" {
		request.Algorithm, err = requests.ParseAlgorithm(opts.algorithm)
		if err != nil {
			return err
		}
	}
	switch request.Algorithm {
	case requests.RoundRobin:
		if opts.quantum > 0 {
			request.TimeQuantum = requests.IntPtr(opts.quantum)
		} else if request.TimeQuantum == nil {
			request.TimeQuantum = requests.IntPtr(cfg.RoundRobinTimeQuantum)
		}
	case requests.MultilevelFeedbackQueue:
		if len(opts.levels) > 0 {
			request.LevelsTimeQuantum = opts.levels
		} else if len(request.LevelsTimeQuantum) == 0 {
			request.LevelsTimeQuantum = cfg.MultilevelFeedbackQueueLevelsTimeQuantum
		}
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()
	result, err := svc.Simulate(cmd.Context(), request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.shareURL != "" {
		link, err := requests.EncodeURL(opts.shareURL, request)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, link)
	}
	if opts.animate {
		if err := animate(cmd.Context(), out, result, root, opts.step); err != nil {
			return err
		}
	}
	report.Write(out, result)
	return nil
}

func animate(ctx context.Context, out io.Writer, result responses.ScheduleResponse, root *rootOptions, step time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	controller := playback.NewController(playback.Frames(result), root.cfg.Playback)
	if step > 0 {
		controller.SetStepDuration(step)
	}
	logger.Logger(ctx).Debug().Dur("step", controller.StepDuration()).Msg("replaying schedule")

	err := controller.Play(ctx, func(frame playback.Frame) {
		fmt.Fprintln(out, formatFrame(frame))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func formatFrame(frame playback.Frame) string {
	var b strings.Builder
	running := "idle"
	if frame.Running != nil {
		running = fmt.Sprintf("P%d", *frame.Running)
	}
	fmt.Fprintf(&b, "t=%-4d %-5s", frame.Time, running)
	for _, p := range frame.Processes {
		fmt.Fprintf(&b, " | P%d %-9s %3.0f%%", p.ProcessId, p.State, p.Progress)
	}
	return b.String()
}
