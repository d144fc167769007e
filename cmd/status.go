package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"perc/internal/config"
	"perc/internal/status"
)

// Rendering modes accepted by --render.
const (
	renderAuto  = "auto"
	renderPango = "pango"
	renderTerm  = "term"
)

var (
	renderMode string
	warnAt     int
	critAt     int
)

func renderer() (status.Renderer, error) {
	switch renderMode {
	case renderPango:
		return status.NewPango(cfg), nil
	case renderTerm:
		return status.Term{}, nil
	case renderAuto:
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return status.Term{}, nil
		}
		return status.NewPango(cfg), nil
	default:
		return nil, errors.Errorf("unknown render mode %q (want auto, pango or term)", renderMode)
	}
}

// thresholds returns the configured band boundaries of metric, overridden by
// --warn/--crit when given on the command line.
func thresholds(cmd *cobra.Command, metric string) config.Thresholds {
	t := cfg.Threshold(metric)
	if cmd.Flags().Changed("warn") {
		t.Warn = warnAt
	}
	if cmd.Flags().Changed("crit") {
		t.Crit = critAt
	}
	return t
}

// snippetCmd builds a status subcommand printing the snippet returned by gather.
func snippetCmd(use, short string, gather func(ctx context.Context, cmd *cobra.Command) (status.Snippet, error)) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := renderer()
			if err != nil {
				return err
			}
			s, err := gather(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Render(s))
			return nil
		},
	}
	c.Flags().IntVar(&warnAt, "warn", 0, "Override the warning threshold")
	c.Flags().IntVar(&critAt, "crit", 0, "Override the critical threshold")
	return c
}

var memCmd = snippetCmd("mem", "Print memory load", func(ctx context.Context, cmd *cobra.Command) (status.Snippet, error) {
	return status.GatherMemory(ctx, source, thresholds(cmd, config.MetricMemory))
})

var cpuCmd = snippetCmd("cpu", "Print processor load sampled over one second", func(ctx context.Context, cmd *cobra.Command) (status.Snippet, error) {
	return status.GatherCPU(ctx, source, thresholds(cmd, config.MetricCPU))
})

var volumeCmd = snippetCmd("volume", "Print output device and volume", func(ctx context.Context, cmd *cobra.Command) (status.Snippet, error) {
	return status.GatherVolume(ctx, source, thresholds(cmd, config.MetricVolume))
})

var batteryCmd = snippetCmd("battery", "Print battery charge and remaining time", func(ctx context.Context, cmd *cobra.Command) (status.Snippet, error) {
	return status.GatherBattery(ctx, source, thresholds(cmd, config.MetricBattery))
})

var diskPath string

var diskCmd = snippetCmd("disk", "Print disk usage", func(ctx context.Context, cmd *cobra.Command) (status.Snippet, error) {
	path := diskPath
	if path == "" {
		path = cfg.Disk().Path
	}
	return status.GatherDisk(ctx, source, path, thresholds(cmd, config.MetricDisk))
})

var keyboardCmd = &cobra.Command{
	Use:     "keyboard",
	Aliases: []string{"kbd"},
	Short:   "Print the active keyboard layout",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		s, err := status.GatherKeyboard(cmd.Context(), source, cfg.Keyboard().Home)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.Render(s))
		return nil
	},
}

// clockCmd prints the current time using a strftime layout argument.
func clockCmd(use, short, layout string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [format]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := layout
			if len(args) == 1 {
				f = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), status.Clock(f, source.Now()))
			return nil
		},
	}
}

var (
	timeCmd = clockCmd("time", "Print the wall-clock time", "%H:%M")
	dateCmd = clockCmd("date", "Print the date", "%Y-%m-%d")
)

func init() {
	rootCmd.PersistentFlags().StringVar(&renderMode, "render", renderAuto, "Snippet rendering: auto, pango or term")
	diskCmd.Flags().StringVar(&diskPath, "path", "", "Mount point to report on (default from config)")

	rootCmd.AddCommand(timeCmd, dateCmd, memCmd, cpuCmd, volumeCmd, batteryCmd, diskCmd, keyboardCmd)
}
