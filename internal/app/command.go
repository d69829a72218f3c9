package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oloBion/retip/internal/pkg/pkgconfig"
	"github.com/oloBion/retip/internal/pkg/pkgerror"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":         "log.level",
	"sheet":             "dataset.sheet",
	"test-size":         "dataset.test_size",
	"seed":              "dataset.seed",
	"workers":           "descriptors.workers",
	"elements":          "descriptors.elements",
	"cache-ttl":         "descriptors.cache_ttl",
	"max-failure-ratio": "descriptors.max_failure_ratio",
	"out-dir":           "output.dir",
	"format":            "output.format",
	"strip-descriptors": "output.strip_descriptors",
	"progress":          "output.progress",
	"metrics-file":      "metrics.file",
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	root := NewCommand(stdout, stderr)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return pkgerror.ExitCode(err)
	}
	return 0
}

// NewCommand builds the retip command tree.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "retip",
		Short:         "Assemble retention-time modeling datasets from compound tables",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return pkgerror.NewConfiguration("flags", c.Name(), err.Error())
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "optional YAML configuration file")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("sheet", "", "worksheet to read from XLSX inputs (default first sheet)")

	root.AddCommand(describeCommand(stdout, stderr), buildCommand(stdout, stderr))

	return root
}

func describeCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "describe INPUT",
		Short: "Print the first records and summary statistics of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, stdout, stderr, func(ctx context.Context, a *App) error {
				return a.Describe(ctx, args[0])
			})
		},
	}
}

func buildCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build INPUT...",
		Short: "Compute descriptors, clean and split one or more tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, stdout, stderr, func(ctx context.Context, a *App) error {
				return a.Build(ctx, args)
			})
		},
	}

	f := cmd.Flags()
	f.Float64("test-size", 0.2, "fraction of rows held out for testing, in [0, 1)")
	f.Int64("seed", 0, "split seed (default generated and logged)")
	f.Int("workers", 0, "concurrent descriptor calculations (default number of CPUs)")
	f.StringSlice("elements", nil, "elements counted as n<Element> descriptors")
	f.Duration("cache-ttl", 0, "forget memoized descriptors after this long (0 keeps them for the run)")
	f.Float64("max-failure-ratio", 0, "fail when more than this share of structures cannot be described (0 disables)")
	f.String("out-dir", ".", "directory for output tables")
	f.String("format", "", "output format, csv or xlsx (default same as input)")
	f.Bool("strip-descriptors", false, "write the record table without descriptor columns")
	f.Bool("progress", false, "show a progress bar on stderr")
	f.String("metrics-file", "", "write Prometheus metrics to this file at the end of the run")

	return cmd
}

// run wires configuration from cmd's flags into an App and runs fn on it.
func run(cmd *cobra.Command, stdout, stderr io.Writer, fn func(context.Context, *App) error) error {
	ctx := cmd.Context()

	file, _ := cmd.Flags().GetString("config")
	a, err := New(ctx, pkgconfig.Options{
		File:  file,
		Flags: changedFlags(cmd.Flags()),
	}, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.Stop(ctx)

	if err := fn(ctx, a); err != nil {
		slog.ErrorContext(ctx, "command failed", "command", cmd.Name(), "error", err)
		return err
	}
	return nil
}

// changedFlags binds only flags given on the command line, so that
// environment variables and the config file fill in the rest.
func changedFlags(fs *pflag.FlagSet) map[string]*pflag.Flag {
	out := make(map[string]*pflag.Flag)
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f
		}
	})
	return out
}
