package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/pkg/pkglog"
	"github.com/oloBion/retip/internal/retip/entity"
	"github.com/oloBion/retip/internal/retip/tableio"
	"github.com/oloBion/retip/internal/retip/usecase"
)

const headRows = 5

func (a *App) dependency() usecase.Dependency {
	return usecase.Dependency{
		Parser:     a.parser,
		Calculator: a.calculator,
		Store:      a.memo,
		Metrics:    a.metrics,
		Seeds:      a.seeds,
	}
}

func (a *App) pipelineConfig() usecase.Config {
	cfg := usecase.Config{
		TestSize:        a.config.GetFloat("dataset.test_size"),
		Workers:         int(a.config.GetInt("descriptors.workers")),
		MaxFailureRatio: a.config.GetFloat("descriptors.max_failure_ratio"),
	}
	if a.config.IsSet("dataset.seed") {
		seed := a.config.GetInt("dataset.seed")
		cfg.Seed = &seed
	}
	return cfg
}

// Describe prints the first records and summary statistics of input.
func (a *App) Describe(ctx context.Context, input string) error {
	ctx = pkglog.SetRunID(ctx, a.uuid.Generate())

	p, err := usecase.Open(a.dependency(), usecase.Config{}, input, a.config.GetString("dataset.sheet"))
	if err != nil {
		return err
	}

	summary, err := p.Describe()
	if err != nil {
		return pkgerror.NewServer(err)
	}
	slog.DebugContext(ctx, "described input", "input", input, "rows", summary.Rows)

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)

	head := p.Head(headRows)
	fmt.Fprintln(w, strings.Join(head.Columns(), "\t"))
	for _, row := range head.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	fmt.Fprintf(w, "\n%d rows x %d columns\n\n", summary.Rows, summary.Columns)

	fmt.Fprintln(w, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	for _, s := range summary.Stats {
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max)
	}

	if err := w.Flush(); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}

// Build assembles and writes the dataset of every input in turn and stops
// at the first failure. All inputs share the descriptor memo.
func (a *App) Build(ctx context.Context, inputs []string) error {
	cfg := a.pipelineConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	format := a.config.GetString("output.format")
	if format != "" {
		if _, err := tableio.ParseFormat(format); err != nil {
			return err
		}
	}

	for _, input := range inputs {
		if err := a.buildOne(ctx, cfg, input, format); err != nil {
			return err
		}
	}

	if file := a.config.GetString("metrics.file"); file != "" {
		if err := a.metrics.WriteFile(file); err != nil {
			return pkgerror.NewServer(err)
		}
		slog.InfoContext(ctx, "metrics written", "file", file)
	}

	return nil
}

func (a *App) buildOne(ctx context.Context, cfg usecase.Config, input, format string) error {
	ctx = pkglog.SetRunID(ctx, a.uuid.Generate())
	slog.InfoContext(ctx, "building dataset", "input", input)

	ext := strings.TrimPrefix(filepath.Ext(input), ".")
	if format != "" {
		ext = format
	}

	dep := a.dependency()
	if a.config.GetBool("output.progress") {
		dep.Tracker = newProgressTracker(a.stderr, filepath.Base(input))
	}

	p, err := usecase.Open(dep, cfg, input, a.config.GetString("dataset.sheet"))
	if err != nil {
		return err
	}
	if err := p.Build(ctx); err != nil {
		return err
	}

	train, err := p.TrainingData(ctx)
	if err != nil {
		return err
	}
	test, err := p.TestData(ctx)
	if err != nil {
		return err
	}

	dir := a.config.GetString("output.dir")
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	out := func(kind string) string {
		return filepath.Join(dir, fmt.Sprintf("%s.%s.%s", base, kind, strings.ToLower(ext)))
	}

	if err := p.Save(out("descriptors"), !a.config.GetBool("output.strip_descriptors")); err != nil {
		return err
	}
	for kind, t := range map[string]*entity.Table{"train": train, "test": test} {
		if err := tableio.Write(out(kind), t); err != nil {
			return err
		}
	}

	report := p.Report()
	slog.InfoContext(ctx, "dataset written", "input", input, "dir", dir)
	fmt.Fprintf(a.stdout, "%s: %d rows, %d columns (%d rows and %d columns dropped), train %d, test %d, seed %d\n",
		input, report.Rows, report.Columns, report.DroppedRows, len(report.DroppedColumns),
		report.TrainRows, report.TestRows, report.Seed)

	return nil
}
