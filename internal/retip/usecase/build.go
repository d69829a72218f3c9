package usecase

import (
	"context"
	"log/slog"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
)

// Build selects RT and the descriptors, applies the missing-value policy
// and splits the result. It is a no-op once built; see Invalidate.
//
// Rows with every descriptor missing are dropped first. Then every column
// that still holds a missing value is dropped, RT included.
func (p *Pipeline) Build(ctx context.Context) error {
	if p.state == entity.StateBuilt {
		return nil
	}

	if !p.records.HasColumns(p.names...) {
		if _, err := p.CalculateDescriptors(ctx); err != nil {
			return err
		}
	}

	selected, err := p.records.Select(append([]string{entity.ColumnRT}, p.names...)...)
	if err != nil {
		return pkgerror.NewServer(err)
	}

	rows := selected.Filter(func(_ int, row []entity.Value) bool {
		for _, v := range row[1:] {
			if !v.IsMissing() {
				return true
			}
		}
		return false
	})

	var dropped []string
	for _, name := range rows.Columns() {
		col, _ := rows.Column(name)
		missing := 0
		for _, v := range col {
			if v.IsMissing() {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		dropped = append(dropped, name)
		if name == entity.ColumnRT {
			slog.WarnContext(ctx, "dropping target column with missing values", "column", name, "missing", missing)
			continue
		}
		slog.InfoContext(ctx, "dropping column with missing values", "column", name, "missing", missing)
	}
	dataset := rows.Without(dropped...)

	seed, err := p.resolveSeed(ctx)
	if err != nil {
		return err
	}

	train, test, err := p.splitter.Split(dataset, p.cfg.TestSize, seed)
	if err != nil {
		return err
	}

	p.dataset = dataset
	p.split = entity.Split{Train: train, Test: test}
	p.report = entity.BuildReport{
		InputRows:      p.records.NumRows(),
		DroppedRows:    p.records.NumRows() - rows.NumRows(),
		DroppedColumns: dropped,
		Rows:           dataset.NumRows(),
		Columns:        dataset.NumColumns(),
		TrainRows:      train.NumRows(),
		TestRows:       test.NumRows(),
		Seed:           seed,
	}
	p.state = entity.StateBuilt

	p.metrics.ObserveDataset(p.report.Rows, p.report.Columns, p.report.DroppedRows, len(dropped))
	slog.InfoContext(ctx, "dataset built",
		"rows", p.report.Rows,
		"columns", p.report.Columns,
		"dropped_rows", p.report.DroppedRows,
		"dropped_columns", len(dropped),
		"train_rows", p.report.TrainRows,
		"test_rows", p.report.TestRows,
		"seed", seed,
	)

	return nil
}

// Invalidate discards the cached dataset and split.
func (p *Pipeline) Invalidate() {
	p.state = entity.StateUnbuilt
	p.dataset = nil
	p.split = entity.Split{}
	p.report = entity.BuildReport{}
}

// Rebuild forces a fresh Build.
func (p *Pipeline) Rebuild(ctx context.Context) error {
	p.Invalidate()
	return p.Build(ctx)
}

// Data returns the cleaned dataset, building it if needed.
func (p *Pipeline) Data(ctx context.Context) (*entity.Table, error) {
	if err := p.Build(ctx); err != nil {
		return nil, err
	}
	return p.dataset.Clone(), nil
}

// TrainingData returns the training rows, building them if needed.
func (p *Pipeline) TrainingData(ctx context.Context) (*entity.Table, error) {
	if err := p.Build(ctx); err != nil {
		return nil, err
	}
	return p.split.Train.Clone(), nil
}

// TestData returns the held-out rows, building them if needed.
func (p *Pipeline) TestData(ctx context.Context) (*entity.Table, error) {
	if err := p.Build(ctx); err != nil {
		return nil, err
	}
	return p.split.Test.Clone(), nil
}

// resolveSeed returns the configured seed or generates one the first time.
// A generated seed is kept across rebuilds so a run stays reproducible.
func (p *Pipeline) resolveSeed(ctx context.Context) (int64, error) {
	if p.seed != nil {
		return *p.seed, nil
	}

	if p.seeds == nil {
		sf, err := newSeedSource()
		if err != nil {
			return 0, pkgerror.NewServer(err)
		}
		p.seeds = sf
	}

	seed := p.seeds.Generate()
	p.seed = &seed
	slog.InfoContext(ctx, "generated split seed, pass it back to reproduce this split", "seed", seed)

	return seed, nil
}
