package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/pkg/pkgmetrics"
	"github.com/oloBion/retip/internal/pkg/pkgroutine"
	"github.com/oloBion/retip/internal/retip/entity"
)

var errTaskIncomplete = errors.New("descriptor calculation did not complete")

// CalculateDescriptors computes the descriptor schema once per distinct
// structure and left-joins the values onto the record table by SMILES.
//
// It is skipped when every descriptor column is already present. Structures
// that cannot be parsed or described are reported and get missing values;
// they never abort the batch.
func (p *Pipeline) CalculateDescriptors(ctx context.Context) (entity.BatchReport, error) {
	startedAt := time.Now()
	report := entity.BatchReport{
		Rows:     p.records.NumRows(),
		Failures: map[string]string{},
	}

	smiles, ok := p.records.Column(entity.ColumnSMILES)
	if !ok {
		return report, pkgerror.NewPrecondition(entity.ColumnSMILES, "column is required to calculate descriptors")
	}

	if p.records.HasColumns(p.names...) {
		report.Skipped = true
		slog.InfoContext(ctx, "descriptors already present, skipping calculation", "descriptors", len(p.names))
		return report, nil
	}

	structures := distinct(smiles)
	report.Structures = len(structures)

	results := make([]entity.ItemResult, len(structures))
	for i, s := range structures {
		results[i] = entity.ItemResult{Structure: s, Status: entity.ItemFailed, Err: errTaskIncomplete}
	}

	runner := pkgroutine.NewManager(p.cfg.Workers)
	slog.InfoContext(ctx, "calculating descriptors",
		"rows", report.Rows,
		"structures", len(structures),
		"workers", runner.Limit(),
	)

	p.tracker.Start(len(structures))
	for i, s := range structures {
		scheduled := runner.Go(ctx, func(ctx context.Context) error {
			defer p.tracker.Advance(1)
			results[i] = p.describe(ctx, s)
			return nil
		})
		if !scheduled {
			break
		}
	}
	if err := runner.Wait(); err != nil {
		slog.ErrorContext(ctx, "descriptor tasks returned errors", "error", err)
	}
	p.tracker.Finish()
	report.Panicked = runner.Panics()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	values := make(map[string]map[string]entity.Value, len(results))
	for _, r := range results {
		if !r.OK() {
			report.Failed++
			report.Failures[r.Structure] = r.Err.Error()
			continue
		}
		if r.Memoized {
			report.Memoized++
		} else {
			report.Computed++
		}
		values[r.Structure] = r.Values
	}

	report.Duration = time.Since(startedAt)
	slog.InfoContext(ctx, "descriptors calculated",
		"structures", report.Structures,
		"computed", report.Computed,
		"memoized", report.Memoized,
		"failed", report.Failed,
		"panicked", report.Panicked,
		"duration", report.Duration.String(),
	)

	// Records stay untouched on escalation so the next call recomputes.
	if p.cfg.MaxFailureRatio > 0 && report.FailureRatio() > p.cfg.MaxFailureRatio {
		return report, pkgerror.NewConfiguration("max_failure_ratio", p.cfg.MaxFailureRatio,
			fmt.Sprintf("%d of %d structures failed", report.Failed, report.Structures))
	}

	if err := p.merge(smiles, values); err != nil {
		return report, err
	}

	return report, nil
}

// describe runs one structure through the memo store, parser and calculator.
func (p *Pipeline) describe(ctx context.Context, structure string) entity.ItemResult {
	startedAt := time.Now()
	result := entity.ItemResult{Structure: structure, Status: entity.ItemFailed}

	if p.store != nil {
		if values, ok := p.store.Get(ctx, structure); ok {
			result.Status = entity.ItemSuccess
			result.Values = values
			result.Memoized = true
			p.metrics.ObserveStructure(pkgmetrics.StatusMemo, 0)
			return result
		}
	}

	fail := func(err error) entity.ItemResult {
		result.Err = err
		result.Elapsed = time.Since(startedAt)
		slog.WarnContext(ctx, "failed to describe structure", "structure", structure, "error", err)
		p.metrics.ObserveStructure(pkgmetrics.StatusFailed, result.Elapsed)
		return result
	}

	mol, err := p.parser.Parse(structure)
	if err != nil {
		return fail(pkgerror.NewStructureParse(structure, err))
	}

	computed, err := p.calculator.Compute(mol)
	if err != nil {
		return fail(fmt.Errorf("describing structure %q: %w", structure, err))
	}

	values := make(map[string]entity.Value, len(p.names))
	for _, name := range p.names {
		f, ok := computed[name]
		if !ok {
			values[name] = entity.Missing()
			continue
		}
		values[name] = entity.Number(f)
	}

	if p.store != nil {
		p.store.Set(ctx, structure, values)
	}

	result.Status = entity.ItemSuccess
	result.Values = values
	result.Elapsed = time.Since(startedAt)
	p.metrics.ObserveStructure(pkgmetrics.StatusOK, result.Elapsed)

	return result
}

// merge sets every descriptor column from values, keyed by each row's SMILES.
// Rows with a missing or failed structure get missing values.
func (p *Pipeline) merge(smiles []entity.Value, values map[string]map[string]entity.Value) error {
	for _, name := range p.names {
		col := make([]entity.Value, len(smiles))
		for r, s := range smiles {
			if s.IsMissing() {
				continue
			}
			if v, ok := values[s.Text()]; ok {
				col[r] = v[name]
			}
		}
		if err := p.records.SetColumn(name, col); err != nil {
			return pkgerror.NewServer(err)
		}
	}
	return nil
}

// distinct returns the sorted set of present structure strings.
func distinct(col []entity.Value) []string {
	seen := make(map[string]struct{}, len(col))
	out := make([]string, 0, len(col))
	for _, v := range col {
		if v.IsMissing() {
			continue
		}
		s := v.Text()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
