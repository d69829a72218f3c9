package usecase

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/oloBion/retip/internal/retip/entity"
	"github.com/oloBion/retip/internal/retip/tableio"
)

// Save writes the record table to path, with or without descriptor columns.
// The writer is chosen by extension and parent directories are created.
func (p *Pipeline) Save(path string, includeDescriptors bool) error {
	t := p.records
	if !includeDescriptors {
		t = t.Without(p.names...)
	}
	return tableio.Write(path, t)
}

// Head returns the first n records.
func (p *Pipeline) Head(n int) *entity.Table {
	return p.records.Head(n)
}

// Describe summarizes the numeric record columns, descriptors excluded.
func (p *Pipeline) Describe() (entity.Summary, error) {
	summary := entity.Summary{
		Rows:    p.records.NumRows(),
		Columns: p.records.NumColumns(),
	}

	for _, name := range p.records.Columns() {
		if slices.Contains(p.names, name) {
			continue
		}

		col, _ := p.records.Column(name)
		data, numeric := numbers(col)
		if !numeric {
			continue
		}

		cs, err := summarize(name, data)
		if err != nil {
			return entity.Summary{}, err
		}
		summary.Stats = append(summary.Stats, cs)
	}

	return summary, nil
}

// numbers returns the present values of col, and false when any present
// value is not a number or none is present.
func numbers(col []entity.Value) (stats.Float64Data, bool) {
	data := make(stats.Float64Data, 0, len(col))
	for _, v := range col {
		if v.IsMissing() {
			continue
		}
		f, ok := v.Float()
		if !ok {
			return nil, false
		}
		data = append(data, f)
	}
	return data, len(data) > 0
}

func summarize(name string, data stats.Float64Data) (entity.ColumnSummary, error) {
	cs := entity.ColumnSummary{Column: name, Count: data.Len(), Std: math.NaN()}

	var err error
	if cs.Mean, err = data.Mean(); err != nil {
		return cs, err
	}
	if data.Len() > 1 {
		if cs.Std, err = data.StandardDeviationSample(); err != nil {
			return cs, err
		}
	}
	if cs.Min, err = data.Min(); err != nil {
		return cs, err
	}
	if cs.Max, err = data.Max(); err != nil {
		return cs, err
	}
	if cs.Median, err = data.Median(); err != nil {
		return cs, err
	}
	if cs.Q25, err = data.PercentileNearestRank(25); err != nil {
		return cs, err
	}
	if cs.Q75, err = data.PercentileNearestRank(75); err != nil {
		return cs, err
	}

	return cs, nil
}
