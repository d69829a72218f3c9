package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/pkg/pkguid"
	"github.com/oloBion/retip/internal/retip/chem"
	"github.com/oloBion/retip/internal/retip/entity"
)

// StructureParser turns a structure string into a molecule graph.
type StructureParser interface {
	Parse(s string) (*chem.Molecule, error)
}

// DescriptorCalculator describes a molecule. Names is fixed for its lifetime.
type DescriptorCalculator interface {
	Names() []string
	Compute(m *chem.Molecule) (map[string]float64, error)
}

// Splitter partitions a dataset into training and test rows.
type Splitter interface {
	Split(t *entity.Table, fraction float64, seed int64) (train, test *entity.Table, err error)
}

// Store memoizes descriptor values by structure string.
type Store interface {
	Get(ctx context.Context, structure string) (map[string]entity.Value, bool)
	Set(ctx context.Context, structure string, values map[string]entity.Value)
}

// Tracker reports descriptor progress, one step per distinct structure.
type Tracker interface {
	Start(total int)
	Advance(n int)
	Finish()
}

type Metrics interface {
	ObserveStructure(status string, elapsed time.Duration)
	ObserveDataset(rows, columns, droppedRows, droppedColumns int)
}

type Dependency struct {
	Parser     StructureParser
	Calculator DescriptorCalculator
	Splitter   Splitter
	Store      Store
	Tracker    Tracker
	Metrics    Metrics
	Seeds      pkguid.NumberID
}

type Config struct {
	// TestSize is the fraction of rows held out for testing, in [0, 1).
	TestSize float64
	// Seed fixes the split; a fresh one is generated and logged when nil.
	Seed *int64
	// Workers bounds concurrent descriptor calculations.
	Workers int
	// MaxFailureRatio escalates a descriptor batch to an error when more
	// than this share of structures fail. Zero disables the check.
	MaxFailureRatio float64
}

// Validate checks the configuration before any work is done.
func (c Config) Validate() error {
	if math.IsNaN(c.TestSize) || c.TestSize < 0 || c.TestSize >= 1 {
		return pkgerror.NewConfiguration("test_size", c.TestSize, "must be in [0, 1)")
	}
	if c.Workers < 0 {
		return pkgerror.NewConfiguration("workers", c.Workers, "must not be negative")
	}
	if math.IsNaN(c.MaxFailureRatio) || c.MaxFailureRatio < 0 || c.MaxFailureRatio > 1 {
		return pkgerror.NewConfiguration("max_failure_ratio", c.MaxFailureRatio, "must be in [0, 1]")
	}
	return nil
}

// Pipeline owns one record table and the dataset and split built from it.
// It is not safe for concurrent use.
type Pipeline struct {
	parser     StructureParser
	calculator DescriptorCalculator
	splitter   Splitter
	store      Store
	tracker    Tracker
	metrics    Metrics
	seeds      pkguid.NumberID

	cfg    Config
	schema entity.Schema
	names  []string

	records *entity.Table
	state   entity.BuildState
	dataset *entity.Table
	split   entity.Split
	report  entity.BuildReport
	seed    *int64
}

// New validates records and cfg and returns an unbuilt pipeline.
// The pipeline works on its own copy of records.
func New(dep Dependency, cfg Config, records *entity.Table) (*Pipeline, error) {
	if dep.Parser == nil || dep.Calculator == nil {
		return nil, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	schema := entity.DefaultSchema()
	if err := ValidateTable(records, schema); err != nil {
		return nil, err
	}

	names := dep.Calculator.Names()
	if len(names) == 0 {
		return nil, pkgerror.NewServer(errors.New("calculator has no descriptors"))
	}
	for _, n := range names {
		if n == entity.ColumnRT {
			return nil, pkgerror.NewServer(fmt.Errorf("descriptor name %q collides with a record column", n))
		}
	}

	p := &Pipeline{
		parser:     dep.Parser,
		calculator: dep.Calculator,
		splitter:   dep.Splitter,
		store:      dep.Store,
		tracker:    dep.Tracker,
		metrics:    dep.Metrics,
		seeds:      dep.Seeds,
		cfg:        cfg,
		schema:     schema,
		names:      names,
		records:    records.Clone(),
		state:      entity.StateUnbuilt,
		seed:       cfg.Seed,
	}

	if p.splitter == nil {
		p.splitter = RandomSplitter{}
	}
	if p.tracker == nil {
		p.tracker = noopTracker{}
	}
	if p.metrics == nil {
		p.metrics = noopMetrics{}
	}

	return p, nil
}

// Open loads path and returns a pipeline over it.
func Open(dep Dependency, cfg Config, path, sheet string) (*Pipeline, error) {
	records, err := Load(path, sheet)
	if err != nil {
		return nil, err
	}
	return New(dep, cfg, records)
}

// DescriptorNames returns the descriptor schema in column order.
func (p *Pipeline) DescriptorNames() []string {
	return append([]string(nil), p.names...)
}

// Records returns a copy of the record table, descriptors included once computed.
func (p *Pipeline) Records() *entity.Table {
	return p.records.Clone()
}

func (p *Pipeline) State() entity.BuildState {
	return p.state
}

// Report describes the last build.
func (p *Pipeline) Report() entity.BuildReport {
	return p.report
}

type noopTracker struct{}

func (noopTracker) Start(int)   {}
func (noopTracker) Advance(int) {}
func (noopTracker) Finish()     {}

type noopMetrics struct{}

func (noopMetrics) ObserveStructure(string, time.Duration) {}
func (noopMetrics) ObserveDataset(int, int, int, int)      {}
