package pkgmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Item statuses used as the "status" label of the structures counter.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusMemo   = "memo"
)

// Recorder owns a private registry and the collectors the pipeline updates.
type Recorder struct {
	registry *prometheus.Registry

	structures  *prometheus.CounterVec
	duration    prometheus.Summary
	rows        prometheus.Gauge
	columns     prometheus.Gauge
	dropped     prometheus.Gauge
	droppedRows prometheus.Gauge
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		structures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "retip_descriptor_structures_total",
			Help: "Distinct structures processed by the descriptor cache, by outcome",
		}, []string{"status"}),
		duration: prometheus.NewSummary(prometheus.SummaryOpts{
			Name: "retip_descriptor_duration_seconds",
			Help: "Summarizes the time to parse and describe one structure (in seconds)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "retip_dataset_rows",
			Help: "Rows in the last built dataset",
		}),
		columns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "retip_dataset_columns",
			Help: "Columns in the last built dataset",
		}),
		dropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "retip_dataset_dropped_columns",
			Help: "Columns removed by the missing-value policy in the last build",
		}),
		droppedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "retip_dataset_dropped_rows",
			Help: "Rows removed because every descriptor was missing in the last build",
		}),
	}

	r.registry.MustRegister(r.structures, r.duration, r.rows, r.columns, r.dropped, r.droppedRows)

	return r
}

// ObserveStructure records the outcome of one distinct structure.
func (r *Recorder) ObserveStructure(status string, elapsed time.Duration) {
	r.structures.WithLabelValues(status).Inc()
	if status != StatusMemo {
		r.duration.Observe(elapsed.Seconds())
	}
}

// ObserveDataset records the shape of a freshly built dataset.
func (r *Recorder) ObserveDataset(rows, columns, droppedRows, droppedColumns int) {
	r.rows.Set(float64(rows))
	r.columns.Set(float64(columns))
	r.droppedRows.Set(float64(droppedRows))
	r.dropped.Set(float64(droppedColumns))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile atomically writes all metrics to filename in text format.
func (r *Recorder) WriteFile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.registry)
}
