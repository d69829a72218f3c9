package entity

import "time"

// ItemResult is the outcome of describing one distinct structure string.
//
// On success Values holds one entry per descriptor name, possibly missing.
// On failure Err carries the reason and Values is nil.
type ItemResult struct {
	Structure string
	Status    ItemStatus
	Values    map[string]Value
	Err       error
	Elapsed   time.Duration
	// Memoized is set when Values came from a memo store instead of the calculator.
	Memoized bool
}

// OK reports whether the structure was described.
func (r ItemResult) OK() bool {
	return r.Status == ItemSuccess
}

// BatchReport aggregates a descriptor computation run.
type BatchReport struct {
	Skipped    bool
	Rows       int
	Structures int
	Computed   int
	Memoized   int
	Failed     int
	// Panicked counts the failures caused by a recovered panic.
	Panicked int
	// Failures maps structure strings to the reason they could not be described.
	Failures map[string]string
	Duration time.Duration
}

// FailureRatio returns failed structures over distinct structures.
func (r BatchReport) FailureRatio() float64 {
	if r.Structures == 0 {
		return 0
	}
	return float64(r.Failed) / float64(r.Structures)
}

// BuildReport describes what the cleaning policy removed.
type BuildReport struct {
	InputRows      int
	DroppedRows    int
	DroppedColumns []string
	Rows           int
	Columns        int
	TrainRows      int
	TestRows       int
	Seed           int64
}
