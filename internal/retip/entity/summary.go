package entity

// ColumnSummary holds describe-style statistics for one numeric column.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Summary is the shape of a table plus per-column statistics.
type Summary struct {
	Rows    int
	Columns int
	Stats   []ColumnSummary
}
