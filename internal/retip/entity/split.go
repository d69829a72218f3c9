package entity

// Split is a partition of a dataset into training and test rows.
type Split struct {
	Train *Table
	Test  *Table
}
