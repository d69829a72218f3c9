package entity

// BuildState tracks whether the cached dataset and split are valid.
type BuildState string

const (
	StateUnbuilt BuildState = "UNBUILT"
	StateBuilt   BuildState = "BUILT"
)

// ItemStatus is the outcome of one distinct structure.
type ItemStatus string

const (
	ItemSuccess ItemStatus = "SUCCESS"
	ItemFailed  ItemStatus = "FAILED"
)
