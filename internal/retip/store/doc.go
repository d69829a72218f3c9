// Package store holds descriptor memo stores keyed by structure string.
//
// A store outlives a single pipeline so that several input files sharing
// structures are only described once per process. Values are cloned on the
// way in and out; callers never share maps with the store.
package store
