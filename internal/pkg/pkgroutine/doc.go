// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that a misbehaving task (for example a descriptor calculation on
// an exotic structure) does not crash the whole batch.
package pkgroutine
