// Package pkgmetrics holds the Prometheus collectors for a batch run.
//
// retip is a single-invocation job, so metrics are not scraped: they are
// written once at the end of a run in the text exposition format, ready for
// the node exporter textfile collector.
package pkgmetrics
