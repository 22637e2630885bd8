// Package metrics provides a Prometheus-backed implementation of the
// root linkcore.MetricsCollector interface, for hosts that already
// scrape Prometheus and want match/grouping instrumentation for free.
package metrics
