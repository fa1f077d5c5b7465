// Package metrics reads runtime memory statistics and serves the Prometheus
// endpoint enabled with --metrics-addr.
package metrics
