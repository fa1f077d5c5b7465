// Package logging provides the structured logging interface used by bigmul.
// It wraps zerolog behind a small Logger interface so that the harness,
// calibration and application layers log the same way and tests can swap
// in a buffer-backed or no-op logger.
package logging
