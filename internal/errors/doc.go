// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// malformed operands, failed runs) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping types implement Unwrap() to support errors.Is() and errors.As().
// Internal invariant violations are not represented here: the arithmetic
// packages panic with cockroachdb/errors assertion failures instead.
package apperrors
