// Package multiply implements arbitrary-precision multiplication of
// non-negative decimal integers.
//
// Three strategies are provided, each in a sequential and a fork-join
// variant: schoolbook (naive), Karatsuba and Toom-Cook-3. The recursive
// strategies operate on raw digit vectors (see package digits) and fall back
// to the schoolbook product at the recursion threshold. Parallel variants
// always return exactly the sequential result.
//
// The package-level Multiply* functions use DefaultOptions. Engines with
// tuned thresholds are built with the New* constructors, and the
// DefaultFactory exposes every strategy by name behind the instrumented
// Multiplier interface.
package multiply
