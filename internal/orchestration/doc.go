// Package orchestration benchmarks multiplication algorithms on shared
// operands and cross-checks their products. It decouples the benchmark logic
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
