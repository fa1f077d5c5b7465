package orchestration

import (
	"io"
	"sync"
	"time"
)

// MultiplicationResult encapsulates the outcome of benchmarking one algorithm.
// It is the shared domain type between orchestration and presentation layers.
type MultiplicationResult struct {
	// Name is the registry name of the algorithm (e.g. "toomcook-par").
	Name string
	// Product is the canonical decimal product. It is empty if Err is set.
	Product string
	// Duration is the mean time of the completed runs.
	Duration time.Duration
	// Best is the fastest completed run.
	Best time.Duration
	// Runs is the number of runs that completed.
	Runs int
	// Err contains any error that occurred, including recovered engine
	// defects wrapped in apperrors.CalculationError.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// A and B are the operands that were multiplied.
	A, B    string
	Verbose bool
	Details bool
}

// ProgressUpdate reports that an algorithm finished one of its runs.
type ProgressUpdate struct {
	// AlgorithmIndex identifies the algorithm in the slice being executed.
	AlgorithmIndex int
	// Value is the fraction of runs completed, in (0, 1].
	Value float64
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from the runners.
	//   - numAlgorithms: The number of algorithms being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numAlgorithms int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numAlgorithms int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numAlgorithms int, out io.Writer) {
	f(wg, progressChan, numAlgorithms, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting benchmark results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-algorithm summary table.
	PresentComparisonTable(results []MultiplicationResult, out io.Writer)

	// PresentResult displays the agreed product.
	PresentResult(result MultiplicationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles failures and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
