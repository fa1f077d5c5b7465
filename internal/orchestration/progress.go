package orchestration

import (
	"time"

	"github.com/agbru/bigmul/internal/format"
)

// ProgressAggregator combines per-algorithm run progress into an average and
// an ETA. Both the CLI spinner and the TUI use it.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numAlgorithms int
}

// NewProgressAggregator creates an aggregator for numAlgorithms algorithms.
// Returns nil if numAlgorithms <= 0.
func NewProgressAggregator(numAlgorithms int) *ProgressAggregator {
	if numAlgorithms <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numAlgorithms),
		numAlgorithms: numAlgorithms,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	AlgorithmIndex  int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.AlgorithmIndex, update.Value)
	return AggregatedProgress{
		AlgorithmIndex:  update.AlgorithmIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumAlgorithms returns the number of algorithms being tracked.
func (a *ProgressAggregator) NumAlgorithms() int {
	return a.numAlgorithms
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
