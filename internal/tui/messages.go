package tui

import (
	"time"

	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/sysmon"
)

// Benchmark messages carry the generation of the run that produced them.

// ProgressMsg reports that an algorithm finished a run.
type ProgressMsg struct {
	AlgorithmIndex  int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the sorted per-algorithm results.
type ComparisonResultsMsg struct {
	Results    []orchestration.MultiplicationResult
	Generation uint64
}

// FinalResultMsg carries the agreed product.
type FinalResultMsg struct {
	Result     orchestration.MultiplicationResult
	Options    orchestration.PresentationOptions
	Generation uint64
}

// ErrorMsg reports that no algorithm completed.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a host-wide load sample.
type SysStatsMsg struct {
	sysmon.Stats
}

// BenchmarkCompleteMsg signals that the benchmark of one generation ended.
type BenchmarkCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the benchmark context of one generation
// was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
