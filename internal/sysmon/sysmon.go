// Package sysmon samples host load and describes the CPU the engines run on.
// Its output feeds the dashboard, benchmark details and the version command.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host-wide load sample. Percentages are in [0, 100]; a field
// whose probe failed is left at zero.
type Stats struct {
	CPUPercent   float64
	MemPercent   float64
	MemAvailable uint64
	LogicalCores int
}

// Sample probes CPU and memory usage once. CPU usage is measured since the
// previous call, so the first sample of a process may read 0.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
		s.MemAvailable = vm.Available
	}
	return s
}

func clampPercent(p float64) float64 {
	return min(max(p, 0), 100)
}
