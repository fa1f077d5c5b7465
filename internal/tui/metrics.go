package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigmul/internal/format"
)

// MetricsModel displays runtime memory, system load and overall progress.
type MetricsModel struct {
	heapAlloc    uint64
	sys          uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	memAvailable uint64
	cores        int
	progress     float64
	eta          time.Duration
	cpu          *RingBuffer
	mem          *RingBuffer
	width        int
	height       int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu: NewRingBuffer(32),
		mem: NewRingBuffer(32),
	}
}

// SetSize updates the dimensions; the sparklines span the inner width.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	span := max(w-14, 8)
	m.cpu.Resize(span)
	m.mem.Resize(span)
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.sys = msg.Sys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system load sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
	m.memAvailable = msg.MemAvailable
	m.cores = msg.LogicalCores
}

// UpdateProgress stores the average progress and its ETA.
func (m *MetricsModel) UpdateProgress(avg float64, eta time.Duration) {
	m.progress = avg
	m.eta = eta
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	lines := []string{
		metricLine("Progress:", fmt.Sprintf("%5.1f%%  ETA %s", m.progress*100, format.FormatETA(m.eta))),
		metricLine("Heap:", format.FormatBytes(m.heapAlloc)+" / "+format.FormatBytes(m.sys)),
		metricLine("GC:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)),
		metricLine("Goroutines:", fmt.Sprint(m.numGoroutine)),
		metricLine("Host:", fmt.Sprintf("%d cores, %s free", m.cores, format.FormatBytes(m.memAvailable))),
		"",
		sparkLine("CPU", m.cpu, cpuSparklineStyle),
		sparkLine("MEM", m.mem, memSparklineStyle),
	}
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func metricLine(label, value string) string {
	return " " + metricLabelStyle.Render(fmt.Sprintf("%-12s", label)) + metricValueStyle.Render(value)
}

func sparkLine(label string, rb *RingBuffer, style lipgloss.Style) string {
	return fmt.Sprintf(" %s %5.1f%% %s",
		metricLabelStyle.Render(label), rb.Last(), style.Render(RenderSparkline(rb.Slice())))
}
