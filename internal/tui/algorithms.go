package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigmul/internal/format"
	"github.com/agbru/bigmul/internal/orchestration"
)

// Column widths shared by the table header and rows.
const (
	colWidthName     = 14
	colWidthProgress = 20
	colWidthPct      = 7
	colWidthDur      = 10
)

// AlgorithmsModel is the per-algorithm table plus the agreed product.
type AlgorithmsModel struct {
	names    []string
	progress []float64
	results  map[string]orchestration.MultiplicationResult
	product  string
	failure  string
	cursor   int
	width    int
	height   int
}

// NewAlgorithmsModel creates a table for the given algorithm names.
func NewAlgorithmsModel(names []string) AlgorithmsModel {
	return AlgorithmsModel{
		names:    names,
		progress: make([]float64, len(names)),
		results:  make(map[string]orchestration.MultiplicationResult),
	}
}

// SetSize updates the dimensions.
func (a *AlgorithmsModel) SetSize(w, h int) {
	a.width = w
	a.height = h
}

// Reset clears progress and results for a rerun.
func (a *AlgorithmsModel) Reset() {
	a.progress = make([]float64, len(a.names))
	a.results = make(map[string]orchestration.MultiplicationResult)
	a.product = ""
	a.failure = ""
}

// UpdateProgress records the run fraction of one algorithm.
func (a *AlgorithmsModel) UpdateProgress(index int, value float64) {
	if index >= 0 && index < len(a.progress) {
		a.progress[index] = value
	}
}

// SetResults stores the finished results by algorithm name.
func (a *AlgorithmsModel) SetResults(results []orchestration.MultiplicationResult) {
	for _, r := range results {
		a.results[r.Name] = r
	}
}

// SetProduct stores the agreed product.
func (a *AlgorithmsModel) SetProduct(product string) {
	a.product = product
}

// SetFailure records why the benchmark produced no product.
func (a *AlgorithmsModel) SetFailure(err error) {
	a.failure = err.Error()
}

// MoveCursor moves the selection by delta, clamped to the table.
func (a *AlgorithmsModel) MoveCursor(delta int) {
	a.cursor = min(max(a.cursor+delta, 0), max(len(a.names)-1, 0))
}

// Selected returns the selected algorithm name, or "" for an empty table.
func (a AlgorithmsModel) Selected() string {
	if len(a.names) == 0 {
		return ""
	}
	return a.names[a.cursor]
}

// View renders the table, the selected algorithm's detail and the product.
func (a AlgorithmsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ALGORITHMS"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-*s %-*s %*s %*s  %s",
		colWidthName, "Name", colWidthProgress, "Progress", colWidthPct, "Runs", colWidthDur, "Mean", "Status")))
	b.WriteString("\n")
	for i, name := range a.names {
		b.WriteString(a.renderRow(i, name))
		b.WriteString("\n")
	}

	if sel, ok := a.results[a.Selected()]; ok && sel.Err == nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s: best %s over %d run(s)",
			sel.Name, format.FormatExecutionDuration(sel.Best), sel.Runs)))
		b.WriteString("\n")
	}
	switch {
	case a.failure != "":
		b.WriteString("\n  ")
		b.WriteString(errorStyle.Render("No algorithm completed: " + a.failure))
	case a.product != "":
		b.WriteString("\n  ")
		b.WriteString(successStyle.Render(fmt.Sprintf("Product (%s):", format.FormatDigitCount(len(a.product)))))
		b.WriteString("\n  ")
		b.WriteString(truncateString(format.TruncateDigits(a.product), max(a.width-6, 10)))
	}

	return panelStyle.
		Width(max(a.width-2, 0)).
		Height(max(a.height-2, 0)).
		Render(b.String())
}

func (a AlgorithmsModel) renderRow(idx int, name string) string {
	marker := "  "
	nameStyle := algoNameStyle
	if idx == a.cursor {
		marker = selectedStyle.Render("▸ ")
		nameStyle = selectedStyle
	}

	status, mean := dimStyle.Render("running"), "-"
	runs := fmt.Sprintf("%5.1f%%", a.progress[idx]*100)
	if r, ok := a.results[name]; ok {
		runs = fmt.Sprint(r.Runs)
		if r.Err != nil {
			status = errorStyle.Render("FAIL")
		} else {
			status = successStyle.Render("OK")
			mean = format.FormatExecutionDuration(r.Duration)
		}
	}

	return marker +
		nameStyle.Width(colWidthName).Render(truncateString(name, colWidthName)) + " " +
		renderProgressBar(a.progress[idx], colWidthProgress) + " " +
		lipgloss.NewStyle().Width(colWidthPct).Align(lipgloss.Right).Render(runs) + " " +
		lipgloss.NewStyle().Width(colWidthDur).Align(lipgloss.Right).Render(mean) + "  " +
		status
}

// truncateString shortens s to maxLen runes, ending with "…".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}

func renderProgressBar(progress float64, width int) string {
	filled := int(min(max(progress, 0), 1) * float64(width))
	return barFullStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
