package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigmul/internal/format"
)

// HeaderModel renders the top bar: title, operand size and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	digits    int
	width     int
}

// NewHeaderModel creates a header for a benchmark on digits-digit operands.
func NewHeaderModel(version string, digits int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		digits:    digits,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the start, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header; spin is the activity indicator shown while the
// benchmark runs.
func (h HeaderModel) View(spin string) string {
	titleText := "bigmul bench"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	left := titleStyle.Render(titleText) + pipe +
		dimStyle.Render(format.FormatDigitCount(h.digits)) + pipe +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	if spin != "" {
		left = spin + " " + left
	}

	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap))
}
