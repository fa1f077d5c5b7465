package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the benchmark status.
type FooterModel struct {
	keys   []key.Binding
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer showing the given bindings.
func NewFooterModel(keys []key.Binding) FooterModel {
	return FooterModel{keys: keys}
}

func (f *FooterModel) SetWidth(w int) { f.width = w }

func (f *FooterModel) SetPaused(p bool) { f.paused = p }

func (f *FooterModel) SetDone(d bool) { f.done = d }

func (f *FooterModel) SetError(failed bool) { f.failed = failed }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "FAILED"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		h := k.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(hints, "  ")

	var status string
	switch f.Status() {
	case "FAILED":
		status = errorStyle.Bold(true).Render("FAILED")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(status)-1, 1)
	return left + strings.Repeat(" ", gap) + status
}
