package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/format"
	"github.com/agbru/bigmul/internal/metrics"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numAlgorithms int, out io.Writer) {
	DisplayProgress(wg, progressChan, numAlgorithms, out)
}

// CLIResultPresenter formats benchmark results for the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per algorithm: name, mean and best
// time, runs, and status. Columns are aligned with a tabwriter before colors
// are applied so escape codes do not skew the widths.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.MultiplicationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Algorithm\tMean\tBest\tRuns\t")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", res.Name, displayDuration(res.Duration), displayDuration(res.Best), res.Runs)
	}
	_ = tw.Flush()

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	fmt.Fprintf(out, "%s%s%s  %sStatus%s\n", ui.ColorUnderline(), strings.TrimRight(lines[0], " "), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for i, res := range results {
		row := lines[i+1]
		name := len(res.Name)
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s%s%s  %s\n",
			ui.ColorBlue(), row[:name], ui.ColorReset(),
			ui.ColorYellow(), row[name:], ui.ColorReset(), status)
	}
}

// PresentResult displays the agreed product.
func (CLIResultPresenter) PresentResult(result orchestration.MultiplicationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats a duration the way the comparison table does.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints a failure and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies the current theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats shows the memory activity of a benchmark.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
}
