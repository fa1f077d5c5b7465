package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/bigmul/internal/config"
	"github.com/agbru/bigmul/internal/format"
	"github.com/agbru/bigmul/internal/ui"
)

// thresholdLabel renders a parallel or recursion threshold for display.
func thresholdLabel(threshold int) string {
	if threshold >= SequentialThreshold {
		return "Sequential"
	}
	return fmt.Sprintf("%d digits", threshold)
}

// printCalibrationResults formats and prints one search as a table.
func printCalibrationResults(out io.Writer, title string, results []calibrationResult, best int) {
	fmt.Fprintf(out, "\n--- %s ---\n", title)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				durationStr = "< 1µs"
			}
		}
		highlight := ""
		if res.Threshold == best && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), thresholdLabel(res.Threshold), ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printRecommendation prints the flags reproducing the best thresholds.
func printRecommendation(out io.Writer, parallel, recursion int) {
	fmt.Fprintf(out, "\n%s✅ Recommendation for this machine: %s--parallel-threshold %d --recursion-threshold %d%s\n",
		ui.ColorGreen(), ui.ColorYellow(), parallel, recursion, ui.ColorReset())
}

// printCalibrationOutput prints the thresholds chosen by auto-calibration.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: parallelism=%s%s%s, recursion=%s%d%s digits\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), thresholdLabel(cfg.ParallelThreshold), ui.ColorReset(),
		ui.ColorYellow(), cfg.RecursionThreshold, ui.ColorReset())
}
