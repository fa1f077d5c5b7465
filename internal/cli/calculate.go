package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigmul/internal/config"
	"github.com/agbru/bigmul/internal/format"
	"github.com/agbru/bigmul/internal/multiply"
	"github.com/agbru/bigmul/internal/ui"
)

// PrintExecutionConfig displays the benchmark configuration: operand size,
// runs, timeout, host and engine thresholds.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Multiplying two %s%s%s operands (seed %d), %d run(s) each, timeout %s%s%s.\n",
		ui.ColorMagenta(), format.FormatDigitCount(cfg.Digits), ui.ColorReset(), cfg.Seed, max(cfg.Runs, 1),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Thresholds: recursion=%s%d%s digits, parallel=%s%d%s digits, workers=%s%d%s.\n",
		ui.ColorCyan(), cfg.RecursionThreshold, ui.ColorReset(),
		ui.ColorCyan(), cfg.ParallelThreshold, ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
}

// PrintExecutionMode displays whether one algorithm runs or several are
// compared.
//
// Parameters:
//   - multipliers: The multipliers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(multipliers []multiply.Multiplier, out io.Writer) {
	var modeDesc string
	if len(multipliers) > 1 {
		modeDesc = fmt.Sprintf("Comparison of %d algorithms", len(multipliers))
	} else {
		modeDesc = fmt.Sprintf("Single run of the %s%s%s algorithm",
			ui.ColorGreen(), multipliers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
