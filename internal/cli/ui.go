package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigmul/internal/format"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/sysmon"
	"github.com/agbru/bigmul/internal/ui"
)

const (
	// ProgressRefreshRate is the spinner and progress bar refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters.
	ProgressBarWidth = 40
	// scientificDigits is the product length above which details include
	// scientific notation.
	scientificDigits = 6
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the average run progress and an ETA
// until progressChan is closed, then prints a final 100% line.
//
// Parameters:
//   - wg: Signalled when the display has finished.
//   - progressChan: Updates from the benchmark runners.
//   - numAlgorithms: The number of algorithms being benchmarked.
//   - out: The writer for the progress display.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numAlgorithms int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numAlgorithms)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Progress"
	if numAlgorithms > 1 {
		label = "Avg progress"
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "%s: %6.2f%% [%s] ETA: %s\n", label, 100.0, format.ProgressBar(1, ProgressBarWidth), "< 1s")
				return
			}
			agg.Update(update)
		case <-ticker.C:
			avg := agg.CalculateAverage()
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s] ETA: %s",
				label, avg*100, format.ProgressBar(avg, ProgressBarWidth), format.FormatETA(agg.GetETA())))
		}
	}
}

// DisplayResult prints the agreed product. Details add timing and size
// information; the product itself is truncated to its first and last 50
// digits unless verbose is set.
//
// Parameters:
//   - result: The fastest successful result.
//   - opts: The operands and display flags.
//   - out: The writer for the output.
func DisplayResult(result orchestration.MultiplicationResult, opts orchestration.PresentationOptions, out io.Writer) {
	product := result.Product
	fmt.Fprintf(out, "Product size: %s%s%s.\n", ui.ColorCyan(), format.FormatDigitCount(len(product)), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Algorithm           : %s%s%s\n", ui.ColorBlue(), result.Name, ui.ColorReset())
		fmt.Fprintf(out, "Mean time           : %s%s%s over %d run(s)\n",
			ui.ColorGreen(), displayDuration(result.Duration), ui.ColorReset(), result.Runs)
		fmt.Fprintf(out, "Best time           : %s%s%s\n", ui.ColorGreen(), displayDuration(result.Best), ui.ColorReset())
		fmt.Fprintf(out, "Operand digits      : %s%s x %s%s\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(opts.A))), format.FormatNumberString(fmt.Sprint(len(opts.B))), ui.ColorReset())
		if len(product) <= format.TruncateLimit {
			fmt.Fprintf(out, "Grouped digits      : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(product), ui.ColorReset())
		}
		if len(product) > scientificDigits {
			fmt.Fprintf(out, "Scientific notation : %s%s%s\n", ui.ColorCyan(), scientific(product), ui.ColorReset())
		}
		fmt.Fprintf(out, "CPU features        : %s\n", sysmon.CPUFeatures())
	}

	fmt.Fprintf(out, "\n%s--- Product ---%s\n", ui.ColorBold(), ui.ColorReset())
	if opts.Verbose || len(product) <= format.TruncateLimit {
		fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), product, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "(truncated) %s%s%s\n", ui.ColorGreen(), format.TruncateDigits(product), ui.ColorReset())
	fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display the full value)\n",
		ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// scientific renders a canonical decimal string as d.dddddde+N.
func scientific(s string) string {
	mantissa := s[:1]
	if len(s) > 1 {
		mantissa += "." + s[1:min(len(s), scientificDigits+1)]
	}
	return fmt.Sprintf("%se+%d", mantissa, len(s)-1)
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}
