package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/multiply"
)

// ProgressBufferMultiplier sizes the progress channel relative to the number
// of algorithms so runners rarely block on a slow display.
const ProgressBufferMultiplier = 5

// nativeCheckDigits is the longest operand pair checked with uint64
// arithmetic: two 9-digit values multiply to less than 10^18.
const nativeCheckDigits = 9

// ExecuteMultiplications benchmarks every multiplier on the same operands.
//
// Each multiplier runs cfg.Runs times. At most cfg.Concurrency multipliers
// run at once (one when zero, so timings do not interfere). Engine panics are
// recovered and reported as apperrors.CalculationError in the result; they
// never abort the other algorithms.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - multipliers: The algorithms to execute.
//   - a, b: The operands.
//   - cfg: The application configuration (runs, concurrency).
//   - progressReporter: The progress display (NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []MultiplicationResult: One result per multiplier, in input order.
func ExecuteMultiplications(ctx context.Context, multipliers []multiply.Multiplier, a, b string, cfg config.AppConfig, progressReporter ProgressReporter, out io.Writer) []MultiplicationResult {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	results := make([]MultiplicationResult, len(multipliers))
	progressChan := make(chan ProgressUpdate, len(multipliers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(multipliers), out)

	runs := max(cfg.Runs, 1)
	for i, m := range multipliers {
		g.Go(func() error {
			results[i] = runMultiplier(ctx, m, i, a, b, runs, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// runMultiplier times runs repetitions of one multiplier. Every run must
// produce the same product; a run that disagrees with the first is a defect.
func runMultiplier(ctx context.Context, m multiply.Multiplier, index int, a, b string, runs int, progressChan chan<- ProgressUpdate) MultiplicationResult {
	res := MultiplicationResult{Name: m.Name()}
	var total time.Duration
	for run := 1; run <= runs; run++ {
		start := time.Now()
		product, err := multiplyGuarded(ctx, m, a, b)
		elapsed := time.Since(start)
		if err != nil {
			res.Err = err
			break
		}
		if res.Runs > 0 && product != res.Product {
			res.Err = apperrors.CalculationError{
				Algorithm: res.Name,
				Cause:     errors.AssertionFailedf("run %d produced a different product", run),
			}
			break
		}
		res.Product = product
		res.Runs++
		total += elapsed
		if res.Best == 0 || elapsed < res.Best {
			res.Best = elapsed
		}

		select {
		case progressChan <- ProgressUpdate{AlgorithmIndex: index, Value: float64(run) / float64(runs)}:
		case <-ctx.Done():
		}
	}
	if res.Runs > 0 {
		res.Duration = total / time.Duration(res.Runs)
	}
	if res.Err != nil {
		res.Product = ""
	}
	return res
}

// multiplyGuarded converts an engine panic into a CalculationError.
func multiplyGuarded(ctx context.Context, m multiply.Multiplier, a, b string) (product string, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = errors.Newf("panic: %v", r)
			}
			err = apperrors.CalculationError{Algorithm: m.Name(), Cause: cause}
		}
	}()
	return m.Multiply(ctx, a, b)
}

// VerifyProduct checks a product against independent references: native
// uint64 arithmetic when both operands have at most nine digits, and
// math/big otherwise as well.
func VerifyProduct(a, b, product string) error {
	if len(a) <= nativeCheckDigits && len(b) <= nativeCheckDigits {
		x, errA := strconv.ParseUint(a, 10, 64)
		y, errB := strconv.ParseUint(b, 10, 64)
		if errA == nil && errB == nil {
			if want := strconv.FormatUint(x*y, 10); want != product {
				return errors.Newf("native check failed: %s x %s = %s, got %s", a, b, want, product)
			}
		}
	}
	x, okA := new(big.Int).SetString(a, 10)
	y, okB := new(big.Int).SetString(b, 10)
	if !okA || !okB {
		return errors.Newf("reference check: operands are not decimal integers")
	}
	if want := new(big.Int).Mul(x, y).String(); want != product {
		return errors.Newf("math/big check failed for %d x %d digit operands", len(a), len(b))
	}
	return nil
}

// AnalyzeComparisonResults sorts results by duration, checks that all
// successful algorithms agree with each other and with the reference
// multiplication, and presents the comparison.
//
// Parameters:
//   - results: The results to analyze.
//   - opts: Presentation options, including the operands.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps the first failure to an exit code when nothing succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []MultiplicationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *MultiplicationResult
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the multiplication.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Product != firstValid.Product {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree.\n", firstValid.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}
	if opts.A != "" || opts.B != "" {
		if err := VerifyProduct(opts.A, opts.B, firstValid.Product); err != nil {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", err)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
