package calibration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/agbru/bigmul/internal/cli"
	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/format"
	"github.com/agbru/bigmul/internal/logging"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/ui"
)

// QuickCalibrationDigits is the operand length used by AutoCalibrate.
const QuickCalibrationDigits = 8192

// CalibrationOptions configures the calibration process.
type CalibrationOptions struct {
	// ProfilePath is the path to save/load the calibration profile.
	// If empty, uses the default path.
	ProfilePath string
	// SaveProfile indicates whether to save the calibration results.
	SaveProfile bool
	// LoadProfile reuses a valid existing profile instead of measuring.
	LoadProfile bool
}

// RunCalibration searches the parallel threshold, then the recursion
// threshold, that minimise the combined time of the parallel Karatsuba and
// Toom-Cook engines on two random cfg.Digits-digit operands.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - out: The writer for progress and results.
//   - cfg: Supplies the operand length, seed and worker count.
//   - opts: Profile persistence options.
//   - logger: Receives a structured record of the outcome.
//
// Returns:
//   - int: The exit code (0 for success, non-zero for errors).
func RunCalibration(ctx context.Context, out io.Writer, cfg config.AppConfig, opts CalibrationOptions, logger logging.Logger) int {
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Optimal Engine Thresholds ---\n")

	if opts.LoadProfile {
		if profile, loaded := LoadOrCreateProfile(opts.ProfilePath); loaded {
			fmt.Fprintf(out, "%sLoaded existing calibration profile from %s%s\n",
				ui.ColorGreen(), resolvePath(opts.ProfilePath), ui.ColorReset())
			fmt.Fprintf(out, "Profile: %s\n", profile.String())
			printRecommendation(out, profile.OptimalParallelThreshold, profile.OptimalRecursionThreshold)
			return apperrors.ExitSuccess
		}
	}

	parallelCandidates := GenerateParallelThresholds()
	recursionCandidates := GenerateRecursionThresholds()
	fmt.Fprintf(out, "%sUsing adaptive thresholds for %d CPU cores, operands of %s%s\n",
		ui.ColorCyan(), runtime.NumCPU(), format.FormatDigitCount(cfg.Digits), ui.ColorReset())

	a, b := orchestration.OperandPair(cfg.Seed, cfg.Digits)
	runner := newCalibrationRunner(ctx, a, b, cfg.Workers)

	total := len(parallelCandidates) + len(recursionCandidates)
	progressChan := make(chan orchestration.ProgressUpdate, total)
	done := 0
	runner.onTrial = func() {
		done++
		progressChan <- orchestration.ProgressUpdate{AlgorithmIndex: 0, Value: float64(done) / float64(total)}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, 1, out)

	start := time.Now()
	bestParallel, parallelResults := runner.findBestParallelThreshold(
		parallelCandidates, EstimateOptimalRecursionThreshold(), EstimateOptimalParallelThreshold())
	bestRecursion, recursionResults := runner.findBestRecursionThreshold(
		recursionCandidates, bestParallel, EstimateOptimalRecursionThreshold())
	elapsed := time.Since(start)

	close(progressChan)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
		return apperrors.HandleCalculationError(err, elapsed, out, cli.CLIColorProvider{})
	}
	if !anySucceeded(parallelResults) || !anySucceeded(recursionResults) {
		fmt.Fprintf(out, "\n%sCalibration failed: no valid results obtained.%s\n", ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	printCalibrationResults(out, "Parallel threshold", parallelResults, bestParallel)
	printCalibrationResults(out, "Recursion threshold", recursionResults, bestRecursion)
	printRecommendation(out, bestParallel, bestRecursion)

	logger.Info("calibration completed",
		logging.Int("parallel_threshold", bestParallel),
		logging.Int("recursion_threshold", bestRecursion),
		logging.Int("digits", cfg.Digits),
		logging.Duration("elapsed", elapsed))

	if opts.SaveProfile {
		profile := newMeasuredProfile(bestParallel, bestRecursion, cfg.Digits, elapsed)
		if err := profile.SaveProfile(opts.ProfilePath); err != nil {
			fmt.Fprintf(out, "%sWarning: failed to save profile: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
			logger.Error("failed to save calibration profile", err)
		} else {
			fmt.Fprintf(out, "%sCalibration profile saved to %s%s\n",
				ui.ColorGreen(), resolvePath(opts.ProfilePath), ui.ColorReset())
		}
	}

	return apperrors.ExitSuccess
}

// AutoCalibrate fills the zero tuning fields of cfg before a run. A valid
// cached profile is used as is; otherwise a quick search over a reduced
// candidate set is run on QuickCalibrationDigits-digit operands and saved.
//
// Parameters:
//   - ctx: The context bounding the quick search.
//   - cfg: The configuration to complete.
//   - out: The writer for the one-line summary.
//   - logger: Receives a structured record of the outcome.
//
// Returns:
//   - config.AppConfig: The updated configuration.
//   - bool: True if thresholds came from a profile or a successful search.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, logger logging.Logger) (config.AppConfig, bool) {
	if profile, loaded := LoadOrCreateProfile(cfg.CalibrationProfile); loaded {
		logger.Debug("using cached calibration profile", logging.String("profile", profile.String()))
		return profile.ApplyTo(cfg), true
	}

	a, b := orchestration.OperandPair(cfg.Seed, QuickCalibrationDigits)
	runner := newCalibrationRunner(ctx, a, b, cfg.Workers)

	start := time.Now()
	bestParallel, parallelResults := runner.findBestParallelThreshold(
		GenerateQuickParallelThresholds(), EstimateOptimalRecursionThreshold(), EstimateOptimalParallelThreshold())
	bestRecursion, recursionResults := runner.findBestRecursionThreshold(
		GenerateQuickRecursionThresholds(), bestParallel, EstimateOptimalRecursionThreshold())
	elapsed := time.Since(start)

	if ctx.Err() != nil || !anySucceeded(parallelResults) || !anySucceeded(recursionResults) {
		logger.Debug("auto-calibration skipped", logging.Duration("elapsed", elapsed))
		return cfg, false
	}

	profile := newMeasuredProfile(bestParallel, bestRecursion, QuickCalibrationDigits, elapsed)
	if err := profile.SaveProfile(cfg.CalibrationProfile); err != nil {
		logger.Error("failed to save calibration profile", err)
	}

	cfg = profile.ApplyTo(cfg)
	printCalibrationOutput(cfg, out)
	return cfg, true
}

// LoadCachedThresholds applies a valid profile at cfg.CalibrationProfile
// without measuring anything. It reports whether a profile was applied.
func LoadCachedThresholds(cfg config.AppConfig) (config.AppConfig, bool) {
	profile, loaded := LoadOrCreateProfile(cfg.CalibrationProfile)
	if !loaded {
		return cfg, false
	}
	return profile.ApplyTo(cfg), true
}

func newMeasuredProfile(parallel, recursion, digits int, elapsed time.Duration) *CalibrationProfile {
	profile := NewProfile()
	profile.OptimalParallelThreshold = parallel
	profile.OptimalRecursionThreshold = recursion
	profile.CalibrationDigits = digits
	profile.CalibrationTime = elapsed.String()
	return profile
}

func anySucceeded(results []calibrationResult) bool {
	for _, r := range results {
		if r.Err == nil {
			return true
		}
	}
	return false
}
