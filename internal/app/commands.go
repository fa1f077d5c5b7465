package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agbru/bigmul/internal/calibration"
	"github.com/agbru/bigmul/internal/cli"
	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/logging"
	"github.com/agbru/bigmul/internal/metrics"
	"github.com/agbru/bigmul/internal/multiply"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/tui"
)

func (a *Application) newMulCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mul A B",
		Short: "Multiply two decimal integers",
		Long: `Multiply two non-negative decimal integers. With --algo all (the default)
every engine computes the product and the results are cross-checked.`,
		Example: "  bigmul mul 12345678901234567890 98765432109876543210 --algo karatsuba-par",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.exitCode = a.runMul(cmd.Context(), strings.TrimSpace(args[0]), strings.TrimSpace(args[1]))
			return nil
		},
	}
	config.BindFlags(cmd.Flags(), &a.Config, "algo", "output", "quiet", "verbose", "details", "auto-calibrate")
	return cmd
}

func (a *Application) newBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the engines on random operands",
		Long: `Multiply two random operands of --digits digits with every selected engine,
--runs times each, and compare the timings. Operands depend only on --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.exitCode = a.runBench(cmd.Context())
			return nil
		},
	}
	config.BindFlags(cmd.Flags(), &a.Config,
		"algo", "digits", "runs", "seed", "concurrency", "output", "quiet", "verbose", "details",
		"metrics-addr", "auto-calibrate")
	return cmd
}

func (a *Application) newCalibrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure the fastest engine thresholds for this machine",
		Long: `Time the parallel Karatsuba and Toom-Cook engines across candidate parallel
and recursion thresholds and save the fastest in the calibration profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.exitCode = a.runCalibrate(cmd.Context())
			return nil
		},
	}
	config.BindFlags(cmd.Flags(), &a.Config, "digits", "seed")
	return cmd
}

func (a *Application) newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the benchmark in an interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.exitCode = a.runTUI(cmd.Context())
			return nil
		},
	}
	config.BindFlags(cmd.Flags(), &a.Config, "algo", "digits", "runs", "seed", "concurrency", "auto-calibrate")
	return cmd
}

func (a *Application) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version, build and CPU information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			PrintVersion(a.Out)
			return nil
		},
	}
}

// runMul multiplies two user-supplied operands.
func (a *Application) runMul(ctx context.Context, x, y string) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	a.resolveThresholds(ctx, a.infoWriter())
	multipliers, code := a.selectMultipliers()
	if code != apperrors.ExitSuccess {
		return code
	}

	cfg := a.Config
	cfg.Runs = 1
	results := orchestration.ExecuteMultiplications(ctx, multipliers, x, y, cfg,
		orchestration.NullProgressReporter{}, io.Discard)
	return a.analyzeResults(results, x, y)
}

// runBench benchmarks the selected engines on reproducible random operands.
func (a *Application) runBench(ctx context.Context) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	a.resolveThresholds(ctx, a.infoWriter())
	multipliers, code := a.selectMultipliers()
	if code != apperrors.ExitSuccess {
		return code
	}

	if a.Config.MetricsAddr != "" {
		addr, err := metrics.Serve(ctx, a.Config.MetricsAddr, a.Logger)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: cannot serve metrics on %s: %v\n", a.Config.MetricsAddr, err)
			return apperrors.ExitErrorConfig
		}
		fmt.Fprintf(a.infoWriter(), "Metrics: http://%s/metrics\n", addr)
	}

	mc := metrics.NewMemoryCollector()
	finished := metrics.BenchmarkStarted(mc)
	defer finished()
	before := mc.Snapshot()

	x, y := orchestration.OperandPair(a.Config.Seed, a.Config.Digits)

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.Out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, a.Out)
		cli.PrintExecutionMode(multipliers, a.Out)
	}

	a.Logger.Info("benchmark started",
		logging.Int("algorithms", len(multipliers)),
		logging.Int("digits", a.Config.Digits),
		logging.Int("runs", a.Config.Runs),
		logging.Uint64("seed", a.Config.Seed))

	results := orchestration.ExecuteMultiplications(ctx, multipliers, x, y, a.Config, reporter, progressOut)
	code = a.analyzeResults(results, x, y)

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(mc.Snapshot().Since(before), a.Out)
	}
	return code
}

// runCalibrate measures and saves the fastest thresholds.
func (a *Application) runCalibrate(ctx context.Context) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	return calibration.RunCalibration(ctx, a.Out, a.Config, calibration.CalibrationOptions{
		ProfilePath: a.Config.CalibrationProfile,
		SaveProfile: true,
	}, a.Logger)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	a.resolveThresholds(ctx, io.Discard)
	multipliers, code := a.selectMultipliers()
	if code != apperrors.ExitSuccess {
		return code
	}
	return tui.Run(ctx, multipliers, a.Config, Version)
}

// selectMultipliers builds the registry with the resolved options and picks
// the configured algorithms.
func (a *Application) selectMultipliers() ([]multiply.Multiplier, int) {
	multipliers := orchestration.GetMultipliersToRun(a.Config, a.factory())
	if len(multipliers) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no multiplier matches %q\n", a.Config.Algo)
		return nil, apperrors.ExitErrorConfig
	}
	return multipliers, apperrors.ExitSuccess
}

// analyzeResults cross-checks the results and emits the agreed product. In
// quiet mode only the product is printed, and failures go to ErrWriter.
func (a *Application) analyzeResults(results []orchestration.MultiplicationResult, x, y string) int {
	opts := orchestration.PresentationOptions{A: x, B: y, Verbose: a.Config.Verbose, Details: a.Config.Details}
	presenter := cli.CLIResultPresenter{}

	out := a.Out
	if a.Config.Quiet {
		out = io.Discard
	}
	code := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, out)

	if code != apperrors.ExitSuccess {
		if a.Config.Quiet {
			a.reportQuietFailure(results, code)
		}
		a.Logger.Debug("multiplication failed", logging.Int("exit_code", code))
		return code
	}

	// AnalyzeComparisonResults sorts successful results first, fastest first.
	best := results[0]
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}

	var err error
	if a.Config.Quiet {
		err = cli.DisplayResultWithConfig(a.Out, best, x, y, outputCfg)
	} else if err = cli.WriteResultToFile(best, x, y, outputCfg); err == nil && outputCfg.OutputFile != "" {
		fmt.Fprintf(a.Out, "\nResult saved to: %s\n", outputCfg.OutputFile)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) reportQuietFailure(results []orchestration.MultiplicationResult, code int) {
	for _, r := range results {
		if r.Err != nil {
			apperrors.HandleCalculationError(r.Err, 0, a.ErrWriter, cli.CLIColorProvider{})
			return
		}
	}
	fmt.Fprintf(a.ErrWriter, "Error: the algorithms disagree (exit code %d)\n", code)
}

// infoWriter is where informational lines go: nowhere in quiet mode.
func (a *Application) infoWriter() io.Writer {
	if a.Config.Quiet {
		return io.Discard
	}
	return a.Out
}
