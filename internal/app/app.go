package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/agbru/bigmul/internal/calibration"
	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/logging"
	"github.com/agbru/bigmul/internal/multiply"
	"github.com/agbru/bigmul/internal/ui"
)

// FactoryFunc builds the multiplier registry once the engine options are
// resolved.
type FactoryFunc func(opts multiply.Options) multiply.MultiplierFactory

// Application represents the bigmul application instance.
type Application struct {
	Config     config.AppConfig
	NewFactory FactoryFunc
	Out        io.Writer
	ErrWriter  io.Writer
	Logger     logging.Logger

	exitCode int
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom factory constructor.
func WithFactory(f FactoryFunc) AppOption {
	return func(a *Application) { a.NewFactory = f }
}

// WithLogger sets the logger used by every command.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates an Application writing results to out and diagnostics to
// errWriter.
func New(out, errWriter io.Writer, opts ...AppOption) *Application {
	app := &Application{
		Config:    config.Default(),
		Out:       out,
		ErrWriter: errWriter,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.NewFactory == nil {
		app.NewFactory = func(o multiply.Options) multiply.MultiplierFactory { return multiply.NewFactory(o) }
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "bigmul")
	}
	return app
}

// Execute parses args, runs the selected command and returns its exit code.
// Usage and configuration errors map to apperrors.ExitErrorConfig.
func (a *Application) Execute(ctx context.Context, args []string) int {
	a.exitCode = apperrors.ExitSuccess

	root := a.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.ErrWriter)

	if err := root.ExecuteContext(ctx); err != nil {
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(a.ErrWriter, "%sConfiguration error:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		} else {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			fmt.Fprintf(a.ErrWriter, "Run 'bigmul --help' for usage.\n")
		}
		return apperrors.ExitErrorConfig
	}
	return a.exitCode
}

// NewRootCommand builds the command tree. Global flags are persistent; every
// subcommand binds the subset of flags it understands.
func (a *Application) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bigmul",
		Short: "Arbitrary-precision decimal multiplication engines and benchmarks",
		Long: `bigmul multiplies non-negative decimal integers of any length with
schoolbook, Karatsuba and Toom-Cook-3 engines, each in a sequential and a
parallel variant, and benchmarks them against each other.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolveConfig(cmd)
		},
	}
	root.SetVersionTemplate("bigmul {{.Version}}\n")

	config.BindFlags(root.PersistentFlags(), &a.Config,
		slices.Concat(config.GlobalFlags, []string{"calibration-profile"})...)

	root.AddCommand(
		a.newMulCommand(),
		a.newBenchCommand(),
		a.newCalibrateCommand(),
		a.newTUICommand(),
		a.newVersionCommand(),
	)
	return root
}

// resolveConfig layers environment variables and the configuration file under
// the parsed flags, validates the result, then applies the log level and
// color theme.
func (a *Application) resolveConfig(cmd *cobra.Command) error {
	if err := config.Resolve(cmd.Flags(), &a.Config); err != nil {
		return err
	}
	ui.InitTheme(a.Config.NoColor)
	if err := a.Config.Validate(a.NewFactory(multiply.DefaultOptions()).List()); err != nil {
		return err
	}
	logging.SetLevel(a.Config.LogLevel)
	return nil
}

// resolveThresholds completes the engine tuning: a valid cached calibration
// profile first, then a quick auto-calibration when enabled, then the
// hardware estimate for whatever is still unset.
func (a *Application) resolveThresholds(ctx context.Context, out io.Writer) {
	if cfg, ok := calibration.LoadCachedThresholds(a.Config); ok {
		a.Config = cfg
	} else if a.Config.AutoCalibrate {
		if cfg, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.Logger); ok {
			a.Config = cfg
		}
	}
	a.Config = config.ApplyAdaptiveThresholds(a.Config)
	a.Logger.Debug("engine thresholds resolved",
		logging.Int("recursion_threshold", a.Config.RecursionThreshold),
		logging.Int("parallel_threshold", a.Config.ParallelThreshold),
		logging.Int("workers", a.Config.Workers))
}

// factory builds the registry with the resolved engine options.
func (a *Application) factory() multiply.MultiplierFactory {
	return a.NewFactory(a.Config.EngineOptions())
}
