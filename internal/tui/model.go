package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/multiply"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight   = 1
	footerHeight   = 1
	minBodyHeight  = 8
	sampleInterval = 500 * time.Millisecond
)

// AlgorithmsPanelPercent is the share of the width given to the table.
const AlgorithmsPanelPercent = 62

// ExecutionState holds the benchmark run of one generation. Rerunning bumps
// the generation so messages from the cancelled run are ignored.
type ExecutionState struct {
	ctx         context.Context
	cancel      context.CancelFunc
	multipliers []multiply.Multiplier
	a, b        string
	generation  uint64
	done        bool
	exitCode    int
}

// LayoutManager holds the terminal dimensions.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) algorithmsWidth() int {
	return l.width * AlgorithmsPanelPercent / 100
}

func (l LayoutManager) metricsWidth() int {
	return l.width - l.algorithmsWidth()
}

// Model is the root bubbletea model of the benchmark dashboard.
type Model struct {
	header     HeaderModel
	algorithms AlgorithmsModel
	metrics    MetricsModel
	footer     FooterModel
	spin       spinner.Model

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
	paused    bool
}

// NewModel creates the dashboard for multipliers benchmarked on operands
// derived from cfg.Seed and cfg.Digits.
func NewModel(parentCtx context.Context, multipliers []multiply.Multiplier, cfg config.AppConfig, version string) Model {
	names := make([]string, len(multipliers))
	for i, m := range multipliers {
		names[i] = m.Name()
	}
	a, b := orchestration.OperandPair(cfg.Seed, cfg.Digits)
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	return Model{
		header:     NewHeaderModel(version, cfg.Digits),
		algorithms: NewAlgorithmsModel(names),
		metrics:    NewMetricsModel(),
		footer:     NewFooterModel(keymap.ShortHelp()),
		spin:       spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(elapsedStyle)),
		keymap:     keymap,
		ExecutionState: ExecutionState{
			ctx:         ctx,
			cancel:      cancel,
			multipliers: multipliers,
			a:           a,
			b:           b,
			exitCode:    apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
	}
}

// Init starts the benchmark, the sampling tick and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spin.Tick,
		startBenchmarkCmd(m.ref, m.ctx, m.multipliers, m.a, m.b, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Generation == m.generation && !m.paused {
			m.algorithms.UpdateProgress(msg.AlgorithmIndex, msg.Value)
			m.metrics.UpdateProgress(msg.AverageProgress, msg.ETA)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation == m.generation {
			m.algorithms.SetResults(msg.Results)
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			m.algorithms.SetProduct(msg.Result.Product)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.algorithms.SetFailure(msg.Err)
			m.footer.SetError(true)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case BenchmarkCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		if msg.ExitCode != apperrors.ExitSuccess {
			m.footer.SetError(true)
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.algorithms.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			m.spin.Tick,
			startBenchmarkCmd(m.ref, m.ctx, m.multipliers, m.a, m.b, m.config, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.algorithms.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.algorithms.MoveCursor(1)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	spin := ""
	if !m.done {
		spin = m.spin.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.algorithms.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(spin), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.algorithms.SetSize(m.algorithmsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
}

// ExitCode returns the exit code of the finished benchmark.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Run starts the dashboard and returns the benchmark's exit code.
func Run(ctx context.Context, multipliers []multiply.Multiplier, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, multipliers, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := finalModel.(Model); ok {
		fm.cancel()
		return fm.ExitCode()
	}
	return apperrors.ExitSuccess
}

// startBenchmarkCmd runs the benchmark in the background and reports the
// exit code once every algorithm finished.
func startBenchmarkCmd(ref *programRef, ctx context.Context, multipliers []multiply.Multiplier, a, b string, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		presenter := &TUIResultPresenter{ref: ref, gen: gen}

		results := orchestration.ExecuteMultiplications(ctx, multipliers, a, b, cfg, reporter, io.Discard)
		opts := orchestration.PresentationOptions{A: a, B: b, Verbose: cfg.Verbose, Details: cfg.Details}
		exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, io.Discard)

		return BenchmarkCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			HeapAlloc:    ms.HeapAlloc,
			Sys:          ms.Sys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg{Stats: sysmon.Sample()}
	}
}

// watchContextCmd reports the cancellation of one generation's context.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
