package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/multiply"
	"github.com/agbru/bigmul/internal/orchestration"
	"github.com/agbru/bigmul/internal/sysmon"
)

func testModel(t *testing.T) Model {
	t.Helper()
	factory := multiply.NewFactory(multiply.Options{RecursionThreshold: 16})
	multipliers := []multiply.Multiplier{factory.MustGet("karatsuba"), factory.MustGet("toomcook")}
	cfg := config.AppConfig{Digits: 80, Runs: 2, Seed: 42}
	m := NewModel(context.Background(), multipliers, cfg, "v1.0.0")
	t.Cleanup(m.cancel)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(context.Background(), nil, config.AppConfig{Digits: 10}, "dev")
	defer m.cancel()
	if m.View() != "Initializing..." {
		t.Errorf("unexpected view before the first resize: %q", m.View())
	}
}

func TestModel_ProgressAndResults(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, ProgressMsg{AlgorithmIndex: 1, Value: 0.5, AverageProgress: 0.25, ETA: time.Second})
	if m.algorithms.progress[1] != 0.5 || m.metrics.progress != 0.25 {
		t.Fatalf("progress not applied: %v %v", m.algorithms.progress, m.metrics.progress)
	}

	m, _ = update(t, m, ProgressMsg{AlgorithmIndex: 0, Value: 1, Generation: 7})
	if m.algorithms.progress[0] != 0 {
		t.Error("progress from another generation must be ignored")
	}

	results := []orchestration.MultiplicationResult{
		{Name: "karatsuba", Product: "42", Duration: time.Millisecond, Best: time.Millisecond, Runs: 2},
		{Name: "toomcook", Err: errors.New("boom"), Runs: 0},
	}
	m, _ = update(t, m, ComparisonResultsMsg{Results: results})
	m, _ = update(t, m, FinalResultMsg{Result: results[0]})
	m, _ = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitSuccess})

	if !m.done || m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("expected a finished run, done=%v exit=%d", m.done, m.ExitCode())
	}
	view := m.View()
	for _, want := range []string{"bigmul bench v1.0.0", "80 digits", "karatsuba", "OK", "FAIL", "Product (2 digits)", "DONE"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, ErrorMsg{Err: errors.New("all engines failed")})
	m, _ = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitErrorGeneric})
	if m.footer.Status() != "FAILED" {
		t.Errorf("status = %s, want FAILED", m.footer.Status())
	}
	if !strings.Contains(m.View(), "all engines failed") {
		t.Error("failure should be shown")
	}
}

func TestModel_StaleCompletionIgnored(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, BenchmarkCompleteMsg{Generation: 3})
	if m.done {
		t.Error("completion from another generation must be ignored")
	}
	m, cmd := update(t, m, ContextCancelledMsg{Generation: 3})
	if m.done || cmd != nil {
		t.Error("cancellation from another generation must be ignored")
	}
}

func TestModel_Keys(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.algorithms.Selected() != "toomcook" {
		t.Errorf("selected = %s after down", m.algorithms.Selected())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.algorithms.Selected() != "toomcook" {
		t.Error("cursor must stay on the last row")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.algorithms.Selected() != "karatsuba" {
		t.Errorf("selected = %s after up", m.algorithms.Selected())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !m.paused || m.footer.Status() != "PAUSED" {
		t.Error("p should pause")
	}
	m, _ = update(t, m, ProgressMsg{AlgorithmIndex: 0, Value: 1})
	if m.algorithms.progress[0] != 0 {
		t.Error("progress must not update while paused")
	}

	gen := m.generation
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.generation != gen+1 || m.paused || cmd == nil {
		t.Error("r should start a new generation")
	}
	m.cancel()

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_Sampling(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, MemStatsMsg{HeapAlloc: 2048, Sys: 4096, NumGC: 3, NumGoroutine: 9})
	m, _ = update(t, m, SysStatsMsg{Stats: sysmon.Stats{CPUPercent: 50, MemPercent: 25, MemAvailable: 1 << 30, LogicalCores: 8}})
	view := m.metrics.View()
	for _, want := range []string{"2.0 KiB / 4.0 KiB", "Goroutines:", "9", "CPU", "50.0%", "▄", "8 cores, 1.0 GiB free"} {
		if !strings.Contains(view, want) {
			t.Errorf("metrics view should contain %q:\n%s", want, view)
		}
	}

	if _, cmd := update(t, m, TickMsg(time.Now())); cmd == nil {
		t.Error("tick should schedule sampling while running")
	}
	m.done = true
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("tick should stop once done")
	}
}

func TestStartBenchmarkCmd(t *testing.T) {
	factory := multiply.NewFactory(multiply.Options{RecursionThreshold: 16})
	multipliers := []multiply.Multiplier{factory.MustGet("naive"), factory.MustGet("karatsuba-par")}
	a, b := orchestration.OperandPair(1, 100)

	msg := startBenchmarkCmd(&programRef{}, context.Background(), multipliers, a, b, config.AppConfig{Runs: 1}, 4)()
	done, ok := msg.(BenchmarkCompleteMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if done.ExitCode != apperrors.ExitSuccess || done.Generation != 4 {
		t.Errorf("unexpected completion %+v", done)
	}
}

func TestWatchContextCmd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg := watchContextCmd(ctx, 2)().(ContextCancelledMsg)
	if !errors.Is(msg.Err, context.Canceled) || msg.Generation != 2 {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"toomcook-par", 8, "toomcoo…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
