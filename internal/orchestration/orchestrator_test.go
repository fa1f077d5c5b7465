package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/bigmul/internal/config"
	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/multiply"
	"github.com/agbru/bigmul/internal/multiply/mocks"
)

// stubPresenter records what was presented.
type stubPresenter struct {
	table  []MultiplicationResult
	result *MultiplicationResult
}

func (s *stubPresenter) PresentComparisonTable(results []MultiplicationResult, _ io.Writer) {
	s.table = results
}

func (s *stubPresenter) PresentResult(result MultiplicationResult, _ PresentationOptions, _ io.Writer) {
	s.result = &result
}

type stubErrorHandler struct{}

func (stubErrorHandler) HandleError(error, time.Duration, io.Writer) int {
	return apperrors.ExitErrorGeneric
}

func newMock(ctrl *gomock.Controller, name string) *mocks.MockMultiplier {
	m := mocks.NewMockMultiplier(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	return m
}

func TestExecuteMultiplications(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	ok := newMock(ctrl, "ok")
	ok.EXPECT().Multiply(gomock.Any(), "12", "34").Return("408", nil).Times(3)
	failing := newMock(ctrl, "failing")
	failing.EXPECT().Multiply(gomock.Any(), "12", "34").Return("", errors.New("mock error")).Times(1)
	panicking := newMock(ctrl, "panicking")
	panicking.EXPECT().Multiply(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, string) (string, error) { panic("entry 3 is not divisible by 2") },
	).Times(1)

	cfg := config.AppConfig{Runs: 3, Concurrency: 2}
	results := ExecuteMultiplications(context.Background(), []multiply.Multiplier{ok, failing, panicking}, "12", "34", cfg, NullProgressReporter{}, io.Discard)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if r := results[0]; r.Err != nil || r.Product != "408" || r.Runs != 3 || r.Best > r.Duration*3 {
		t.Errorf("unexpected ok result: %+v", r)
	}
	if r := results[1]; r.Err == nil || r.Product != "" || r.Runs != 0 {
		t.Errorf("unexpected failing result: %+v", r)
	}
	var ce apperrors.CalculationError
	if !errors.As(results[2].Err, &ce) || ce.Algorithm != "panicking" {
		t.Errorf("panic should be reported as CalculationError, got %v", results[2].Err)
	}
}

func TestExecuteMultiplicationsDetectsUnstableRuns(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	m := newMock(ctrl, "flaky")
	gomock.InOrder(
		m.EXPECT().Multiply(gomock.Any(), gomock.Any(), gomock.Any()).Return("1", nil),
		m.EXPECT().Multiply(gomock.Any(), gomock.Any(), gomock.Any()).Return("2", nil),
	)
	results := ExecuteMultiplications(context.Background(), []multiply.Multiplier{m}, "1", "1", config.AppConfig{Runs: 5}, NullProgressReporter{}, io.Discard)
	if results[0].Err == nil || results[0].Runs != 1 {
		t.Errorf("expected instability error after one run, got %+v", results[0])
	}
}

func TestExecuteMultiplicationsReportsProgress(t *testing.T) {
	t.Parallel()
	factory := multiply.NewFactory(multiply.Options{RecursionThreshold: 16})
	multipliers := []multiply.Multiplier{factory.MustGet("karatsuba"), factory.MustGet("toomcook")}

	var (
		mu      sync.Mutex
		updates []ProgressUpdate
	)
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		if n != 2 {
			t.Errorf("numAlgorithms = %d, want 2", n)
		}
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})

	a, b := OperandPair(7, 120)
	results := ExecuteMultiplications(context.Background(), multipliers, a, b, config.AppConfig{Runs: 2}, reporter, io.Discard)
	if len(updates) != 4 {
		t.Errorf("expected 4 progress updates, got %d", len(updates))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Name, r.Err)
		}
		if err := VerifyProduct(a, b, r.Product); err != nil {
			t.Errorf("%s: %v", r.Name, err)
		}
	}
}

// TestExecuteMultiplicationsNoDeadlockOnCancel verifies that cancelling the
// context while runners are blocked on progress does not hang.
func TestExecuteMultiplicationsNoDeadlockOnCancel(t *testing.T) {
	t.Parallel()
	factory := multiply.NewDefaultFactory()
	multipliers := []multiply.Multiplier{factory.MustGet("naive"), factory.MustGet("karatsuba")}

	ctx, cancel := context.WithCancel(context.Background())
	block := make(chan struct{})
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		<-block
		DrainChannel(ch)
	})

	done := make(chan []MultiplicationResult)
	go func() {
		done <- ExecuteMultiplications(ctx, multipliers, "99", "99", config.AppConfig{Runs: 50}, reporter, io.Discard)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(block)

	select {
	case results := <-done:
		for _, r := range results {
			if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
				t.Errorf("%s: unexpected error %v", r.Name, r.Err)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: ExecuteMultiplications did not return after cancellation")
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		opts           PresentationOptions
		results        []MultiplicationResult
		expectedStatus int
	}{
		{
			name: "All success",
			opts: PresentationOptions{A: "999", B: "999"},
			results: []MultiplicationResult{
				{Name: "A", Product: "998001", Duration: 2 * time.Millisecond},
				{Name: "B", Product: "998001", Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []MultiplicationResult{
				{Name: "A", Product: "5", Duration: time.Millisecond},
				{Name: "B", Product: "6", Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "Agree but wrong",
			opts: PresentationOptions{A: "999", B: "999"},
			results: []MultiplicationResult{
				{Name: "A", Product: "998002", Duration: time.Millisecond},
				{Name: "B", Product: "998002", Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			results: []MultiplicationResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			opts: PresentationOptions{A: "12", B: "34"},
			results: []MultiplicationResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Product: "408", Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &stubPresenter{}
			var out strings.Builder
			status := AnalyzeComparisonResults(tt.results, tt.opts, p, stubErrorHandler{}, &out)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, status, out.String())
			}
			if len(p.table) != len(tt.results) {
				t.Error("comparison table not presented")
			}
			if status == apperrors.ExitSuccess && p.result == nil {
				t.Error("result not presented on success")
			}
		})
	}
}

func TestAnalyzeSortsByDuration(t *testing.T) {
	t.Parallel()
	results := []MultiplicationResult{
		{Name: "slow", Product: "1", Duration: 3 * time.Second},
		{Name: "failed", Err: errors.New("x")},
		{Name: "fast", Product: "1", Duration: time.Second},
	}
	AnalyzeComparisonResults(results, PresentationOptions{}, &stubPresenter{}, stubErrorHandler{}, io.Discard)
	got := []string{results[0].Name, results[1].Name, results[2].Name}
	if strings.Join(got, ",") != "fast,slow,failed" {
		t.Errorf("order = %v", got)
	}
}

func TestVerifyProduct(t *testing.T) {
	t.Parallel()
	if err := VerifyProduct("123456789", "987654321", "121932631112635269"); err != nil {
		t.Errorf("native-size product rejected: %v", err)
	}
	if err := VerifyProduct("123456789", "987654321", "121932631112635268"); err == nil {
		t.Error("wrong native-size product accepted")
	}
	a, b := strings.Repeat("9", 30), strings.Repeat("9", 20)
	want := strings.Repeat("9", 19) + "8" + strings.Repeat("9", 10) + strings.Repeat("0", 19) + "1"
	if err := VerifyProduct(a, b, want); err != nil {
		t.Errorf("big product rejected: %v", err)
	}
	if err := VerifyProduct(a, b, "1"); err == nil {
		t.Error("wrong big product accepted")
	}
}

func TestOperandPair(t *testing.T) {
	t.Parallel()
	a1, b1 := OperandPair(42, 200)
	a2, b2 := OperandPair(42, 200)
	if a1 != a2 || b1 != b2 {
		t.Error("operands must depend only on the seed")
	}
	if len(a1) != 200 || len(b1) != 200 || a1[0] == '0' || b1[0] == '0' {
		t.Errorf("bad operands %q %q", a1[:5], b1[:5])
	}
	if a3, _ := OperandPair(43, 200); a3 == a1 {
		t.Error("different seeds should give different operands")
	}
	if RandomOperand(nil, 0) != "0" {
		t.Error("zero-length operand should be 0")
	}
}

func TestGetMultipliersToRun(t *testing.T) {
	t.Parallel()
	factory := multiply.NewDefaultFactory()

	all := GetMultipliersToRun(config.AppConfig{Algo: "all"}, factory)
	if len(all) != len(factory.List()) {
		t.Errorf("expected %d multipliers, got %d", len(factory.List()), len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name() > all[i].Name() {
			t.Errorf("not sorted: %s before %s", all[i-1].Name(), all[i].Name())
		}
	}

	one := GetMultipliersToRun(config.AppConfig{Algo: "Karatsuba"}, factory)
	if len(one) != 1 || one[0].Name() != "karatsuba" {
		t.Errorf("unexpected selection %v", one)
	}
	if got := GetMultipliersToRun(config.AppConfig{Algo: "fft"}, factory); got != nil {
		t.Errorf("unknown algorithm should select nothing, got %v", got)
	}
}

func TestProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil {
		t.Error("expected nil aggregator for zero algorithms")
	}
	agg := NewProgressAggregator(2)
	got := agg.Update(ProgressUpdate{AlgorithmIndex: 0, Value: 1})
	if got.AverageProgress != 0.5 || agg.NumAlgorithms() != 2 {
		t.Errorf("unexpected aggregate %+v", got)
	}
	agg.Update(ProgressUpdate{AlgorithmIndex: 1, Value: 1})
	if agg.CalculateAverage() != 1 || agg.GetETA() != 0 {
		t.Errorf("complete progress should have zero ETA, got %v", agg.GetETA())
	}
}
