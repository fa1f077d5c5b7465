package multiply

//go:generate mockgen -source=multiplier.go -destination=mocks/mock_multiplier.go -package=mocks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	multiplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigmul_multiplications_total",
			Help: "The total number of multiplications processed",
		},
		[]string{"algorithm", "status"},
	)
	multiplicationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigmul_multiplication_duration_seconds",
			Help:    "The duration of multiplications in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		},
		[]string{"algorithm"},
	)
)

// Multiplier is the public interface used by the orchestration layer to run
// a multiplication strategy.
type Multiplier interface {
	// Multiply returns the canonical decimal product of a and b. A malformed
	// operand yields an error matching apperrors.ErrMalformedInput. The
	// context is checked before the engine starts; engines themselves are not
	// interruptible.
	Multiply(ctx context.Context, a, b string) (string, error)

	// Name returns the registry name of the strategy (e.g. "karatsuba-par").
	Name() string
}

// Engine is a bare multiplication strategy without instrumentation. Every
// engine in this package implements it.
type Engine interface {
	MultiplyStrings(a, b string) (string, error)
	Name() string
}

// InstrumentedMultiplier decorates an Engine with a trace span,
// Prometheus metrics and a debug log line per multiplication.
type InstrumentedMultiplier struct {
	core Engine
}

// NewMultiplier wraps core. It panics if core is nil.
//
// Parameters:
//   - core: The strategy to wrap.
//
// Returns:
//   - Multiplier: The instrumented multiplier.
func NewMultiplier(core Engine) Multiplier {
	if core == nil {
		panic("multiply: the `Engine` implementation cannot be nil")
	}
	return &InstrumentedMultiplier{core: core}
}

// Name delegates to the wrapped strategy.
func (m *InstrumentedMultiplier) Name() string {
	return m.core.Name()
}

// Multiply runs the wrapped strategy and records its outcome. A panic from
// the strategy is recorded with status "panic" and then propagated.
func (m *InstrumentedMultiplier) Multiply(ctx context.Context, a, b string) (result string, err error) {
	algoName := m.core.Name()
	tracer := otel.Tracer("bigmul/multiply")
	_, span := tracer.Start(ctx, "Multiply", trace.WithAttributes(
		attribute.String("algorithm", algoName),
		attribute.Int("digits.a", len(a)),
		attribute.Int("digits.b", len(b)),
	))
	defer span.End()

	start := time.Now()
	status := "success"
	defer func() {
		r := recover()
		switch {
		case r != nil:
			status = "panic"
		case err != nil:
			status = "error"
		}
		duration := time.Since(start)
		multiplicationsTotal.WithLabelValues(algoName, status).Inc()
		multiplicationDuration.WithLabelValues(algoName).Observe(duration.Seconds())
		if status != "success" {
			span.SetStatus(codes.Error, status)
		}
		if err != nil {
			span.RecordError(err)
		}

		log.Debug().
			Str("algo", algoName).
			Int("digits_a", len(a)).
			Int("digits_b", len(b)).
			Dur("duration", duration).
			Str("status", status).
			Msg("multiplication completed")

		if r != nil {
			panic(r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.core.MultiplyStrings(a, b)
}
