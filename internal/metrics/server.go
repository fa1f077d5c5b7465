package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigmul/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var (
	activeBenchmarks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bigmul_active_benchmarks",
		Help: "Number of benchmark sessions currently running",
	})
	heapInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bigmul_heap_alloc_bytes",
		Help: "Heap bytes in use at the last benchmark sample",
	})
)

// BenchmarkStarted marks the start of a benchmark session. The returned
// function marks its end and records the heap in use at that moment.
func BenchmarkStarted(mc *MemoryCollector) func() {
	activeBenchmarks.Inc()
	return func() {
		heapInUse.Set(float64(mc.Snapshot().HeapAlloc))
		activeBenchmarks.Dec()
	}
}

// Handler returns the HTTP handler serving /metrics in the Prometheus text
// format. Non-GET requests are rejected.
func Handler() http.Handler {
	prom := promhttp.Handler()
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		prom.ServeHTTP(w, r)
	})
	return mux
}

// Serve exposes Handler on addr until ctx is done, then shuts the server
// down gracefully. It returns once the listener is bound; listen errors are
// returned directly.
func Serve(ctx context.Context, addr string, logger logging.Logger) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:           Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", err, logging.String("addr", ln.Addr().String()))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("metrics endpoint listening", logging.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}
