package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("algo", "karatsuba"), "algo", "karatsuba"},
		{"Int", Int("digits", 42), "digits", 42},
		{"Uint64", Uint64("seed", 7), "seed", uint64(7)},
		{"Float64", Float64("ratio", 1.5), "ratio", 1.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("got {%q %v}, want {%q %v}", tt.field.Key, tt.field.Value, tt.key, tt.value)
			}
		})
	}

	testErr := errors.New("boom")
	if f := Err(testErr); f.Key != "error" || f.Value != testErr {
		t.Errorf("Err() = %+v", f)
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	return m
}

func TestZerologAdapterWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Info("run complete",
		String("algo", "toomcook-par"),
		Int("digits", 200),
		Uint64("seed", 42),
		Float64("seconds", 0.25),
		Duration("elapsed", 250*time.Millisecond),
	)

	m := decodeLine(t, &buf)
	if m["message"] != "run complete" || m["level"] != "info" {
		t.Errorf("unexpected envelope: %v", m)
	}
	if m["algo"] != "toomcook-par" || m["digits"] != float64(200) || m["seed"] != float64(42) {
		t.Errorf("missing fields: %v", m)
	}
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Error("multiply failed", errors.New("assertion failed"), String("algo", "naive"))

	m := decodeLine(t, &buf)
	if m["level"] != "error" || m["error"] != "assertion failed" || m["algo"] != "naive" {
		t.Errorf("unexpected error line: %v", m)
	}
}

func TestZerologAdapterDebugRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
	logger.Printf("shown %d", 3)
	if !strings.Contains(buf.String(), "shown 3") {
		t.Errorf("Printf output missing: %q", buf.String())
	}
}

func TestNewLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "calibration").Info("start")
	m := decodeLine(t, &buf)
	if m["component"] != "calibration" {
		t.Errorf("component = %v", m["component"])
	}
	if _, ok := m["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "bench").Info("hello", String("algo", "naive"))
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "algo=naive") {
		t.Errorf("console output = %q", out)
	}
}

func TestNop(t *testing.T) {
	// Must not panic and must not write anywhere.
	Nop().Error("x", errors.New("y"))
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	if !SetLevel("DEBUG") || zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("SetLevel(DEBUG) -> %v", zerolog.GlobalLevel())
	}
	if !SetLevel(" warn ") || zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("SetLevel(warn) -> %v", zerolog.GlobalLevel())
	}
	if SetLevel("chatty") || zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", zerolog.GlobalLevel())
	}
}
