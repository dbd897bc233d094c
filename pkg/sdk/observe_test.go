package hoodmatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), 0, nil)
	obs.observe("test", time.Now(), -1, errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("match", time.Now().Add(-10*time.Millisecond), 8, nil)
	obs.observe("match", time.Now(), -1, errors.New("fail"))

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("match", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("match", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(obs.metrics.results); n != 1 {
		t.Errorf("results series = %d, want 1", n)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered collector to be reused")
	}
}

func TestObserver_IncompatibleCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hoodmatch",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "Total SDK operations by type and status.",
	}))
	if _, err := newObserver(nil, reg); err == nil {
		t.Fatal("expected error for incompatible collector")
	}
}

func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs, err := newObserver(logger, nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now(), 3, nil)
	obs.observe("search", time.Now(), -1, errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "operation completed") || !strings.Contains(out, "operation failed") {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestClient_RecordsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newClient(t, WithPrometheus(reg))

	if _, err := c.Match(context.Background(), Preferences{1, 1, 1, 1, 1}, 0); err != nil {
		t.Fatalf("Match: %v", err)
	}
	_, _ = c.Match(context.Background(), Preferences{}, 0)

	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("match", "ok")); got != 1 {
		t.Errorf("match ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("match", "error")); got != 1 {
		t.Errorf("match error = %v, want 1", got)
	}
}
