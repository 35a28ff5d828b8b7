package courseauth

import (
	"sync"
	"testing"
)

func TestMetricsIncAndValue(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginFailure)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Fatalf("MetricLoginSuccess = %d, want 2", got)
	}
	if got := m.Value(MetricLoginFailure); got != 1 {
		t.Fatalf("MetricLoginFailure = %d, want 1", got)
	}
	if got := m.Value(MetricRegisterSuccess); got != 0 {
		t.Fatalf("untouched counter = %d, want 0", got)
	}
}

func TestMetricsDisabledIsNoop(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled metrics recorded %d", got)
	}
	if m.Enabled() {
		t.Fatal("Enabled must report false")
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("nil metrics returned %d", got)
	}
	if snap := m.Snapshot(); snap.Counters == nil {
		t.Fatal("snapshot of nil metrics must still return a map")
	}
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricResetSuccess)

	snap := m.Snapshot()
	if snap.Counters[MetricResetSuccess] != 1 {
		t.Fatalf("snapshot = %d, want 1", snap.Counters[MetricResetSuccess])
	}

	m.Inc(MetricResetSuccess)
	if snap.Counters[MetricResetSuccess] != 1 {
		t.Fatal("snapshot must not track later increments")
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.Inc(MetricVerifySuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricVerifySuccess); got != goroutines*perGoroutine {
		t.Fatalf("concurrent count = %d, want %d", got, goroutines*perGoroutine)
	}
}
