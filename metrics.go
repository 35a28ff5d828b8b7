package courseauth

import "sync/atomic"

// MetricID identifies one in-process counter.
type MetricID uint16

const (
	// MetricRegisterSuccess counts accounts created through Register.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterDuplicate counts Register calls rejected for an existing email.
	MetricRegisterDuplicate
	// MetricVerifySuccess counts consumed verification codes.
	MetricVerifySuccess
	// MetricVerifyFailure counts rejected verification attempts.
	MetricVerifyFailure
	// MetricLoginSuccess counts issued login tokens.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected logins.
	MetricLoginFailure
	// MetricResetRequest counts issued reset challenges.
	MetricResetRequest
	// MetricResetSuccess counts completed password resets.
	MetricResetSuccess
	// MetricResetFailure counts rejected reset attempts.
	MetricResetFailure
	// MetricDeliveryFailure counts notifier delivery errors.
	MetricDeliveryFailure
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free counters for the engine's observable outcomes.
// All operations are no-ops when disabled.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// NewMetrics creates a counter set configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot deep-copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.Value(id)
	}
	return snap
}
