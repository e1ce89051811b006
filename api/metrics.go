package api

import (
	"sync"
	"time"
)

// AlertType identifies the kind of anomaly detected.
type AlertType string

const (
	AlertAuthFailureSpike AlertType = "auth_failure_spike"
	AlertEvictionBurst    AlertType = "eviction_burst"
)

// AlertEvent describes an anomaly that triggered an alert.
type AlertEvent struct {
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	Threshold int       `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertFunc is the callback invoked when an anomaly is detected.
type AlertFunc func(AlertEvent)

// metricsCollector tracks sliding window counters for anomaly detection.
type metricsCollector struct {
	mu sync.Mutex

	// Sliding window for authentication failures.
	authFailures  []time.Time
	authWindow    time.Duration
	authThreshold int

	// Sliding window for cap evictions.
	evictions         []time.Time
	evictionWindow    time.Duration
	evictionThreshold int

	alertFn AlertFunc
}

const (
	defaultAuthFailureWindow    = 1 * time.Minute
	defaultAuthFailureThreshold = 50
	defaultEvictionWindow       = 5 * time.Minute
	defaultEvictionThreshold    = 20
)

func newMetricsCollector(alertFn AlertFunc) *metricsCollector {
	return &metricsCollector{
		authWindow:        defaultAuthFailureWindow,
		authThreshold:     defaultAuthFailureThreshold,
		evictionWindow:    defaultEvictionWindow,
		evictionThreshold: defaultEvictionThreshold,
		alertFn:           alertFn,
	}
}

// recordEvent inspects an audit event and updates the relevant counters.
func (m *metricsCollector) recordEvent(event AuditEvent) {
	if m == nil || m.alertFn == nil {
		return
	}
	switch event {
	case AuditAuthFailure:
		m.recordAuthFailure()
	case AuditSessionsEvicted:
		m.recordEviction()
	}
}

func (m *metricsCollector) recordAuthFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.authFailures = append(m.authFailures, now)
	m.authFailures = trimWindow(m.authFailures, now, m.authWindow)

	if len(m.authFailures) >= m.authThreshold {
		m.alertFn(AlertEvent{
			Type:      AlertAuthFailureSpike,
			Message:   "authentication failure rate exceeds threshold",
			Count:     len(m.authFailures),
			Threshold: m.authThreshold,
			Timestamp: now,
		})
		// Reset to avoid repeated alerts within the same spike.
		m.authFailures = m.authFailures[:0]
	}
}

func (m *metricsCollector) recordEviction() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.evictions = append(m.evictions, now)
	m.evictions = trimWindow(m.evictions, now, m.evictionWindow)

	if len(m.evictions) >= m.evictionThreshold {
		m.alertFn(AlertEvent{
			Type:      AlertEvictionBurst,
			Message:   "session eviction rate exceeds threshold",
			Count:     len(m.evictions),
			Threshold: m.evictionThreshold,
			Timestamp: now,
		})
		m.evictions = m.evictions[:0]
	}
}

// trimWindow removes entries older than (now - window) from the sorted slice.
func trimWindow(times []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	start := 0
	for start < len(times) && times[start].Before(cutoff) {
		start++
	}
	return times[start:]
}
