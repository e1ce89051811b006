package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAuthFailureSpike(t *testing.T) {
	var alerts []AlertEvent
	m := newMetricsCollector(func(e AlertEvent) { alerts = append(alerts, e) })

	for i := 0; i < defaultAuthFailureThreshold-1; i++ {
		m.recordEvent(AuditAuthFailure)
	}
	assert.Empty(t, alerts)

	m.recordEvent(AuditAuthFailure)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertAuthFailureSpike, alerts[0].Type)
	assert.Equal(t, defaultAuthFailureThreshold, alerts[0].Count)

	// The window resets after alerting so a single extra failure stays quiet.
	m.recordEvent(AuditAuthFailure)
	assert.Len(t, alerts, 1)
}

func TestMetricsEvictionBurst(t *testing.T) {
	var alerts []AlertEvent
	m := newMetricsCollector(func(e AlertEvent) { alerts = append(alerts, e) })

	for i := 0; i < defaultEvictionThreshold; i++ {
		m.recordEvent(AuditSessionsEvicted)
	}
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertEvictionBurst, alerts[0].Type)
}

func TestMetricsIgnoresUnrelatedEvents(t *testing.T) {
	var alerts []AlertEvent
	m := newMetricsCollector(func(e AlertEvent) { alerts = append(alerts, e) })

	for i := 0; i < 1000; i++ {
		m.recordEvent(AuditSessionCreated)
	}
	assert.Empty(t, alerts)
}

func TestMetricsNilSafe(t *testing.T) {
	var m *metricsCollector
	m.recordEvent(AuditAuthFailure)

	// Collector without an alert func is inert.
	m = newMetricsCollector(nil)
	m.recordEvent(AuditAuthFailure)
}

func TestTrimWindow(t *testing.T) {
	now := time.Now()
	times := []time.Time{
		now.Add(-3 * time.Minute),
		now.Add(-90 * time.Second),
		now.Add(-10 * time.Second),
	}
	trimmed := trimWindow(times, now, time.Minute)
	require.Len(t, trimmed, 1)
	assert.Equal(t, times[2], trimmed[0])
}
