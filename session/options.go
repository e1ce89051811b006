package session

import (
	"log/slog"
	"time"
)

// EvictionFunc is invoked after an eviction pass removes sessions, with the
// records that were dropped from the index.
type EvictionFunc func(user, app string, removed []Record)

// Option configures a Manager.
type Option func(*Manager)

// WithDefaultMaxSessions sets the process-wide default session cap applied
// when a Create call does not supply one.
func WithDefaultMaxSessions(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.defaultMax = n
		}
	}
}

// WithClock sets the time source. Tests inject a fake clock to make
// recency ordering deterministic.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the structured logger.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEvictionFunc registers a callback observing eviction batches.
func WithEvictionFunc(fn EvictionFunc) Option {
	return func(m *Manager) {
		m.onEvict = fn
	}
}
