package session

import "sort"

// enforceLimit applies the least-recently-used eviction policy: when the
// index holds more than max records, the oldest by lastUsedAt are removed
// together with their directory trees, and the index is persisted with the
// surviving records in ascending lastUsedAt order. Ties sort stably so
// rapid creates within the same millisecond evict deterministically.
//
// A failure to remove one session's directory does not abort the batch;
// the reduced index is persisted regardless.
//
// The caller must hold the (user, app) lock.
func (m *Manager) enforceLimit(user, app string, max int) error {
	recs, err := m.loadIndex(user, app)
	if err != nil {
		return err
	}
	if len(recs) <= max {
		return nil
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].LastUsedAt < recs[j].LastUsedAt
	})
	remove := recs[:len(recs)-max]
	keep := recs[len(recs)-max:]

	for _, r := range remove {
		if err := m.store.RemoveAll(sessionDir(user, app, r.ID)); err != nil {
			m.logger.Warn("evicting session directory",
				"app", Sanitize(app), "session_id", r.ID, "error", err)
		}
	}

	if err := m.saveIndex(user, app, keep); err != nil {
		return err
	}
	if m.onEvict != nil {
		m.onEvict(user, app, remove)
	}
	return nil
}
