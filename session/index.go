package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veemo-wt/Lumina-Backend/store"
)

// loadIndex reads the index document for (user, app). A missing document is
// an empty index, never an error.
func (m *Manager) loadIndex(user, app string) ([]Record, error) {
	data, err := m.store.Read(indexKey(user, app))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session index: %w", err)
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing session index: %w", err)
	}
	return recs, nil
}

// saveIndex overwrites the index document. The document is pretty-printed;
// field names and order come from the Record struct and are the contract
// shared with any other reader of the on-disk layout.
func (m *Manager) saveIndex(user, app string, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session index: %w", err)
	}
	if err := m.store.Write(indexKey(user, app), data); err != nil {
		return fmt.Errorf("saving session index: %w", err)
	}
	return nil
}
