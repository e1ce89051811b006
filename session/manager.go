package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Veemo-wt/Lumina-Backend/store"
)

// DefaultMaxSessions is the session cap applied when neither the Create
// call nor the Manager configuration supplies one.
const DefaultMaxSessions = 50

// Manager owns the session lifecycle for all (user, application) pairs on
// top of a blob store. It is the only writer of index documents.
//
// Every operation re-reads from storage; no index is cached across calls.
// A per-(user, app) lock serializes each read-modify-write cycle, so two
// concurrent Creates for the same pair cannot lose an update.
type Manager struct {
	store      store.Store
	locks      *keyedMutex
	defaultMax int
	now        func() time.Time
	logger     *slog.Logger
	onEvict    EvictionFunc
}

// New creates a Manager on top of the given store.
func New(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:      st,
		locks:      newKeyedMutex(),
		defaultMax: DefaultMaxSessions,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

func (m *Manager) nowMillis() int64 {
	return m.now().UnixMilli()
}

// List returns the sessions for (user, app) sorted by descending
// lastUsedAt. The result is never nil.
func (m *Manager) List(ctx context.Context, user, app string) ([]Record, error) {
	recs, err := m.loadIndex(user, app)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []Record{}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].LastUsedAt > recs[j].LastUsedAt
	})
	return recs, nil
}

// Create upserts a session record and then enforces the session cap.
// Re-creating an existing id replaces its record but keeps the original
// createdAt; the prior state document and files are left untouched.
func (m *Manager) Create(ctx context.Context, user, app string, p CreateParams) (Record, error) {
	unlock := m.locks.lock(appDir(user, app))
	defer unlock()

	now := m.nowMillis()
	id := p.ID
	if id == "" {
		id = strconv.FormatInt(now, 10)
	}
	id = Sanitize(id)
	name := p.Name
	if name == "" {
		name = id
	}
	max := p.MaxSessions
	if max <= 0 {
		max = m.defaultMax
	}

	recs, err := m.loadIndex(user, app)
	if err != nil {
		return Record{}, err
	}

	rec := Record{ID: id, Name: name, CreatedAt: now, LastUsedAt: now}
	kept := make([]Record, 0, len(recs)+1)
	for _, r := range recs {
		if r.ID == id {
			rec.CreatedAt = r.CreatedAt
			continue
		}
		kept = append(kept, r)
	}
	kept = append(kept, rec)

	if err := m.saveIndex(user, app, kept); err != nil {
		return Record{}, err
	}
	if err := m.enforceLimit(user, app, max); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// State returns the session's state document, or an empty object if none
// has been written yet. The session directory chain is created on access.
func (m *Manager) State(ctx context.Context, user, app, id string) (json.RawMessage, error) {
	if err := m.store.EnsureDir(filesDir(user, app, id)); err != nil {
		return nil, fmt.Errorf("ensuring session directory: %w", err)
	}
	data, err := m.store.Read(stateKey(user, app, id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return json.RawMessage("{}"), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}
	return json.RawMessage(data), nil
}

// PutState overwrites the state document and bumps the matching record's
// lastUsedAt. Writing state for an id absent from the index is tolerated:
// the blob is stored and the index saved unchanged.
func (m *Manager) PutState(ctx context.Context, user, app, id string, state json.RawMessage) error {
	if !json.Valid(state) {
		return ErrInvalidState
	}

	unlock := m.locks.lock(appDir(user, app))
	defer unlock()

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, state, "", "  "); err != nil {
		return ErrInvalidState
	}

	if err := m.store.EnsureDir(filesDir(user, app, id)); err != nil {
		return fmt.Errorf("ensuring session directory: %w", err)
	}
	if err := m.store.Write(stateKey(user, app, id), pretty.Bytes()); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	recs, err := m.loadIndex(user, app)
	if err != nil {
		return err
	}
	now := m.nowMillis()
	sid := Sanitize(id)
	for i := range recs {
		if recs[i].ID == sid {
			recs[i].LastUsedAt = now
		}
	}
	return m.saveIndex(user, app, recs)
}

// Delete removes the session's entire directory tree and drops its record
// from the index. Deleting an unknown session is a no-op, not an error.
func (m *Manager) Delete(ctx context.Context, user, app, id string) error {
	unlock := m.locks.lock(appDir(user, app))
	defer unlock()

	if err := m.store.RemoveAll(sessionDir(user, app, id)); err != nil {
		return fmt.Errorf("removing session directory: %w", err)
	}

	recs, err := m.loadIndex(user, app)
	if err != nil {
		return err
	}
	sid := Sanitize(id)
	kept := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.ID != sid {
			kept = append(kept, r)
		}
	}
	return m.saveIndex(user, app, kept)
}

// Files lists the session's file attachments. The result is never nil.
func (m *Manager) Files(ctx context.Context, user, app, id string) ([]store.FileInfo, error) {
	if err := m.store.EnsureDir(filesDir(user, app, id)); err != nil {
		return nil, fmt.Errorf("ensuring session directory: %w", err)
	}
	infos, err := m.store.List(filesDir(user, app, id))
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	if infos == nil {
		infos = []store.FileInfo{}
	}
	return infos, nil
}

// PutFile stores a file attachment under the session, overwriting any
// same-named file. An empty name falls back to "upload.bin".
func (m *Manager) PutFile(ctx context.Context, user, app, id, name string, data []byte) (store.FileInfo, error) {
	if strings.TrimSpace(name) == "" {
		name = "upload.bin"
	}
	fname := Sanitize(name)
	key := filesDir(user, app, id) + "/" + fname
	if err := m.store.Write(key, data); err != nil {
		return store.FileInfo{}, fmt.Errorf("writing file %s: %w", fname, err)
	}
	return store.FileInfo{Name: fname, Size: int64(len(data))}, nil
}
