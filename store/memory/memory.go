// Package memory provides a thread-safe in-memory implementation of
// store.Store. Suitable for testing, demos, and single-process use cases.
package memory

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/Veemo-wt/Lumina-Backend/store"
)

// Store is a thread-safe in-memory implementation of store.Store.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	dirs  map[string]bool
}

var _ store.Store = (*Store)(nil)

// New returns a new empty in-memory Store.
func New() *Store {
	return &Store{
		blobs: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (s *Store) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, store.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	s.ensureDirLocked(path.Dir(key))
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return fmt.Errorf("%s: %w", key, store.ErrNotFound)
	}
	delete(s.blobs, key)
	return nil
}

func (s *Store) List(dir string) ([]store.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := dir + "/"
	var infos []store.FileInfo
	for key, data := range s.blobs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		name := key[len(prefix):]
		if strings.Contains(name, "/") {
			continue
		}
		infos = append(infos, store.FileInfo{Name: name, Size: int64(len(data))})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (s *Store) EnsureDir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDirLocked(dir)
	return nil
}

func (s *Store) ensureDirLocked(dir string) {
	for dir != "." && dir != "/" && dir != "" {
		s.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

func (s *Store) RemoveAll(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := dir + "/"
	for key := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			delete(s.blobs, key)
		}
	}
	for d := range s.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(s.dirs, d)
		}
	}
	return nil
}
